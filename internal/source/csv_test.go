package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCSVSourceLoad(t *testing.T) {
	path := writeCSV(t, "Name,Title,Description,Price\nvase1,Ваза,Описание,5000\nplate1,,,1000\n")
	src := NewCSVSource(path)

	table, err := src.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if table.Len() != 2 {
		t.Fatalf("Expected 2 rows, got %d", table.Len())
	}
	if got := table.Name(1); got != "plate1" {
		t.Errorf("Expected plate1, got %q", got)
	}
	if got := table.Record(0).Price; got != "5000" {
		t.Errorf("Expected price column preserved, got %q", got)
	}
}

func TestCSVSourceLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty file", ""},
		{"missing required columns", "name,price\nvase1,5000\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewCSVSource(writeCSV(t, tt.content))
			if _, err := src.Load(context.Background()); err == nil {
				t.Error("Expected a load error")
			}
		})
	}
}

func TestCSVSourceLoadMissingFile(t *testing.T) {
	src := NewCSVSource(filepath.Join(t.TempDir(), "nope.csv"))
	if _, err := src.Load(context.Background()); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestCSVSourceSaveRoundTrip(t *testing.T) {
	path := writeCSV(t, "Name,Title,Description,Material\nvase1,,,глина\nplate1,Тарелка,Готово,фарфор\n")
	src := NewCSVSource(path)
	ctx := context.Background()

	table, err := src.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	table.SetTitle(0, "Новая ваза")
	table.SetDescription(0, "Сгенерированное описание.")

	if err := src.Save(ctx, table); err != nil {
		t.Fatal(err)
	}

	reloaded, err := src.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got := reloaded.Title(0); got != "Новая ваза" {
		t.Errorf("Expected updated title, got %q", got)
	}
	if got := reloaded.Description(0); got != "Сгенерированное описание." {
		t.Errorf("Expected updated description, got %q", got)
	}
	// Untouched rows and columns survive the batched rewrite.
	if got := reloaded.Record(1).Material; got != "фарфор" {
		t.Errorf("Expected untouched material cell, got %q", got)
	}
	if got := reloaded.Title(1); got != "Тарелка" {
		t.Errorf("Expected untouched title, got %q", got)
	}
}
