package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), false)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.CSVPath != "products.csv" {
		t.Errorf("Expected default csv path, got %q", cfg.CSVPath)
	}
	if cfg.Workers != 4 {
		t.Errorf("Expected 4 default workers, got %d", cfg.Workers)
	}
	if cfg.Vision.Timeout() != 600*time.Second {
		t.Errorf("Expected 600s vision timeout, got %v", cfg.Vision.Timeout())
	}
	if cfg.Vision.MaxAttempts != 6 {
		t.Errorf("Expected 6 attempts, got %d", cfg.Vision.MaxAttempts)
	}
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), true); err == nil {
		t.Error("Expected an error for an explicitly named missing config file")
	}
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "originals.yaml")
	content := `
images_dir: photos
workers: 8
vision:
  model: llava-next-34b
  max_attempts: 3
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("ENRICH_WORKERS", "2")
	t.Setenv("OPENROUTER_API_KEY", "sk-test")

	cfg, err := Load(path, true)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.ImagesDir != "photos" {
		t.Errorf("Expected images dir from file, got %q", cfg.ImagesDir)
	}
	if cfg.Vision.Model != "llava-next-34b" {
		t.Errorf("Expected model from file, got %q", cfg.Vision.Model)
	}
	if cfg.Vision.MaxAttempts != 3 {
		t.Errorf("Expected attempts from file, got %d", cfg.Vision.MaxAttempts)
	}
	if cfg.Workers != 2 {
		t.Errorf("Expected env to override file workers, got %d", cfg.Workers)
	}
	if cfg.Vision.APIKey != "sk-test" {
		t.Errorf("Expected api key from env, got %q", cfg.Vision.APIKey)
	}
	// File-only fields keep their defaults.
	if cfg.DocumentPath != "main.html" {
		t.Errorf("Expected default document path, got %q", cfg.DocumentPath)
	}
}
