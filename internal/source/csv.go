package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
)

// CSVSource reads and writes product rows in a local CSV file. The first
// record is the header row.
type CSVSource struct {
	Path string
}

// NewCSVSource returns a source backed by the CSV file at path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

// Load reads the whole file into a Table.
func (s *CSVSource) Load(ctx context.Context) (*Table, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv %s: %w", s.Path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv %s: %w", s.Path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv %s is empty, expected a header row", s.Path)
	}

	return NewTable(records[0], records[1:])
}

// Save rewrites the whole file: header row followed by every data row. There
// is no per-row update path.
func (s *CSVSource) Save(ctx context.Context, t *Table) error {
	f, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("failed to create csv %s: %w", s.Path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Headers); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush csv %s: %w", s.Path, err)
	}
	return nil
}
