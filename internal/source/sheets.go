package source

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsSource reads and writes product rows in one worksheet of a Google
// spreadsheet, authenticated with a service-account key file.
type SheetsSource struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsFile string
}

// NewSheetsSource returns a source backed by the named worksheet.
func NewSheetsSource(spreadsheetID, sheetName, credentialsFile string) *SheetsSource {
	return &SheetsSource{
		SpreadsheetID:   spreadsheetID,
		SheetName:       sheetName,
		CredentialsFile: credentialsFile,
	}
}

func (s *SheetsSource) service(ctx context.Context) (*sheets.Service, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(s.CredentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	return svc, nil
}

// Load fetches the whole used range of the worksheet.
func (s *SheetsSource) Load(ctx context.Context) (*Table, error) {
	svc, err := s.service(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Spreadsheets.Values.Get(s.SpreadsheetID, s.SheetName).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", s.SheetName, err)
	}
	if len(resp.Values) == 0 {
		return nil, fmt.Errorf("sheet %q is empty, expected a header row", s.SheetName)
	}

	headers := cellsToStrings(resp.Values[0])
	rows := make([][]string, 0, len(resp.Values)-1)
	for _, raw := range resp.Values[1:] {
		rows = append(rows, cellsToStrings(raw))
	}

	return NewTable(headers, rows)
}

// Save writes every data row back as a single rectangular update starting
// below the header row. Building the full payload first keeps the write
// atomic from the caller's point of view: either the one Update call lands
// or the sheet is untouched. Per-cell writes would also burn through the
// API's rate limits.
func (s *SheetsSource) Save(ctx context.Context, t *Table) error {
	svc, err := s.service(ctx)
	if err != nil {
		return err
	}

	values := make([][]interface{}, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		values[i] = cells
	}

	rangeRef := fmt.Sprintf("%s!A2", s.SheetName)
	_, err = svc.Spreadsheets.Values.
		Update(s.SpreadsheetID, rangeRef, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to update sheet %q: %w", s.SheetName, err)
	}
	return nil
}

func cellsToStrings(cells []interface{}) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = fmt.Sprint(c)
	}
	return out
}
