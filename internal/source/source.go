// Package source adapts tabular record stores (a local CSV file or a Google
// Sheets worksheet) into an in-memory table of product rows. Column names are
// normalized so the same sheet works regardless of header casing or spacing.
package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/anahartlab/originals/internal/catalog"
)

// Source is a tabular record store. Load reads every row; Save writes the
// whole table back in one batched call after all in-memory mutation is done.
type Source interface {
	Load(ctx context.Context) (*Table, error)
	Save(ctx context.Context, t *Table) error
}

// Table holds the header row and all data rows of a record source, with the
// three required columns (name, title, description) resolved up front.
type Table struct {
	Headers []string
	Rows    [][]string

	cols     map[string]int
	nameCol  int
	titleCol int
	descCol  int
}

// normalizeHeader lower-cases a header cell and strips all whitespace, so
// "SEO Title", "seo title" and " SeoTitle " all resolve to "seotitle".
func normalizeHeader(h string) string {
	return strings.ToLower(strings.Join(strings.Fields(h), ""))
}

// NewTable builds a Table from raw header and row cells. It fails if any of
// the name/title/description columns cannot be located: that is a
// configuration error, not a runtime one, and the caller should halt before
// mutating anything.
func NewTable(headers []string, rows [][]string) (*Table, error) {
	t := &Table{
		Headers:  headers,
		Rows:     rows,
		cols:     make(map[string]int, len(headers)),
		nameCol:  -1,
		titleCol: -1,
		descCol:  -1,
	}

	for i, h := range headers {
		key := normalizeHeader(h)
		if _, ok := t.cols[key]; !ok {
			t.cols[key] = i
		}
		// First header containing the required substring wins.
		if t.nameCol < 0 && strings.Contains(key, "name") {
			t.nameCol = i
		}
		if t.titleCol < 0 && strings.Contains(key, "title") {
			t.titleCol = i
		}
		if t.descCol < 0 && strings.Contains(key, "description") {
			t.descCol = i
		}
	}

	if t.nameCol < 0 || t.titleCol < 0 || t.descCol < 0 {
		return nil, fmt.Errorf("required columns name/title/description not found in header %v", headers)
	}

	// Pad short rows so every cell is addressable.
	for i, row := range t.Rows {
		if len(row) < len(headers) {
			padded := make([]string, len(headers))
			copy(padded, row)
			t.Rows[i] = padded
		}
	}

	return t, nil
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

func (t *Table) Name(i int) string        { return strings.TrimSpace(t.Rows[i][t.nameCol]) }
func (t *Table) Title(i int) string       { return t.Rows[i][t.titleCol] }
func (t *Table) Description(i int) string { return t.Rows[i][t.descCol] }

func (t *Table) SetTitle(i int, v string)       { t.Rows[i][t.titleCol] = v }
func (t *Table) SetDescription(i int, v string) { t.Rows[i][t.descCol] = v }

// Lookup returns the cell under the column whose normalized header equals
// key, or "" when the column does not exist.
func (t *Table) Lookup(i int, key string) string {
	col, ok := t.cols[key]
	if !ok {
		return ""
	}
	return strings.TrimSpace(t.Rows[i][col])
}

// FindByName locates the first row whose name matches, ignoring case.
func (t *Table) FindByName(name string) (int, bool) {
	for i := range t.Rows {
		if strings.EqualFold(t.Name(i), name) {
			return i, true
		}
	}
	return 0, false
}

// Titles returns every non-empty title currently in the table. Used to seed
// the uniqueness registry before enrichment.
func (t *Table) Titles() []string {
	var out []string
	for i := range t.Rows {
		if v := strings.TrimSpace(t.Title(i)); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Record assembles the product record for row i. SEO title falls back to the
// plain title when its column is absent or empty.
func (t *Table) Record(i int) catalog.Record {
	rec := catalog.Record{
		Name:           t.Name(i),
		Title:          strings.TrimSpace(t.Title(i)),
		Description:    strings.TrimSpace(t.Description(i)),
		Size:           t.Lookup(i, "size"),
		Date:           t.Lookup(i, "date"),
		Price:          t.Lookup(i, "price"),
		Material:       t.Lookup(i, "material"),
		Paint:          t.Lookup(i, "paint"),
		Type:           t.Lookup(i, "type"),
		Place:          t.Lookup(i, "place"),
		SEOTitle:       t.Lookup(i, "seotitle"),
		SEODescription: t.Lookup(i, "seodescription"),
		SEOKeywords:    t.Lookup(i, "seokeywords"),
	}
	if rec.SEOTitle == "" {
		rec.SEOTitle = rec.Title
	}
	return rec
}
