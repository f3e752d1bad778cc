package render

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// ErrNoAnchor is returned when the page has no footer to insert product
// sections before. The document is structurally invalid for this operation,
// so callers treat it as fatal.
var ErrNoAnchor = errors.New("document has no <footer> anchor")

const (
	productSectionSelector = "section.u-clearfix.u-section-16"
	navSelector            = "nav.u-nav"
	scrollButtonSelector   = "#scroll-to-menu"
	anchorSelector         = "footer"
)

// Document is a parsed catalog page. Edits work on the node tree, so
// changing one section never invalidates offsets elsewhere; everything the
// merger does not touch serializes back as it was parsed.
type Document struct {
	doc *goquery.Document
}

// LoadDocument parses the HTML file at path.
func LoadDocument(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document %s: %w", path, err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document %s: %w", path, err)
	}
	return &Document{doc: doc}, nil
}

// ParseDocument parses an in-memory HTML document.
func ParseDocument(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return &Document{doc: doc}, nil
}

// RemoveFragment deletes the first product section whose id matches. A
// no-op when no such fragment exists.
func (d *Document) RemoveFragment(id string) {
	d.doc.Find(productSectionSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if sel.AttrOr("id", "") == id {
			sel.Remove()
			return false
		}
		return true
	})
}

// RemoveProductSections deletes every generated product section. The render
// pass rebuilds all of them, so stale sections are dropped wholesale rather
// than merged.
func (d *Document) RemoveProductSections() {
	d.doc.Find(productSectionSelector).Remove()
}

// RemoveStaleNavigation deletes previously generated menus and the
// scroll-to-menu control. These are regenerated, never merged.
func (d *Document) RemoveStaleNavigation() {
	d.doc.Find(navSelector).Remove()
	d.doc.Find(scrollButtonSelector).Remove()
}

// HasFragment reports whether a product section with the given id exists.
func (d *Document) HasFragment(id string) bool {
	found := false
	d.doc.Find(productSectionSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if sel.AttrOr("id", "") == id {
			found = true
			return false
		}
		return true
	})
	return found
}

// CountFragments returns how many product sections carry the given id.
func (d *Document) CountFragments(id string) int {
	n := 0
	d.doc.Find(productSectionSelector).Each(func(_ int, sel *goquery.Selection) {
		if sel.AttrOr("id", "") == id {
			n++
		}
	})
	return n
}

// InsertBeforeAnchor inserts the fragment immediately before the first
// footer element.
func (d *Document) InsertBeforeAnchor(fragment string) error {
	anchor := d.doc.Find(anchorSelector).First()
	if anchor.Length() == 0 {
		return ErrNoAnchor
	}
	anchor.BeforeHtml(fragment)
	return nil
}

// HasAnchor reports whether the insertion anchor exists. Checked before any
// mutation so a structurally broken page halts the run with nothing touched.
func (d *Document) HasAnchor() bool {
	return d.doc.Find(anchorSelector).Length() > 0
}

// Html serializes the whole document, doctype included.
func (d *Document) Html() (string, error) {
	var out strings.Builder
	if err := html.Render(&out, d.doc.Get(0)); err != nil {
		return "", fmt.Errorf("failed to serialize document: %w", err)
	}
	return out.String(), nil
}

// Save writes the serialized document back to path.
func (d *Document) Save(path string) error {
	content, err := d.Html()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write document %s: %w", path, err)
	}
	return nil
}
