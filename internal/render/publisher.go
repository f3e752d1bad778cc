package render

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/anahartlab/originals/internal/gallery"
	"github.com/anahartlab/originals/internal/source"
)

// Publisher regenerates the catalog page from the record source and the
// image folders. Every run is a full rebuild: stale product sections and
// navigation are dropped, then one fresh section per product is inserted
// before the footer in record-source order, so page order always equals
// source order.
type Publisher struct {
	Source       source.Source
	Selector     *gallery.Selector
	DocumentPath string
}

// NewPublisher wires a render-pass runner.
func NewPublisher(src source.Source, selector *gallery.Selector, documentPath string) *Publisher {
	return &Publisher{Source: src, Selector: selector, DocumentPath: documentPath}
}

// Run rebuilds the document on disk. Products without a folder or without
// qualifying images are skipped with a log line; a missing footer anchor is
// fatal and halts before any section is inserted.
func (p *Publisher) Run(ctx context.Context) error {
	table, err := p.Source.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load record source: %w", err)
	}

	doc, err := LoadDocument(p.DocumentPath)
	if err != nil {
		return err
	}
	if !doc.HasAnchor() {
		return fmt.Errorf("document %s: %w", p.DocumentPath, ErrNoAnchor)
	}

	doc.RemoveProductSections()
	doc.RemoveStaleNavigation()

	rendered := 0
	for i := 0; i < table.Len(); i++ {
		rec := table.Record(i)
		if rec.Name == "" {
			continue
		}

		images, err := p.Selector.ListImages(rec.Name)
		if err != nil {
			return fmt.Errorf("failed to list images for %q: %w", rec.Name, err)
		}
		if len(images) == 0 {
			slog.Warn("Skipped product: no images", "product", rec.Name)
			continue
		}
		images = p.Selector.SampleGallery(images, gallery.MaxGalleryImages)

		fragment, err := RenderFragment(rec, images)
		if err != nil {
			return err
		}
		if err := doc.InsertBeforeAnchor(fragment); err != nil {
			return fmt.Errorf("failed to insert section for %q: %w", rec.Name, err)
		}
		rendered++
	}

	if err := doc.Save(p.DocumentPath); err != nil {
		return err
	}

	slog.Info("Catalog page rebuilt", "document", p.DocumentPath, "products", rendered)
	return nil
}
