// Package enrich fills missing product titles and descriptions by sending
// each product's cover image to the description service, post-processing the
// result and writing it back into the record source in one batch.
package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/anahartlab/originals/internal/gallery"
	"github.com/anahartlab/originals/internal/source"
	"github.com/anahartlab/originals/internal/vision"
)

// DefaultWorkers bounds the enrichment worker pool.
const DefaultWorkers = 4

// Engine runs the enrichment pass. Each product folder is one unit of work:
// network call, shortening, title derivation, row update. Failures after
// retries are logged and never abort sibling products; persistence happens
// once, after the pool drains.
type Engine struct {
	src       source.Source
	selector  *gallery.Selector
	describer vision.Describer
	workers   int
}

// NewEngine wires an enrichment engine. workers <= 0 falls back to
// DefaultWorkers.
func NewEngine(src source.Source, selector *gallery.Selector, describer vision.Describer, workers int) *Engine {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Engine{src: src, selector: selector, describer: describer, workers: workers}
}

// Run loads the record source, enriches every product folder that needs it
// and saves the table back in a single batched write when anything changed.
func (e *Engine) Run(ctx context.Context) error {
	table, err := e.src.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load record source: %w", err)
	}

	folders, err := e.selector.Folders()
	if err != nil {
		return fmt.Errorf("failed to list image folders: %w", err)
	}

	titles := NewTitleRegistry(table.Titles())

	slog.Info("Starting enrichment", "folders", len(folders), "workers", e.workers)

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, e.workers)
	var changed atomic.Bool

	for _, folder := range folders {
		wg.Add(1)
		go func(folder string) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire
			defer func() { <-semaphore }() // Release

			if e.processFolder(ctx, table, titles, folder) {
				changed.Store(true)
			}
		}(folder)
	}
	wg.Wait()

	if !changed.Load() {
		slog.Info("Enrichment finished, nothing to save")
		return nil
	}

	if err := e.src.Save(ctx, table); err != nil {
		return fmt.Errorf("failed to save record source: %w", err)
	}
	slog.Info("Enrichment finished, records saved")
	return nil
}

// processFolder enriches one product. It reports whether the table changed.
// Every worker owns exactly one row, so row writes need no lock; the title
// registry serializes the one shared check-then-claim step.
func (e *Engine) processFolder(ctx context.Context, table *source.Table, titles *TitleRegistry, folder string) bool {
	mainImage, ok := e.selector.PickMain(folder)
	if !ok {
		slog.Warn("Skipped product: no main image", "product", folder)
		return false
	}

	idx, ok := table.FindByName(folder)
	if !ok {
		slog.Warn("Skipped product: no matching record", "product", folder)
		return false
	}

	needDesc := table.Description(idx) == ""
	needTitle := table.Title(idx) == ""
	if !needDesc && !needTitle {
		slog.Debug("Skipped product: already complete", "product", folder)
		return false
	}

	full, err := e.describer.Describe(ctx, mainImage)
	if err != nil {
		slog.Error("Failed to generate description", "product", folder, "error", err)
		return false
	}

	desc := Shorten(full, DescriptionBudget)
	title := titles.Reserve(DeriveTitle(desc))

	if needDesc {
		table.SetDescription(idx, desc)
	}
	if needTitle {
		table.SetTitle(idx, title)
	}

	slog.Info("Generated product text", "product", folder, "title", title, "description", desc)
	return true
}
