// Package gallery selects product images from the local images directory.
// The layout convention is one subdirectory per product name, holding the
// product's photos directly.
package gallery

import (
	"errors"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// MaxGalleryImages bounds how many images end up in a rendered carousel.
const MaxGalleryImages = 5

// mainCandidates is the fixed preference order for the designated cover
// image used as enrichment input.
var mainCandidates = []string{"main.jpg", "main.jpeg", "main.png"}

var validExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// Selector lists and samples images for products under Root.
type Selector struct {
	Root string
	rng  *rand.Rand
}

// NewSelector returns a selector over the given images root. rng may be nil,
// in which case the shared math/rand source is used.
func NewSelector(root string, rng *rand.Rand) *Selector {
	return &Selector{Root: root, rng: rng}
}

// Folders lists the product subdirectories under Root, sorted by name.
func (s *Selector) Folders() ([]string, error) {
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

// dir resolves a product name to its folder path. The stored folder case may
// differ from the record's name, so an exact miss falls back to a
// case-insensitive scan of Root.
func (s *Selector) dir(name string) (string, bool) {
	path := filepath.Join(s.Root, name)
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path, true
	}
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		return "", false
	}
	for _, e := range entries {
		if e.IsDir() && strings.EqualFold(e.Name(), name) {
			return filepath.Join(s.Root, e.Name()), true
		}
	}
	return "", false
}

// ListImages returns the product's image file names, sorted
// lexicographically and filtered to recognized extensions. A missing folder
// or a folder with no qualifying files yields an empty result, not an
// error; callers log the skip.
func (s *Selector) ListImages(name string) ([]string, error) {
	dir, ok := s.dir(name)
	if !ok {
		return nil, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var out []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if validExts[strings.ToLower(filepath.Ext(e.Name()))] {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

// PickMain returns the full path of the product's designated cover image,
// checking the reserved file names in fixed preference order. ok is false
// when none exists; callers treat that as "enrichment skipped", not an
// error.
func (s *Selector) PickMain(name string) (path string, ok bool) {
	dir, found := s.dir(name)
	if !found {
		return "", false
	}
	for _, candidate := range mainCandidates {
		p := filepath.Join(dir, candidate)
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p, true
		}
	}
	return "", false
}

// SampleGallery bounds the carousel to max images: everything when the
// folder is small enough, otherwise a random subset of exactly max without
// replacement. The subset changes across runs.
func (s *Selector) SampleGallery(images []string, max int) []string {
	if len(images) <= max {
		return images
	}
	var perm []int
	if s.rng != nil {
		perm = s.rng.Perm(len(images))
	} else {
		perm = rand.Perm(len(images))
	}
	out := make([]string, 0, max)
	for _, idx := range perm[:max] {
		out = append(out, images[idx])
	}
	return out
}
