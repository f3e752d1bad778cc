package enrich

import (
	"fmt"
	"sync"
)

// TitleRegistry tracks every title currently known, pre-existing plus newly
// assigned, and hands out disambiguated titles to concurrent workers.
// Reserve is one atomic step: check-then-suffix-then-claim happens under a
// single lock, so two workers can never walk away with the same title.
type TitleRegistry struct {
	mu   sync.Mutex
	used map[string]struct{}
}

// NewTitleRegistry seeds a registry with the titles already present in the
// record source. Empty strings are ignored.
func NewTitleRegistry(existing []string) *TitleRegistry {
	r := &TitleRegistry{used: make(map[string]struct{}, len(existing))}
	for _, t := range existing {
		if t != "" {
			r.used[t] = struct{}{}
		}
	}
	return r
}

// Reserve claims base if it is free, otherwise "base 2", "base 3", ... and
// returns the claimed title.
func (r *TitleRegistry) Reserve(base string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	title := base
	for n := 2; ; n++ {
		if _, taken := r.used[title]; !taken {
			break
		}
		title = fmt.Sprintf("%s %d", base, n)
	}
	r.used[title] = struct{}{}
	return title
}
