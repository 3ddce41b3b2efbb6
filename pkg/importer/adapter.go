// Package importer downloads the published ANJ spreadsheet, turns each
// sport tab into a sheet directory (data.gob + manifest.yaml), and tracks
// source URLs and their availability in a small SQLite database.
package importer

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Adapter imports one sport tab of the ANJ list.
type Adapter interface {
	// ID returns the unique identifier of this adapter (e.g. "anj-football").
	ID() string
	// Sport returns the target sheet's sport (e.g. "Football").
	Sport() string
	// Description returns a human-readable description.
	Description() string
	// DefaultURL returns the published spreadsheet URL used for seeding.
	DefaultURL() string
	// Import downloads the tab from the spreadsheet at sourceURL, parses it,
	// and writes data.gob + manifest.yaml into a subdirectory of outputDir
	// named after the sport.
	Import(ctx context.Context, sourceURL, outputDir string) error
}

var (
	registryMu sync.RWMutex
	adapters   = make(map[string]Adapter)
)

// Register adds an adapter to the global registry.
func Register(a Adapter) {
	registryMu.Lock()
	defer registryMu.Unlock()
	adapters[a.ID()] = a
}

// Get returns a registered adapter by ID, or an error if not found.
func Get(id string) (Adapter, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	a, ok := adapters[id]
	if !ok {
		return nil, fmt.Errorf("unknown import source: %q", id)
	}
	return a, nil
}

// All returns all registered adapters sorted by ID.
func All() []Adapter {
	registryMu.RLock()
	defer registryMu.RUnlock()
	result := make([]Adapter, 0, len(adapters))
	for _, a := range adapters {
		result = append(result, a)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID() < result[j].ID() })
	return result
}
