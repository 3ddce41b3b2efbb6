package sheet

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gigcompliance/anj-resolver/pkg/engine"
)

// Registry holds all loaded sheets and serves resolution and verdict
// queries. Sheets are keyed by sport, case-insensitively.
type Registry struct {
	mu        sync.RWMutex
	sheets    map[string]*Sheet
	sheetsDir string
}

// NewRegistry creates an empty registry over the given directory.
func NewRegistry(sheetsDir string) *Registry {
	return &Registry{
		sheets:    make(map[string]*Sheet),
		sheetsDir: sheetsDir,
	}
}

// Load scans the sheets directory and loads every sheet. The swap is
// atomic: queries see either the old set or the new one, never a mix.
func (r *Registry) Load() error {
	entries, err := os.ReadDir(r.sheetsDir)
	if err != nil {
		return fmt.Errorf("read sheets dir %s: %w", r.sheetsDir, err)
	}

	newSheets := make(map[string]*Sheet)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(r.sheetsDir, entry.Name())
		if _, err := os.Stat(filepath.Join(dir, "manifest.yaml")); err != nil {
			continue
		}
		s, err := LoadSheet(dir)
		if err != nil {
			return fmt.Errorf("load sheet %s: %w", entry.Name(), err)
		}
		newSheets[strings.ToLower(s.Manifest.Sport)] = s
	}

	r.mu.Lock()
	r.sheets = newSheets
	r.mu.Unlock()
	return nil
}

// Reload reloads all sheets from disk (hot reload).
func (r *Registry) Reload() error {
	return r.Load()
}

// Sheet returns the loaded sheet for a sport.
func (r *Registry) Sheet(sport string) (*Sheet, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sheets[strings.ToLower(sport)]
	return s, ok
}

// Resolve matches a query against one sport's sheet.
func (r *Registry) Resolve(sport, query string, threshold int) ([]engine.Match, error) {
	s, ok := r.Sheet(sport)
	if !ok {
		return nil, fmt.Errorf("unknown sport %q", sport)
	}
	return s.Resolve(query, threshold), nil
}

// Verdict resolves an exact competition name on one sport's sheet and
// classifies it.
func (r *Registry) Verdict(sport, name, category, discipline string) (engine.Verdict, error) {
	s, ok := r.Sheet(sport)
	if !ok {
		return engine.Verdict{}, fmt.Errorf("unknown sport %q", sport)
	}
	return s.Verdict(name, category, discipline)
}

// Info is the public metadata for a loaded sheet.
type Info struct {
	Sport         string `json:"sport"`
	Version       string `json:"version"`
	Authority     string `json:"authority"`
	SourceRef     string `json:"source_ref"`
	SourceURL     string `json:"source_url,omitempty"`
	HasDiscipline bool   `json:"has_discipline"`
	Records       int    `json:"records"`
}

// ListSheets returns metadata for all loaded sheets, sorted by sport.
func (r *Registry) ListSheets() []Info {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]Info, 0, len(r.sheets))
	for _, s := range r.sheets {
		infos = append(infos, Info{
			Sport:         s.Manifest.Sport,
			Version:       s.Manifest.Version,
			Authority:     s.Manifest.Authority,
			SourceRef:     s.Manifest.SourceRef,
			SourceURL:     s.Manifest.SourceURL,
			HasDiscipline: s.Manifest.HasDiscipline,
			Records:       len(s.Records),
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Sport < infos[j].Sport })
	return infos
}

// SheetCount returns the number of loaded sheets.
func (r *Registry) SheetCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sheets)
}

// TotalRecords returns the total number of rows across all sheets.
func (r *Registry) TotalRecords() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := 0
	for _, s := range r.sheets {
		total += len(s.Records)
	}
	return total
}
