// Package sheet loads and serves the per-sport sheets of the ANJ list of
// authorised competitions. Each sheet lives in its own directory with a
// manifest.yaml describing the source and CSV layout, plus a data file
// (gob cache or raw CSV export).
package sheet

import (
	"fmt"
	"os"

	"github.com/gigcompliance/anj-resolver/pkg/engine"
	"gopkg.in/yaml.v3"
)

// Manifest describes one sheet: its source, CSV layout, and how queries
// against it are pre-processed.
type Manifest struct {
	Sport         string     `yaml:"sport" json:"sport"`
	Version       string     `yaml:"version" json:"version"`
	Authority     string     `yaml:"authority" json:"authority"`
	SourceRef     string     `yaml:"source_ref" json:"source_ref"`
	SourceURL     string     `yaml:"source_url" json:"source_url,omitempty"`
	DataFile      string     `yaml:"data_file" json:"data_file"`
	Threshold     int        `yaml:"threshold" json:"threshold"`
	HasDiscipline bool       `yaml:"has_discipline" json:"has_discipline"`
	Format        FormatSpec `yaml:"format" json:"-"`
	Columns       ColumnSpec `yaml:"columns" json:"-"`
	Keywords      []Keyword  `yaml:"keywords" json:"-"`
}

// FormatSpec describes the CSV layout of the source export.
type FormatSpec struct {
	Delimiter string `yaml:"delimiter"`
	Encoding  string `yaml:"encoding"`
	// HeaderScan is how many leading rows are scanned for the header line.
	// ANJ exports carry a variable number of title rows above it.
	HeaderScan int `yaml:"header_scan"`
}

// ColumnSpec names the sheet columns. Defaults match the French ANJ
// headers; a missing optional column degrades to the engine defaults.
type ColumnSpec struct {
	Name        string `yaml:"name"`
	Category    string `yaml:"category"`
	Country     string `yaml:"country"`
	Restriction string `yaml:"restriction"`
	Phases      string `yaml:"phases"`
	Discipline  string `yaml:"discipline"`
}

// Keyword is one ordered English-to-native phrase substitution applied to
// queries before resolution, so "World Cup" is matched against the sheet's
// "Coupe du Monde" rows.
type Keyword struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// LoadManifest reads and parses a manifest.yaml, applying defaults.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if m.Sport == "" {
		return nil, fmt.Errorf("manifest %s: missing sport", path)
	}
	m.applyDefaults()
	return &m, nil
}

func (m *Manifest) applyDefaults() {
	if m.Authority == "" {
		m.Authority = "ANJ"
	}
	if m.SourceRef == "" {
		m.SourceRef = m.Authority + " List - " + m.Sport
	}
	if m.DataFile == "" {
		m.DataFile = "data.csv"
	}
	if m.Threshold <= 0 {
		m.Threshold = engine.DefaultThreshold
	}
	if m.Format.HeaderScan <= 0 {
		m.Format.HeaderScan = 20
	}
	if m.Columns.Name == "" {
		m.Columns.Name = "Nom commun"
	}
	if m.Columns.Category == "" {
		m.Columns.Category = "Genre"
	}
	if m.Columns.Country == "" {
		m.Columns.Country = "Pays"
	}
	if m.Columns.Restriction == "" {
		m.Columns.Restriction = "Restrictions"
	}
	if m.Columns.Phases == "" {
		m.Columns.Phases = "Phases"
	}
	if m.Columns.Discipline == "" {
		m.Columns.Discipline = "Discipline"
	}
}
