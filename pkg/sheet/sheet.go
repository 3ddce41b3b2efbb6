package sheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/gigcompliance/anj-resolver/pkg/engine"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrNotFound reports that a competition name has no row in the sheet. It
// is a valid terminal outcome, distinct from a Verdict: the engine never
// fabricates a "not allowed" result for an absent row.
var ErrNotFound = errors.New("competition not recognised")

// Sheet is one loaded sport sheet: its manifest and row snapshot.
type Sheet struct {
	Manifest *Manifest
	Records  []engine.Record

	matcher *engine.Matcher
}

// LoadSheet reads a manifest.yaml and loads rows from gob or CSV.
func LoadSheet(dir string) (*Sheet, error) {
	manifest, err := LoadManifest(filepath.Join(dir, "manifest.yaml"))
	if err != nil {
		return nil, err
	}

	s := &Sheet{
		Manifest: manifest,
		matcher:  engine.DefaultMatcher(),
	}

	// Gob cache takes priority over the raw CSV export.
	gobPath := filepath.Join(dir, "data.gob")
	if _, err := os.Stat(gobPath); err == nil {
		records, err := LoadGob(gobPath)
		if err != nil {
			return nil, fmt.Errorf("sheet %s: %w", manifest.Sport, err)
		}
		s.Records = records
		return s, nil
	}

	f, err := os.Open(filepath.Join(dir, manifest.DataFile))
	if err != nil {
		return nil, fmt.Errorf("sheet %s: open data file: %w", manifest.Sport, err)
	}
	defer f.Close()

	records, err := ParseCSV(f, manifest)
	if err != nil {
		return nil, fmt.Errorf("sheet %s: %w", manifest.Sport, err)
	}
	s.Records = records
	return s, nil
}

// ParseCSV reads an ANJ sheet export. The header line is located
// dynamically by scanning the leading rows for the configured name column,
// since exports carry a variable number of title rows; header cells are
// cleaned (cut at '$', newlines to spaces, trimmed) and rows with an empty
// or header-echo name are dropped.
func ParseCSV(r io.Reader, m *Manifest) ([]engine.Record, error) {
	mf := *m
	mf.applyDefaults()
	m = &mf

	if enc := m.Format.Encoding; enc != "" && !isUTF8(enc) {
		e, err := htmlindex.Get(enc)
		if err != nil {
			return nil, fmt.Errorf("unsupported encoding %q: %w", enc, err)
		}
		r = transform.NewReader(r, e.NewDecoder())
	}

	cr := csv.NewReader(r)
	if delim := m.Format.Delimiter; delim != "" {
		cr.Comma = []rune(delim)[0]
	}
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty sheet")
	}

	nameLower := strings.ToLower(m.Columns.Name)
	headerIdx := 0
	scan := m.Format.HeaderScan
	if scan > len(rows) {
		scan = len(rows)
	}
	for i := 0; i < scan; i++ {
		if strings.Contains(strings.ToLower(strings.Join(rows[i], " ")), nameLower) {
			headerIdx = i
			break
		}
	}

	header := rows[headerIdx]
	colIdx := make(map[string]int, len(header))
	for i, h := range header {
		colIdx[strings.ToLower(cleanHeaderCell(h))] = i
	}

	nameCol, ok := colIdx[nameLower]
	if !ok {
		return nil, fmt.Errorf("name column %q not found in header %v", m.Columns.Name, header)
	}
	categoryCol := lookupCol(colIdx, m.Columns.Category)
	countryCol := lookupCol(colIdx, m.Columns.Country)
	restrictionCol := lookupCol(colIdx, m.Columns.Restriction)
	phasesCol := lookupCol(colIdx, m.Columns.Phases)
	disciplineCol := lookupCol(colIdx, m.Columns.Discipline)

	var records []engine.Record
	for _, row := range rows[headerIdx+1:] {
		name := strings.TrimSpace(cell(row, nameCol))
		if name == "" || strings.EqualFold(name, m.Columns.Name) {
			continue
		}
		records = append(records, engine.Record{
			Name:        name,
			Category:    strings.TrimSpace(cell(row, categoryCol)),
			Country:     strings.TrimSpace(cell(row, countryCol)),
			Restriction: strings.TrimSpace(cell(row, restrictionCol)),
			Phases:      strings.TrimSpace(cell(row, phasesCol)),
			Discipline:  strings.TrimSpace(cell(row, disciplineCol)),
		})
	}
	return records, nil
}

// Resolve matches a free-text query against the sheet. Keyword
// substitutions run first; threshold <= 0 falls back to the manifest's.
func (s *Sheet) Resolve(query string, threshold int) []engine.Match {
	if threshold <= 0 {
		threshold = s.Manifest.Threshold
	}
	return s.matcher.Resolve(s.applyKeywords(query), s.Records, threshold)
}

// applyKeywords performs the manifest's ordered phrase substitutions on a
// lowercased copy of the query.
func (s *Sheet) applyKeywords(query string) string {
	if len(s.Manifest.Keywords) == 0 {
		return query
	}
	q := strings.ToLower(query)
	for _, kw := range s.Manifest.Keywords {
		q = strings.ReplaceAll(q, strings.ToLower(kw.From), kw.To)
	}
	return q
}

// Find returns the first row matching the exact competition name
// (accent-insensitive), preferring a category match when one is given and
// falling back to name-only, mirroring how near-duplicate rows are listed
// once per category.
func (s *Sheet) Find(name, category string) (engine.Record, bool) {
	key := foldKey(name)
	if category != "" {
		for _, rec := range s.Records {
			if foldKey(rec.Name) == key && strings.EqualFold(strings.TrimSpace(rec.Category), strings.TrimSpace(category)) {
				return rec, true
			}
		}
	}
	for _, rec := range s.Records {
		if foldKey(rec.Name) == key {
			return rec, true
		}
	}
	return engine.Record{}, false
}

// Verdict resolves a name to one row and classifies it. A missing row
// yields ErrNotFound, never a fabricated Verdict.
func (s *Sheet) Verdict(name, category, discipline string) (engine.Verdict, error) {
	rec, ok := s.Find(name, category)
	if !ok {
		return engine.Verdict{}, fmt.Errorf("%s: %w", strings.TrimSpace(name), ErrNotFound)
	}
	return engine.NormalizeVerdict(rec, discipline, s.Manifest.SourceRef), nil
}

var foldTransform = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldKey lowercases and strips accents for exact-name comparison
// (e.g. "Ligue Fédérale" and "ligue federale" collide on purpose).
func foldKey(s string) string {
	out, _, _ := transform.String(foldTransform, strings.ToLower(strings.TrimSpace(s)))
	return out
}

func cleanHeaderCell(h string) string {
	h, _, _ = strings.Cut(h, "$")
	h = strings.ReplaceAll(h, "\n", " ")
	return strings.Join(strings.Fields(h), " ")
}

func lookupCol(colIdx map[string]int, name string) int {
	if i, ok := colIdx[strings.ToLower(name)]; ok {
		return i
	}
	return -1
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func isUTF8(enc string) bool {
	e := strings.ToLower(strings.ReplaceAll(enc, "-", ""))
	return e == "utf8" || e == ""
}
