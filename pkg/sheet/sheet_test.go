package sheet

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gigcompliance/anj-resolver/pkg/engine"
)

const footballCSV = `"Liste des compétitions autorisées";;;;
"Publication test";;;;
Nom commun;Genre;Pays;Restrictions;Phases
Coupe de France;Homme;France;Aucune;
Coupe du Monde;Homme;International;Aucune;A partir des 32èmes de finale
Jeux Olympiques;Homme;;Aucune;Toutes
Jeux Olympiques;Femme;;Aucune;Toutes
Matchs amicaux internationaux;Homme;International;Classement FIFA **;
`

// writeTestSheet writes a manifest + CSV in a temp directory and returns
// the sheet directory.
func writeTestSheet(t *testing.T, sport, manifestExtra, csvContent string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), strings.ToLower(sport))
	os.MkdirAll(dir, 0o755)

	manifest := `sport: ` + sport + `
version: "2026-01"
source_ref: ANJ List - ` + sport + `
format:
  delimiter: ";"
` + manifestExtra
	os.WriteFile(filepath.Join(dir, "manifest.yaml"), []byte(manifest), 0o644)
	os.WriteFile(filepath.Join(dir, "data.csv"), []byte(csvContent), 0o644)
	return dir
}

func TestLoadSheetHeaderDetection(t *testing.T) {
	dir := writeTestSheet(t, "Football", "", footballCSV)

	s, err := LoadSheet(dir)
	if err != nil {
		t.Fatalf("LoadSheet: %v", err)
	}
	if s.Manifest.Sport != "Football" {
		t.Errorf("sport = %q", s.Manifest.Sport)
	}
	// Two title rows above the header are skipped.
	if len(s.Records) != 5 {
		t.Fatalf("records = %d, want 5", len(s.Records))
	}
	first := s.Records[0]
	if first.Name != "Coupe de France" || first.Category != "Homme" || first.Country != "France" {
		t.Errorf("first record = %+v", first)
	}
	if first.Restriction != "Aucune" || first.Phases != "" {
		t.Errorf("first record regulatory fields = %q / %q", first.Restriction, first.Phases)
	}
}

func TestParseCSVHeaderEcho(t *testing.T) {
	csvContent := `Nom commun;Genre;Pays;Restrictions;Phases
Nom commun;Genre;Pays;Restrictions;Phases
Coupe de France;Homme;France;;
;;;
`
	m := &Manifest{Sport: "Football", Format: FormatSpec{Delimiter: ";"}}
	m.applyDefaults()

	records, err := ParseCSV(strings.NewReader(csvContent), m)
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("records = %d, want 1 (header echo and empty rows dropped)", len(records))
	}
}

func TestParseCSVMissingNameColumn(t *testing.T) {
	m := &Manifest{Sport: "Football", Format: FormatSpec{Delimiter: ";"}}
	m.applyDefaults()

	_, err := ParseCSV(strings.NewReader("a;b;c\n1;2;3\n"), m)
	if err == nil {
		t.Error("expected error for missing name column")
	}
}

func TestParseCSVDollarHeaderCleanup(t *testing.T) {
	csvContent := "Nom commun$1;Genre$2;Pays\nCoupe de France;Homme;France\n"
	m := &Manifest{Sport: "Football", Format: FormatSpec{Delimiter: ";"}}
	m.applyDefaults()

	records, err := ParseCSV(strings.NewReader(csvContent), m)
	if err != nil {
		t.Fatalf("ParseCSV: %v", err)
	}
	if len(records) != 1 || records[0].Category != "Homme" {
		t.Errorf("records = %+v", records)
	}
}

func TestSheetResolveKeywords(t *testing.T) {
	dir := writeTestSheet(t, "Football", `keywords:
  - from: world cup
    to: coupe du monde
  - from: olympic games
    to: jeux olympiques
`, footballCSV)

	s, err := LoadSheet(dir)
	if err != nil {
		t.Fatalf("LoadSheet: %v", err)
	}

	matches := s.Resolve("World Cup", 0)
	if len(matches) != 1 || matches[0].Name != "Coupe du Monde" {
		t.Errorf("matches = %v, want Coupe du Monde", matches)
	}

	// Ambiguous outcome: one row per category surfaces for disambiguation.
	matches = s.Resolve("Olympic Games", 0)
	if len(matches) != 2 {
		t.Errorf("matches = %v, want 2 Jeux Olympiques rows", matches)
	}
}

func TestSheetFind(t *testing.T) {
	dir := writeTestSheet(t, "Football", "", footballCSV)
	s, err := LoadSheet(dir)
	if err != nil {
		t.Fatalf("LoadSheet: %v", err)
	}

	// Accent-insensitive exact lookup.
	rec, ok := s.Find("jeux olympiques", "Femme")
	if !ok || rec.Category != "Femme" {
		t.Errorf("Find = %+v, %v", rec, ok)
	}

	// Unknown category falls back to name-only.
	rec, ok = s.Find("Jeux Olympiques", "Mixte")
	if !ok || rec.Category != "Homme" {
		t.Errorf("fallback Find = %+v, %v", rec, ok)
	}

	if _, ok := s.Find("Quidditch Premier League", ""); ok {
		t.Error("Find matched an absent name")
	}
}

func TestSheetVerdict(t *testing.T) {
	dir := writeTestSheet(t, "Football", "", footballCSV)
	s, err := LoadSheet(dir)
	if err != nil {
		t.Fatalf("LoadSheet: %v", err)
	}

	v, err := s.Verdict("Coupe du Monde", "", "")
	if err != nil {
		t.Fatalf("Verdict: %v", err)
	}
	if !v.Allowed {
		t.Error("allowed = false")
	}
	if v.Restriction != engine.RestrictionLimitedPhases {
		t.Errorf("restriction = %q, want LIMITED_PHASES", v.Restriction)
	}
	if v.Phases != "A partir des 32èmes de finale" {
		t.Errorf("phases = %q", v.Phases)
	}
	if v.Source != "ANJ List - Football" {
		t.Errorf("source = %q", v.Source)
	}

	v, err = s.Verdict("Matchs amicaux internationaux", "", "")
	if err != nil {
		t.Fatalf("Verdict: %v", err)
	}
	if v.Restriction != engine.FIFARankingMarker || v.Phases != engine.FIFARankingPhases {
		t.Errorf("FIFA carve-out not applied: %+v", v)
	}

	_, err = s.Verdict("Quidditch Premier League", "", "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestLoadSheetGobPriority(t *testing.T) {
	dir := writeTestSheet(t, "Golf", "", footballCSV)

	records := []engine.Record{{Name: "Ryder Cup", Category: "Homme", Country: "International"}}
	if err := SaveGob(records, filepath.Join(dir, "data.gob")); err != nil {
		t.Fatalf("SaveGob: %v", err)
	}

	s, err := LoadSheet(dir)
	if err != nil {
		t.Fatalf("LoadSheet: %v", err)
	}
	if len(s.Records) != 1 || s.Records[0].Name != "Ryder Cup" {
		t.Errorf("records = %+v, want the gob snapshot", s.Records)
	}
}

func TestFoldKey(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"Jeux Olympiques", "jeux olympiques"},
		{"Ligue Fédérale", "ligue federale"},
		{"  COUPE DE FRANCE ", "coupe de france"},
	}
	for _, tt := range tests {
		if got := foldKey(tt.input); got != tt.want {
			t.Errorf("foldKey(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
