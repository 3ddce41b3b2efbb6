package sheet

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func setupRegistry(t *testing.T) (*Registry, string) {
	t.Helper()
	dir := t.TempDir()

	football := filepath.Join(dir, "football")
	os.MkdirAll(football, 0o755)
	os.WriteFile(filepath.Join(football, "manifest.yaml"), []byte(`sport: Football
version: "2026-01"
format:
  delimiter: ";"
keywords:
  - from: world cup
    to: coupe du monde
`), 0o644)
	os.WriteFile(filepath.Join(football, "data.csv"), []byte(footballCSV), 0o644)

	snooker := filepath.Join(dir, "snooker")
	os.MkdirAll(snooker, 0o755)
	os.WriteFile(filepath.Join(snooker, "manifest.yaml"), []byte(`sport: Snooker
version: "2026-01"
format:
  delimiter: ";"
`), 0o644)
	os.WriteFile(filepath.Join(snooker, "data.csv"), []byte(
		"Nom commun;Pays;Restrictions;Phases\nMasters;International;;\nChampionnat du Monde;International;;Demi-finales et finale\n"), 0o644)

	// A stray file and a directory without a manifest are both ignored.
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644)
	os.MkdirAll(filepath.Join(dir, "empty"), 0o755)

	reg := NewRegistry(dir)
	if err := reg.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return reg, dir
}

func TestRegistryLoad(t *testing.T) {
	reg, _ := setupRegistry(t)

	if reg.SheetCount() != 2 {
		t.Errorf("sheets = %d, want 2", reg.SheetCount())
	}
	if reg.TotalRecords() != 7 {
		t.Errorf("records = %d, want 7", reg.TotalRecords())
	}

	infos := reg.ListSheets()
	if len(infos) != 2 || infos[0].Sport != "Football" || infos[1].Sport != "Snooker" {
		t.Errorf("ListSheets = %+v", infos)
	}
	if infos[0].Authority != "ANJ" {
		t.Errorf("authority default = %q", infos[0].Authority)
	}
}

func TestRegistryResolve(t *testing.T) {
	reg, _ := setupRegistry(t)

	// Sport keys are case-insensitive.
	matches, err := reg.Resolve("FOOTBALL", "World Cup", 0)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(matches) != 1 || matches[0].Name != "Coupe du Monde" {
		t.Errorf("matches = %v", matches)
	}

	if _, err := reg.Resolve("curling", "anything", 0); err == nil {
		t.Error("expected error for unknown sport")
	}
}

func TestRegistryVerdict(t *testing.T) {
	reg, _ := setupRegistry(t)

	v, err := reg.Verdict("snooker", "Masters", "", "")
	if err != nil {
		t.Fatalf("Verdict: %v", err)
	}
	if !v.Allowed || v.Restriction != "NONE" || v.Phases != "ALL" {
		t.Errorf("verdict = %+v", v)
	}
	// No Genre column: category falls back to the documented default.
	if v.Category != "N/A" {
		t.Errorf("category = %q, want N/A", v.Category)
	}

	_, err = reg.Verdict("snooker", "Crucible Invitational", "", "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestRegistryReload(t *testing.T) {
	reg, dir := setupRegistry(t)

	badminton := filepath.Join(dir, "badminton")
	os.MkdirAll(badminton, 0o755)
	os.WriteFile(filepath.Join(badminton, "manifest.yaml"), []byte(`sport: Badminton
has_discipline: true
format:
  delimiter: ";"
`), 0o644)
	os.WriteFile(filepath.Join(badminton, "data.csv"), []byte(
		"Nom commun;Genre;Discipline;Pays\nUber Cup;Femme;Double;International\n"), 0o644)

	if err := reg.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if reg.SheetCount() != 3 {
		t.Errorf("sheets = %d, want 3 after reload", reg.SheetCount())
	}
	s, ok := reg.Sheet("Badminton")
	if !ok || !s.Manifest.HasDiscipline {
		t.Errorf("badminton sheet = %+v, %v", s, ok)
	}
}
