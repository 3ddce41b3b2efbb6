package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gigcompliance/anj-resolver/pkg/sheet"
)

// anjURL is the published ANJ list of authorised competitions.
const anjURL = "https://docs.google.com/spreadsheets/d/1vN4_qEFr7b3XmC1v88j4U6v2-M5hS3p6/edit#gid=0"

// anjAdapter imports one tab of the ANJ spreadsheet. The per-sport
// adapters only differ in their tab name, keyword map, and whether the tab
// carries a discipline column.
type anjAdapter struct {
	id            string
	sport         string
	tab           string
	description   string
	hasDiscipline bool
	keywords      []sheet.Keyword
}

func (a *anjAdapter) ID() string          { return a.id }
func (a *anjAdapter) Sport() string       { return a.sport }
func (a *anjAdapter) Description() string { return a.description }
func (a *anjAdapter) DefaultURL() string  { return anjURL }

func (a *anjAdapter) Import(ctx context.Context, sourceURL, outputDir string) error {
	dlDir := filepath.Join(outputDir, "_download")
	if err := ensureDir(dlDir); err != nil {
		return err
	}
	defer os.RemoveAll(dlDir)

	csvURL, err := ExportCSVURL(sourceURL, a.tab)
	if err != nil {
		return err
	}

	csvPath := filepath.Join(dlDir, "tab.csv")
	fmt.Printf("  telechargement %s...\n", csvURL)
	if err := downloadFile(ctx, csvURL, csvPath); err != nil {
		return fmt.Errorf("download: %w", err)
	}

	manifest := &sheet.Manifest{
		Sport:         a.sport,
		Version:       time.Now().Format("2006-01"),
		Authority:     "ANJ",
		SourceRef:     "ANJ List - " + a.tab,
		SourceURL:     sourceURL,
		DataFile:      "data.gob",
		HasDiscipline: a.hasDiscipline,
		Keywords:      a.keywords,
		// The gviz export is comma-delimited UTF-8 with every cell quoted.
		Format: sheet.FormatSpec{Delimiter: ","},
	}

	f, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("open download: %w", err)
	}
	records, err := sheet.ParseCSV(f, manifest)
	f.Close()
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("tab %q produced no rows", a.tab)
	}
	fmt.Printf("  %d competitions\n", len(records))

	sheetDir := filepath.Join(outputDir, strings.ToLower(a.sport))
	if err := ensureDir(sheetDir); err != nil {
		return err
	}
	if err := sheet.SaveGob(records, filepath.Join(sheetDir, "data.gob")); err != nil {
		return fmt.Errorf("save gob: %w", err)
	}
	return writeManifest(sheetDir, manifest)
}
