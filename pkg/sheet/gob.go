package sheet

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/gigcompliance/anj-resolver/pkg/engine"
)

// LoadGob deserializes a row snapshot from a gob-encoded file.
func LoadGob(path string) ([]engine.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gob file: %w", err)
	}
	defer f.Close()

	var records []engine.Record
	if err := gob.NewDecoder(f).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode gob: %w", err)
	}
	return records, nil
}

// SaveGob serializes a row snapshot to a gob-encoded file at path.
func SaveGob(records []engine.Record, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create gob file: %w", err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(records); err != nil {
		return fmt.Errorf("encode gob: %w", err)
	}
	return nil
}
