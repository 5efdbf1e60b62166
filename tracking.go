package clmfolio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// readTracking loads the scan tracking file; a missing file starts empty.
func readTracking(path string) (*tracking, error) {
	t := &tracking{ProcessedFiles: map[string]fileRecord{}}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return t, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read tracking %q: %w", path, err)
	}
	if err := json.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("cannot decode tracking %q: %w", path, err)
	}
	if t.ProcessedFiles == nil {
		t.ProcessedFiles = map[string]fileRecord{}
	}
	return t, nil
}

func writeTracking(path string, t *tracking) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("cannot create directory for %q: %w", path, err)
	}
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot encode tracking: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("cannot write tracking %q: %w", path, err)
	}
	return nil
}
