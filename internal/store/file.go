package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bastanley1211/fertilitytracker/internal/cycle"
)

// FileRepository persists the flat reading list as a JSON array on disk.
// No derived state is written; windows and predictions are always
// recomputed from the readings on load.
type FileRepository struct {
	path string
}

// NewFileRepository creates a repository backed by the given file path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

// Load reads the persisted reading list. A missing file is not an error
// and yields an empty list.
func (r *FileRepository) Load() ([]cycle.Reading, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}

	var readings []cycle.Reading
	if err := json.Unmarshal(data, &readings); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.path, err)
	}
	return readings, nil
}

// Save writes the reading list atomically: a temp file in the same
// directory is renamed over the target so a crash mid-write never leaves
// a truncated data file behind.
func (r *FileRepository) Save(readings []cycle.Reading) error {
	data, err := json.MarshalIndent(readings, "", "  ")
	if err != nil {
		return fmt.Errorf("encode readings: %w", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, ".readings-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", r.path, err)
	}
	return nil
}
