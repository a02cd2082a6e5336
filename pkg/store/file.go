package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nbsent/sentiment-bayes/pkg/learning"
)

// FileBackend stores counts as an indented JSON document
type FileBackend struct {
	path string
}

// NewFileBackend creates a backend writing to path
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Path returns the file location
func (fb *FileBackend) Path() string {
	return fb.path
}

// Save writes counts to a temporary file and renames it into place
func (fb *FileBackend) Save(_ context.Context, counts *learning.Counts) error {
	if dir := filepath.Dir(fb.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	tmp := fb.path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create counts file: %w", err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(counts); err != nil {
		file.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to encode counts: %w", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write counts file: %w", err)
	}

	return os.Rename(tmp, fb.path)
}

// Load reads counts saved by Save
func (fb *FileBackend) Load(_ context.Context) (*learning.Counts, error) {
	file, err := os.Open(fb.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, fb.path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open counts file: %w", err)
	}
	defer file.Close()

	counts := learning.NewCounts()
	if err := json.NewDecoder(file).Decode(counts); err != nil {
		return nil, fmt.Errorf("failed to decode counts: %w", err)
	}

	return counts, nil
}

// Close implements Backend
func (fb *FileBackend) Close() error {
	return nil
}
