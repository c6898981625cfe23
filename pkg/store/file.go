package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/datasciencecampus/parliai-public/pkg/domain"
)

// FileStore writes each record as a JSON file under a data directory:
// <root>/data/<category>/<id>.json, with the category level omitted
// for records without one.
type FileStore struct {
	root string
}

// NewFileStore creates a file store rooted at the given directory.
func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

// Save writes the record to its JSON file, creating directories as
// needed.
func (s *FileStore) Save(ctx context.Context, rec domain.Record) error {
	meta := rec.Meta()

	where := filepath.Join(s.root, "data")
	if meta.Category != "" {
		where = filepath.Join(where, meta.Category)
	}
	if err := os.MkdirAll(where, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	payload, err := json.MarshalIndent(rec, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal record %s: %w", meta.ID, err)
	}

	path := filepath.Join(where, meta.ID+".json")
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// Close does nothing for a file store.
func (s *FileStore) Close(ctx context.Context) error {
	return nil
}
