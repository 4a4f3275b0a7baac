package categories

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/blogwire/blogwire/internal/entity"
)

// FileStore persists snapshots as JSON files under a data directory, one
// file per (host, blog id, username) key.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// ReadSnapshot loads the snapshot file for the key.
func (s *FileStore) ReadSnapshot(_ context.Context, key Key) ([]entity.Category, error) {
	contents, err := os.ReadFile(s.path(key))

	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSnapshot
		}

		return nil, fmt.Errorf("could not read categories snapshot: %w", err)
	}

	var list []entity.Category

	if err = json.Unmarshal(contents, &list); err != nil {
		return nil, fmt.Errorf("could not parse categories snapshot: %w", err)
	}

	return list, nil
}

// WriteSnapshot saves the snapshot file for the key, creating the data
// directory if needed.
func (s *FileStore) WriteSnapshot(_ context.Context, key Key, list []entity.Category) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("could not create snapshot directory: %w", err)
	}

	contents, err := json.Marshal(list)

	if err != nil {
		return fmt.Errorf("could not marshal categories snapshot: %w", err)
	}

	if err := os.WriteFile(s.path(key), contents, 0o644); err != nil {
		return fmt.Errorf("could not write categories snapshot: %w", err)
	}

	return nil
}

func (s *FileStore) path(key Key) string {
	return filepath.Join(s.dir, key.String()+".json")
}
