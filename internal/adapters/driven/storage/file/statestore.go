package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/custodia-labs/rosetta-mirror/internal/core/domain"
	"github.com/custodia-labs/rosetta-mirror/internal/core/ports/driven"
)

const (
	tallyFile     = "tasks"
	timestampFile = "revision_timestamp"
)

// Ensure StateStore implements the interface.
var _ driven.StateStore = (*StateStore)(nil)

// StateStore persists state as JSON files beneath a directory.
type StateStore struct {
	dir string
}

// NewStateStore creates a store rooted at dir. The directory is created
// on first write.
func NewStateStore(dir string) *StateStore {
	return &StateStore{dir: dir}
}

// Dir returns the state directory.
func (s *StateStore) Dir() string {
	return s.dir
}

// Tally loads the tally of a category.
func (s *StateStore) Tally(_ context.Context, category string) (*domain.Tally, error) {
	var tally domain.Tally
	if err := s.read(filepath.Join(category, tallyFile), &tally); err != nil {
		return nil, fmt.Errorf("load tally %s: %w", category, err)
	}
	return &tally, nil
}

// SaveTally replaces the tally of a category.
func (s *StateStore) SaveTally(_ context.Context, category string, tally *domain.Tally) error {
	if err := s.write(filepath.Join(category, tallyFile), tally); err != nil {
		return fmt.Errorf("save tally %s: %w", category, err)
	}
	return nil
}

// Timestamp loads the last processed timestamp.
func (s *StateStore) Timestamp(_ context.Context) (string, error) {
	var ts string
	if err := s.read(timestampFile, &ts); err != nil {
		return "", fmt.Errorf("load timestamp: %w", err)
	}
	return ts, nil
}

// SaveTimestamp replaces the last processed timestamp.
func (s *StateStore) SaveTimestamp(_ context.Context, timestamp string) error {
	if err := s.write(timestampFile, timestamp); err != nil {
		return fmt.Errorf("save timestamp: %w", err)
	}
	return nil
}

// Close is a no-op.
func (s *StateStore) Close() error {
	return nil
}

func (s *StateStore) read(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrFilesystem, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: decode %s: %w", domain.ErrFilesystem, name, err)
	}
	return nil
}

func (s *StateStore) write(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrFilesystem, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrFilesystem, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %w", domain.ErrFilesystem, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrFilesystem, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrFilesystem, err)
	}
	return nil
}
