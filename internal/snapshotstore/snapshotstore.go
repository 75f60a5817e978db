// Package snapshotstore persists a galaxy snapshot as a single JSON file.
package snapshotstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/natefinch/atomic"

	"github.com/ErikKalkoken/spacemap/internal/app"
)

// ErrPersistence is returned when a snapshot can not be read or written.
var ErrPersistence = errors.New("persistence error")

// Store loads and saves snapshots from a file.
type Store struct {
	path string
}

// New returns a new store for the file at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Exists reports whether a snapshot file exists.
func (s *Store) Exists() (bool, error) {
	_, err := os.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("snapshot %s: %w: %w", s.path, ErrPersistence, err)
	}
	return true, nil
}

// Load returns the stored snapshot.
// Returns [app.ErrNotFound] when no snapshot exists.
func (s *Store) Load() (*app.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("snapshot %s: %w", s.path, app.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w: %w", s.path, ErrPersistence, err)
	}
	var x app.Snapshot
	if err := json.Unmarshal(data, &x); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w: %w", s.path, ErrPersistence, err)
	}
	slog.Info("Loaded snapshot", "path", s.path, "systems", x.Len(), "size", humanize.Bytes(uint64(len(data))))
	return &x, nil
}

// Save writes a snapshot to file, replacing any existing snapshot.
// The file is replaced atomically, so readers see either the old or the new snapshot.
func (s *Store) Save(x *app.Snapshot) error {
	data, err := json.Marshal(x)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w: %w", ErrPersistence, err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("save snapshot %s: %w: %w", s.path, ErrPersistence, err)
	}
	if err := atomic.WriteFile(s.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("save snapshot %s: %w: %w", s.path, ErrPersistence, err)
	}
	slog.Info("Saved snapshot", "path", s.path, "systems", x.Len(), "size", humanize.Bytes(uint64(len(data))))
	return nil
}
