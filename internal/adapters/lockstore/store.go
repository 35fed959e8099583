// Package lockstore persists lockfiles as YAML on disk.
package lockstore

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/pin/internal/core/domain"
	"go.trai.ch/pin/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.LockStore = (*Store)(nil)

// Store implements ports.LockStore using one YAML file per lockfile.
type Store struct {
	mu sync.Mutex
}

// NewStore creates a new lockfile Store.
func NewStore() *Store {
	return &Store{}
}

// Read loads the lockfile at the given path.
func (s *Store) Read(path string) (*domain.Lockfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// #nosec G304 -- path is derived from the user's pin file path
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.WithMeta(domain.ErrLockfileMissing, "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read lockfile"), "path", path)
	}

	var lockfile domain.Lockfile
	if err := yaml.Unmarshal(data, &lockfile); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse lockfile"), "path", path)
	}

	if lockfile.Version > domain.LockfileFormatVersion {
		err := zerr.With(zerr.New("unsupported lockfile format version"), "path", path)
		return nil, zerr.With(err, "version", lockfile.Version)
	}

	return &lockfile, nil
}

// Write stores the lockfile atomically via a temp file and rename.
func (s *Store) Write(path string, lockfile *domain.Lockfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := yaml.Marshal(lockfile)
	if err != nil {
		return zerr.Wrap(err, "failed to marshal lockfile")
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".lock-*")
	if err != nil {
		return zerr.Wrap(err, "failed to write lockfile")
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // Best effort cleanup; gone after rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck,gosec // Write error takes precedence
		return zerr.Wrap(err, "failed to write lockfile")
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, "failed to write lockfile")
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.Wrap(err, "failed to write lockfile")
	}

	if err := os.Rename(tmpName, path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write lockfile"), "path", path)
	}
	return nil
}
