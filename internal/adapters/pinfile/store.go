package pinfile

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/pin/internal/core/domain"
	"go.trai.ch/pin/internal/core/ports"
	"go.trai.ch/zerr"
)

// Store loads and saves pin files on disk.
type Store struct {
	logger ports.Logger
}

// NewStore creates a new Store with the given logger.
func NewStore(logger ports.Logger) *Store {
	return &Store{logger: logger}
}

// Load reads and strictly parses the pin file at the given path.
func (s *Store) Load(path string) (*domain.Document, error) {
	data, err := s.read(path)
	if err != nil {
		return nil, err
	}

	doc, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return doc, nil
}

// Scan reads and leniently parses the pin file, returning lint findings for
// malformed lines instead of failing on them.
func (s *Store) Scan(path string) (*domain.Document, []domain.Finding, error) {
	data, err := s.read(path)
	if err != nil {
		return nil, nil, err
	}

	return Scan(bytes.NewReader(data))
}

// Save writes the document to the given path atomically: the content goes to
// a temp file in the same directory first and is renamed over the target, so
// a crash never leaves a half-written pin file behind.
func (s *Store) Save(path string, doc *domain.Document) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".pin-*")
	if err != nil {
		return zerr.Wrap(err, domain.ErrPinFileWriteFailed.Error())
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // Best effort cleanup; gone after rename

	if err := Encode(tmp, doc); err != nil {
		tmp.Close() //nolint:errcheck,gosec // Write error takes precedence
		return err
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrPinFileWriteFailed.Error())
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrPinFileWriteFailed.Error())
	}

	if err := os.Rename(tmpName, path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPinFileWriteFailed.Error()), "path", path)
	}
	return nil
}

func (s *Store) read(path string) ([]byte, error) {
	// #nosec G304 -- path comes from the CLI user
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("pin file not found: " + path)
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrPinFileReadFailed.Error()), "path", path)
	}
	return data, nil
}
