package lockstore_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pin/internal/adapters/lockstore"
	"go.trai.ch/pin/internal/core/domain"
)

func sampleLockfile() *domain.Lockfile {
	return &domain.Lockfile{
		Version:     domain.LockfileFormatVersion,
		Fingerprint: "8b5bb835f6e10478",
		CreatedAt:   time.Date(2026, 8, 12, 9, 30, 0, 0, time.UTC),
		Packages: []domain.LockedPin{
			{Name: "pytest", Requested: "==6.0.1", Resolved: "6.0.1"},
			{Name: "pre-commit", Requested: "~=2.7", Resolved: "2.7.1"},
		},
	}
}

func TestStore_WriteRead(t *testing.T) {
	store := lockstore.NewStore()
	path := filepath.Join(t.TempDir(), "requirements.txt.lock")

	require.NoError(t, store.Write(path, sampleLockfile()))

	got, err := store.Read(path)
	require.NoError(t, err)
	assert.Equal(t, sampleLockfile(), got)
}

func TestStore_WritePreservesOrder(t *testing.T) {
	store := lockstore.NewStore()
	path := filepath.Join(t.TempDir(), "requirements.txt.lock")

	lockfile := sampleLockfile()
	require.NoError(t, store.Write(path, lockfile))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// YAML sequence order is the pin file order; pytest was pinned first.
	pytestIdx := strings.Index(string(data), "pytest")
	precommitIdx := strings.Index(string(data), "pre-commit")
	require.GreaterOrEqual(t, pytestIdx, 0)
	require.GreaterOrEqual(t, precommitIdx, 0)
	assert.Less(t, pytestIdx, precommitIdx)
}

func TestStore_ReadMissing(t *testing.T) {
	store := lockstore.NewStore()
	_, err := store.Read(filepath.Join(t.TempDir(), "absent.lock"))
	assert.ErrorIs(t, err, domain.ErrLockfileMissing)
}

func TestStore_ReadUnsupportedVersion(t *testing.T) {
	store := lockstore.NewStore()
	path := filepath.Join(t.TempDir(), "requirements.txt.lock")
	require.NoError(t, os.WriteFile(path, []byte("version: 99\n"), 0o600))

	_, err := store.Read(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported lockfile format version")
}

func TestStore_ReadGarbage(t *testing.T) {
	store := lockstore.NewStore()
	path := filepath.Join(t.TempDir(), "requirements.txt.lock")
	require.NoError(t, os.WriteFile(path, []byte("\t{not yaml"), 0o600))

	_, err := store.Read(path)
	assert.Error(t, err)
}
