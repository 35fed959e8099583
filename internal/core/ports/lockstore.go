package ports

import "go.trai.ch/pin/internal/core/domain"

// LockStore persists lockfiles.
//
//go:generate mockgen -source=lockstore.go -destination=mocks/mock_lockstore.go -package=mocks
type LockStore interface {
	// Read loads the lockfile at the given path. It returns
	// domain.ErrLockfileMissing if no lockfile exists there.
	Read(path string) (*domain.Lockfile, error)

	// Write stores the lockfile at the given path atomically.
	Write(path string, lockfile *domain.Lockfile) error
}
