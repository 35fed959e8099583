package ports

import "context"

// VersionResolver answers which versions of a package are published. It is
// the read-only boundary to the external package index; installing anything
// is the installer's job, never ours.
//
//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type VersionResolver interface {
	// Versions returns every published version string for the package, in no
	// particular order. It returns domain.ErrPackageNotFound if the index has
	// no entry for the name.
	Versions(ctx context.Context, name string) ([]string, error)
}
