package domain

import "go.trai.ch/zerr"

var (
	// ErrMalformedLine is returned when a pin file line is neither blank, a
	// comment, nor a parseable pin.
	ErrMalformedLine = zerr.New("malformed pin line")

	// ErrInvalidName is returned when a package name violates the name grammar.
	ErrInvalidName = zerr.New("invalid package name")

	// ErrUnknownComparator is returned when a pin uses a comparator outside the
	// supported set.
	ErrUnknownComparator = zerr.New("unknown comparator")

	// ErrInvalidVersion is returned when a version string cannot be parsed.
	ErrInvalidVersion = zerr.New("invalid version")

	// ErrDuplicatePin is returned when a package is pinned twice with the same
	// constraint.
	ErrDuplicatePin = zerr.New("duplicate pin")

	// ErrConflictingPins is returned when a package is pinned twice with
	// different constraints.
	ErrConflictingPins = zerr.New("conflicting pins")

	// ErrPinNotFound is returned when an operation targets a package that is
	// not pinned.
	ErrPinNotFound = zerr.New("pin not found")

	// ErrPinFileReadFailed is returned when the pin file cannot be read.
	ErrPinFileReadFailed = zerr.New("failed to read pin file")

	// ErrPinFileWriteFailed is returned when the pin file cannot be written.
	ErrPinFileWriteFailed = zerr.New("failed to write pin file")

	// ErrLockfileMissing is returned when verification requires a lockfile that
	// does not exist.
	ErrLockfileMissing = zerr.New("lockfile missing")

	// ErrLockStale is returned when the lockfile fingerprint no longer matches
	// the pin file.
	ErrLockStale = zerr.New("lockfile is stale")

	// ErrUnsatisfiedPin is returned when a locked version no longer satisfies
	// its pin constraint.
	ErrUnsatisfiedPin = zerr.New("locked version does not satisfy pin")

	// ErrPackageNotFound is returned when the package index has no entry for a
	// pinned package.
	ErrPackageNotFound = zerr.New("package not found in index")

	// ErrNoSatisfyingVersion is returned when the index knows the package but
	// no published version satisfies the pin.
	ErrNoSatisfyingVersion = zerr.New("no version satisfies pin")

	// ErrCheckFailed signals that a check run produced error findings. The CLI
	// maps it to a non-zero exit without printing a report.
	ErrCheckFailed = zerr.New("check failed")

	// ErrVerifyFailed signals that a verify run produced error findings.
	ErrVerifyFailed = zerr.New("verify failed")
)

// WithMeta attaches a key-value pair to a sentinel while keeping it
// matchable with errors.Is. zerr attaches metadata by copying a *zerr.Error,
// which would detach a bare sentinel from the chain; wrapping first keeps
// the sentinel as the cause.
func WithMeta(sentinel error, key string, value any) error {
	return zerr.With(zerr.Wrap(sentinel, ""), key, value)
}
