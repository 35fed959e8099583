package domain

import "time"

// LockfileFormatVersion is the current lockfile schema version, allowing
// future migrations.
const LockfileFormatVersion = 1

// Lockfile is a reproducible snapshot of resolved pin versions. Entries keep
// pin file order: consumers with order-sensitive resolvers see exactly the
// order the maintainer authored.
type Lockfile struct {
	// Version is the lockfile format version.
	Version int `yaml:"version"`

	// Fingerprint is the content fingerprint of the pin list the lockfile was
	// generated from. It covers canonical pins only, so reformatting or
	// commenting the pin file does not invalidate the lock.
	Fingerprint string `yaml:"fingerprint"`

	// CreatedAt records when the lockfile was generated.
	CreatedAt time.Time `yaml:"created_at"`

	// Packages holds one entry per pin, in pin file order.
	Packages []LockedPin `yaml:"packages"`
}

// LockedPin records the resolution of a single pin.
type LockedPin struct {
	// Name is the package name.
	Name string `yaml:"name"`

	// Requested is the constraint as pinned, e.g. "==6.0.1".
	Requested string `yaml:"requested"`

	// Resolved is the concrete version the constraint resolved to.
	Resolved string `yaml:"resolved"`
}

// Find returns the locked entry for the given package name.
func (l *Lockfile) Find(name string) (LockedPin, bool) {
	for _, p := range l.Packages {
		if p.Name == name {
			return p, true
		}
	}
	return LockedPin{}, false
}
