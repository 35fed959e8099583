package domain

import (
	"os"
	"path/filepath"
)

const (
	// DefaultPinFileName is the pin file looked up when no --file flag is given.
	DefaultPinFileName = "requirements.txt"

	// LockSuffix is appended to a pin file path to derive its lockfile path.
	LockSuffix = ".lock"

	// DirPerm is the permission mode for directories created by adapters.
	DirPerm = 0o750

	// FilePerm is the permission mode for files written by adapters.
	FilePerm = 0o644
)

// LockPath derives the lockfile path for a pin file path.
func LockPath(pinPath string) string {
	return pinPath + LockSuffix
}

// DefaultIndexCachePath returns the on-disk cache directory for package index
// responses, under the user cache dir with a fallback to a dotted directory
// in the home dir.
func DefaultIndexCachePath() string {
	if cacheDir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(cacheDir, "pin", "index")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "pin", "index")
	}
	return filepath.Join(home, ".pin", "index")
}
