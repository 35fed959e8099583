// Package fingerprint computes content fingerprints over pin lists.
package fingerprint

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/pin/internal/core/domain"
	"go.trai.ch/pin/internal/core/ports"
)

var _ ports.Fingerprinter = (*Hasher)(nil)

// Hasher implements ports.Fingerprinter using XXHash.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Fingerprint hashes the canonical pins in order: name, comparator, and
// version per pin, NUL-separated so that field boundaries cannot collide.
// Layout, comments, and source line numbers do not contribute, so
// reformatting a pin file never invalidates its lockfile.
func (h *Hasher) Fingerprint(pins []domain.Pin) string {
	hasher := xxhash.New()

	for _, pin := range pins {
		_, _ = hasher.WriteString(pin.Name)
		_, _ = hasher.Write([]byte{0})
		_, _ = hasher.WriteString(string(pin.Comparator))
		_, _ = hasher.Write([]byte{0})
		_, _ = hasher.WriteString(pin.Version)
		_, _ = hasher.Write([]byte{0})
	}

	return fmt.Sprintf("%016x", hasher.Sum64())
}
