package ports

import "go.trai.ch/pin/internal/core/domain"

// Fingerprinter computes the content fingerprint binding a lockfile to the
// pin list it was generated from.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Fingerprinter interface {
	// Fingerprint computes a stable fingerprint over the canonical pins in
	// order. Comments, blank lines, and formatting do not contribute.
	Fingerprint(pins []domain.Pin) string
}
