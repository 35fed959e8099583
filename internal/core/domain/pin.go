// Package domain contains the core domain models for pin files: pins,
// versions, documents, and lockfiles.
package domain

import (
	"regexp"

	"go.trai.ch/zerr"
)

// Comparator is the relational operator of a pin constraint.
type Comparator string

const (
	// CompEqual matches versions that compare equal to the pinned version.
	CompEqual Comparator = "=="
	// CompArbitraryEqual matches the pinned version string exactly,
	// character for character, with no version semantics.
	CompArbitraryEqual Comparator = "==="
	// CompNotEqual excludes versions that compare equal to the pinned version.
	CompNotEqual Comparator = "!="
	// CompGreaterEqual matches versions at or above the pinned version.
	CompGreaterEqual Comparator = ">="
	// CompLessEqual matches versions at or below the pinned version.
	CompLessEqual Comparator = "<="
	// CompGreater matches versions strictly above the pinned version.
	CompGreater Comparator = ">"
	// CompLess matches versions strictly below the pinned version.
	CompLess Comparator = "<"
	// CompCompatible is the compatible-release operator: at or above the
	// pinned version, and equal on all but its final release segment.
	CompCompatible Comparator = "~="
)

// comparators lists all comparators longest-first so that prefix operators
// like "==" never shadow "===" during parsing.
var comparators = []Comparator{
	CompArbitraryEqual,
	CompEqual,
	CompNotEqual,
	CompGreaterEqual,
	CompLessEqual,
	CompCompatible,
	CompGreater,
	CompLess,
}

// ParseComparator parses a comparator token.
func ParseComparator(s string) (Comparator, error) {
	for _, c := range comparators {
		if s == string(c) {
			return c, nil
		}
	}
	return "", WithMeta(ErrUnknownComparator, "comparator", s)
}

// nameRegex is the package name grammar: letters, digits, and inner
// separators (".", "_", "-"), never leading or trailing.
var nameRegex = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?$`)

// ValidateName checks a package name against the name grammar.
func ValidateName(name string) error {
	if !nameRegex.MatchString(name) {
		return WithMeta(ErrInvalidName, "name", name)
	}
	return nil
}

// Pin declares a version constraint for a named package. It is the single
// entity a pin file consists of. Line is the 1-based source line the pin was
// parsed from, or 0 for pins created programmatically.
type Pin struct {
	Name       string
	Comparator Comparator
	Version    string
	Line       int
}

// String renders the pin in canonical form, e.g. "pytest==6.0.1".
func (p Pin) String() string {
	return p.Name + string(p.Comparator) + p.Version
}

// Constraint renders the comparator and version without the name.
func (p Pin) Constraint() string {
	return string(p.Comparator) + p.Version
}

// SameConstraint reports whether the other pin carries an identical
// comparator and version, ignoring source position.
func (p Pin) SameConstraint(other Pin) bool {
	return p.Comparator == other.Comparator && p.Version == other.Version
}

// Satisfies reports whether a candidate version satisfies the pin. For the
// arbitrary-equality comparator the candidate is compared as a raw string;
// every other comparator compares parsed versions.
func (p Pin) Satisfies(candidate string) (bool, error) {
	if p.Comparator == CompArbitraryEqual {
		return candidate == p.Version, nil
	}

	pinned, err := ParseVersion(p.Version)
	if err != nil {
		return false, zerr.With(err, "pin", p.Name)
	}
	cand, err := ParseVersion(candidate)
	if err != nil {
		return false, zerr.With(err, "pin", p.Name)
	}

	cmp := cand.Compare(pinned)
	switch p.Comparator {
	case CompEqual:
		return cmp == 0, nil
	case CompNotEqual:
		return cmp != 0, nil
	case CompGreaterEqual:
		return cmp >= 0, nil
	case CompLessEqual:
		return cmp <= 0, nil
	case CompGreater:
		return cmp > 0, nil
	case CompLess:
		return cmp < 0, nil
	case CompCompatible:
		return satisfiesCompatible(pinned, cand, p)
	default:
		return false, WithMeta(ErrUnknownComparator, "comparator", string(p.Comparator))
	}
}

// satisfiesCompatible implements the compatible-release rule: the candidate
// must be at or above the pinned version and share every release segment but
// the last stated one. A single-segment version has no compatibility prefix
// to hold on to, so it is rejected as an invalid constraint.
func satisfiesCompatible(pinned, cand Version, p Pin) (bool, error) {
	if len(pinned.Release) < 2 {
		err := WithMeta(ErrInvalidVersion, "pin", p.Name)
		return false, zerr.With(err, "reason", "compatible-release requires at least two segments")
	}
	if cand.Compare(pinned) < 0 {
		return false, nil
	}
	prefix := pinned.Release[:len(pinned.Release)-1]
	if len(cand.Release) < len(prefix) {
		return false, nil
	}
	for i, seg := range prefix {
		if cand.Release[i] != seg {
			return false, nil
		}
	}
	return true, nil
}
