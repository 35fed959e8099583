package domain

import (
	"regexp"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// Version is a parsed package version: a dotted numeric release with an
// optional pre-release suffix (a, b, or rc followed by a number), e.g.
// "6.0.1" or "0.9.0rc2". Epochs and local version labels are rejected; they
// never appear in the pin files this tool manages.
type Version struct {
	Release []int
	Pre     *PreRelease
}

// PreRelease identifies a pre-release stage within a version.
type PreRelease struct {
	Phase  string // "a", "b", or "rc"
	Number int
}

var versionRegex = regexp.MustCompile(`^(\d+(?:\.\d+)*)(?:(a|b|rc)(\d+))?$`)

// prePhaseRank orders pre-release phases: alpha < beta < release candidate.
var prePhaseRank = map[string]int{"a": 0, "b": 1, "rc": 2}

// ParseVersion parses a version string.
func ParseVersion(s string) (Version, error) {
	m := versionRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Version{}, WithMeta(ErrInvalidVersion, "version", s)
	}

	segments := strings.Split(m[1], ".")
	release := make([]int, len(segments))
	for i, seg := range segments {
		n, err := strconv.Atoi(seg)
		if err != nil {
			return Version{}, zerr.With(zerr.Wrap(ErrInvalidVersion, err.Error()), "version", s)
		}
		release[i] = n
	}

	v := Version{Release: release}
	if m[2] != "" {
		n, err := strconv.Atoi(m[3])
		if err != nil {
			return Version{}, zerr.With(zerr.Wrap(ErrInvalidVersion, err.Error()), "version", s)
		}
		v.Pre = &PreRelease{Phase: m[2], Number: n}
	}
	return v, nil
}

// IsPreRelease reports whether the version carries a pre-release suffix.
func (v Version) IsPreRelease() bool {
	return v.Pre != nil
}

// String renders the version in canonical form.
func (v Version) String() string {
	var b strings.Builder
	for i, seg := range v.Release {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.Itoa(seg))
	}
	if v.Pre != nil {
		b.WriteString(v.Pre.Phase)
		b.WriteString(strconv.Itoa(v.Pre.Number))
	}
	return b.String()
}

// Compare returns -1, 0, or 1 respectively when v is lower than, equal to, or
// higher than other. Release segments are compared numerically with missing
// trailing segments treated as zero, so 1.0 and 1.0.0 compare equal. A
// pre-release sorts before its corresponding final release.
func (v Version) Compare(other Version) int {
	n := max(len(v.Release), len(other.Release))
	for i := range n {
		a, b := 0, 0
		if i < len(v.Release) {
			a = v.Release[i]
		}
		if i < len(other.Release) {
			b = other.Release[i]
		}
		if a != b {
			if a < b {
				return -1
			}
			return 1
		}
	}

	switch {
	case v.Pre == nil && other.Pre == nil:
		return 0
	case v.Pre == nil:
		return 1
	case other.Pre == nil:
		return -1
	}

	if r := prePhaseRank[v.Pre.Phase] - prePhaseRank[other.Pre.Phase]; r != 0 {
		if r < 0 {
			return -1
		}
		return 1
	}
	switch {
	case v.Pre.Number < other.Pre.Number:
		return -1
	case v.Pre.Number > other.Pre.Number:
		return 1
	}
	return 0
}
