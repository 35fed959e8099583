// Package locker implements concurrent pin resolution into a lockfile.
package locker

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"go.trai.ch/pin/internal/core/domain"
	"go.trai.ch/pin/internal/core/ports"
	"go.trai.ch/zerr"
)

// PinStatus represents the resolution status of a pin.
type PinStatus string

const (
	// StatusPending indicates the pin is waiting to be resolved.
	StatusPending PinStatus = "Pending"
	// StatusResolving indicates the pin is being resolved against the index.
	StatusResolving PinStatus = "Resolving"
	// StatusResolved indicates the pin resolved successfully.
	StatusResolved PinStatus = "Resolved"
	// StatusFailed indicates resolution failed.
	StatusFailed PinStatus = "Failed"
)

// Locker resolves every pin of a document against the package index and
// assembles a lockfile.
type Locker struct {
	resolver  ports.VersionResolver
	hasher    ports.Fingerprinter
	telemetry ports.Telemetry

	mu     sync.RWMutex
	status map[string]PinStatus
}

// NewLocker creates a new Locker.
func NewLocker(resolver ports.VersionResolver, hasher ports.Fingerprinter, telemetry ports.Telemetry) *Locker {
	return &Locker{
		resolver:  resolver,
		hasher:    hasher,
		telemetry: telemetry,
		status:    make(map[string]PinStatus),
	}
}

// Lock resolves the document's pins with the given parallelism and returns
// the lockfile. Lockfile entries keep pin file order regardless of which
// resolution finishes first; identical duplicate pins collapse into one
// entry. A parallelism below 1 means one worker per CPU.
func (l *Locker) Lock(ctx context.Context, doc *domain.Document, parallelism int) (*domain.Lockfile, error) {
	pins := doc.Pins()
	unique := dedupe(pins)
	l.initStatuses(unique)

	if parallelism < 1 {
		parallelism = runtime.NumCPU()
	}

	results := make([]domain.LockedPin, len(unique))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i, pin := range unique {
		g.Go(func() error {
			l.setStatus(pin.Name, StatusResolving)
			_, vertex := l.telemetry.Record(gctx, pin.String())

			resolved, err := l.resolvePin(gctx, pin, vertex)
			vertex.Complete(err)
			if err != nil {
				l.setStatus(pin.Name, StatusFailed)
				return err
			}

			l.setStatus(pin.Name, StatusResolved)
			results[i] = domain.LockedPin{
				Name:      pin.Name,
				Requested: pin.Constraint(),
				Resolved:  resolved,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, zerr.Wrap(err, "pin resolution failed")
	}

	return &domain.Lockfile{
		Version:     domain.LockfileFormatVersion,
		Fingerprint: l.hasher.Fingerprint(pins),
		CreatedAt:   time.Now().UTC(),
		Packages:    results,
	}, nil
}

// Status returns the resolution status of a pin by name.
func (l *Locker) Status(name string) PinStatus {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.status[name]
}

func (l *Locker) resolvePin(ctx context.Context, pin domain.Pin, vertex ports.Vertex) (string, error) {
	versions, err := l.resolver.Versions(ctx, pin.Name)
	if err != nil {
		return "", err
	}
	vertex.Log(fmt.Sprintf("index lists %d versions", len(versions)))

	resolved, err := selectVersion(pin, versions)
	if err != nil {
		return "", err
	}
	vertex.Log(fmt.Sprintf("selected %s", resolved))
	return resolved, nil
}

// selectVersion picks the highest published version satisfying the pin.
// Pre-release versions are skipped unless the pin itself names one;
// versions the grammar cannot parse are skipped, except under arbitrary
// equality where the raw string decides.
func selectVersion(pin domain.Pin, versions []string) (string, error) {
	if pin.Comparator == domain.CompArbitraryEqual {
		for _, candidate := range versions {
			if candidate == pin.Version {
				return candidate, nil
			}
		}
		return "", noSatisfyingVersion(pin, len(versions))
	}

	allowPre := false
	if pinned, err := domain.ParseVersion(pin.Version); err == nil {
		allowPre = pinned.IsPreRelease()
	}

	var bestRaw string
	var best domain.Version
	found := false
	for _, candidate := range versions {
		parsed, err := domain.ParseVersion(candidate)
		if err != nil {
			continue
		}
		if parsed.IsPreRelease() && !allowPre {
			continue
		}
		ok, err := pin.Satisfies(candidate)
		if err != nil {
			return "", err
		}
		if !ok {
			continue
		}
		if !found || parsed.Compare(best) > 0 {
			best = parsed
			bestRaw = candidate
			found = true
		}
	}
	if !found {
		return "", noSatisfyingVersion(pin, len(versions))
	}
	return bestRaw, nil
}

func noSatisfyingVersion(pin domain.Pin, available int) error {
	err := domain.WithMeta(domain.ErrNoSatisfyingVersion, "name", pin.Name)
	err = zerr.With(err, "constraint", pin.Constraint())
	return zerr.With(err, "available_versions", available)
}

// dedupe collapses identical duplicate pins, keeping first occurrences in
// order. Conflicting duplicates never reach the locker; strict parsing
// rejects them.
func dedupe(pins []domain.Pin) []domain.Pin {
	seen := make(map[string]bool, len(pins))
	out := make([]domain.Pin, 0, len(pins))
	for _, pin := range pins {
		if seen[pin.Name] {
			continue
		}
		seen[pin.Name] = true
		out = append(out, pin)
	}
	return out
}

func (l *Locker) initStatuses(pins []domain.Pin) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, pin := range pins {
		l.status[pin.Name] = StatusPending
	}
}

func (l *Locker) setStatus(name string, status PinStatus) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.status[name] = status
}
