// Package app implements the application layer for pin.
package app

import (
	"context"
	"errors"
	"io/fs"

	"go.trai.ch/pin/internal/adapters/pinfile"
	"go.trai.ch/pin/internal/core/domain"
	"go.trai.ch/pin/internal/core/ports"
	"go.trai.ch/pin/internal/engine/locker"
	"go.trai.ch/zerr"
)

// App hosts the pin file operations behind the CLI.
type App struct {
	store     *pinfile.Store
	locker    *locker.Locker
	lockStore ports.LockStore
	hasher    ports.Fingerprinter
	logger    ports.Logger
}

// New creates a new App instance.
func New(store *pinfile.Store, lock *locker.Locker, lockStore ports.LockStore, hasher ports.Fingerprinter, logger ports.Logger) *App {
	return &App{
		store:     store,
		locker:    lock,
		lockStore: lockStore,
		hasher:    hasher,
		logger:    logger,
	}
}

// Check lints the pin file and returns its findings. Malformed lines become
// findings rather than a parse failure, so one bad line never hides the rest
// of the report.
func (a *App) Check(path string) ([]domain.Finding, error) {
	doc, findings, err := a.store.Scan(path)
	if err != nil {
		return nil, zerr.Wrap(err, "check failed to read pin file")
	}

	return append(findings, domain.CheckDocument(doc)...), nil
}

// List returns the pins of the file in source order.
func (a *App) List(path string) ([]domain.Pin, error) {
	doc, err := a.store.Load(path)
	if err != nil {
		return nil, err
	}
	return doc.Pins(), nil
}

// Add pins a package from a single pin line, e.g. "pytest>=6.0".
// When the package is already pinned under a different constraint, force
// replaces it in place; without force the conflict is an error.
func (a *App) Add(path, spec string, force bool) error {
	pin, err := pinfile.ParsePin(spec, 0)
	if err != nil {
		return err
	}

	doc, err := a.store.Load(path)
	if err != nil {
		// A missing pin file is not an error for add: the first pin
		// creates it.
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		doc = domain.NewDocument()
	}

	if err := doc.Add(pin); err != nil {
		if !force || !errors.Is(err, domain.ErrConflictingPins) {
			return err
		}
		if err := doc.Replace(pin); err != nil {
			return err
		}
		a.logger.Info("replaced pin " + pin.Name)
	}

	return a.store.Save(path, doc)
}

// Remove deletes the pin for the given package name, leaving surrounding
// comments and blank lines in place.
func (a *App) Remove(path, name string) error {
	doc, err := a.store.Load(path)
	if err != nil {
		return err
	}
	if err := doc.Remove(name); err != nil {
		return zerr.With(err, "path", path)
	}
	return a.store.Save(path, doc)
}

// Format canonicalizes pin line spacing and returns how many lines changed.
// When apply is false the file is left untouched, so callers can use the
// count as a diff check.
func (a *App) Format(path string, apply bool) (int, error) {
	doc, err := a.store.Load(path)
	if err != nil {
		return 0, err
	}

	changed := doc.Format()
	if changed == 0 || !apply {
		return changed, nil
	}
	return changed, a.store.Save(path, doc)
}

// Lock resolves every pin against the package index and writes the lockfile
// to output, or to the pin file's lock path when output is empty.
func (a *App) Lock(ctx context.Context, path, output string, parallelism int) error {
	doc, err := a.store.Load(path)
	if err != nil {
		return err
	}

	lockfile, err := a.locker.Lock(ctx, doc, parallelism)
	if err != nil {
		return err
	}

	if output == "" {
		output = domain.LockPath(path)
	}
	if err := a.lockStore.Write(output, lockfile); err != nil {
		return err
	}

	a.logger.Info("wrote lockfile " + output)
	return nil
}

// Verify checks the lockfile against the current pin file and returns the
// findings. A fingerprint mismatch, a pin without a lock entry, and a locked
// version outside its constraint are errors; a lock entry without a pin is
// only a warning, since it cannot break an order-sensitive consumer.
func (a *App) Verify(path string) ([]domain.Finding, error) {
	doc, err := a.store.Load(path)
	if err != nil {
		return nil, err
	}

	lockfile, err := a.lockStore.Read(domain.LockPath(path))
	if err != nil {
		return nil, err
	}

	pins := doc.Pins()
	var findings []domain.Finding

	if fp := a.hasher.Fingerprint(pins); fp != lockfile.Fingerprint {
		findings = append(findings, domain.Finding{
			Severity: domain.SeverityError,
			Message:  domain.ErrLockStale.Error() + ": pin file changed since the lockfile was written",
		})
	}

	pinned := make(map[string]struct{}, len(pins))
	for _, pin := range pins {
		pinned[pin.Name] = struct{}{}

		locked, ok := lockfile.Find(pin.Name)
		if !ok {
			findings = append(findings, domain.Finding{
				Severity: domain.SeverityError,
				Line:     pin.Line,
				Message:  "pin " + pin.Name + " has no lockfile entry",
			})
			continue
		}

		ok, err := pin.Satisfies(locked.Resolved)
		if err != nil {
			return nil, zerr.With(err, "locked", locked.Resolved)
		}
		if !ok {
			findings = append(findings, domain.Finding{
				Severity: domain.SeverityError,
				Line:     pin.Line,
				Message:  domain.ErrUnsatisfiedPin.Error() + ": " + pin.Name + " locked at " + locked.Resolved + ", pinned " + pin.Constraint(),
			})
		}
	}

	for _, locked := range lockfile.Packages {
		if _, ok := pinned[locked.Name]; !ok {
			findings = append(findings, domain.Finding{
				Severity: domain.SeverityWarning,
				Message:  "lockfile entry " + locked.Name + " has no pin",
			})
		}
	}

	return findings, nil
}
