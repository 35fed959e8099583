package app_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pin/internal/adapters/pinfile"
	"go.trai.ch/pin/internal/app"
	"go.trai.ch/pin/internal/core/domain"
	"go.trai.ch/pin/internal/core/ports/mocks"
	"go.trai.ch/pin/internal/engine/locker"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	app       *app.App
	resolver  *mocks.MockVersionResolver
	lockStore *mocks.MockLockStore
	hasher    *mocks.MockFingerprinter
	dir       string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()

	telemetry := mocks.NewMockTelemetry(ctrl)
	telemetry.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, *mocks.MockVertex) {
			vertex := mocks.NewMockVertex(ctrl)
			vertex.EXPECT().Log(gomock.Any()).AnyTimes()
			vertex.EXPECT().Complete(gomock.Any()).AnyTimes()
			return ctx, vertex
		}).AnyTimes()

	f := &fixture{
		resolver:  mocks.NewMockVersionResolver(ctrl),
		lockStore: mocks.NewMockLockStore(ctrl),
		hasher:    mocks.NewMockFingerprinter(ctrl),
		dir:       t.TempDir(),
	}

	store := pinfile.NewStore(logger)
	lock := locker.NewLocker(f.resolver, f.hasher, telemetry)
	f.app = app.New(store, lock, f.lockStore, f.hasher, logger)
	return f
}

func (f *fixture) path() string {
	return filepath.Join(f.dir, domain.DefaultPinFileName)
}

func (f *fixture) write(t *testing.T, content string) string {
	t.Helper()
	path := f.path()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (f *fixture) read(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(f.path())
	require.NoError(t, err)
	return string(data)
}

func TestApp_Add_CreatesFile(t *testing.T) {
	f := newFixture(t)

	err := f.app.Add(f.path(), "pytest==6.0.1", false)
	require.NoError(t, err)

	assert.Equal(t, "pytest==6.0.1\n", f.read(t))
}

func TestApp_Add_Conflict(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, "pytest==6.0.1\n")

	err := f.app.Add(path, "pytest>=6.1", false)
	require.ErrorIs(t, err, domain.ErrConflictingPins)

	// force replaces in place
	err = f.app.Add(path, "pytest>=6.1", true)
	require.NoError(t, err)
	assert.Equal(t, "pytest>=6.1\n", f.read(t))
}

func TestApp_Add_ForceCollapsesDuplicateLines(t *testing.T) {
	f := newFixture(t)
	// Identical duplicates are legal in the file; force must not leave a
	// conflicting leftover behind.
	path := f.write(t, "pytest==6.0.1\nmypy==0.782\npytest==6.0.1\n")

	err := f.app.Add(path, "pytest>=6.1", true)
	require.NoError(t, err)
	assert.Equal(t, "pytest>=6.1\nmypy==0.782\n", f.read(t))

	// The rewritten file still parses strictly.
	pins, err := f.app.List(path)
	require.NoError(t, err)
	require.Len(t, pins, 2)
}

func TestApp_Add_DuplicateNotForceable(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, "pytest==6.0.1\n")

	err := f.app.Add(path, "pytest==6.0.1", true)
	assert.ErrorIs(t, err, domain.ErrDuplicatePin)
}

func TestApp_Remove(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, "# test stack\npytest==6.0.1\nmypy==0.782\n")

	require.NoError(t, f.app.Remove(path, "pytest"))
	assert.Equal(t, "# test stack\nmypy==0.782\n", f.read(t))

	err := f.app.Remove(path, "pytest")
	assert.ErrorIs(t, err, domain.ErrPinNotFound)
}

func TestApp_Format(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, "pytest == 6.0.1\nmypy==0.782\n")

	// check mode reports but does not touch the file
	changed, err := f.app.Format(path, false)
	require.NoError(t, err)
	assert.Equal(t, 1, changed)
	assert.Equal(t, "pytest == 6.0.1\nmypy==0.782\n", f.read(t))

	changed, err = f.app.Format(path, true)
	require.NoError(t, err)
	assert.Equal(t, 1, changed)
	assert.Equal(t, "pytest==6.0.1\nmypy==0.782\n", f.read(t))
}

func TestApp_Check(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, "pytest==6.0.1\npytest>=6.1\nnot a pin\n")

	findings, err := f.app.Check(path)
	require.NoError(t, err)
	assert.True(t, domain.HasErrors(findings))
	assert.Len(t, findings, 2)
}

func TestApp_List(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, "# comment\npytest==6.0.1\n\nmypy==0.782\n")

	pins, err := f.app.List(path)
	require.NoError(t, err)
	require.Len(t, pins, 2)
	assert.Equal(t, "pytest", pins[0].Name)
	assert.Equal(t, 2, pins[0].Line)
	assert.Equal(t, "mypy", pins[1].Name)
	assert.Equal(t, 4, pins[1].Line)
}

func TestApp_Lock(t *testing.T) {
	f := newFixture(t)
	path := f.write(t, "pytest>=6.0\n")

	f.resolver.EXPECT().Versions(gomock.Any(), "pytest").Return([]string{"6.0.1", "5.4.3"}, nil)
	f.hasher.EXPECT().Fingerprint(gomock.Any()).Return("deadbeefdeadbeef")

	var written *domain.Lockfile
	f.lockStore.EXPECT().Write(domain.LockPath(path), gomock.Any()).DoAndReturn(
		func(_ string, lockfile *domain.Lockfile) error {
			written = lockfile
			return nil
		})

	require.NoError(t, f.app.Lock(context.Background(), path, "", 1))
	require.NotNil(t, written)
	require.Len(t, written.Packages, 1)
	assert.Equal(t, "6.0.1", written.Packages[0].Resolved)
}

func TestApp_Verify(t *testing.T) {
	lockfile := func(fingerprint string, packages ...domain.LockedPin) *domain.Lockfile {
		return &domain.Lockfile{
			Version:     domain.LockfileFormatVersion,
			Fingerprint: fingerprint,
			Packages:    packages,
		}
	}

	t.Run("clean", func(t *testing.T) {
		f := newFixture(t)
		path := f.write(t, "pytest>=6.0\n")

		f.hasher.EXPECT().Fingerprint(gomock.Any()).Return("fp")
		f.lockStore.EXPECT().Read(domain.LockPath(path)).Return(
			lockfile("fp", domain.LockedPin{Name: "pytest", Requested: ">=6.0", Resolved: "6.0.1"}), nil)

		findings, err := f.app.Verify(path)
		require.NoError(t, err)
		assert.Empty(t, findings)
	})

	t.Run("stale fingerprint", func(t *testing.T) {
		f := newFixture(t)
		path := f.write(t, "pytest>=6.0\n")

		f.hasher.EXPECT().Fingerprint(gomock.Any()).Return("fp-new")
		f.lockStore.EXPECT().Read(domain.LockPath(path)).Return(
			lockfile("fp-old", domain.LockedPin{Name: "pytest", Requested: ">=6.0", Resolved: "6.0.1"}), nil)

		findings, err := f.app.Verify(path)
		require.NoError(t, err)
		assert.True(t, domain.HasErrors(findings))
	})

	t.Run("unsatisfied and missing entries", func(t *testing.T) {
		f := newFixture(t)
		path := f.write(t, "pytest>=6.0\nmypy==0.782\n")

		f.hasher.EXPECT().Fingerprint(gomock.Any()).Return("fp")
		f.lockStore.EXPECT().Read(domain.LockPath(path)).Return(
			lockfile("fp",
				domain.LockedPin{Name: "pytest", Requested: ">=6.0", Resolved: "5.4.3"},
				domain.LockedPin{Name: "coverage", Requested: "~=5.2", Resolved: "5.3"},
			), nil)

		findings, err := f.app.Verify(path)
		require.NoError(t, err)
		require.Len(t, findings, 3)
		assert.True(t, domain.HasErrors(findings))

		warnings := 0
		for _, finding := range findings {
			if finding.Severity == domain.SeverityWarning {
				warnings++
			}
		}
		assert.Equal(t, 1, warnings)
	})

	t.Run("lockfile missing", func(t *testing.T) {
		f := newFixture(t)
		path := f.write(t, "pytest>=6.0\n")

		f.lockStore.EXPECT().Read(domain.LockPath(path)).Return(nil, domain.ErrLockfileMissing)

		_, err := f.app.Verify(path)
		assert.ErrorIs(t, err, domain.ErrLockfileMissing)
	})
}
