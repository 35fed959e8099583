package index

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pin/internal/core/domain"
)

func newTestServer(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/pytest/json":
			_, _ = w.Write([]byte(`{"releases": {"6.0.0": [], "6.0.1": [], "6.1.0": []}}`))
		case "/empty/json":
			_, _ = w.Write([]byte(`{"releases": {}}`))
		case "/broken/json":
			_, _ = w.Write([]byte(`{"releases": [`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestVersions(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, &hits)
	client, err := newClientWith(srv.URL, t.TempDir(), srv.Client())
	require.NoError(t, err)

	versions, err := client.Versions(context.Background(), "pytest")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"6.0.0", "6.0.1", "6.1.0"}, versions)
}

func TestVersions_CacheHitSkipsNetwork(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, &hits)
	client, err := newClientWith(srv.URL, t.TempDir(), srv.Client())
	require.NoError(t, err)

	ctx := context.Background()
	_, err = client.Versions(ctx, "pytest")
	require.NoError(t, err)
	_, err = client.Versions(ctx, "pytest")
	require.NoError(t, err)

	assert.Equal(t, int32(1), hits.Load())
}

func TestVersions_NotFound(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, &hits)
	client, err := newClientWith(srv.URL, t.TempDir(), srv.Client())
	require.NoError(t, err)

	_, err = client.Versions(context.Background(), "no-such-package")
	assert.ErrorIs(t, err, domain.ErrPackageNotFound)
}

func TestVersions_EmptyReleases(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, &hits)
	client, err := newClientWith(srv.URL, t.TempDir(), srv.Client())
	require.NoError(t, err)

	_, err = client.Versions(context.Background(), "empty")
	assert.ErrorIs(t, err, domain.ErrPackageNotFound)
}

func TestVersions_BrokenResponse(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, &hits)
	client, err := newClientWith(srv.URL, t.TempDir(), srv.Client())
	require.NoError(t, err)

	_, err = client.Versions(context.Background(), "broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse index response")
}

func TestVersions_ContextCancelled(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, &hits)
	client, err := newClientWith(srv.URL, t.TempDir(), srv.Client())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = client.Versions(ctx, "pytest")
	assert.Error(t, err)
}
