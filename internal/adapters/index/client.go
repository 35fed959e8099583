// Package index implements the VersionResolver port against a PyPI-style
// package index with a local response cache.
package index

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/pin/internal/core/domain"
	"go.trai.ch/pin/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	defaultBaseURL    = "https://pypi.org/pypi"
	httpClientTimeout = 30 * time.Second

	// maxResponseBytes bounds index responses; some packages carry very
	// large release histories.
	maxResponseBytes = 16 << 20
)

var _ ports.VersionResolver = (*Client)(nil)

// Client implements ports.VersionResolver using the index's JSON API with an
// on-disk cache, checked before any network round trip.
type Client struct {
	baseURL    string
	cacheDir   string
	httpClient *http.Client
}

// NewClient creates a new Client against the default index.
func NewClient() (*Client, error) {
	return newClientWith(defaultBaseURL, domain.DefaultIndexCachePath(), &http.Client{
		Timeout: httpClientTimeout,
	})
}

// newClientWith creates a Client with a custom base URL, cache path, and
// http client (used for testing).
func newClientWith(baseURL, cachePath string, client *http.Client) (*Client, error) {
	cleanPath := filepath.Clean(cachePath)
	if err := os.MkdirAll(cleanPath, domain.DirPerm); err != nil {
		return nil, zerr.Wrap(err, "failed to create index cache directory")
	}

	return &Client{
		baseURL:    baseURL,
		cacheDir:   cleanPath,
		httpClient: client,
	}, nil
}

// projectResponse is the slice of the index's JSON API we consume: the keys
// of the releases map are the published version strings.
type projectResponse struct {
	Releases map[string]json.RawMessage `json:"releases"`
}

// Versions returns every published version for the package, cache first.
func (c *Client) Versions(ctx context.Context, name string) ([]string, error) {
	cachePath := c.cachePath(name)
	if versions, err := c.loadFromCache(cachePath); err == nil {
		return versions, nil
	}

	versions, err := c.queryIndex(ctx, name)
	if err != nil {
		return nil, err
	}

	// Cache write failures are not critical; resolution already succeeded.
	_ = c.saveToCache(cachePath, versions)

	return versions, nil
}

func (c *Client) queryIndex(ctx context.Context, name string) ([]string, error) {
	url := fmt.Sprintf("%s/%s/json", c.baseURL, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to build index request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "index request failed"), "package", name)
	}
	defer resp.Body.Close() //nolint:errcheck // Best effort close in defer

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, domain.WithMeta(domain.ErrPackageNotFound, "package", name)
	default:
		err := zerr.With(zerr.New("unexpected index response"), "package", name)
		return nil, zerr.With(err, "status", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read index response"), "package", name)
	}

	var project projectResponse
	if err := json.Unmarshal(body, &project); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse index response"), "package", name)
	}

	versions := make([]string, 0, len(project.Releases))
	for version := range project.Releases {
		versions = append(versions, version)
	}
	if len(versions) == 0 {
		return nil, domain.WithMeta(domain.ErrPackageNotFound, "package", name)
	}

	return versions, nil
}

// cachePath derives a deterministic cache file name from the package name.
func (c *Client) cachePath(name string) string {
	sum := sha256.Sum256([]byte(name))
	return filepath.Join(c.cacheDir, hex.EncodeToString(sum[:])+".json")
}

type cacheEntry struct {
	Versions []string `json:"versions"`
}

func (c *Client) loadFromCache(path string) ([]string, error) {
	// #nosec G304 -- path is derived from a hash inside our cache dir
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, zerr.Wrap(err, "failed to read index cache")
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, zerr.Wrap(err, "failed to parse index cache")
	}
	if len(entry.Versions) == 0 {
		return nil, zerr.New("empty index cache entry")
	}
	return entry.Versions, nil
}

func (c *Client) saveToCache(path string, versions []string) error {
	data, err := json.Marshal(cacheEntry{Versions: versions})
	if err != nil {
		return zerr.Wrap(err, "failed to marshal index cache")
	}
	return os.WriteFile(path, data, domain.FilePerm)
}
