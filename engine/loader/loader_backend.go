package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// sourceBackend opens a location for reading.
// Concrete implementations handle scheme-specific details.
type sourceBackend interface {
	// Open returns a stream over the resource at location.
	// The caller must close it.
	//
	// Parameters:
	//   - ctx: cancels the open and any transfer in progress
	//   - location: the resource to open
	//
	// Returns:
	//   - io.ReadCloser: the resource contents
	//   - error: error if the resource cannot be opened
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}

type httpBackend struct {
	client *http.Client
}

var _ sourceBackend = &httpBackend{}

func (b *httpBackend) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", location, err)
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", location, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s returned %d", ErrStatus, location, resp.StatusCode)
	}
	return resp.Body, nil
}

type fileBackend struct{}

var _ sourceBackend = &fileBackend{}

func (b *fileBackend) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := strings.TrimPrefix(location, "file://")
	f, err := os.Open(filepath.FromSlash(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return f, nil
}

// schemeOf returns the lower-cased URL scheme of location, or "" when it has none
// or does not parse as a URL.
func schemeOf(location string) string {
	u, err := url.Parse(location)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Scheme)
}

// isRemote reports whether location is an http(s) URL.
func isRemote(location string) bool {
	scheme := schemeOf(location)
	return scheme == "http" || scheme == "https"
}

// Resolve resolves rel against the location of base, the way a browser resolves a
// relative URL against the document that referenced it. URLs resolve as URLs and
// filesystem paths resolve against the directory holding base.
//
// Parameters:
//   - base: the referencing location, e.g. the manifest URL or path
//   - rel: the relative reference
//
// Returns:
//   - string: the resolved location
func Resolve(base, rel string) string {
	if isRemote(rel) {
		return rel
	}
	if isRemote(base) {
		u, err := url.Parse(base)
		if err != nil {
			return rel
		}
		return u.ResolveReference(&url.URL{Path: rel}).String()
	}
	if filepath.IsAbs(rel) {
		return rel
	}
	dir := filepath.Dir(strings.TrimPrefix(base, "file://"))
	return filepath.Join(dir, filepath.FromSlash(rel))
}
