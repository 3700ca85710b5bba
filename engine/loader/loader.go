package loader

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-gallery/common"
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	logger *log.Logger

	httpClient *http.Client
	remote     sourceBackend
	local      sourceBackend

	cacheEnabled bool
	textureCache map[string]common.TextureStagingData
}

// Loader fetches gallery resources: JSON manifests and encoded images, from
// http(s) URLs or the local filesystem. Decoded textures are cached by location.
type Loader interface {
	// FetchManifest reads a JSON array of image names from location.
	//
	// Parameters:
	//   - ctx: cancels the fetch
	//   - location: http(s) URL or filesystem path of the manifest
	//
	// Returns:
	//   - []Entry: the manifest entries in order; non-string elements carry ErrNotString
	//   - error: error if the resource cannot be read or is not a JSON array
	FetchManifest(ctx context.Context, location string) ([]Entry, error)

	// Load starts decoding the image at location on its own goroutine.
	// If the texture is already cached the returned Pending is already complete.
	//
	// Parameters:
	//   - ctx: cancels the transfer
	//   - location: http(s) URL or filesystem path of the image
	//
	// Returns:
	//   - *Pending: the eventual texture or error
	Load(ctx context.Context, location string) *Pending

	// LoadSync loads and decodes the image at location on the calling goroutine.
	//
	// Parameters:
	//   - ctx: cancels the transfer
	//   - location: http(s) URL or filesystem path of the image
	//
	// Returns:
	//   - common.TextureStagingData: the decoded texture
	//   - error: error if the image cannot be read or decoded
	LoadSync(ctx context.Context, location string) (common.TextureStagingData, error)

	// Get retrieves a cached texture by location.
	//
	// Parameters:
	//   - location: the location the texture was loaded from
	//
	// Returns:
	//   - common.TextureStagingData: the cached texture
	//   - bool: false if nothing is cached for location
	Get(location string) (common.TextureStagingData, bool)

	// Count returns the number of cached textures.
	Count() int
}

var _ Loader = &loader{}

// NewLoader creates a Loader with http and filesystem backends.
// The default http client times out after 30 seconds and the cache is enabled.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new Loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:           sync.RWMutex{},
		logger:       log.Default(),
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		cacheEnabled: true,
		textureCache: make(map[string]common.TextureStagingData),
	}
	for _, option := range options {
		option(l)
	}
	l.remote = &httpBackend{client: l.httpClient}
	l.local = &fileBackend{}
	return l
}

// FetchManifest reads a manifest with a default Loader.
//
// Parameters:
//   - ctx: cancels the fetch
//   - location: http(s) URL or filesystem path of the manifest
//
// Returns:
//   - []Entry: the manifest entries in order
//   - error: error if the resource cannot be read or is not a JSON array
func FetchManifest(ctx context.Context, location string) ([]Entry, error) {
	return NewLoader(WithCache(false)).FetchManifest(ctx, location)
}

func (l *loader) Load(ctx context.Context, location string) *Pending {
	p := newPending(location)
	if tex, ok := l.Get(location); ok {
		p.resolve(tex, nil)
		return p
	}
	go func() {
		tex, err := l.LoadSync(ctx, location)
		p.resolve(tex, err)
	}()
	return p
}

func (l *loader) LoadSync(ctx context.Context, location string) (common.TextureStagingData, error) {
	if tex, ok := l.Get(location); ok {
		return tex, nil
	}

	backend, err := l.resolveBackend(location)
	if err != nil {
		return common.TextureStagingData{}, err
	}
	rc, err := backend.Open(ctx, location)
	if err != nil {
		return common.TextureStagingData{}, err
	}
	defer rc.Close()

	tex, err := common.DecodeTexture(rc)
	if err != nil {
		return common.TextureStagingData{}, fmt.Errorf("failed to load %s: %w", location, err)
	}

	if l.cacheEnabled {
		l.mu.Lock()
		l.textureCache[location] = tex
		l.mu.Unlock()
	}
	return tex, nil
}

func (l *loader) Get(location string) (common.TextureStagingData, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	tex, ok := l.textureCache[location]
	return tex, ok
}

func (l *loader) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.textureCache)
}

// resolveBackend selects the backend for a location by its scheme.
// Locations without a scheme, file:// URLs and drive-letter paths are local.
func (l *loader) resolveBackend(location string) (sourceBackend, error) {
	switch scheme := schemeOf(location); {
	case scheme == "http" || scheme == "https":
		return l.remote, nil
	case scheme == "" || scheme == "file" || len(scheme) == 1:
		return l.local, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSource, location)
	}
}
