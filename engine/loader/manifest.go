package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

func (l *loader) FetchManifest(ctx context.Context, location string) ([]Entry, error) {
	backend, err := l.resolveBackend(location)
	if err != nil {
		return nil, err
	}
	rc, err := backend.Open(ctx, location)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", location, err)
	}

	entries, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", location, err)
	}
	l.logger.Printf("[Loader] manifest %s lists %d images", location, len(entries))
	return entries, nil
}

// Entry is one element of a manifest array.
type Entry struct {
	// Name is the image name. It is empty when Err is set.
	Name string
	// Err wraps ErrNotString when the element is not a JSON string.
	Err error
}

// Names returns the names of the valid entries, in order.
func Names(entries []Entry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Err == nil {
			names = append(names, e.Name)
		}
	}
	return names
}

// ParseManifest decodes a JSON array. A non-string element does not fail the
// manifest; it becomes an Entry carrying ErrNotString so the caller can skip it.
//
// Parameters:
//   - data: the raw JSON
//
// Returns:
//   - []Entry: one entry per array element in order, never nil on success
//   - error: a JSON syntax error or ErrNotArray
func ParseManifest(data []byte) ([]Entry, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode manifest: %w", err)
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, ErrNotArray
	}
	entries := make([]Entry, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			entries = append(entries, Entry{Err: fmt.Errorf("%w: index %d holds %T", ErrNotString, i, item)})
			continue
		}
		entries = append(entries, Entry{Name: s})
	}
	return entries, nil
}
