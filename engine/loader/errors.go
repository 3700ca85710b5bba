package loader

import "errors"

var (
	// ErrStatus is returned when an HTTP source answers with a non-2xx status.
	ErrStatus = errors.New("unexpected response status")
	// ErrNotArray is returned when a manifest decodes to something other than a JSON array.
	ErrNotArray = errors.New("manifest is not a JSON array")
	// ErrNotString marks a manifest Entry whose array element is not a string.
	ErrNotString = errors.New("manifest entry is not a string")
	// ErrUnsupportedSource is returned for locations whose scheme no backend can open.
	ErrUnsupportedSource = errors.New("unsupported source")
)
