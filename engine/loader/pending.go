package loader

import (
	"context"

	"github.com/Carmen-Shannon/oxy-gallery/common"
)

// Pending is the eventual result of an asynchronous texture load.
// It completes exactly once, with either a texture or an error.
type Pending struct {
	location string
	done     chan struct{}
	texture  common.TextureStagingData
	err      error
}

func newPending(location string) *Pending {
	return &Pending{location: location, done: make(chan struct{})}
}

func (p *Pending) resolve(tex common.TextureStagingData, err error) {
	p.texture = tex
	p.err = err
	close(p.done)
}

// Location returns the location being loaded.
func (p *Pending) Location() string {
	return p.location
}

// Done returns a channel closed when the load has finished.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Await blocks until the load finishes or ctx is done.
//
// Parameters:
//   - ctx: bounds the wait; the load itself is bound by the context passed to Load
//
// Returns:
//   - common.TextureStagingData: the decoded texture
//   - error: the load error, or ctx.Err() if the wait was abandoned
func (p *Pending) Await(ctx context.Context) (common.TextureStagingData, error) {
	select {
	case <-p.done:
		return p.texture, p.err
	case <-ctx.Done():
		return common.TextureStagingData{}, ctx.Err()
	}
}
