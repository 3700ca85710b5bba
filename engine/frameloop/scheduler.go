package frameloop

import (
	"sync"
	"time"
)

// ManualScheduler queues frame requests until Step runs them.
// Useful wherever frames must be driven explicitly.
type ManualScheduler struct {
	mu      sync.Mutex
	pending []func()
}

var _ Scheduler = &ManualScheduler{}

func (m *ManualScheduler) RequestFrame(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = append(m.pending, fn)
}

// Step runs every callback requested before the call. Callbacks requested while
// stepping wait for the next Step.
//
// Returns:
//   - int: the number of callbacks run
func (m *ManualScheduler) Step() int {
	m.mu.Lock()
	batch := m.pending
	m.pending = nil
	m.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Pending returns the number of queued callbacks.
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// TickerScheduler runs frame requests on its own goroutine at a fixed rate.
type TickerScheduler struct {
	mu       sync.Mutex
	pending  []func()
	quit     chan struct{}
	quitOnce sync.Once
}

var _ Scheduler = &TickerScheduler{}

// NewTickerScheduler starts a scheduler firing fps times per second.
// Values <= 0 default to 60.
//
// Parameters:
//   - fps: frames per second
//
// Returns:
//   - *TickerScheduler: the running scheduler; call Close to stop it
func NewTickerScheduler(fps float64) *TickerScheduler {
	if fps <= 0 {
		fps = 60
	}
	t := &TickerScheduler{quit: make(chan struct{})}
	go t.run(time.Duration(float64(time.Second) / fps))
	return t
}

func (t *TickerScheduler) RequestFrame(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = append(t.pending, fn)
}

// Close stops the ticker goroutine. Pending requests are dropped.
func (t *TickerScheduler) Close() {
	t.quitOnce.Do(func() {
		close(t.quit)
	})
}

func (t *TickerScheduler) run(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-t.quit:
			return
		case <-ticker.C:
			t.mu.Lock()
			batch := t.pending
			t.pending = nil
			t.mu.Unlock()
			for _, fn := range batch {
				fn()
			}
		}
	}
}
