package frameloop

import (
	"sync"
	"sync/atomic"
)

// Scheduler runs a callback once, at the next display frame.
type Scheduler interface {
	// RequestFrame schedules fn to run once on the scheduler's frame goroutine.
	//
	// Parameters:
	//   - fn: the callback to run
	RequestFrame(fn func())
}

// Loop repeatedly schedules a frame callback until stopped.
// Each frame requests the next one after it returns, so the callback never overlaps itself.
type Loop struct {
	mu        *sync.Mutex
	scheduler Scheduler
	frame     func()

	running    bool
	generation uint64
	inFrame    atomic.Bool
	frames     atomic.Uint64
}

// New creates a stopped Loop.
//
// Parameters:
//   - s: the scheduler providing frame timing
//   - frame: the callback to run once per frame
//
// Returns:
//   - *Loop: the loop handle
func New(s Scheduler, frame func()) *Loop {
	if s == nil || frame == nil {
		panic("frameloop requires a scheduler and a frame callback")
	}
	return &Loop{
		mu:        &sync.Mutex{},
		scheduler: s,
		frame:     frame,
	}
}

// Start begins requesting frames. Calling Start on a running loop does nothing.
func (l *Loop) Start() {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return
	}
	l.running = true
	l.generation++
	gen := l.generation
	l.mu.Unlock()

	l.request(gen)
}

// Stop prevents any further frame from being scheduled. A frame already
// requested is dropped when it fires. Stop is idempotent.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.running = false
}

// Running reports whether the loop is started.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

// Frames returns how many frame callbacks have completed.
func (l *Loop) Frames() uint64 {
	return l.frames.Load()
}

// active reports whether frames from generation gen should still run.
// A Stop followed by Start bumps the generation so stale requests die out.
func (l *Loop) active(gen uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running && l.generation == gen
}

// request schedules one frame of generation gen. A callback that finds a frame
// already in progress skips it but keeps the chain alive.
func (l *Loop) request(gen uint64) {
	l.scheduler.RequestFrame(func() {
		if !l.active(gen) {
			return
		}
		if l.inFrame.CompareAndSwap(false, true) {
			l.runFrame()
		}
		if l.active(gen) {
			l.request(gen)
		}
	})
}

func (l *Loop) runFrame() {
	defer l.inFrame.Store(false)
	l.frame()
	l.frames.Add(1)
}
