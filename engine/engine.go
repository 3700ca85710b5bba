package engine

import (
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-gallery/engine/frameloop"
	"github.com/Carmen-Shannon/oxy-gallery/engine/profiler"
	"github.com/Carmen-Shannon/oxy-gallery/engine/window"
)

// engine implements the Engine interface.
// Coordinates the window thread and the render goroutine.
type engine struct {
	mu *sync.Mutex

	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	// wake is signalled whenever events or frame requests are queued.
	wake chan struct{}

	window window.Window
	input  InputHandler
	logger *log.Logger

	profiler         *profiler.Profiler
	profilingEnabled bool

	// events run on the render goroutine before the next frame, in post order.
	events []func()
	// frames hold frame callbacks requested since the last frame.
	frames []func()

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// InputHandler receives window input on the render goroutine, between frames.
type InputHandler interface {
	// SetPixelRatio is called with the window's pixel ratio before every Resize.
	SetPixelRatio(ratio float32)

	// Resize is called with the new logical window size.
	Resize(width, height int)

	// Scroll is called with the wheel offsets in notches; positive yoff scrolls up.
	Scroll(xoff, yoff float64)

	// PointerDown, PointerMove and PointerUp report the left button in window coordinates.
	PointerDown(x, y float64)
	PointerMove(x, y float64)
	PointerUp(x, y float64)
}

// Engine is the main entry point for the engine.
// It runs the window message loop on the calling goroutine and frame callbacks on a
// render goroutine. Engine implements frameloop.Scheduler, so a frameloop.Loop can be
// driven by it directly.
type Engine interface {
	frameloop.Scheduler

	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// BindInput routes window input to h. Each callback is posted to the render
	// goroutine so handlers never run concurrently with a frame.
	//
	// Parameters:
	//   - h: the handler receiving input
	BindInput(h InputHandler)

	// Post queues fn to run on the render goroutine before the next frame.
	//
	// Parameters:
	//   - fn: the function to run
	Post(fn func())

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// AddProfilerSource appends an application counter to every profiler line.
	//
	// Parameters:
	//   - name: label in the log line
	//   - read: returns the current value; called on the render goroutine
	AddProfilerSource(name string, read func() float64)

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Run starts the render goroutine and runs the window message loop until the
	// window closes or Quit is called. Must be called from the main goroutine.
	Run()

	// Quit signals the render goroutine to stop and asks the window to close.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// Panics if no window is supplied.
//
// Parameters:
//   - options: functional options for engine configuration (window, profiling, frame limit)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:               &sync.Mutex{},
		quitChannel:      make(chan struct{}),
		wake:             make(chan struct{}, 1),
		wg:               sync.WaitGroup{},
		logger:           log.Default(),
		profilingEnabled: false,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window == nil {
		panic("engine: a window is required")
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))
	}
	if e.input != nil {
		e.BindInput(e.input)
	}
	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) BindInput(h InputHandler) {
	e.mu.Lock()
	e.input = h
	e.mu.Unlock()

	e.window.SetResizeCallback(func(width, height int) {
		ratio := e.window.PixelRatio()
		e.Post(func() {
			h.SetPixelRatio(ratio)
			h.Resize(width, height)
		})
	})
	e.window.SetScrollCallback(func(xoff, yoff float64) {
		e.Post(func() { h.Scroll(xoff, yoff) })
	})
	e.window.SetPointerDownCallback(func(x, y float64) {
		e.Post(func() { h.PointerDown(x, y) })
	})
	e.window.SetPointerMoveCallback(func(x, y float64) {
		e.Post(func() { h.PointerMove(x, y) })
	})
	e.window.SetPointerUpCallback(func(x, y float64) {
		e.Post(func() { h.PointerUp(x, y) })
	})
}

func (e *engine) Post(fn func()) {
	e.mu.Lock()
	e.events = append(e.events, fn)
	e.mu.Unlock()
	e.signalWake()
}

func (e *engine) RequestFrame(fn func()) {
	e.mu.Lock()
	e.frames = append(e.frames, fn)
	e.mu.Unlock()
	e.signalWake()
}

// signalWake wakes the render goroutine without blocking.
func (e *engine) signalWake() {
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

func (e *engine) Run() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.mu.Unlock()

	e.handle()
	e.window.ProcessMessages()
	e.signalQuit()
	e.wg.Wait()
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
		close(e.quitChannel)
	})
}

// handle launches the render and quit goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(2)
	go e.handleRender()
	go e.handleQuit()
}

// handleRender waits for queued events and frame requests and runs them in order:
// all pending events first, then the frames requested before this iteration.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			e.logger.Printf("[Engine] render goroutine recovered from panic: %v", r)
			e.signalQuit()
		}
	}()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-e.wake:
		}

		frameStart := time.Now()

		e.mu.Lock()
		events := e.events
		e.events = nil
		frames := e.frames
		e.frames = nil
		e.mu.Unlock()

		for _, fn := range events {
			fn()
		}

		select {
		case <-e.quitChannel:
			return
		default:
		}

		for _, fn := range frames {
			fn()
		}

		if len(frames) > 0 {
			e.mu.Lock()
			profiling := e.profilingEnabled
			e.mu.Unlock()
			if profiling && e.profiler != nil {
				e.profiler.Tick()
			}
		}

		// Frame rate limiting
		e.mu.Lock()
		limit := e.renderFrameLimit
		e.mu.Unlock()
		if limit > 0 && len(frames) > 0 {
			if remaining := limit - time.Since(frameStart); remaining > 0 {
				select {
				case <-e.quitChannel:
					return
				case <-time.After(remaining):
				}
			}
		}
	}
}

// handleQuit blocks until the quit channel is closed, then asks the window to close
// so the message loop in Run returns.
func (e *engine) handleQuit() {
	defer e.wg.Done()
	<-e.quitChannel
	e.window.RequestClose()
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
}

func (e *engine) AddProfilerSource(name string, read func() float64) {
	e.profiler.AddSource(name, read)
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderFrameLimit = frameDuration(fps)
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
