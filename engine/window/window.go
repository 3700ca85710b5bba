package window

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and pointer input.
// Sizes are logical (screen coordinate) sizes; PixelRatio converts them to
// framebuffer pixels. Callbacks fire on the goroutine running ProcessMessages.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the window's logical size changes.
	//
	// Parameters:
	//   - callback: function receiving the new logical width and height
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse wheel and trackpad scroll events.
	//
	// Parameters:
	//   - callback: function receiving the scroll offsets in notches; positive yoff scrolls up
	SetScrollCallback(callback func(xoff, yoff float64))

	// SetPointerDownCallback sets the callback for a primary (left) button press.
	//
	// Parameters:
	//   - callback: function receiving the cursor position in logical pixels
	SetPointerDownCallback(callback func(x, y float64))

	// SetPointerUpCallback sets the callback for a primary (left) button release.
	//
	// Parameters:
	//   - callback: function receiving the cursor position in logical pixels
	SetPointerUpCallback(callback func(x, y float64))

	// SetPointerMoveCallback sets the callback for cursor movement.
	//
	// Parameters:
	//   - callback: function receiving the cursor position in logical pixels
	SetPointerMoveCallback(callback func(x, y float64))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// RequestClose asks the message loop to exit after the current iteration.
	RequestClose()

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls the update callback each iteration.
	ProcessMessages()

	// Width returns the current logical width.
	Width() int

	// Height returns the current logical height.
	Height() int

	// PixelRatio returns framebuffer pixels per logical pixel, 1 on standard displays.
	PixelRatio() float32
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	mu *sync.Mutex

	title string

	// size limits applied to user resizing
	minWidth, minHeight int
	maxWidth, maxHeight int

	// current logical size
	width  int
	height int

	// framebuffer pixels per logical pixel
	pixelRatio float32

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onUpdate      func()
	onResize      func(width, height int)
	onScroll      func(xoff, yoff float64)
	onPointerDown func(x, y float64)
	onPointerUp   func(x, y float64)
	onPointerMove func(x, y float64)
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a new Window with the specified options.
// Applies default values first, then each option in order.
// Panics if the platform window cannot be created.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the visible window
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		mu:         &sync.Mutex{},
		title:      "oxy gallery",
		minWidth:   320,
		minHeight:  200,
		maxWidth:   -1,
		maxHeight:  -1,
		width:      1280,
		height:     720,
		pixelRatio: 1,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(xoff, yoff float64)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onScroll = callback
}

func (w *engineWindow) SetPointerDownCallback(callback func(x, y float64)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onPointerDown = callback
}

func (w *engineWindow) SetPointerUpCallback(callback func(x, y float64)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onPointerUp = callback
}

func (w *engineWindow) SetPointerMoveCallback(callback func(x, y float64)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onPointerMove = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) RequestClose() {
	platformRequestClose(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		w.mu.Lock()
		update := w.onUpdate
		w.mu.Unlock()
		if update != nil {
			update()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width
}

func (w *engineWindow) Height() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.height
}

func (w *engineWindow) PixelRatio() float32 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pixelRatio
}

// setSize records a new logical size and pixel ratio and returns the resize callback to fire.
func (w *engineWindow) setSize(width, height, fbWidth int) func(width, height int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.width = width
	w.height = height
	if width > 0 && fbWidth > 0 {
		w.pixelRatio = float32(fbWidth) / float32(width)
	}
	return w.onResize
}

// callbacks returns the pointer and scroll callbacks under the lock.
func (w *engineWindow) callbacks() (down, up, move func(x, y float64), scroll func(xoff, yoff float64)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.onPointerDown, w.onPointerUp, w.onPointerMove, w.onScroll
}
