package gallery

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-gallery/engine/camera"
	"github.com/Carmen-Shannon/oxy-gallery/engine/frameloop"
	"github.com/Carmen-Shannon/oxy-gallery/engine/loader"
	"github.com/Carmen-Shannon/oxy-gallery/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// Renderer is the part of the renderer the gallery drives.
type Renderer interface {
	// SetSize sets the logical drawing size.
	SetSize(width, height int)

	// SetPixelRatio sets the ratio of physical pixels to logical pixels.
	SetPixelRatio(ratio float32)

	// Render draws one frame of s as seen from cam.
	Render(s scene.Scene, cam camera.Camera) error
}

// App is the gallery: a scene of textured planes on a sphere, a camera with orbit
// controls, and the frame loop that animates and draws them.
type App struct {
	mu     *sync.Mutex
	cfg    Config
	logger *log.Logger

	scene    scene.Scene
	camera   camera.Camera
	controls camera.OrbitControls
	renderer Renderer
	loader   loader.Loader
	factory  *PlaneFactory
	loop     *frameloop.Loop

	rng         *rand.Rand
	width       int
	height      int
	pixelRatio  float32
	ctx         context.Context
	cancel      context.CancelFunc
	loadStarted bool
	loadDone    chan struct{}
	frames      atomic.Uint64
	imageCount  atomic.Int64
}

// New creates a gallery. The scene starts empty; call Load to populate it and Start
// to begin animating.
//
// Parameters:
//   - cfg: the gallery tunables, validated here
//   - r: the renderer frames are drawn with
//   - s: the scheduler providing frame timing
//   - options: functional options to configure the App
//
// Returns:
//   - *App: the gallery
//   - error: error if cfg is invalid
func New(cfg Config, r Renderer, s frameloop.Scheduler, options ...AppBuilderOption) (*App, error) {
	if r == nil || s == nil {
		panic("gallery requires a renderer and a scheduler")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &App{
		mu:         &sync.Mutex{},
		cfg:        cfg,
		logger:     log.Default(),
		renderer:   r,
		width:      1,
		height:     1,
		pixelRatio: 1,
		loadDone:   make(chan struct{}),
	}
	for _, option := range options {
		option(a)
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if a.loader == nil {
		a.loader = loader.NewLoader(loader.WithLogger(a.logger))
	}
	a.ctx, a.cancel = context.WithCancel(context.Background())

	a.scene = scene.NewScene(
		scene.WithAmbientLight(scene.AmbientLight{Color: [3]float32{1, 1, 1}, Intensity: cfg.AmbientIntensity}),
	)
	a.camera = camera.NewCamera(
		camera.WithFov(mgl32.DegToRad(cfg.FovDegrees)),
		camera.WithNear(cfg.Near),
		camera.WithFar(cfg.Far),
		camera.WithPosition(0, 0, cfg.SphereRadius*1.4),
	)
	a.camera.LookAt(mgl32.Vec3{})
	a.controls = camera.NewOrbitControls(a.camera,
		camera.WithDamping(true, cfg.Orbit.DampingFactor),
		camera.WithDistanceBounds(cfg.Orbit.MinDistance, cfg.Orbit.MaxDistance),
		camera.WithRotateSpeed(cfg.Orbit.RotateSpeed),
		camera.WithZoomSpeed(cfg.Orbit.ZoomSpeed),
	)
	a.factory = NewPlaneFactory(cfg, a.rng)
	a.loop = frameloop.New(s, a.frame)

	a.SetPixelRatio(a.pixelRatio)
	a.Resize(a.width, a.height)
	return a, nil
}

// Load starts populating the scene on its own goroutine and returns immediately.
// Calling Load again does nothing.
func (a *App) Load() {
	a.mu.Lock()
	if a.loadStarted {
		a.mu.Unlock()
		return
	}
	a.loadStarted = true
	a.mu.Unlock()

	go func() {
		defer close(a.loadDone)
		a.loadScene(a.ctx)
	}()
}

// Loaded is closed once the loading goroutine started by Load has finished.
func (a *App) Loaded() <-chan struct{} {
	return a.loadDone
}

// Start begins the frame loop.
func (a *App) Start() {
	a.loop.Start()
}

// Stop halts the frame loop. Stop is idempotent.
func (a *App) Stop() {
	a.loop.Stop()
}

// Running reports whether the frame loop is started.
func (a *App) Running() bool {
	return a.loop.Running()
}

// Close stops the frame loop, cancels in-flight loads and waits for the loading
// goroutine, if one was started.
func (a *App) Close() {
	a.Stop()
	a.cancel()

	a.mu.Lock()
	started := a.loadStarted
	a.mu.Unlock()
	if started {
		<-a.loadDone
	}
}

// Frames returns how many frames have been drawn.
func (a *App) Frames() uint64 {
	return a.frames.Load()
}

// Config returns the tunables the App was created with, with ImageCount set
// to the manifest length once loading has read it.
func (a *App) Config() Config {
	cfg := a.cfg
	cfg.ImageCount = int(a.imageCount.Load())
	return cfg
}

func (a *App) setImageCount(n int) {
	a.imageCount.Store(int64(n))
}

// Scene returns the scene holding the plane group.
func (a *App) Scene() scene.Scene {
	return a.scene
}

// Camera returns the shared perspective camera.
func (a *App) Camera() camera.Camera {
	return a.camera
}

// Controls returns the orbit controls driving the camera.
func (a *App) Controls() camera.OrbitControls {
	return a.controls
}
