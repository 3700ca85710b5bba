package renderer

import (
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-gallery/common"
	"github.com/Carmen-Shannon/oxy-gallery/engine/camera"
	"github.com/Carmen-Shannon/oxy-gallery/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-gallery/engine/renderer/draw_list"
	"github.com/Carmen-Shannon/oxy-gallery/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-gallery/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gallery/engine/scene"
	"github.com/Carmen-Shannon/oxy-gallery/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu     *sync.Mutex
	logger *log.Logger

	backendType RendererBackendType
	backend     RendererBackend

	width, height int
	pixelRatio    float32
	// surfaceDirty is set when the logical size, pixel ratio or present mode changed
	// since the surface was last configured.
	surfaceDirty bool

	planeShader   shader.Shader
	layouts       []*wgpu.BindGroupLayout
	pipelineCache map[string]pipeline.Pipeline

	quad           bind_group_provider.BindGroupProvider
	cameraProvider bind_group_provider.BindGroupProvider
	sampler        *wgpu.Sampler

	// planeResources holds GPU resources per plane ID, created the first time the plane is drawn.
	planeResources map[uint64]bind_group_provider.BindGroupProvider
	// failedPlanes holds plane IDs whose upload failed; they are skipped without retry.
	failedPlanes map[uint64]struct{}

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
	samplerData          SamplerStagingData
}

// Renderer draws a scene of textured planes from a camera.
//
// The Renderer owns the GPU device and every GPU resource. Planes appended to the
// scene are uploaded lazily inside Render, so Render must be called from the
// goroutine that created the Renderer.
type Renderer interface {
	// SetSize sets the logical drawing size. The surface is configured at
	// width*pixelRatio by height*pixelRatio before the next frame.
	//
	// Parameters:
	//   - width: logical width
	//   - height: logical height
	SetSize(width, height int)

	// Size returns the logical drawing size.
	//
	// Returns:
	//   - int: logical width
	//   - int: logical height
	Size() (int, int)

	// SetPixelRatio sets the ratio of physical pixels to logical pixels.
	// Non-positive ratios are treated as 1.
	//
	// Parameters:
	//   - ratio: the device pixel ratio
	SetPixelRatio(ratio float32)

	// PixelRatio returns the current device pixel ratio.
	PixelRatio() float32

	// SetPresentMode sets the surface present mode; it takes effect on the next frame.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// Render draws one frame. Planes outside the camera frustum are culled,
	// transparent planes are drawn back to front, and planes whose texture cannot
	// be uploaded are logged once and skipped. A zero size renders nothing.
	//
	// Parameters:
	//   - s: the scene to draw
	//   - cam: the camera to draw from
	//
	// Returns:
	//   - error: an error if the frame could not be acquired
	Render(s scene.Scene, cam camera.Camera) error

	// Release frees every GPU resource, the device and the surface.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer drawing into the given window's surface.
// The initial size and pixel ratio are taken from the window.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - win: the window providing the surface descriptor and initial size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the created renderer
//   - error: an error if no adapter or device could be acquired
func NewRenderer(backendType RendererBackendType, win window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:             &sync.Mutex{},
		logger:         log.Default(),
		backendType:    backendType,
		pipelineCache:  make(map[string]pipeline.Pipeline),
		planeResources: make(map[uint64]bind_group_provider.BindGroupProvider),
		failedPlanes:   make(map[uint64]struct{}),
		presentMode:    PresentModeVSync,
		msaa:           MSAA4x,
		width:          win.Width(),
		height:         win.Height(),
		pixelRatio:     win.PixelRatio(),
		surfaceDirty:   true,
	}

	// Options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}
	if r.pixelRatio <= 0 {
		r.pixelRatio = 1
	}

	var err error
	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend, err = newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa)
	}
	if err != nil {
		return nil, fmt.Errorf("create renderer backend: %w", err)
	}
	r.backend.SetPresentMode(r.presentMode)

	if err := r.initSharedResources(); err != nil {
		r.Release()
		return nil, err
	}
	return r, nil
}

// initSharedResources creates the plane shader layouts, the quad mesh, the camera
// bind group and the sampler every plane shares.
func (r *renderer) initSharedResources() error {
	r.planeShader = newPlaneShader()

	layouts, err := r.backend.CreateBindGroupLayouts(r.planeShader)
	if err != nil {
		return err
	}
	r.layouts = layouts

	r.quad = bind_group_provider.NewBindGroupProvider("Quad")
	if err := r.backend.InitMeshBuffers(r.quad, common.SliceToBytes(quadVertices), common.SliceToBytes(quadIndices), len(quadIndices)); err != nil {
		return fmt.Errorf("quad mesh: %w", err)
	}

	r.cameraProvider = bind_group_provider.NewBindGroupProvider("Camera")
	if err := r.backend.InitBindGroup(r.cameraProvider, r.layouts[0], r.planeShader.BindGroupLayoutDescriptor(0)); err != nil {
		return fmt.Errorf("camera bind group: %w", err)
	}

	r.sampler, err = r.backend.CreateSampler("Plane Sampler", r.samplerData)
	if err != nil {
		return fmt.Errorf("plane sampler: %w", err)
	}
	return nil
}

func (r *renderer) SetSize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if width == r.width && height == r.height {
		return
	}
	r.width, r.height = width, height
	r.surfaceDirty = true
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) SetPixelRatio(ratio float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ratio <= 0 {
		ratio = 1
	}
	if ratio == r.pixelRatio {
		return
	}
	r.pixelRatio = ratio
	r.surfaceDirty = true
}

func (r *renderer) PixelRatio() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pixelRatio
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presentMode = mode
	r.backend.SetPresentMode(mode)
	r.surfaceDirty = true
}

// physicalSize returns the surface size in device pixels. Callers hold r.mu.
func (r *renderer) physicalSize() (int, int) {
	w := int(math.Round(float64(float32(r.width) * r.pixelRatio)))
	h := int(math.Round(float64(float32(r.height) * r.pixelRatio)))
	return w, h
}

func (r *renderer) Render(s scene.Scene, cam camera.Camera) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, h := r.physicalSize()
	if w <= 0 || h <= 0 {
		return nil
	}
	if r.surfaceDirty {
		r.backend.ConfigureSurface(w, h)
		r.surfaceDirty = false
	}

	radiance := s.AmbientLight().Radiance()
	cameraUniform := GPUCameraUniform{
		ViewProj: cam.ViewProjectionMatrix(),
		Ambient:  [4]float32{radiance[0], radiance[1], radiance[2], 1},
	}
	writes := []bind_group_provider.BufferWrite{{
		Provider: r.cameraProvider,
		Binding:  0,
		Data:     cameraUniform.Marshal(),
	}}

	group := s.Group()
	items := draw_list.Build(group.Snapshot(), group.WorldMatrix(), cameraUniform.ViewProj, cam.Position())

	type draw struct {
		pipeline pipeline.Pipeline
		provider bind_group_provider.BindGroupProvider
	}
	draws := make([]draw, 0, len(items))
	for _, item := range items {
		provider, ok := r.planeResource(item.Plane)
		if !ok {
			continue
		}
		p, err := r.pipelineFor(item.Plane.Material())
		if err != nil {
			return err
		}

		lit := float32(0)
		if item.Plane.Material().Lit {
			lit = 1
		}
		planeUniform := GPUPlaneUniform{
			Model:  item.World,
			Params: [4]float32{item.Opacity, lit, 0, 0},
		}
		writes = append(writes, bind_group_provider.BufferWrite{
			Provider: provider,
			Binding:  planeUniformBinding,
			Data:     planeUniform.Marshal(),
		})
		draws = append(draws, draw{pipeline: p, provider: provider})
	}

	r.backend.WriteBuffers(writes)

	bg := s.Background()
	if err := r.backend.BeginFrame(wgpu.Color{R: bg[0], G: bg[1], B: bg[2], A: bg[3]}); err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}
	for _, d := range draws {
		r.backend.DrawCall(d.pipeline, r.quad, []bind_group_provider.BindGroupProvider{r.cameraProvider, d.provider})
	}
	r.backend.EndFrame()
	r.backend.Present()
	return nil
}

// planeResource returns the GPU resources of p, uploading its texture on first use.
// Callers hold r.mu.
func (r *renderer) planeResource(p scene.Plane) (bind_group_provider.BindGroupProvider, bool) {
	id := p.ID()
	if provider, ok := r.planeResources[id]; ok {
		return provider, true
	}
	if _, failed := r.failedPlanes[id]; failed {
		return nil, false
	}

	provider := bind_group_provider.NewBindGroupProvider(fmt.Sprintf("Plane %d", id), bind_group_provider.WithSharedSamplers())
	err := r.backend.InitTextureView(provider, planeTextureBinding, p.Material().Texture)
	if err == nil {
		provider.SetSampler(planeSamplerBinding, r.sampler)
		err = r.backend.InitBindGroup(provider, r.layouts[1], r.planeShader.BindGroupLayoutDescriptor(1))
	}
	if err != nil {
		provider.Release()
		r.failedPlanes[id] = struct{}{}
		r.logger.Printf("[Renderer] plane %d upload failed: %v", id, err)
		return nil, false
	}

	r.planeResources[id] = provider
	return provider, true
}

// pipelineFor returns the pipeline matching a material's blend and depth flags,
// creating it on first use. Callers hold r.mu.
func (r *renderer) pipelineFor(m scene.Material) (pipeline.Pipeline, error) {
	key := pipeline.Key(PlaneShaderKey, m.Transparent, m.DepthTest, m.DepthWrite)
	if p, ok := r.pipelineCache[key]; ok {
		return p, nil
	}

	p := pipeline.NewPipeline(key, r.planeShader,
		pipeline.WithBlendEnabled(m.Transparent),
		pipeline.WithDepthTestEnabled(m.DepthTest),
		pipeline.WithDepthWriteEnabled(m.DepthWrite),
		pipeline.WithCullMode(wgpu.CullModeNone),
	)
	if err := r.backend.RegisterRenderPipeline(p, r.layouts); err != nil {
		return nil, fmt.Errorf("register pipeline %s: %w", key, err)
	}
	r.pipelineCache[key] = p
	return p, nil
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, provider := range r.planeResources {
		provider.Release()
		delete(r.planeResources, id)
	}
	for key, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, key)
	}
	if r.cameraProvider != nil {
		r.cameraProvider.Release()
		r.cameraProvider = nil
	}
	if r.quad != nil {
		r.quad.Release()
		r.quad = nil
	}
	if r.sampler != nil {
		r.sampler.Release()
		r.sampler = nil
	}
	for _, l := range r.layouts {
		if l != nil {
			l.Release()
		}
	}
	r.layouts = nil
	if r.backend != nil {
		r.backend.Release()
		r.backend = nil
	}
}
