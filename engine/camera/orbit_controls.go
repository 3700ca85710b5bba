package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-gallery/common"
	"github.com/go-gl/mathgl/mgl32"
)

const orbitEpsilon = 1e-6

type orbitControlsImpl struct {
	mu     *sync.Mutex
	camera Camera

	target mgl32.Vec3

	enableDamping bool
	dampingFactor float32
	rotateSpeed   float32
	zoomSpeed     float32
	enableZoom    bool

	minDistance float32
	maxDistance float32
	minPolar    float32
	maxPolar    float32

	deltaTheta float32
	deltaPhi   float32
	scale      float32

	viewportHeight float32
	dragging       bool
	lastX, lastY   float64

	lastPosition   mgl32.Vec3
	lastQuaternion mgl32.Quat
}

// OrbitControls rotates a camera around a target point on a sphere whose radius is
// clamped to a distance range. Input accumulates into pending rotation and dolly
// deltas which Update consumes, decaying them by the damping factor when damping
// is enabled. Panning is not supported.
type OrbitControls interface {
	// Target returns the point the camera orbits around.
	//
	// Returns:
	//   - mgl32.Vec3: orbit target in world space
	Target() mgl32.Vec3

	// SetTarget changes the orbit target. Takes effect on the next Update.
	//
	// Parameters:
	//   - target: new orbit target in world space
	SetTarget(target mgl32.Vec3)

	// SetViewportHeight sets the height in pixels used to convert drag distances
	// into rotation angles.
	//
	// Parameters:
	//   - height: viewport height in logical pixels
	SetViewportHeight(height float32)

	// PointerDown starts a rotate drag at the given cursor position.
	//
	// Parameters:
	//   - x, y: cursor position in logical pixels
	PointerDown(x, y float64)

	// PointerMove continues a rotate drag. Ignored when no drag is active.
	//
	// Parameters:
	//   - x, y: cursor position in logical pixels
	PointerMove(x, y float64)

	// PointerUp ends the active drag.
	PointerUp()

	// Wheel applies a dolly step. Negative deltaY moves the camera toward the target.
	//
	// Parameters:
	//   - deltaY: wheel delta in pixel units, positive meaning scroll down
	Wheel(deltaY float64)

	// RotateLeft queues an azimuthal rotation.
	//
	// Parameters:
	//   - angle: rotation in radians
	RotateLeft(angle float32)

	// RotateUp queues a polar rotation.
	//
	// Parameters:
	//   - angle: rotation in radians
	RotateUp(angle float32)

	// Update applies pending input to the camera, clamps its distance and polar
	// angle, points it at the target and decays the pending deltas.
	//
	// Returns:
	//   - bool: true if the camera moved or rotated
	Update() bool
}

var _ OrbitControls = &orbitControlsImpl{}

// NewOrbitControls creates orbit controls for the given camera.
// Defaults: damping enabled with factor 0.05, rotate speed 1, zoom speed 1,
// distance range [0, +Inf), polar range [0, pi], target at the origin.
//
// Parameters:
//   - cam: the camera to drive
//   - options: functional options to configure the controls
//
// Returns:
//   - OrbitControls: the newly created controls
func NewOrbitControls(cam Camera, options ...OrbitControlsBuilderOption) OrbitControls {
	if cam == nil {
		panic("orbit controls require a camera")
	}
	o := &orbitControlsImpl{
		mu:             &sync.Mutex{},
		camera:         cam,
		enableDamping:  true,
		dampingFactor:  0.05,
		rotateSpeed:    1,
		zoomSpeed:      1,
		enableZoom:     true,
		minDistance:    0,
		maxDistance:    float32(math.Inf(1)),
		minPolar:       0,
		maxPolar:       math.Pi,
		scale:          1,
		viewportHeight: 1,
	}
	for _, option := range options {
		option(o)
	}
	o.lastPosition = cam.Position()
	o.lastQuaternion = cam.Quaternion()
	return o
}

func (o *orbitControlsImpl) Target() mgl32.Vec3 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.target
}

func (o *orbitControlsImpl) SetTarget(target mgl32.Vec3) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.target = target
}

func (o *orbitControlsImpl) SetViewportHeight(height float32) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if height > 0 {
		o.viewportHeight = height
	}
}

func (o *orbitControlsImpl) PointerDown(x, y float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.dragging = true
	o.lastX, o.lastY = x, y
}

func (o *orbitControlsImpl) PointerMove(x, y float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.dragging {
		return
	}
	dx := float32(x - o.lastX)
	dy := float32(y - o.lastY)
	o.lastX, o.lastY = x, y

	o.deltaTheta -= 2 * math.Pi * dx * o.rotateSpeed / o.viewportHeight
	o.deltaPhi -= 2 * math.Pi * dy * o.rotateSpeed / o.viewportHeight
}

func (o *orbitControlsImpl) PointerUp() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.dragging = false
}

func (o *orbitControlsImpl) Wheel(deltaY float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.enableZoom || deltaY == 0 {
		return
	}
	zoomScale := float32(math.Pow(0.95, float64(o.zoomSpeed)*math.Abs(deltaY)*0.01))
	if deltaY < 0 {
		o.scale *= zoomScale
	} else {
		o.scale /= zoomScale
	}
}

func (o *orbitControlsImpl) RotateLeft(angle float32) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.deltaTheta -= angle
}

func (o *orbitControlsImpl) RotateUp(angle float32) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.deltaPhi -= angle
}

func (o *orbitControlsImpl) Update() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	offset := o.camera.Position().Sub(o.target)
	radius := offset.Len()
	var theta, phi float32
	if radius > 0 {
		theta = float32(math.Atan2(float64(offset.X()), float64(offset.Z())))
		phi = float32(math.Acos(float64(common.Clamp(offset.Y()/radius, -1, 1))))
	}

	if o.enableDamping {
		theta += o.deltaTheta * o.dampingFactor
		phi += o.deltaPhi * o.dampingFactor
	} else {
		theta += o.deltaTheta
		phi += o.deltaPhi
	}

	phi = common.Clamp(phi, o.minPolar, o.maxPolar)
	phi = common.Clamp(phi, orbitEpsilon, math.Pi-orbitEpsilon)
	radius = common.Clamp(radius*o.scale, o.minDistance, o.maxDistance)

	sinPhi := float32(math.Sin(float64(phi)))
	offset = mgl32.Vec3{
		radius * sinPhi * float32(math.Sin(float64(theta))),
		radius * float32(math.Cos(float64(phi))),
		radius * sinPhi * float32(math.Cos(float64(theta))),
	}

	o.camera.SetPosition(o.target.Add(offset))
	o.camera.LookAt(o.target)

	if o.enableDamping {
		o.deltaTheta *= 1 - o.dampingFactor
		o.deltaPhi *= 1 - o.dampingFactor
	} else {
		o.deltaTheta = 0
		o.deltaPhi = 0
	}
	o.scale = 1

	position := o.camera.Position()
	quaternion := o.camera.Quaternion()
	moved := position.Sub(o.lastPosition).LenSqr() > orbitEpsilon ||
		8*(1-quaternion.Dot(o.lastQuaternion)) > orbitEpsilon
	if moved {
		o.lastPosition = position
		o.lastQuaternion = quaternion
	}
	return moved
}
