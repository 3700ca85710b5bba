package scene

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-gallery/common"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultPlaneHeight is the base height of a plane in world units before scaling.
const DefaultPlaneHeight float32 = 10

// Material describes how a plane's texture is drawn.
type Material struct {
	Texture     common.TextureStagingData
	Transparent bool
	DepthTest   bool
	DepthWrite  bool
	// Lit multiplies the texel color by the scene's ambient light.
	Lit bool
}

type plane struct {
	mu *sync.Mutex

	id       uint64
	width    float32
	height   float32
	position mgl32.Vec3
	tilt     mgl32.Quat
	rotation mgl32.Quat
	scale    float32

	opacity    float32
	opacitySet bool

	material Material
}

// Plane is a flat textured quad in a Group. Its base width follows the texture's
// aspect ratio so images are never distorted; scale applies uniformly on all axes.
type Plane interface {
	// ID returns the identifier assigned when the plane was added to a Group.
	//
	// Returns:
	//   - uint64: the plane ID, 0 before it is added
	ID() uint64

	// SetID sets the plane's identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// Width returns the unscaled width in world units.
	Width() float32

	// Height returns the unscaled height in world units.
	Height() float32

	// Position returns the plane's position relative to its group.
	//
	// Returns:
	//   - mgl32.Vec3: local position
	Position() mgl32.Vec3

	// SetPosition sets the plane's position relative to its group.
	//
	// Parameters:
	//   - p: local position
	SetPosition(p mgl32.Vec3)

	// Tilt returns the random tilt the plane was created with.
	Tilt() mgl32.Quat

	// Rotation returns the plane's local orientation.
	Rotation() mgl32.Quat

	// SetRotation replaces the plane's local orientation.
	//
	// Parameters:
	//   - q: local orientation
	SetRotation(q mgl32.Quat)

	// Scale returns the current uniform scale factor.
	Scale() float32

	// SetScale sets the uniform scale factor applied to all three axes.
	//
	// Parameters:
	//   - s: scale factor
	SetScale(s float32)

	// Opacity returns the current opacity and whether it has been set.
	// An unset opacity reads as 0.
	//
	// Returns:
	//   - float32: opacity in [0, 1]
	//   - bool: true once SetOpacity has been called
	Opacity() (float32, bool)

	// SetOpacity sets the opacity, clamped to [0, 1].
	//
	// Parameters:
	//   - o: opacity
	SetOpacity(o float32)

	// Material returns a copy of the plane's material.
	Material() Material

	// ModelMatrix returns the local transform: translate * rotate * scale, with the
	// scale including the plane's base width and height so it maps a unit quad.
	//
	// Returns:
	//   - mgl32.Mat4: column-major local matrix
	ModelMatrix() mgl32.Mat4

	// BoundingRadius returns the radius of a sphere around the scaled plane.
	BoundingRadius() float32
}

var _ Plane = &plane{}

// NewPlane creates a plane sized for its texture: height DefaultPlaneHeight and
// width height*aspect. The initial rotation is the tilt.
//
// Parameters:
//   - material: the plane's material, including its decoded texture
//   - options: functional options to configure the plane
//
// Returns:
//   - Plane: the newly created plane
func NewPlane(material Material, options ...PlaneBuilderOption) Plane {
	p := &plane{
		mu:       &sync.Mutex{},
		height:   DefaultPlaneHeight,
		tilt:     mgl32.QuatIdent(),
		scale:    1,
		material: material,
	}
	for _, option := range options {
		option(p)
	}
	p.width = p.height * material.Texture.Aspect()
	p.rotation = p.tilt
	return p
}

func (p *plane) ID() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.id
}

func (p *plane) SetID(id uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.id = id
}

func (p *plane) Width() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.width
}

func (p *plane) Height() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.height
}

func (p *plane) Position() mgl32.Vec3 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.position
}

func (p *plane) SetPosition(pos mgl32.Vec3) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.position = pos
}

func (p *plane) Tilt() mgl32.Quat {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tilt
}

func (p *plane) Rotation() mgl32.Quat {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rotation
}

func (p *plane) SetRotation(q mgl32.Quat) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rotation = q
}

func (p *plane) Scale() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.scale
}

func (p *plane) SetScale(s float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scale = s
}

func (p *plane) Opacity() (float32, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.opacity, p.opacitySet
}

func (p *plane) SetOpacity(o float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.opacity = common.Clamp(o, 0, 1)
	p.opacitySet = true
}

func (p *plane) Material() Material {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.material
}

func (p *plane) ModelMatrix() mgl32.Mat4 {
	p.mu.Lock()
	defer p.mu.Unlock()
	t := mgl32.Translate3D(p.position.X(), p.position.Y(), p.position.Z())
	r := p.rotation.Mat4()
	s := mgl32.Scale3D(p.width*p.scale, p.height*p.scale, p.scale)
	return t.Mul4(r).Mul4(s)
}

func (p *plane) BoundingRadius() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return 0.5 * p.scale * mgl32.Vec2{p.width, p.height}.Len()
}
