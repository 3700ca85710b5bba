package gallery

import (
	"math"
	"math/rand"
	"sync"

	"github.com/Carmen-Shannon/oxy-gallery/common"
	"github.com/Carmen-Shannon/oxy-gallery/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// PlaneFactory turns decoded textures into planes scattered on a spherical shell.
// Randomness comes from an injected source so placement is reproducible in tests.
type PlaneFactory struct {
	mu  *sync.Mutex
	cfg Config
	rng *rand.Rand
}

// NewPlaneFactory creates a factory drawing from rng.
// Panics if rng is nil.
//
// Parameters:
//   - cfg: supplies the sphere radius and the initial scale
//   - rng: the random source for placement and tilt
//
// Returns:
//   - *PlaneFactory: the factory
func NewPlaneFactory(cfg Config, rng *rand.Rand) *PlaneFactory {
	if rng == nil {
		panic("gallery: plane factory requires a random source")
	}
	return &PlaneFactory{mu: &sync.Mutex{}, cfg: cfg, rng: rng}
}

// NewPlane builds a plane for tex: height 10, width 10*aspect, placed at radius
// R*(0.6+0.8U) with polar angle acos(2V-1) and uniform azimuth, tilted by a random
// Euler XYZ rotation, scaled to MinScale, with opacity unset. The material is
// transparent and depth tested without depth writes.
//
// Parameters:
//   - tex: the decoded texture
//
// Returns:
//   - scene.Plane: the new plane, not yet added to any group
func (f *PlaneFactory) NewPlane(tex common.TextureStagingData) scene.Plane {
	f.mu.Lock()
	phi := math.Acos(2*f.rng.Float64() - 1)
	theta := 2 * math.Pi * f.rng.Float64()
	r := float64(f.cfg.SphereRadius) * (0.6 + 0.8*f.rng.Float64())
	tiltX := f.rng.Float64()*0.6 - 0.3
	tiltY := f.rng.Float64() * math.Pi
	tiltZ := f.rng.Float64()*0.2 - 0.1
	f.mu.Unlock()

	position := mgl32.Vec3{
		float32(r * math.Sin(phi) * math.Cos(theta)),
		float32(r * math.Sin(phi) * math.Sin(theta)),
		float32(r * math.Cos(phi)),
	}

	return scene.NewPlane(
		scene.Material{
			Texture:     tex,
			Transparent: true,
			DepthTest:   true,
			DepthWrite:  false,
		},
		scene.WithPlanePosition(position),
		scene.WithTilt(float32(tiltX), float32(tiltY), float32(tiltZ)),
		scene.WithPlaneScale(f.cfg.MinScale),
	)
}
