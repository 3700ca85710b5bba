package scene

import "github.com/go-gl/mathgl/mgl32"

// PlaneBuilderOption is a functional option for configuring a Plane during construction.
type PlaneBuilderOption func(*plane)

// WithPlanePosition sets the plane's initial local position.
//
// Parameters:
//   - pos: position relative to the owning group
//
// Returns:
//   - PlaneBuilderOption: functional option to set the position
func WithPlanePosition(pos mgl32.Vec3) PlaneBuilderOption {
	return func(p *plane) {
		p.position = pos
	}
}

// WithTilt sets the plane's tilt from XYZ Euler angles in radians.
// The tilt also becomes the plane's initial rotation.
//
// Parameters:
//   - x, y, z: Euler angles applied in X, Y, Z order
//
// Returns:
//   - PlaneBuilderOption: functional option to set the tilt
func WithTilt(x, y, z float32) PlaneBuilderOption {
	return func(p *plane) {
		p.tilt = mgl32.AnglesToQuat(x, y, z, mgl32.XYZ)
	}
}

// WithPlaneScale sets the initial uniform scale.
func WithPlaneScale(s float32) PlaneBuilderOption {
	return func(p *plane) {
		p.scale = s
	}
}

// WithPlaneHeight overrides the unscaled plane height. Width still follows the texture aspect.
func WithPlaneHeight(h float32) PlaneBuilderOption {
	return func(p *plane) {
		if h > 0 {
			p.height = h
		}
	}
}
