package camera

import "github.com/go-gl/mathgl/mgl32"

type OrbitControlsBuilderOption func(*orbitControlsImpl)

// WithDamping enables or disables inertia and sets the damping factor.
//
// Parameters:
//   - enabled: whether pending deltas decay over several updates
//   - factor: fraction of the pending delta applied per update, in (0, 1]
//
// Returns:
//   - OrbitControlsBuilderOption: functional option to configure damping
func WithDamping(enabled bool, factor float32) OrbitControlsBuilderOption {
	return func(o *orbitControlsImpl) {
		o.enableDamping = enabled
		if factor > 0 && factor <= 1 {
			o.dampingFactor = factor
		}
	}
}

// WithDistanceBounds clamps the camera's distance from the target.
//
// Parameters:
//   - min: minimum distance
//   - max: maximum distance
//
// Returns:
//   - OrbitControlsBuilderOption: functional option to set the distance range
func WithDistanceBounds(min, max float32) OrbitControlsBuilderOption {
	return func(o *orbitControlsImpl) {
		o.minDistance = min
		o.maxDistance = max
	}
}

// WithPolarBounds clamps the polar angle measured from the up axis.
//
// Parameters:
//   - min: minimum polar angle in radians
//   - max: maximum polar angle in radians
//
// Returns:
//   - OrbitControlsBuilderOption: functional option to set the polar range
func WithPolarBounds(min, max float32) OrbitControlsBuilderOption {
	return func(o *orbitControlsImpl) {
		o.minPolar = min
		o.maxPolar = max
	}
}

// WithRotateSpeed scales drag-to-rotation conversion.
func WithRotateSpeed(speed float32) OrbitControlsBuilderOption {
	return func(o *orbitControlsImpl) {
		o.rotateSpeed = speed
	}
}

// WithZoomSpeed scales the wheel dolly step.
func WithZoomSpeed(speed float32) OrbitControlsBuilderOption {
	return func(o *orbitControlsImpl) {
		o.zoomSpeed = speed
	}
}

// WithZoom enables or disables wheel dolly.
func WithZoom(enabled bool) OrbitControlsBuilderOption {
	return func(o *orbitControlsImpl) {
		o.enableZoom = enabled
	}
}

// WithOrbitTarget sets the initial orbit target.
func WithOrbitTarget(target mgl32.Vec3) OrbitControlsBuilderOption {
	return func(o *orbitControlsImpl) {
		o.target = target
	}
}

// WithViewportHeight sets the initial viewport height used for drag conversion.
func WithViewportHeight(height float32) OrbitControlsBuilderOption {
	return func(o *orbitControlsImpl) {
		if height > 0 {
			o.viewportHeight = height
		}
	}
}
