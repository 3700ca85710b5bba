package common

import (
	"github.com/go-gl/mathgl/mgl32"
)

// LookRotation returns the rotation whose local +Z axis points from target toward eye,
// with its local +Y axis as close to up as possible.
//
// Cameras pass (position, target) so their -Z axis looks at the target; flat surfaces pass
// (viewer, position) so their +Z face points at the viewer. When up is parallel to the
// view axis the axis is nudged slightly so the basis stays well defined.
//
// Parameters:
//   - eye: the point the +Z axis points toward
//   - target: the point the rotation is anchored at
//   - up: the desired up direction (typically 0,1,0)
//
// Returns:
//   - mgl32.Quat: the unit rotation quaternion
func LookRotation(eye, target, up mgl32.Vec3) mgl32.Quat {
	z := eye.Sub(target)
	if z.LenSqr() == 0 {
		z = mgl32.Vec3{0, 0, 1}
	}
	z = z.Normalize()

	x := up.Cross(z)
	if x.LenSqr() == 0 {
		if abs32(up.Z()) == 1 {
			z[0] += 0.0001
		} else {
			z[2] += 0.0001
		}
		z = z.Normalize()
		x = up.Cross(z)
	}
	x = x.Normalize()
	y := z.Cross(x)

	basis := mgl32.Mat4FromCols(
		x.Vec4(0),
		y.Vec4(0),
		z.Vec4(0),
		mgl32.Vec4{0, 0, 0, 1},
	)
	return mgl32.Mat4ToQuat(basis).Normalize()
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
