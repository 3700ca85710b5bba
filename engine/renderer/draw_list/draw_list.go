// Package draw_list decides which planes are drawn in a frame and in what order.
// It is pure CPU work so the ordering rules can be tested without a GPU.
package draw_list

import (
	"sort"

	"github.com/Carmen-Shannon/oxy-gallery/common"
	"github.com/Carmen-Shannon/oxy-gallery/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// Item is one plane ready to draw.
type Item struct {
	// Plane is the scene node being drawn.
	Plane scene.Plane
	// World is the parent group matrix multiplied by the plane's model matrix.
	World mgl32.Mat4
	// Opacity is the plane's opacity, or 1 when it has never been written.
	Opacity float32
	// DistanceSqr is the squared distance from the camera to the plane's world center.
	DistanceSqr float32
}

// Build culls planes whose bounding sphere lies outside the view frustum and orders the
// rest: opaque planes first, front to back, then transparent planes back to front.
// Transparent planes at zero opacity are dropped. Ties keep snapshot order.
//
// Parameters:
//   - planes: the group snapshot for this frame
//   - group: the parent group's world matrix
//   - viewProj: the camera's column-major view-projection matrix
//   - cameraPos: the camera position in world space
//
// Returns:
//   - []Item: the planes to draw in draw order
func Build(planes []scene.Plane, group mgl32.Mat4, viewProj [16]float32, cameraPos mgl32.Vec3) []Item {
	frustum := common.ExtractFrustumFromMatrix(viewProj[:])

	opaque := make([]Item, 0, len(planes))
	transparent := make([]Item, 0, len(planes))
	for _, p := range planes {
		center := group.Mul4x1(p.Position().Vec4(1)).Vec3()
		if !frustum.IntersectsSphere([3]float32(center), p.BoundingRadius()) {
			continue
		}

		opacity, set := p.Opacity()
		if !set {
			opacity = 1
		}
		item := Item{
			Plane:       p,
			World:       group.Mul4(p.ModelMatrix()),
			Opacity:     opacity,
			DistanceSqr: center.Sub(cameraPos).LenSqr(),
		}

		if p.Material().Transparent {
			if opacity <= 0 {
				continue
			}
			transparent = append(transparent, item)
		} else {
			opaque = append(opaque, item)
		}
	}

	sort.SliceStable(opaque, func(i, j int) bool {
		return opaque[i].DistanceSqr < opaque[j].DistanceSqr
	})
	sort.SliceStable(transparent, func(i, j int) bool {
		return transparent[i].DistanceSqr > transparent[j].DistanceSqr
	})
	return append(opaque, transparent...)
}
