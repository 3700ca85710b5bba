package gallery

import (
	"math"

	"github.com/Carmen-Shannon/oxy-gallery/common"
	"github.com/Carmen-Shannon/oxy-gallery/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

var worldUp = mgl32.Vec3{0, 1, 0}

// TargetScale maps a camera distance to the scale a plane eases toward:
// MinScale at or beyond FadeDistance, growing with proximity^ScaleExponent to MaxScale at d = 0.
//
// Parameters:
//   - cfg: supplies the scale bounds, fade distance and exponent
//   - d: distance from the camera
//
// Returns:
//   - float32: the target scale, within [MinScale, MaxScale]
func TargetScale(cfg Config, d float32) float32 {
	proximity := max(0, (cfg.FadeDistance-d)/cfg.FadeDistance)
	curve := float32(math.Pow(float64(proximity), float64(cfg.ScaleExponent)))
	return cfg.MinScale + (cfg.MaxScale-cfg.MinScale)*curve
}

// NearFactor maps a camera distance to the opacity a plane eases toward:
// 1 below FocusDistance, 0 at or beyond FadeDistance, linear between.
//
// Parameters:
//   - cfg: supplies the focus and fade distances
//   - d: distance from the camera
//
// Returns:
//   - float32: the target opacity, within [0, 1]
func NearFactor(cfg Config, d float32) float32 {
	if d < cfg.FocusDistance {
		return 1
	}
	return common.Clamp(1-(d-cfg.FocusDistance)/(cfg.FadeDistance-cfg.FocusDistance), 0, 1)
}

// UpdatePlane eases one plane's scale and opacity toward their distance targets and
// turns it to face the camera.
//
// The distance uses the plane's local position. The facing rotation is computed in
// world space and expressed relative to parent, so it overwrites the creation tilt.
//
// Parameters:
//   - cfg: the gallery tunables
//   - p: the plane to update
//   - cameraPos: camera position in world space
//   - parent: world rotation of the group holding p
func UpdatePlane(cfg Config, p scene.Plane, cameraPos mgl32.Vec3, parent mgl32.Quat) {
	d := cameraPos.Sub(p.Position()).Len()

	scale := common.Lerp(p.Scale(), TargetScale(cfg, d), cfg.Smoothing)
	p.SetScale(common.Clamp(scale, cfg.MinScale, cfg.MaxScale))

	opacity, _ := p.Opacity()
	p.SetOpacity(common.Lerp(opacity, NearFactor(cfg, d), cfg.Smoothing))

	worldPos := parent.Rotate(p.Position())
	facing := common.LookRotation(cameraPos, worldPos, worldUp)
	p.SetRotation(parent.Inverse().Mul(facing).Normalize())
}

// frame runs one animation step: tumble the group, update every plane present at
// the start of the frame, advance the orbit controls and draw.
func (a *App) frame() {
	group := a.scene.Group()
	group.RotateY(a.cfg.TumbleSpeed)

	cameraPos := a.camera.Position()
	parent := group.Quaternion()
	for _, p := range group.Snapshot() {
		UpdatePlane(a.cfg, p, cameraPos, parent)
	}

	a.controls.Update()

	if err := a.renderer.Render(a.scene, a.camera); err != nil {
		a.logger.Printf("[Gallery] render failed: %v", err)
	}
	a.frames.Add(1)
}
