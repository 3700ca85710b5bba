package gallery

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-gallery/common"
	"github.com/Carmen-Shannon/oxy-gallery/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

func TestNearFactor(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		d    float32
		want float32
	}{
		{0, 1},
		{17.9, 1},
		{18, 1},
		{39, 0.5},
		{60, 0},
		{200, 0},
	}
	for _, tt := range tests {
		if got := NearFactor(cfg, tt.d); !common.ApproxEqual(got, tt.want, 1e-5) {
			t.Errorf("NearFactor(%v) = %v, want %v", tt.d, got, tt.want)
		}
	}
}

func TestTargetScale(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		d    float32
		want float32
	}{
		{0, cfg.MaxScale},
		{60, cfg.MinScale},
		{500, cfg.MinScale},
		{30, cfg.MinScale + (cfg.MaxScale-cfg.MinScale)*float32(math.Pow(0.5, 1.6))},
	}
	for _, tt := range tests {
		if got := TargetScale(cfg, tt.d); !common.ApproxEqual(got, tt.want, 1e-5) {
			t.Errorf("TargetScale(%v) = %v, want %v", tt.d, got, tt.want)
		}
	}
}

func TestUpdatePlaneEasesTowardTargets(t *testing.T) {
	cfg := DefaultConfig()
	p := scene.NewPlane(scene.Material{}, scene.WithPlanePosition(mgl32.Vec3{0, 0, 0}), scene.WithPlaneScale(cfg.MinScale))
	cam := mgl32.Vec3{0, 0, 10}

	UpdatePlane(cfg, p, cam, mgl32.QuatIdent())

	o, set := p.Opacity()
	if !set || !common.ApproxEqual(o, cfg.Smoothing, 1e-6) {
		t.Fatalf("opacity after one frame = %v (set %v), want %v", o, set, cfg.Smoothing)
	}
	wantScale := cfg.MinScale + (TargetScale(cfg, 10)-cfg.MinScale)*cfg.Smoothing
	if !common.ApproxEqual(p.Scale(), wantScale, 1e-5) {
		t.Fatalf("scale = %v, want %v", p.Scale(), wantScale)
	}

	for i := 0; i < 500; i++ {
		UpdatePlane(cfg, p, cam, mgl32.QuatIdent())
		if s := p.Scale(); s < cfg.MinScale || s > cfg.MaxScale {
			t.Fatalf("frame %d: scale %v out of bounds", i, s)
		}
		if o, _ := p.Opacity(); o < 0 || o > 1 {
			t.Fatalf("frame %d: opacity %v out of bounds", i, o)
		}
	}
	if o, _ := p.Opacity(); !common.ApproxEqual(o, 1, 1e-3) {
		t.Fatalf("opacity converged to %v, want 1", o)
	}
}

func TestUpdatePlaneFarPlaneFadesOut(t *testing.T) {
	cfg := DefaultConfig()
	p := scene.NewPlane(scene.Material{}, scene.WithPlanePosition(mgl32.Vec3{0, 0, -200}), scene.WithPlaneScale(cfg.MaxScale))
	p.SetOpacity(1)
	for i := 0; i < 300; i++ {
		UpdatePlane(cfg, p, mgl32.Vec3{0, 0, 10}, mgl32.QuatIdent())
	}
	if o, _ := p.Opacity(); o > 1e-3 {
		t.Fatalf("opacity = %v, want ~0", o)
	}
	if !common.ApproxEqual(p.Scale(), cfg.MinScale, 1e-3) {
		t.Fatalf("scale = %v, want ~%v", p.Scale(), cfg.MinScale)
	}
}

func TestUpdatePlaneFacesCameraThroughParent(t *testing.T) {
	cfg := DefaultConfig()
	p := scene.NewPlane(scene.Material{}, scene.WithPlanePosition(mgl32.Vec3{20, 0, 0}), scene.WithTilt(0.2, 1, 0.1))
	parent := mgl32.QuatRotate(0.7, mgl32.Vec3{0, 1, 0})
	cam := mgl32.Vec3{0, 0, 100}

	UpdatePlane(cfg, p, cam, parent)

	// The plane's front is +Z in local space; in world space it must point at the camera.
	worldRot := parent.Mul(p.Rotation())
	front := worldRot.Rotate(mgl32.Vec3{0, 0, 1})
	toCam := cam.Sub(parent.Rotate(p.Position())).Normalize()
	if front.Dot(toCam) < 0.999 {
		t.Fatalf("front %v does not face camera direction %v", front, toCam)
	}
}
