package scene

import (
	"math"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-gallery/common"
	"github.com/go-gl/mathgl/mgl32"
)

func texture(w, h uint32) common.TextureStagingData {
	return common.TextureStagingData{Pixels: make([]byte, w*h*4), Width: w, Height: h}
}

func TestPlaneSizeFollowsAspect(t *testing.T) {
	tests := []struct {
		name      string
		tex       common.TextureStagingData
		wantWidth float32
	}{
		{"wide", texture(512, 256), 20},
		{"tall", texture(100, 200), 5},
		{"square", texture(64, 64), 10},
		{"zero dims default to square", common.TextureStagingData{}, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlane(Material{Texture: tt.tex})
			if p.Height() != DefaultPlaneHeight {
				t.Fatalf("height = %v, want %v", p.Height(), DefaultPlaneHeight)
			}
			if p.Width() != tt.wantWidth {
				t.Fatalf("width = %v, want %v", p.Width(), tt.wantWidth)
			}
		})
	}
}

func TestPlaneOpacityUnsetUntilWritten(t *testing.T) {
	p := NewPlane(Material{})
	if o, set := p.Opacity(); set || o != 0 {
		t.Fatalf("opacity = %v (set %v), want unset 0", o, set)
	}
	p.SetOpacity(1.5)
	if o, set := p.Opacity(); !set || o != 1 {
		t.Fatalf("opacity = %v (set %v), want clamped 1", o, set)
	}
	p.SetOpacity(-1)
	if o, _ := p.Opacity(); o != 0 {
		t.Fatalf("opacity = %v, want clamped 0", o)
	}
}

func TestPlaneTiltIsInitialRotation(t *testing.T) {
	p := NewPlane(Material{}, WithTilt(0.1, 1.2, -0.05))
	if !p.Rotation().ApproxEqual(p.Tilt()) {
		t.Fatalf("rotation %v != tilt %v", p.Rotation(), p.Tilt())
	}
	if p.Tilt().ApproxEqual(mgl32.QuatIdent()) {
		t.Fatal("tilt was not applied")
	}
}

func TestPlaneModelMatrixMapsUnitQuad(t *testing.T) {
	p := NewPlane(Material{Texture: texture(200, 100)},
		WithPlanePosition(mgl32.Vec3{1, 2, 3}),
		WithPlaneScale(2),
	)
	corner := p.ModelMatrix().Mul4x1(mgl32.Vec4{0.5, 0.5, 0, 1}).Vec3()
	want := mgl32.Vec3{1 + 20, 2 + 10, 3}
	if corner.Sub(want).Len() > 1e-4 {
		t.Fatalf("corner = %v, want %v", corner, want)
	}
	if r := p.BoundingRadius(); !common.ApproxEqual(r, 0.5*2*float32(math.Hypot(20, 10)), 1e-3) {
		t.Fatalf("bounding radius = %v", r)
	}
}

func TestGroupAppendOnlySnapshot(t *testing.T) {
	g := NewGroup()
	first := NewPlane(Material{})
	if id := g.Add(first); id != 1 || first.ID() != 1 {
		t.Fatalf("first id = %d", id)
	}
	snap := g.Snapshot()
	g.Add(NewPlane(Material{}))

	if len(snap) != 1 {
		t.Fatalf("snapshot grew to %d after Add", len(snap))
	}
	if g.Len() != 2 {
		t.Fatalf("len = %d, want 2", g.Len())
	}
	if g.Snapshot()[0] != first {
		t.Fatal("insertion order not preserved")
	}
}

func TestGroupConcurrentAdd(t *testing.T) {
	g := NewGroup()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Add(NewPlane(Material{}))
			_ = g.Snapshot()
		}()
	}
	wg.Wait()

	seen := map[uint64]bool{}
	for _, p := range g.Snapshot() {
		if seen[p.ID()] {
			t.Fatalf("duplicate id %d", p.ID())
		}
		seen[p.ID()] = true
	}
	if len(seen) != 50 {
		t.Fatalf("got %d planes, want 50", len(seen))
	}
}

func TestGroupYawWraps(t *testing.T) {
	g := NewGroup()
	const step = 0.0009
	const frames = 20000
	for i := 0; i < frames; i++ {
		g.RotateY(step)
	}
	want := float32(math.Mod(step*frames, 2*math.Pi))
	if !common.ApproxEqual(g.Yaw(), want, 1e-2) {
		t.Fatalf("yaw = %v, want %v", g.Yaw(), want)
	}
	g.SetYaw(-math.Pi / 2)
	if !common.ApproxEqual(g.Yaw(), 3*math.Pi/2, 1e-5) {
		t.Fatalf("negative yaw not wrapped: %v", g.Yaw())
	}
}

func TestSceneDefaults(t *testing.T) {
	s := NewScene(WithAmbientLight(AmbientLight{Color: [3]float32{1, 1, 1}, Intensity: 0.9}))
	if s.Group() == nil {
		t.Fatal("scene has no group")
	}
	if r := s.AmbientLight().Radiance(); r != [3]float32{0.9, 0.9, 0.9} {
		t.Fatalf("radiance = %v", r)
	}
}
