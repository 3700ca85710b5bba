package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func approx(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) <= eps
}

func TestWorldDirectionAfterLookAt(t *testing.T) {
	tests := []struct {
		name   string
		pos    mgl32.Vec3
		target mgl32.Vec3
	}{
		{"down -z", mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}},
		{"along +x", mgl32.Vec3{-5, 0, 0}, mgl32.Vec3{}},
		{"oblique", mgl32.Vec3{3, 4, 12}, mgl32.Vec3{1, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCamera(WithPosition(tt.pos[0], tt.pos[1], tt.pos[2]))
			c.LookAt(tt.target)
			want := tt.target.Sub(tt.pos).Normalize()
			got := c.WorldDirection()
			if got.Sub(want).Len() > 1e-4 {
				t.Fatalf("direction = %v, want %v", got, want)
			}
		})
	}
}

func TestSetAspectUpdatesProjection(t *testing.T) {
	c := NewCamera(WithFov(float32(math.Pi/3)), WithAspect(1))
	before := c.ProjectionMatrix()
	c.SetAspect(2)
	after := c.ProjectionMatrix()

	if c.Aspect() != 2 {
		t.Fatalf("aspect = %v, want 2", c.Aspect())
	}
	if !approx(after[0], before[0]/2, 1e-5) {
		t.Fatalf("x scale = %v, want %v", after[0], before[0]/2)
	}
	if after[5] != before[5] {
		t.Fatalf("y scale changed: %v -> %v", before[5], after[5])
	}
}

func TestViewProjectionCentersTarget(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 50), WithFar(1000))
	c.LookAt(mgl32.Vec3{})
	vp := c.ViewProjectionMatrix()
	m := mgl32.Mat4(vp)
	clip := m.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !approx(clip.X()/clip.W(), 0, 1e-5) || !approx(clip.Y()/clip.W(), 0, 1e-5) {
		t.Fatalf("target projected off-center: %v", clip)
	}
	if z := clip.Z() / clip.W(); z < 0 || z > 1 {
		t.Fatalf("target depth %v outside [0,1]", z)
	}
}
