package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func newOrbitFixture(options ...OrbitControlsBuilderOption) (Camera, OrbitControls) {
	c := NewCamera(WithPosition(0, 0, 100), WithFar(1000))
	c.LookAt(mgl32.Vec3{})
	return c, NewOrbitControls(c, options...)
}

func TestOrbitUpdateWithoutInputIsStill(t *testing.T) {
	c, o := newOrbitFixture()
	if o.Update() {
		t.Fatal("update without input reported movement")
	}
	if c.Position().Sub(mgl32.Vec3{0, 0, 100}).Len() > 1e-3 {
		t.Fatalf("camera drifted to %v", c.Position())
	}
}

func TestOrbitDampingConvergesToFullAngle(t *testing.T) {
	c, o := newOrbitFixture(WithDamping(true, 0.08))
	o.RotateLeft(-math.Pi / 2)

	for i := 0; i < 400; i++ {
		o.Update()
	}

	p := c.Position()
	if p.Sub(mgl32.Vec3{100, 0, 0}).Len() > 1e-2 {
		t.Fatalf("position = %v, want ~(100,0,0)", p)
	}
	if !approx(p.Len(), 100, 1e-2) {
		t.Fatalf("radius = %v, want 100", p.Len())
	}
}

func TestOrbitDampingIsGradual(t *testing.T) {
	c, o := newOrbitFixture(WithDamping(true, 0.08))
	o.RotateLeft(-1)
	if !o.Update() {
		t.Fatal("first update did not move the camera")
	}
	theta := float32(math.Atan2(float64(c.Position().X()), float64(c.Position().Z())))
	if !approx(theta, 0.08, 1e-4) {
		t.Fatalf("theta after one update = %v, want 0.08", theta)
	}
}

func TestOrbitDistanceClamped(t *testing.T) {
	tests := []struct {
		name   string
		deltaY float64
		want   float32
	}{
		{"zoom in clamps to min", -100000, 10},
		{"zoom out clamps to max", 100000, 600},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, o := newOrbitFixture(WithDistanceBounds(10, 600))
			o.Wheel(tt.deltaY)
			o.Update()
			if d := c.Position().Len(); !approx(d, tt.want, 1e-2) {
				t.Fatalf("distance = %v, want %v", d, tt.want)
			}
		})
	}
}

func TestOrbitWheelDirection(t *testing.T) {
	c, o := newOrbitFixture(WithZoomSpeed(0.8))
	o.Wheel(-100)
	o.Update()
	want := float32(100 * math.Pow(0.95, 0.8))
	if d := c.Position().Len(); !approx(d, want, 1e-2) {
		t.Fatalf("distance after scroll up = %v, want %v", d, want)
	}

	o.Wheel(100)
	o.Update()
	if d := c.Position().Len(); !approx(d, 100, 1e-2) {
		t.Fatalf("distance after scroll back = %v, want 100", d)
	}
}

func TestOrbitZoomDisabled(t *testing.T) {
	c, o := newOrbitFixture(WithZoom(false))
	o.Wheel(-500)
	o.Update()
	if d := c.Position().Len(); !approx(d, 100, 1e-3) {
		t.Fatalf("distance = %v, want 100", d)
	}
}

func TestOrbitDragRotates(t *testing.T) {
	c, o := newOrbitFixture(WithDamping(false, 0), WithRotateSpeed(0.6), WithViewportHeight(600))
	o.PointerDown(100, 100)
	o.PointerMove(150, 100)
	o.PointerUp()
	o.PointerMove(500, 100)
	o.Update()

	want := float32(-2 * math.Pi * 50 * 0.6 / 600)
	theta := float32(math.Atan2(float64(c.Position().X()), float64(c.Position().Z())))
	if !approx(theta, want, 1e-4) {
		t.Fatalf("theta = %v, want %v", theta, want)
	}
}

func TestOrbitPolarClamp(t *testing.T) {
	c, o := newOrbitFixture(WithDamping(false, 0))
	o.RotateUp(10)
	o.Update()
	p := c.Position()
	for _, v := range p {
		if math.IsNaN(float64(v)) {
			t.Fatalf("position has NaN: %v", p)
		}
	}
	if p.Y() <= 0 || !approx(p.Len(), 100, 1e-2) {
		t.Fatalf("position = %v, want near the +Y pole at radius 100", p)
	}
	if d := c.WorldDirection(); math.IsNaN(float64(d.X())) {
		t.Fatalf("direction has NaN: %v", d)
	}
}
