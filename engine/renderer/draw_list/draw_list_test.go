package draw_list

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-gallery/common"
	"github.com/Carmen-Shannon/oxy-gallery/engine/camera"
	"github.com/Carmen-Shannon/oxy-gallery/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

func newCamera() camera.Camera {
	c := camera.NewCamera(camera.WithPosition(0, 0, 50), camera.WithFar(1000))
	c.LookAt(mgl32.Vec3{})
	return c
}

func newPlane(pos mgl32.Vec3, transparent bool) scene.Plane {
	tex := common.TextureStagingData{Pixels: make([]byte, 4), Width: 1, Height: 1}
	return scene.NewPlane(scene.Material{Texture: tex, Transparent: transparent, DepthTest: true},
		scene.WithPlanePosition(pos))
}

func TestBuildCullsPlanesOutsideFrustum(t *testing.T) {
	cam := newCamera()
	visible := newPlane(mgl32.Vec3{0, 0, 0}, true)
	behind := newPlane(mgl32.Vec3{0, 0, 80}, true)
	farLeft := newPlane(mgl32.Vec3{-500, 0, 0}, true)

	items := Build([]scene.Plane{visible, behind, farLeft}, mgl32.Ident4(), cam.ViewProjectionMatrix(), cam.Position())
	if len(items) != 1 || items[0].Plane != visible {
		t.Fatalf("got %d items, want only the plane in front of the camera", len(items))
	}
}

func TestBuildSortsTransparentBackToFront(t *testing.T) {
	cam := newCamera()
	near := newPlane(mgl32.Vec3{0, 0, 20}, true)
	mid := newPlane(mgl32.Vec3{0, 0, 0}, true)
	far := newPlane(mgl32.Vec3{0, 0, -40}, true)

	items := Build([]scene.Plane{near, far, mid}, mgl32.Ident4(), cam.ViewProjectionMatrix(), cam.Position())
	want := []scene.Plane{far, mid, near}
	if len(items) != len(want) {
		t.Fatalf("got %d items, want %d", len(items), len(want))
	}
	for i := range want {
		if items[i].Plane != want[i] {
			t.Fatalf("item %d is at distance %v, want order far, mid, near", i, math.Sqrt(float64(items[i].DistanceSqr)))
		}
	}
}

func TestBuildDrawsOpaqueFirst(t *testing.T) {
	cam := newCamera()
	glass := newPlane(mgl32.Vec3{0, 0, -40}, true)
	wall := newPlane(mgl32.Vec3{0, 0, 20}, false)

	items := Build([]scene.Plane{glass, wall}, mgl32.Ident4(), cam.ViewProjectionMatrix(), cam.Position())
	if len(items) != 2 || items[0].Plane != wall || items[1].Plane != glass {
		t.Fatal("opaque planes must precede transparent ones")
	}
}

func TestBuildOpacity(t *testing.T) {
	cam := newCamera()
	unset := newPlane(mgl32.Vec3{0, 0, 0}, true)
	faded := newPlane(mgl32.Vec3{0, 0, 5}, true)
	faded.SetOpacity(0)
	half := newPlane(mgl32.Vec3{0, 0, -5}, true)
	half.SetOpacity(0.5)

	items := Build([]scene.Plane{unset, faded, half}, mgl32.Ident4(), cam.ViewProjectionMatrix(), cam.Position())
	if len(items) != 2 {
		t.Fatalf("got %d items, want fully faded plane dropped", len(items))
	}
	if items[0].Plane != half || items[0].Opacity != 0.5 {
		t.Fatalf("first item opacity = %v, want 0.5", items[0].Opacity)
	}
	if items[1].Plane != unset || items[1].Opacity != 1 {
		t.Fatalf("unset opacity = %v, want 1", items[1].Opacity)
	}
}

func TestBuildAppliesGroupRotation(t *testing.T) {
	cam := newCamera()
	// Behind the camera until the group turns half way round.
	p := newPlane(mgl32.Vec3{0, 0, 80}, true)
	group := mgl32.HomogRotate3DY(math.Pi)

	items := Build([]scene.Plane{p}, group, cam.ViewProjectionMatrix(), cam.Position())
	if len(items) != 1 {
		t.Fatal("rotated plane should be in view")
	}
	center := items[0].World.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	if center.Sub(mgl32.Vec3{0, 0, -80}).Len() > 1e-3 {
		t.Fatalf("world center = %v, want (0,0,-80)", center)
	}
}
