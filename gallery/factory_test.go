package gallery

import (
	"math/rand"
	"testing"

	"github.com/Carmen-Shannon/oxy-gallery/common"
)

func TestPlaneFactoryPlacement(t *testing.T) {
	cfg := DefaultConfig()
	f := NewPlaneFactory(cfg, rand.New(rand.NewSource(7)))
	tex := common.TextureStagingData{Width: 512, Height: 256}

	for i := 0; i < 500; i++ {
		p := f.NewPlane(tex)
		r := p.Position().Len()
		if r < 0.6*cfg.SphereRadius-1e-3 || r > 1.4*cfg.SphereRadius+1e-3 {
			t.Fatalf("plane %d radius %v outside [%v, %v]", i, r, 0.6*cfg.SphereRadius, 1.4*cfg.SphereRadius)
		}
		if p.Scale() != cfg.MinScale {
			t.Fatalf("plane %d scale = %v, want %v", i, p.Scale(), cfg.MinScale)
		}
		if _, set := p.Opacity(); set {
			t.Fatalf("plane %d opacity set at creation", i)
		}
		if p.Width() != 20 || p.Height() != 10 {
			t.Fatalf("plane %d size = %vx%v, want 20x10", i, p.Width(), p.Height())
		}
		m := p.Material()
		if !m.Transparent || !m.DepthTest || m.DepthWrite {
			t.Fatalf("plane %d material = %+v", i, m)
		}
	}
}

func TestPlaneFactoryIsDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	a := NewPlaneFactory(cfg, rand.New(rand.NewSource(42)))
	b := NewPlaneFactory(cfg, rand.New(rand.NewSource(42)))
	for i := 0; i < 10; i++ {
		pa, pb := a.NewPlane(common.TextureStagingData{}), b.NewPlane(common.TextureStagingData{})
		if pa.Position() != pb.Position() || pa.Tilt() != pb.Tilt() {
			t.Fatalf("plane %d differs between equally seeded factories", i)
		}
	}
}

func TestPlaneFactoryRequiresRand(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for nil random source")
		}
	}()
	NewPlaneFactory(DefaultConfig(), nil)
}
