package renderer

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"
	"unsafe"
)

func TestUniformLayouts(t *testing.T) {
	cam := GPUCameraUniform{}
	plane := GPUPlaneUniform{}
	if cam.Size() != 80 || len(cam.Marshal()) != 80 {
		t.Fatalf("camera uniform size = %d, want 80", cam.Size())
	}
	if plane.Size() != 80 || len(plane.Marshal()) != 80 {
		t.Fatalf("plane uniform size = %d, want 80", plane.Size())
	}
	if got := unsafe.Sizeof(GPUVertex{}); got != 20 {
		t.Fatalf("vertex stride = %d, want 20", got)
	}
}

func TestPlaneUniformMarshalOffsets(t *testing.T) {
	u := GPUPlaneUniform{Params: [4]float32{0.25, 1, 0, 0}}
	u.Model[12] = 7
	buf := u.Marshal()

	read := func(off int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off : off+4]))
	}
	if got := read(48); got != 7 {
		t.Fatalf("model[12] = %v, want 7", got)
	}
	if got := read(64); got != 0.25 {
		t.Fatalf("opacity = %v, want 0.25", got)
	}
	if got := read(68); got != 1 {
		t.Fatalf("lit = %v, want 1", got)
	}
}

func TestQuadIsUnitSquare(t *testing.T) {
	for _, v := range quadVertices {
		for _, c := range v.Position[:2] {
			if c != -0.5 && c != 0.5 {
				t.Fatalf("vertex %v outside unit square", v.Position)
			}
		}
		// top edge samples the first image row
		if v.Position[1] > 0 && v.TexCoord[1] != 0 {
			t.Fatalf("top vertex uv = %v, want v=0", v.TexCoord)
		}
	}
	if len(quadIndices) != 6 {
		t.Fatalf("got %d indices, want 6", len(quadIndices))
	}
}

func TestPlaneShaderDeclaresBindings(t *testing.T) {
	s := newPlaneShader()
	if !strings.Contains(s.Source(), "fn "+s.VertexEntryPoint()) || !strings.Contains(s.Source(), "fn "+s.FragmentEntryPoint()) {
		t.Fatal("shader source is missing an entry point")
	}
	if got := len(s.BindGroupLayoutDescriptor(0).Entries); got != 1 {
		t.Fatalf("group 0 has %d entries, want 1", got)
	}
	if got := len(s.BindGroupLayoutDescriptor(1).Entries); got != 3 {
		t.Fatalf("group 1 has %d entries, want 3", got)
	}
	if got := len(s.VertexLayouts()); got != 1 {
		t.Fatalf("got %d vertex layouts, want 1", got)
	}
}
