package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gallery/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("plane", shader.NewShader("plane", "@vertex fn vs_main() {}"))
	if !p.DepthTestEnabled() || !p.DepthWriteEnabled() {
		t.Fatal("depth test and write should default on")
	}
	if p.BlendEnabled() {
		t.Fatal("blending should default off")
	}
	if p.CullMode() != wgpu.CullModeNone {
		t.Fatalf("cull mode = %v, want none", p.CullMode())
	}
	if p.BindGroupLayout(0) != nil || p.RenderPipeline() != nil {
		t.Fatal("GPU objects should be nil before registration")
	}
}

func TestOptionsOverrideDefaults(t *testing.T) {
	p := NewPipeline("glass", shader.NewShader("plane", "src"),
		WithBlendEnabled(true),
		WithDepthWriteEnabled(false),
		WithCullMode(wgpu.CullModeBack),
	)
	if !p.BlendEnabled() || p.DepthWriteEnabled() || p.CullMode() != wgpu.CullModeBack {
		t.Fatal("options not applied")
	}
	if !p.DepthTestEnabled() {
		t.Fatal("untouched option changed")
	}
}

func TestKeyDistinguishesMaterials(t *testing.T) {
	seen := map[string]bool{}
	for _, blend := range []bool{false, true} {
		for _, test := range []bool{false, true} {
			for _, write := range []bool{false, true} {
				k := Key("plane", blend, test, write)
				if seen[k] {
					t.Fatalf("duplicate key %s", k)
				}
				seen[k] = true
			}
		}
	}
}

func TestNewPipelinePanicsWithoutShader(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	NewPipeline("empty", nil)
}
