package renderer

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-gallery/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// PlaneShaderSource is the WGSL program that draws one textured plane.
// Group 0 holds GPUCameraUniform, group 1 holds GPUPlaneUniform, the texture and its sampler.
//
//go:embed assets/plane.wgsl
var PlaneShaderSource string

// PlaneShaderKey identifies the plane shader in pipeline keys.
const PlaneShaderKey = "plane"

// Binding indices inside the plane bind group.
const (
	planeUniformBinding = 0
	planeTextureBinding = 1
	planeSamplerBinding = 2
)

// GPUVertex is one vertex of the unit quad.
// Size: 20 bytes (vec3 position, vec2 uv).
type GPUVertex struct {
	Position [3]float32
	TexCoord [2]float32
}

// GPUCameraUniform matches the WGSL Camera struct.
// Size: 80 bytes (mat4x4 + vec4, std140 aligned).
type GPUCameraUniform struct {
	ViewProj [16]float32 // offset 0: column-major view-projection matrix
	Ambient  [4]float32  // offset 64: ambient radiance rgb, w unused
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the uniform for GPU upload.
//
// Returns:
//   - []byte: 80-byte little-endian buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, 80)
	putFloats(buf[0:64], g.ViewProj[:])
	putFloats(buf[64:80], g.Ambient[:])
	return buf
}

// GPUPlaneUniform matches the WGSL PlaneData struct.
// Size: 80 bytes (mat4x4 + vec4, std140 aligned).
type GPUPlaneUniform struct {
	Model  [16]float32 // offset 0: column-major world matrix
	Params [4]float32  // offset 64: x opacity, y lit flag
}

// Size returns the size of the GPUPlaneUniform struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes
func (g *GPUPlaneUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the uniform for GPU upload.
//
// Returns:
//   - []byte: 80-byte little-endian buffer
func (g *GPUPlaneUniform) Marshal() []byte {
	buf := make([]byte, 80)
	putFloats(buf[0:64], g.Model[:])
	putFloats(buf[64:80], g.Params[:])
	return buf
}

func putFloats(dst []byte, src []float32) {
	for i, f := range src {
		binary.LittleEndian.PutUint32(dst[i*4:i*4+4], math.Float32bits(f))
	}
}

// quadVertices is a unit square centered at the origin facing +Z.
// v runs top to bottom so image rows map upright.
var quadVertices = []GPUVertex{
	{Position: [3]float32{-0.5, -0.5, 0}, TexCoord: [2]float32{0, 1}},
	{Position: [3]float32{0.5, -0.5, 0}, TexCoord: [2]float32{1, 1}},
	{Position: [3]float32{0.5, 0.5, 0}, TexCoord: [2]float32{1, 0}},
	{Position: [3]float32{-0.5, 0.5, 0}, TexCoord: [2]float32{0, 0}},
}

var quadIndices = []uint32{0, 1, 2, 0, 2, 3}

// newPlaneShader declares the plane shader's vertex and bind group layouts.
func newPlaneShader() shader.Shader {
	return shader.NewShader(PlaneShaderKey, PlaneShaderSource,
		shader.WithVertexLayouts(wgpu.VertexBufferLayout{
			ArrayStride: uint64(unsafe.Sizeof(GPUVertex{})),
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
				{Format: wgpu.VertexFormatFloat32x2, Offset: 12, ShaderLocation: 1},
			},
		}),
		shader.WithBindGroupLayout(0, wgpu.BindGroupLayoutDescriptor{
			Label: "Camera Bind Group Layout",
			Entries: []wgpu.BindGroupLayoutEntry{
				{
					Binding:    0,
					Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
					Buffer: wgpu.BufferBindingLayout{
						Type:           wgpu.BufferBindingTypeUniform,
						MinBindingSize: 80,
					},
				},
			},
		}),
		shader.WithBindGroupLayout(1, wgpu.BindGroupLayoutDescriptor{
			Label: "Plane Bind Group Layout",
			Entries: []wgpu.BindGroupLayoutEntry{
				{
					Binding:    planeUniformBinding,
					Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
					Buffer: wgpu.BufferBindingLayout{
						Type:           wgpu.BufferBindingTypeUniform,
						MinBindingSize: 80,
					},
				},
				{
					Binding:    planeTextureBinding,
					Visibility: wgpu.ShaderStageFragment,
					Texture: wgpu.TextureBindingLayout{
						SampleType:    wgpu.TextureSampleTypeFloat,
						ViewDimension: wgpu.TextureViewDimension2D,
					},
				},
				{
					Binding:    planeSamplerBinding,
					Visibility: wgpu.ShaderStageFragment,
					Sampler: wgpu.SamplerBindingLayout{
						Type: wgpu.SamplerBindingTypeFiltering,
					},
				},
			},
		}),
	)
}
