package shader

import "github.com/cogentcore/webgpu/wgpu"

// ShaderBuilderOption is a functional option for configuring a Shader.
type ShaderBuilderOption func(*shader)

// WithEntryPoints overrides the vertex and fragment entry point names.
//
// Parameters:
//   - vertex: the @vertex function name
//   - fragment: the @fragment function name
//
// Returns:
//   - ShaderBuilderOption: option function to apply
func WithEntryPoints(vertex, fragment string) ShaderBuilderOption {
	return func(s *shader) {
		s.vertexEntryPoint = vertex
		s.fragmentEntryPoint = fragment
	}
}

// WithBindGroupLayout declares the layout of one @group.
//
// Parameters:
//   - group: the @group index
//   - desc: the layout entries for that group
//
// Returns:
//   - ShaderBuilderOption: option function to apply
func WithBindGroupLayout(group int, desc wgpu.BindGroupLayoutDescriptor) ShaderBuilderOption {
	return func(s *shader) {
		s.bindGroupLayoutDescriptors[group] = desc
	}
}

// WithVertexLayouts declares the vertex buffer layouts in slot order.
//
// Parameters:
//   - layouts: one layout per vertex buffer slot
//
// Returns:
//   - ShaderBuilderOption: option function to apply
func WithVertexLayouts(layouts ...wgpu.VertexBufferLayout) ShaderBuilderOption {
	return func(s *shader) {
		s.vertexLayouts = layouts
	}
}
