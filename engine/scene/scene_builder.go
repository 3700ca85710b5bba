package scene

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithGroup sets the scene's plane group.
//
// Parameters:
//   - g: the group to use
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithGroup(g Group) SceneBuilderOption {
	return func(s *scene) {
		s.group = g
	}
}

// WithAmbientLight sets the scene's ambient light.
//
// Parameters:
//   - light: the ambient light
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithAmbientLight(light AmbientLight) SceneBuilderOption {
	return func(s *scene) {
		s.ambient = light
	}
}

// WithBackground sets the RGBA clear color.
//
// Parameters:
//   - rgba: clear color components in [0, 1]
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithBackground(rgba [4]float64) SceneBuilderOption {
	return func(s *scene) {
		s.background = rgba
	}
}
