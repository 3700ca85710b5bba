package scene

import "sync"

// AmbientLight lights every surface equally.
type AmbientLight struct {
	Color     [3]float32
	Intensity float32
}

// Radiance returns the light color premultiplied by its intensity.
func (a AmbientLight) Radiance() [3]float32 {
	return [3]float32{a.Color[0] * a.Intensity, a.Color[1] * a.Intensity, a.Color[2] * a.Intensity}
}

type scene struct {
	mu *sync.Mutex

	group      Group
	ambient    AmbientLight
	background [4]float64
}

// Scene is the root of what a renderer draws: one group of planes, an ambient
// light and a background clear color.
type Scene interface {
	// Group returns the scene's plane group.
	//
	// Returns:
	//   - Group: the group holding every plane
	Group() Group

	// AmbientLight returns the scene's ambient light.
	AmbientLight() AmbientLight

	// SetAmbientLight replaces the scene's ambient light.
	//
	// Parameters:
	//   - light: the new ambient light
	SetAmbientLight(light AmbientLight)

	// Background returns the RGBA clear color.
	Background() [4]float64

	// SetBackground sets the RGBA clear color.
	//
	// Parameters:
	//   - rgba: clear color components in [0, 1]
	SetBackground(rgba [4]float64)
}

var _ Scene = &scene{}

// NewScene creates a scene with an empty group, a white ambient light of
// intensity 1 and a black background.
//
// Parameters:
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:         &sync.Mutex{},
		ambient:    AmbientLight{Color: [3]float32{1, 1, 1}, Intensity: 1},
		background: [4]float64{0, 0, 0, 1},
	}
	for _, option := range options {
		option(s)
	}
	if s.group == nil {
		s.group = NewGroup()
	}
	return s
}

func (s *scene) Group() Group {
	return s.group
}

func (s *scene) AmbientLight() AmbientLight {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ambient
}

func (s *scene) SetAmbientLight(light AmbientLight) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ambient = light
}

func (s *scene) Background() [4]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.background
}

func (s *scene) SetBackground(rgba [4]float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = rgba
}
