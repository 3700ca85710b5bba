package gallery

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
)

// Config holds the gallery tunables. It is read once at startup and passed by value.
type Config struct {
	// ImageCount is the number of manifest entries. It is not read from files;
	// App.Config reports it once the manifest has been fetched.
	ImageCount int `json:"-"`
	// SphereRadius is the nominal radius of the shell planes are placed on.
	SphereRadius float32 `json:"sphereRadius"`
	// MinScale and MaxScale bound every plane's scale.
	MinScale float32 `json:"minScale"`
	MaxScale float32 `json:"maxScale"`
	// FocusDistance is the distance under which planes are fully opaque.
	FocusDistance float32 `json:"focusDistance"`
	// FadeDistance is the distance at and beyond which planes are invisible and at MinScale.
	FadeDistance float32 `json:"fadeDistance"`
	// TumbleSpeed is the group yaw added every frame, in radians.
	TumbleSpeed float32 `json:"tumbleSpeed"`
	// Smoothing is the per-frame fraction scale and opacity move toward their targets.
	Smoothing float32 `json:"smoothing"`
	// ScaleExponent shapes the proximity curve of the target scale.
	ScaleExponent float32 `json:"scaleExponent"`

	// Manifest is the location of the JSON list of image names.
	Manifest string `json:"manifest"`
	// ImageDir is the directory image names are resolved in, relative to the manifest.
	ImageDir string `json:"imageDir"`
	// PlaceholderCount is the number of synthetic planes shown when the manifest is empty.
	PlaceholderCount int `json:"placeholderCount"`
	// PlaceholderWorkers bounds the goroutines rasterizing placeholders.
	PlaceholderWorkers int `json:"placeholderWorkers"`

	// FovDegrees, Near and Far describe the perspective camera.
	FovDegrees float32 `json:"fov"`
	Near       float32 `json:"near"`
	Far        float32 `json:"far"`

	Orbit OrbitConfig `json:"orbit"`

	// AmbientIntensity scales the white ambient light.
	AmbientIntensity float32 `json:"ambientIntensity"`
}

// OrbitConfig holds the orbit control tunables.
type OrbitConfig struct {
	DampingFactor float32 `json:"dampingFactor"`
	MinDistance   float32 `json:"minDistance"`
	MaxDistance   float32 `json:"maxDistance"`
	RotateSpeed   float32 `json:"rotateSpeed"`
	ZoomSpeed     float32 `json:"zoomSpeed"`
}

// DefaultConfig returns the stock gallery settings.
func DefaultConfig() Config {
	return Config{
		SphereRadius:       120,
		MinScale:           0.02,
		MaxScale:           1.3,
		FocusDistance:      18,
		FadeDistance:       60,
		TumbleSpeed:        0.0005,
		Smoothing:          0.08,
		ScaleExponent:      1.6,
		Manifest:           "images.json",
		ImageDir:           "images",
		PlaceholderCount:   40,
		PlaceholderWorkers: 4,
		FovDegrees:         60,
		Near:               0.1,
		Far:                1000,
		Orbit: OrbitConfig{
			DampingFactor: 0.08,
			MinDistance:   10,
			MaxDistance:   600,
			RotateSpeed:   0.6,
			ZoomSpeed:     0.8,
		},
		AmbientIntensity: 0.9,
	}
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid gallery config")

// LoadConfig reads a JSON file over DefaultConfig. Keys missing from the file keep
// their default values. The result is validated.
//
// Parameters:
//   - path: location of the JSON file
//
// Returns:
//   - Config: the merged configuration
//   - error: error if the file cannot be read, parsed or validated
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports the first inconsistent setting.
//
// Returns:
//   - error: an error wrapping ErrInvalidConfig, or nil
func (c Config) Validate() error {
	finite := func(vs ...float32) bool {
		for _, v := range vs {
			if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
				return false
			}
		}
		return true
	}
	switch {
	case !finite(c.SphereRadius, c.MinScale, c.MaxScale, c.FocusDistance, c.FadeDistance, c.TumbleSpeed, c.Smoothing, c.ScaleExponent):
		return fmt.Errorf("%w: values must be finite", ErrInvalidConfig)
	case c.SphereRadius <= 0:
		return fmt.Errorf("%w: sphereRadius %v must be positive", ErrInvalidConfig, c.SphereRadius)
	case c.MinScale < 0 || c.MinScale > c.MaxScale:
		return fmt.Errorf("%w: need 0 <= minScale (%v) <= maxScale (%v)", ErrInvalidConfig, c.MinScale, c.MaxScale)
	case c.FocusDistance < 0 || c.FadeDistance <= c.FocusDistance:
		return fmt.Errorf("%w: need 0 <= focusDistance (%v) < fadeDistance (%v)", ErrInvalidConfig, c.FocusDistance, c.FadeDistance)
	case c.Smoothing <= 0 || c.Smoothing > 1:
		return fmt.Errorf("%w: smoothing %v outside (0, 1]", ErrInvalidConfig, c.Smoothing)
	case c.ScaleExponent <= 0:
		return fmt.Errorf("%w: scaleExponent %v must be positive", ErrInvalidConfig, c.ScaleExponent)
	case c.PlaceholderCount < 0:
		return fmt.Errorf("%w: placeholderCount %d is negative", ErrInvalidConfig, c.PlaceholderCount)
	case c.FovDegrees <= 0 || c.FovDegrees >= 180:
		return fmt.Errorf("%w: fov %v outside (0, 180)", ErrInvalidConfig, c.FovDegrees)
	case c.Near <= 0 || c.Far <= c.Near:
		return fmt.Errorf("%w: need 0 < near (%v) < far (%v)", ErrInvalidConfig, c.Near, c.Far)
	case c.Orbit.MinDistance < 0 || c.Orbit.MaxDistance < c.Orbit.MinDistance:
		return fmt.Errorf("%w: need 0 <= orbit.minDistance (%v) <= orbit.maxDistance (%v)", ErrInvalidConfig, c.Orbit.MinDistance, c.Orbit.MaxDistance)
	case c.Orbit.DampingFactor <= 0 || c.Orbit.DampingFactor > 1:
		return fmt.Errorf("%w: orbit.dampingFactor %v outside (0, 1]", ErrInvalidConfig, c.Orbit.DampingFactor)
	}
	return nil
}
