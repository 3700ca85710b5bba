package gallery

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero radius", func(c *Config) { c.SphereRadius = 0 }},
		{"min above max", func(c *Config) { c.MinScale = 2 }},
		{"negative min", func(c *Config) { c.MinScale = -0.1 }},
		{"fade before focus", func(c *Config) { c.FadeDistance = c.FocusDistance }},
		{"zero smoothing", func(c *Config) { c.Smoothing = 0 }},
		{"smoothing above one", func(c *Config) { c.Smoothing = 1.5 }},
		{"zero exponent", func(c *Config) { c.ScaleExponent = 0 }},
		{"negative placeholders", func(c *Config) { c.PlaceholderCount = -1 }},
		{"flat fov", func(c *Config) { c.FovDegrees = 180 }},
		{"far before near", func(c *Config) { c.Far = c.Near }},
		{"orbit bounds inverted", func(c *Config) { c.Orbit.MaxDistance = 1 }},
		{"zero damping", func(c *Config) { c.Orbit.DampingFactor = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		return p
	}

	t.Run("partial file keeps defaults", func(t *testing.T) {
		cfg, err := LoadConfig(write("partial.json", `{"sphereRadius": 80, "orbit": {"rotateSpeed": 1.2}}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		def := DefaultConfig()
		if cfg.SphereRadius != 80 || cfg.Orbit.RotateSpeed != 1.2 {
			t.Fatalf("overrides not applied: %+v", cfg)
		}
		if cfg.FadeDistance != def.FadeDistance || cfg.Orbit.MaxDistance != def.Orbit.MaxDistance {
			t.Fatalf("defaults lost: %+v", cfg)
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := LoadConfig(write("bad.json", `{"smoothing": 0}`))
		if !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("err = %v, want ErrInvalidConfig", err)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		if _, err := LoadConfig(write("broken.json", `{"fov": `)); err == nil {
			t.Fatal("expected parse error")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(dir, "absent.json")); err == nil {
			t.Fatal("expected read error")
		}
	})
}
