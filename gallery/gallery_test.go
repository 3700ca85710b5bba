package gallery

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-gallery/common"
	"github.com/Carmen-Shannon/oxy-gallery/engine/camera"
	"github.com/Carmen-Shannon/oxy-gallery/engine/frameloop"
	"github.com/Carmen-Shannon/oxy-gallery/engine/loader"
	"github.com/Carmen-Shannon/oxy-gallery/engine/scene"
)

type fakeRenderer struct {
	mu      sync.Mutex
	width   int
	height  int
	ratio   float32
	renders int
	planes  []int
}

func (f *fakeRenderer) SetSize(width, height int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.width, f.height = width, height
}

func (f *fakeRenderer) SetPixelRatio(ratio float32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ratio = ratio
}

func (f *fakeRenderer) Render(s scene.Scene, cam camera.Camera) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.renders++
	f.planes = append(f.planes, s.Group().Len())
	return nil
}

// syncBuffer lets the loading goroutine and the test share a log destination.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{G: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func newTestApp(t *testing.T, cfg Config, options ...AppBuilderOption) (*App, *fakeRenderer, *frameloop.ManualScheduler) {
	t.Helper()
	r := &fakeRenderer{}
	s := &frameloop.ManualScheduler{}
	base := []AppBuilderOption{
		WithLogger(log.New(io.Discard, "", 0)),
		WithLoader(loader.NewLoader(loader.WithLogger(log.New(io.Discard, "", 0)))),
		WithRand(rand.New(rand.NewSource(1))),
	}
	a, err := New(cfg, r, s, append(base, options...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(a.Close)
	return a, r, s
}

func waitLoaded(t *testing.T, a *App) {
	t.Helper()
	select {
	case <-a.Loaded():
	case <-time.After(10 * time.Second):
		t.Fatal("loading did not finish")
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Smoothing = 0
	if _, err := New(cfg, &fakeRenderer{}, &frameloop.ManualScheduler{}); err == nil {
		t.Fatal("expected invalid config error")
	}
}

func TestNewPlacesCamera(t *testing.T) {
	cfg := DefaultConfig()
	a, r, _ := newTestApp(t, cfg, WithSize(800, 400), WithPixelRatio(2))

	if got := a.Camera().Position().Z(); !common.ApproxEqual(got, 1.4*cfg.SphereRadius, 1e-3) {
		t.Fatalf("camera z = %v, want %v", got, 1.4*cfg.SphereRadius)
	}
	if a.Camera().Aspect() != 2 {
		t.Fatalf("aspect = %v, want 2", a.Camera().Aspect())
	}
	if r.width != 800 || r.height != 400 || r.ratio != 2 {
		t.Fatalf("renderer size = %dx%d@%v, want 800x400@2", r.width, r.height, r.ratio)
	}
	if a.Scene().AmbientLight().Intensity != cfg.AmbientIntensity {
		t.Fatalf("ambient intensity = %v, want %v", a.Scene().AmbientLight().Intensity, cfg.AmbientIntensity)
	}
}

func TestLoadSkipsFailedImages(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "images"), 0o755); err != nil {
		t.Fatal(err)
	}
	writePNG(t, filepath.Join(dir, "images", "a.png"), 4, 2)
	manifest := filepath.Join(dir, "images.json")
	if err := os.WriteFile(manifest, []byte(`["a.png","b.png"]`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.Manifest = manifest
	logs := &syncBuffer{}
	a, _, _ := newTestApp(t, cfg, WithLogger(log.New(logs, "", 0)))

	a.Load()
	waitLoaded(t, a)

	if n := a.Scene().Group().Len(); n != 1 {
		t.Fatalf("planes = %d, want 1", n)
	}
	if w := a.Scene().Group().Snapshot()[0].Width(); w != 20 {
		t.Fatalf("plane width = %v, want 20 for a 2:1 image", w)
	}
	out := logs.String()
	if !strings.Contains(out, "warning: failed to load texture") || !strings.Contains(out, "b.png") {
		t.Fatalf("missing warning for b.png in log:\n%s", out)
	}
	if strings.Contains(out, "a.png:") {
		t.Fatalf("unexpected warning for a.png in log:\n%s", out)
	}
}

func TestLoadSkipsNonStringEntries(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "images"), 0o755); err != nil {
		t.Fatal(err)
	}
	writePNG(t, filepath.Join(dir, "images", "a.png"), 4, 4)
	manifest := filepath.Join(dir, "images.json")
	if err := os.WriteFile(manifest, []byte(`["a.png", 7]`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	cfg.Manifest = manifest
	logs := &syncBuffer{}
	a, _, _ := newTestApp(t, cfg, WithLogger(log.New(logs, "", 0)))

	a.Load()
	waitLoaded(t, a)

	if n := a.Scene().Group().Len(); n != 1 {
		t.Fatalf("planes = %d, want 1", n)
	}
	out := logs.String()
	if n := strings.Count(out, "warning:"); n != 1 {
		t.Fatalf("warnings = %d, want 1 in log:\n%s", n, out)
	}
	if !strings.Contains(out, "index 1") || strings.Contains(out, "placeholders") {
		t.Fatalf("unexpected log:\n%s", out)
	}
	if got := a.Config().ImageCount; got != 2 {
		t.Fatalf("image count = %d, want 2", got)
	}
}

func TestLoadFallsBackToPlaceholders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/empty.json":
			w.Write([]byte(`[]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	tests := []struct {
		name     string
		manifest string
	}{
		{"empty manifest", srv.URL + "/empty.json"},
		{"missing manifest", srv.URL + "/missing.json"},
		{"missing file", filepath.Join(t.TempDir(), "images.json")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Manifest = tt.manifest
			a, _, _ := newTestApp(t, cfg)

			a.Load()
			waitLoaded(t, a)

			if n := a.Scene().Group().Len(); n != 40 {
				t.Fatalf("planes = %d, want 40 placeholders", n)
			}
			if got := a.Config().ImageCount; got != 0 {
				t.Fatalf("image count = %d, want 0", got)
			}
			for _, p := range a.Scene().Group().Snapshot() {
				if p.Width() != 20 {
					t.Fatalf("placeholder width = %v, want 20 for 512x256", p.Width())
				}
			}
		})
	}
}

func TestFramesTumbleGroup(t *testing.T) {
	cfg := DefaultConfig()
	a, r, s := newTestApp(t, cfg)

	a.Start()
	const n = 25
	for i := 0; i < n; i++ {
		if s.Step() != 1 {
			t.Fatalf("step %d: expected exactly one pending frame", i)
		}
	}

	if a.Frames() != n || r.renders != n {
		t.Fatalf("frames = %d, renders = %d, want %d", a.Frames(), r.renders, n)
	}
	if got := a.Scene().Group().Yaw(); !common.ApproxEqual(got, n*cfg.TumbleSpeed, 1e-6) {
		t.Fatalf("yaw = %v, want %v", got, n*cfg.TumbleSpeed)
	}

	a.Stop()
	a.Stop()
	s.Step()
	if s.Pending() != 0 || a.Frames() != n {
		t.Fatalf("frames kept running after Stop: frames %d pending %d", a.Frames(), s.Pending())
	}
}

func TestFramesUpdatePlanes(t *testing.T) {
	cfg := DefaultConfig()
	a, _, s := newTestApp(t, cfg)
	a.addPlaceholders()

	a.Start()
	for i := 0; i < 50; i++ {
		s.Step()
	}
	for _, p := range a.Scene().Group().Snapshot() {
		o, set := p.Opacity()
		if !set || o < 0 || o > 1 {
			t.Fatalf("opacity = %v (set %v)", o, set)
		}
		if sc := p.Scale(); sc < cfg.MinScale || sc > cfg.MaxScale {
			t.Fatalf("scale %v outside [%v, %v]", sc, cfg.MinScale, cfg.MaxScale)
		}
	}
}

func TestResize(t *testing.T) {
	a, r, _ := newTestApp(t, DefaultConfig())

	a.Resize(1200, 600)
	if a.Camera().Aspect() != 2 || r.width != 1200 || r.height != 600 {
		t.Fatalf("after resize aspect %v renderer %dx%d", a.Camera().Aspect(), r.width, r.height)
	}

	a.Resize(1200, 0)
	if a.Camera().Aspect() != 2 || r.height != 600 {
		t.Fatalf("zero height changed state: aspect %v renderer %dx%d", a.Camera().Aspect(), r.width, r.height)
	}

	a.Resize(0, 600)
	if a.Camera().Aspect() != 2 || r.width != 1200 {
		t.Fatalf("zero width changed state: aspect %v renderer %dx%d", a.Camera().Aspect(), r.width, r.height)
	}
}

func TestWheelMovesAlongView(t *testing.T) {
	tests := []struct {
		name  string
		apply func(*App)
		wantZ float32
	}{
		{"positive delta moves forward", func(a *App) { a.Wheel(100) }, 166},
		{"negative delta moves back", func(a *App) { a.Wheel(-100) }, 170},
		{"notch up is negative delta", func(a *App) { a.Scroll(0, 1) }, 170},
		{"horizontal scroll ignored", func(a *App) { a.Scroll(3, 0) }, 168},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _, _ := newTestApp(t, DefaultConfig())
			tt.apply(a)
			if z := a.Camera().Position().Z(); !common.ApproxEqual(z, tt.wantZ, 1e-3) {
				t.Fatalf("camera z = %v, want %v", z, tt.wantZ)
			}
		})
	}
}
