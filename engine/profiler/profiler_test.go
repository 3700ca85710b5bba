package profiler

import (
	"bytes"
	"log"
	"strings"
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestTickLogsAfterInterval(t *testing.T) {
	var buf bytes.Buffer
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(WithLogger(log.New(&buf, "", 0)), WithClock(clock.now), WithInterval(time.Second))

	for i := 0; i < 29; i++ {
		clock.advance(10 * time.Millisecond)
		if p.Tick() {
			t.Fatalf("tick %d logged before the interval elapsed", i)
		}
	}
	clock.advance(710 * time.Millisecond)
	if !p.Tick() {
		t.Fatal("tick after the interval should log")
	}
	if got := p.Last().FPS; got < 29.9 || got > 30.1 {
		t.Fatalf("fps = %v, want 30", got)
	}
	if !strings.HasPrefix(buf.String(), "[Profiler] FPS: 30.00") {
		t.Fatalf("unexpected output %q", buf.String())
	}

	clock.advance(10 * time.Millisecond)
	if p.Tick() {
		t.Fatal("interval did not restart after logging")
	}
}

func TestSourcesAppendedInOrder(t *testing.T) {
	var buf bytes.Buffer
	clock := &fakeClock{t: time.Unix(0, 0)}
	planes := 3.0
	p := NewProfiler(
		WithLogger(log.New(&buf, "", 0)),
		WithClock(clock.now),
		WithSource("planes", func() float64 { return planes }),
	)
	p.AddSource("frames", func() float64 { return 120 })
	p.AddSource("ignored", nil)

	planes = 40
	clock.advance(2 * time.Second)
	if !p.Tick() {
		t.Fatal("expected a sample")
	}

	values := p.Last().Values
	if len(values) != 2 || values[0] != (Value{"planes", 40}) || values[1] != (Value{"frames", 120}) {
		t.Fatalf("values = %+v", values)
	}
	if !strings.HasSuffix(strings.TrimSpace(buf.String()), "| planes: 40 | frames: 120") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestOptionsIgnoreInvalidValues(t *testing.T) {
	p := NewProfiler(WithInterval(0), WithClock(nil), WithLogger(nil))
	if p.updateInterval != time.Second {
		t.Fatalf("interval = %v, want 1s", p.updateInterval)
	}
	if p.now == nil || p.logger == nil {
		t.Fatal("nil options replaced defaults")
	}
}
