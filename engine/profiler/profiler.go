package profiler

import (
	"fmt"
	"log"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Source reports one application counter, read each time a sample is logged.
type Source struct {
	Name string
	Read func() float64
}

// Sample is one interval's worth of statistics.
type Sample struct {
	FPS         float64
	HeapMB      float64
	SysMB       float64
	AllocRateMB float64
	GCCount     uint32
	MaxPause    time.Duration
	// Values holds the registered sources in registration order.
	Values []Value
}

// Value is a source's reading within a Sample.
type Value struct {
	Name  string
	Value float64
}

// String formats the sample as a single log line.
func (s Sample) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[Profiler] FPS: %.2f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (max pause: %s) | Sys: %.2f MB",
		s.FPS, s.HeapMB, s.AllocRateMB, s.GCCount, s.MaxPause, s.SysMB)
	for _, v := range s.Values {
		fmt.Fprintf(&b, " | %s: %g", v.Name, v.Value)
	}
	return b.String()
}

// Profiler tracks frame rate, memory statistics and application counters, and logs
// them once per interval.
type Profiler struct {
	mu     *sync.Mutex
	logger *log.Logger
	now    func() time.Time

	updateInterval time.Duration
	sources        []Source

	frameCount     int
	lastTime       time.Time
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Sample
}

// NewProfiler creates a new Profiler. Update interval defaults to 1 second and
// output goes to log.Default().
//
// Parameters:
//   - options: functional options overriding the defaults
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		mu:             &sync.Mutex{},
		logger:         log.Default(),
		now:            time.Now,
		updateInterval: time.Second,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// AddSource registers a counter appended to every logged sample.
// A source with a nil Read is ignored.
//
// Parameters:
//   - name: label in the log line
//   - read: returns the current value
func (p *Profiler) AddSource(name string, read func() float64) {
	if read == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sources = append(p.sources, Source{Name: name, Read: read})
}

// Tick should be called once per frame. When the update interval has elapsed it
// takes a sample, logs it and starts a new interval.
//
// Returns:
//   - bool: true if a sample was logged this tick
func (p *Profiler) Tick() bool {
	p.mu.Lock()
	p.frameCount++
	now := p.now()
	elapsed := now.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		p.mu.Unlock()
		return false
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	s := Sample{
		FPS:         float64(p.frameCount) / elapsed.Seconds(),
		HeapMB:      float64(mem.Alloc) / 1024 / 1024,
		SysMB:       float64(mem.Sys) / 1024 / 1024,
		AllocRateMB: float64(mem.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds(),
		GCCount:     mem.NumGC,
		MaxPause:    maxPause(&mem, p.lastGCCount),
	}
	sources := p.sources

	p.frameCount = 0
	p.lastTime = now
	p.lastGCCount = mem.NumGC
	p.lastTotalAlloc = mem.TotalAlloc
	p.mu.Unlock()

	// Sources run unlocked so they may take their own locks.
	for _, src := range sources {
		s.Values = append(s.Values, Value{Name: src.Name, Value: src.Read()})
	}

	p.mu.Lock()
	p.last = s
	p.mu.Unlock()
	p.logger.Print(s.String())
	return true
}

// Last returns the most recently logged sample.
func (p *Profiler) Last() Sample {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// maxPause returns the longest GC pause since GC number since.
// PauseNs is a ring of the last 256 pauses.
func maxPause(mem *runtime.MemStats, since uint32) time.Duration {
	start := since
	if mem.NumGC-start > 256 {
		start = mem.NumGC - 256
	}
	var longest uint64
	for i := start; i < mem.NumGC; i++ {
		if pause := mem.PauseNs[i%256]; pause > longest {
			longest = pause
		}
	}
	return time.Duration(longest)
}
