package profiler

import (
	"log/slog"
	"maps"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-graph/common"
)

// PassStats holds the accumulated execution time of one render pass since the last report.
type PassStats struct {
	Count int
	Total time.Duration
	Max   time.Duration
}

// Average returns the mean execution time, or zero when the pass has not run.
func (s PassStats) Average() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

// Profiler tracks frame rate, memory statistics and per-pass timings for performance monitoring.
// Outputs stats to the logger at a configurable interval.
type Profiler struct {
	mu sync.Mutex

	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	passes map[string]PassStats
	logger *slog.Logger
	now    func() time.Time
}

// NewProfiler creates a new Profiler with the given options applied.
// Update interval defaults to 1 second.
//
// Parameters:
//   - options: a variadic list of ProfilerBuilderOption functions
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		passes:         make(map[string]PassStats),
		now:            time.Now,
	}
	for _, option := range options {
		option(p)
	}
	p.lastTime = p.now()
	return p
}

// RecordPass adds one execution of a render pass to the current report window.
// Safe to call from several goroutines.
//
// Parameters:
//   - name: the pass name
//   - d: how long the pass body ran
func (p *Profiler) RecordPass(name string, d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.passes[name]
	s.Count++
	s.Total += d
	s.Max = max(s.Max, d)
	p.passes[name] = s
}

// PassStats returns a copy of the per-pass timings accumulated since the last report.
//
// Returns:
//   - map[string]PassStats: the timings keyed by pass name
func (p *Profiler) PassStats() map[string]PassStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return maps.Clone(p.passes)
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, heap usage, allocation rate, GC count/pause times, total memory and
// the pass with the highest average time. Pass timings are reset after each report.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval || elapsed <= 0 {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	// PauseNs is a circular buffer of the last 256 GC pauses.
	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			maxPauseUs = max(maxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	attrs := []any{
		"fps", fps,
		"heap_mb", allocMB,
		"alloc_rate_mb_s", allocRateMB,
		"gc", gcCount,
		"gc_last_pause_us", lastPauseUs,
		"gc_max_pause_us", maxPauseUs,
		"sys_mb", sysMB,
	}
	if name, stats, ok := p.slowestPass(); ok {
		attrs = append(attrs, "slowest_pass", name, "slowest_pass_avg", stats.Average(), "slowest_pass_max", stats.Max)
	}

	logger := common.Coalesce(p.logger, common.Logger())
	logger.Info("[Profiler]", attrs...)

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	clear(p.passes)
	return true
}

// slowestPass returns the pass with the highest average time. Ties go to the lexically smaller name.
func (p *Profiler) slowestPass() (string, PassStats, bool) {
	var (
		slowest string
		stats   PassStats
		found   bool
	)
	for name, s := range p.passes {
		avg := s.Average()
		if !found || avg > stats.Average() || (avg == stats.Average() && name < slowest) {
			slowest, stats, found = name, s, true
		}
	}
	return slowest, stats, found
}
