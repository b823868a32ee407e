package profiler

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestProfiler_Tick(t *testing.T) {
	var buf bytes.Buffer
	clock := &fakeClock{now: time.Unix(0, 0)}
	p := NewProfiler(
		WithUpdateInterval(time.Second),
		WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
		withClock(clock.Now),
	)

	for range 49 {
		clock.Advance(20 * time.Millisecond)
		assert.False(t, p.Tick())
	}
	assert.Empty(t, buf.String())

	p.RecordPass("ShadowPass", 2*time.Millisecond)
	p.RecordPass("GeometryPass", 5*time.Millisecond)
	p.RecordPass("GeometryPass", 7*time.Millisecond)

	clock.Advance(20 * time.Millisecond)
	require.True(t, p.Tick())

	out := buf.String()
	assert.Contains(t, out, "[Profiler]")
	assert.Contains(t, out, "fps=50")
	assert.Contains(t, out, "slowest_pass=GeometryPass")
	assert.Contains(t, out, "slowest_pass_avg=6ms")
	assert.Empty(t, p.PassStats(), "pass timings reset after a report")
}

func TestProfiler_RecordPass(t *testing.T) {
	p := NewProfiler()

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.RecordPass("PostPass", time.Duration(i+1)*time.Microsecond)
		}()
	}
	wg.Wait()

	stats := p.PassStats()["PostPass"]
	assert.Equal(t, 100, stats.Count)
	assert.Equal(t, 100*time.Microsecond, stats.Max)
	assert.Equal(t, 5050*time.Microsecond, stats.Total)
	assert.Equal(t, 50500*time.Nanosecond, stats.Average())
	assert.Zero(t, PassStats{}.Average())
}

func TestWithUpdateInterval_IgnoresNonPositive(t *testing.T) {
	p := NewProfiler(WithUpdateInterval(0), WithUpdateInterval(-time.Second))
	assert.Equal(t, time.Second, p.updateInterval)
}
