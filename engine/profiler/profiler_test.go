package profiler

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-frames/engine/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopesAndCounts(t *testing.T) {
	p := NewProfiler(WithLogger(logging.NewNopLogger()))

	p.EndScope("never-begun")
	_, ok := p.Scope("never-begun")
	assert.False(t, ok)

	p.BeginScope("cull")
	p.BeginScope("bbh")
	p.EndScope("cull")
	p.EndScope("bbh")
	p.SetCount("visible", 12)

	_, ok = p.Scope("cull")
	assert.True(t, ok)
	c, ok := p.Count("visible")
	require.True(t, ok)
	assert.Equal(t, 12, c)

	stats := p.StatsString()
	assert.Less(t, strings.Index(stats, "cull"), strings.Index(stats, "bbh"), "scopes keep first-seen order")
	assert.Contains(t, stats, "visible")
}

func TestTickLogsAfterInterval(t *testing.T) {
	rec := logging.NewRecordingLogger()
	p := NewProfiler(WithLogger(rec), WithUpdateInterval(time.Millisecond))

	time.Sleep(2 * time.Millisecond)
	assert.True(t, p.Tick())
	assert.Len(t, rec.Entries("INFO"), 1)

	slow := NewProfiler(WithLogger(logging.NewNopLogger()), WithUpdateInterval(time.Hour))
	assert.False(t, slow.Tick())
}

func TestNilProfilerIsSafe(t *testing.T) {
	var p *Profiler
	assert.NotPanics(t, func() {
		p.BeginScope("x")
		p.EndScope("x")
		p.SetCount("x", 1)
		p.Tick()
	})
}

func TestConcurrentScopes(t *testing.T) {
	p := NewProfiler(WithLogger(logging.NewNopLogger()), WithUpdateInterval(time.Hour))
	var wg sync.WaitGroup
	for _, name := range []string{"update", "render"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				p.BeginScope(name)
				p.EndScope(name)
				p.Tick()
			}
		}()
	}
	wg.Wait()
	_, ok := p.Scope("update")
	assert.True(t, ok)
}
