package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestProfilerReportsIntervalStats(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(WithClock(clock.now), WithLogger(zap.New(core)), WithMemStats(false))

	require.False(t, p.Update(), "first frame starts the clock")

	// 59 frames of 16ms and one slow frame close the 1s window.
	for range 59 {
		clock.advance(16 * time.Millisecond)
		require.False(t, p.Update())
	}
	clock.advance(56 * time.Millisecond)
	require.True(t, p.Update())

	s := p.Stats()
	assert.InDelta(t, 60, s.FPS, 1e-9)
	assert.InDelta(t, 1000.0/56, s.MinFPS, 1e-9)
	assert.InDelta(t, 1000.0/16, s.MaxFPS, 1e-9)
	assert.InDelta(t, 56, s.FrameTimeMs, 1e-9)
	assert.Equal(t, uint64(61), s.Frames)

	entries := logs.FilterMessage("frame stats").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "profiler", entries[0].LoggerName)
	assert.Equal(t, 60.0, entries[0].ContextMap()["fps"])
	assert.NotContains(t, entries[0].ContextMap(), "heapMB")
}

func TestProfilerStartsNewWindow(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(WithClock(clock.now), WithInterval(100*time.Millisecond))
	p.Update()

	clock.advance(100 * time.Millisecond)
	require.True(t, p.Update())
	assert.InDelta(t, 10, p.FPS(), 1e-9)

	clock.advance(50 * time.Millisecond)
	require.False(t, p.Update())
	clock.advance(50 * time.Millisecond)
	require.True(t, p.Update())
	assert.InDelta(t, 20, p.FPS(), 1e-9)
}

func TestProfilerLogsHeapWhenEnabled(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(WithClock(clock.now), WithLogger(zap.New(core)))
	p.Update()
	clock.advance(time.Second)
	require.True(t, p.Update())

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap(), "heapMB")
	assert.Contains(t, entries[0].ContextMap(), "gc")
}

func TestProfilerSilencedKeepsCounting(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(WithClock(clock.now), WithLogger(zap.New(core)), WithMemStats(false))
	p.SetLogging(false)

	p.Update()
	for range 10 {
		clock.advance(100 * time.Millisecond)
		p.Update()
	}

	assert.Equal(t, uint64(11), p.Stats().Frames)
	assert.InDelta(t, 10, p.FPS(), 1e-9)
	assert.Zero(t, logs.Len())
}
