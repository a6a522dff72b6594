package profiler

import (
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-demos/engine/logging"
	"go.uber.org/zap"
)

// Stats is a snapshot of the frame counter.
type Stats struct {
	// FPS is the average frame rate of the last completed interval.
	FPS float64
	// MinFPS and MaxFPS are the extreme per-frame rates seen in the last completed interval.
	MinFPS float64
	MaxFPS float64
	// FrameTimeMs is the duration of the most recent frame.
	FrameTimeMs float64
	// Frames counts every Update since creation.
	Frames uint64
}

// Profiler tracks frame rate and memory statistics, the way stats.js does for a browser page.
// Update is called once per rendered frame; every interval a summary is logged.
type Profiler struct {
	mu *sync.Mutex

	logger   *zap.Logger
	interval time.Duration
	now      func() time.Time

	started     bool
	windowStart time.Time
	lastFrame   time.Time
	windowCount int
	windowMin   float64
	windowMax   float64

	stats Stats

	quiet bool

	memStats       runtime.MemStats
	readMem        bool
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// NewProfiler creates a new Profiler. The summary interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		mu:       &sync.Mutex{},
		logger:   zap.NewNop(),
		interval: time.Second,
		now:      time.Now,
		readMem:  true,
	}
	for _, opt := range options {
		opt(p)
	}
	p.logger = logging.OrNop(p.logger).Named("profiler")
	return p
}

// Update records one frame. The first call only starts the clock.
//
// Returns:
//   - bool: true if an interval completed this call
func (p *Profiler) Update() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	p.stats.Frames++
	if !p.started {
		p.started = true
		p.windowStart, p.lastFrame = now, now
		p.resetWindow()
		return false
	}

	dt := now.Sub(p.lastFrame)
	p.lastFrame = now
	p.stats.FrameTimeMs = float64(dt) / float64(time.Millisecond)
	if dt > 0 {
		fps := 1 / dt.Seconds()
		p.windowMin = math.Min(p.windowMin, fps)
		p.windowMax = math.Max(p.windowMax, fps)
	}
	p.windowCount++

	elapsed := now.Sub(p.windowStart)
	if elapsed < p.interval {
		return false
	}

	p.stats.FPS = float64(p.windowCount) / elapsed.Seconds()
	p.stats.MinFPS, p.stats.MaxFPS = p.windowMin, p.windowMax
	if math.IsInf(p.stats.MinFPS, 1) {
		p.stats.MinFPS, p.stats.MaxFPS = 0, 0
	}
	if !p.quiet {
		p.logSummary(elapsed)
	}

	p.windowStart = now
	p.resetWindow()
	return true
}

// resetWindow clears the per-interval extremes. Caller must hold the mutex.
func (p *Profiler) resetWindow() {
	p.windowCount = 0
	p.windowMin = math.Inf(1)
	p.windowMax = 0
}

// logSummary writes the interval summary with heap and GC figures. Caller must hold the mutex.
func (p *Profiler) logSummary(elapsed time.Duration) {
	fields := []zap.Field{
		zap.Float64("fps", round2(p.stats.FPS)),
		zap.Float64("minFps", round2(p.stats.MinFPS)),
		zap.Float64("maxFps", round2(p.stats.MaxFPS)),
		zap.Float64("frameMs", round2(p.stats.FrameTimeMs)),
	}

	if p.readMem {
		runtime.ReadMemStats(&p.memStats)
		allocRate := float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds()

		gcCount := p.memStats.NumGC
		var lastPause, maxPause uint64
		if gcCount > 0 {
			// PauseNs is a ring of the last 256 pauses.
			lastPause = p.memStats.PauseNs[(gcCount-1)%256] / 1000
			start := p.lastGCCount
			if gcCount-start > 256 {
				start = gcCount - 256
			}
			for i := start; i < gcCount; i++ {
				maxPause = max(maxPause, p.memStats.PauseNs[i%256]/1000)
			}
		}

		fields = append(fields,
			zap.Float64("heapMB", round2(float64(p.memStats.Alloc)/1024/1024)),
			zap.Float64("allocRateMBps", round2(allocRate)),
			zap.Uint32("gc", gcCount),
			zap.Uint64("gcLastPauseUs", lastPause),
			zap.Uint64("gcMaxPauseUs", maxPause),
			zap.Float64("sysMB", round2(float64(p.memStats.Sys)/1024/1024)),
		)
		p.lastGCCount = gcCount
		p.lastTotalAlloc = p.memStats.TotalAlloc
	}
	p.logger.Info("frame stats", fields...)
}

// SetLogging turns the interval summary log on or off. Stats keep updating either way.
//
// Parameters:
//   - enabled: if true, each completed interval is logged
func (p *Profiler) SetLogging(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.quiet = !enabled
}

// Stats returns the current snapshot.
func (p *Profiler) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// FPS returns the average frame rate of the last completed interval.
func (p *Profiler) FPS() float64 {
	return p.Stats().FPS
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
