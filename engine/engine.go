// Package engine drives the per-frame render loop: controls, diagnostics, per-frame mutators and
// one draw of the scene, called from the window message loop.
package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-demos/engine/camera"
	"github.com/Carmen-Shannon/oxy-demos/engine/logging"
	"github.com/Carmen-Shannon/oxy-demos/engine/profiler"
	"github.com/Carmen-Shannon/oxy-demos/engine/renderer"
	"github.com/Carmen-Shannon/oxy-demos/engine/scene"
	"github.com/Carmen-Shannon/oxy-demos/engine/window"
	"go.uber.org/zap"
)

// FrameFunc is a per-frame mutator. It receives the elapsed time of the animation clock and the
// duration of the previous frame, both in seconds. A returned error drops the frame's draw.
type FrameFunc func(t, dt float32) error

// ErrPanic wraps a value recovered from a panicking frame.
var ErrPanic = errors.New("frame panicked")

// mutator is a named FrameFunc.
type mutator struct {
	name string
	fn   FrameFunc
}

// engine implements the Engine interface.
type engine struct {
	mu *sync.Mutex

	window   window.Window
	renderer renderer.Renderer
	scene    scene.Scene
	camera   camera.Camera
	logger   *zap.Logger

	profiler         *profiler.Profiler
	profilingEnabled bool

	mutators []mutator

	now              func() time.Time
	start            time.Time
	lastFrame        time.Time
	elapsed          float32
	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	maxFrames        uint64        // quit after this many frames; 0 = unbounded

	frames  uint64
	dropped uint64
	panics  uint64

	frame func()
}

// Engine runs a scene's render loop on the window message loop. Each frame, in order, it
// advances the camera controller, updates the profiler, spins nodes by their rotation speeds,
// runs every mutator in registration order and draws the scene once. Frames never overlap: the
// next one starts when the window loop calls again. A frame whose mutator fails or panics is
// logged and its draw skipped; the loop carries on.
type Engine interface {
	// Window returns the window the loop runs on.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Renderer returns the renderer frames are drawn with.
	Renderer() renderer.Renderer

	// Scene returns the scene drawn each frame.
	Scene() scene.Scene

	// Camera returns the camera the scene is drawn from.
	Camera() camera.Camera

	// Profiler returns the frame counter.
	Profiler() *profiler.Profiler

	// EnableProfiler enables the periodic frame stats log.
	EnableProfiler()

	// DisableProfiler disables the periodic frame stats log. Frames are still counted and the
	// frame rate stays current.
	DisableProfiler()

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddMutator registers a per-frame function. Mutators run in registration order after the
	// camera and profiler updates and before the draw.
	//
	// Parameters:
	//   - name: label used in logs
	//   - fn: the function to call each frame
	AddMutator(name string, fn FrameFunc)

	// Frame runs one iteration of the loop. Run installs it as the window's update callback;
	// tests call it directly.
	Frame()

	// Elapsed returns the animation clock in seconds. It only moves forward.
	Elapsed() float32

	// Frames returns how many frames ran, including dropped ones.
	Frames() uint64

	// DroppedFrames returns how many frames skipped their draw because of an error or panic.
	DroppedFrames() uint64

	// Panics returns how many frames panicked.
	Panics() uint64

	// Run drives the loop until the window closes.
	//
	// Returns:
	//   - error: error if the engine is missing its window, renderer, scene or camera
	Run() error

	// Quit closes the window, which ends Run after the current frame.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (window, renderer, scene, camera, profiling)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:     &sync.Mutex{},
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range options {
		opt(e)
	}
	e.logger = logging.OrNop(e.logger).Named("engine")
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))
	}
	e.profiler.SetLogging(e.profilingEnabled)
	// One closure for the lifetime of the engine; the window calls it every iteration.
	e.frame = e.Frame
	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) Profiler() *profiler.Profiler {
	return e.profiler
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = true
	e.profiler.SetLogging(true)
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
	e.profiler.SetLogging(false)
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderFrameLimit = frameDuration(fps)
}

func (e *engine) AddMutator(name string, fn FrameFunc) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mutators = append(e.mutators, mutator{name: name, fn: fn})
}

func (e *engine) Run() error {
	if e.window == nil || e.renderer == nil || e.scene == nil || e.camera == nil {
		return fmt.Errorf("engine: window, renderer, scene and camera are required")
	}
	e.window.SetUpdateCallback(e.frame)
	e.logger.Info("render loop started", zap.String("scene", e.scene.Name()))
	e.window.ProcessMessages()
	e.logger.Info("render loop stopped",
		zap.Uint64("frames", e.Frames()),
		zap.Uint64("dropped", e.DroppedFrames()),
		zap.Uint64("panics", e.Panics()))
	return nil
}

// Quit closes the window. Safe to call multiple times.
func (e *engine) Quit() {
	if e.window == nil {
		return
	}
	if err := e.window.Close(); err != nil {
		e.logger.Warn("window close failed", zap.Error(err))
	}
}

func (e *engine) Frame() {
	frameStart := e.now()
	t, dt := e.tick(frameStart)

	if err := e.runFrame(t, dt); err != nil {
		e.mu.Lock()
		e.dropped++
		e.mu.Unlock()
		e.logger.Error("frame dropped", zap.Float32("t", t), zap.Error(err))
	}

	e.mu.Lock()
	limit := e.renderFrameLimit
	done := e.maxFrames > 0 && e.frames >= e.maxFrames
	e.mu.Unlock()
	if done {
		// The window closes between frames, never under a draw.
		e.Quit()
		return
	}
	if limit > 0 {
		if remaining := limit - e.now().Sub(frameStart); remaining > 0 {
			time.Sleep(remaining)
		}
	}
}

// tick advances the animation clock. The first frame starts it at zero.
func (e *engine) tick(now time.Time) (t, dt float32) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frames++
	if e.start.IsZero() {
		e.start, e.lastFrame = now, now
		return 0, 0
	}
	if d := now.Sub(e.lastFrame); d > 0 {
		dt = float32(d.Seconds())
		e.lastFrame = now
	}
	// A clock that steps backwards never rewinds the animation.
	if t := float32(now.Sub(e.start).Seconds()); t > e.elapsed {
		e.elapsed = t
	}
	return e.elapsed, dt
}

// runFrame runs the frame steps in order. A panic anywhere in the frame is recovered, logged
// with its stack and returned as an ErrPanic.
func (e *engine) runFrame(t, dt float32) (err error) {
	defer func() {
		if r := recover(); r != nil {
			e.mu.Lock()
			e.panics++
			e.mu.Unlock()
			e.logger.Error("frame recovered from panic", zap.Any("panic", r), zap.Stack("stack"))
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	if e.camera != nil {
		if ctrl := e.camera.Controller(); ctrl != nil {
			ctrl.Update()
		}
		e.camera.Update()
	}

	e.mu.Lock()
	mutators := e.mutators
	e.mu.Unlock()
	e.profiler.Update()
	if e.scene != nil {
		e.scene.Advance(dt)
	}

	for _, m := range mutators {
		if err := m.fn(t, dt); err != nil {
			return fmt.Errorf("%s: %w", m.name, err)
		}
	}

	if e.renderer == nil || e.scene == nil || e.camera == nil {
		return nil
	}
	return e.renderer.Render(e.scene, e.camera)
}

func (e *engine) Elapsed() float32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.elapsed
}

func (e *engine) Frames() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frames
}

func (e *engine) DroppedFrames() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dropped
}

func (e *engine) Panics() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.panics
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
