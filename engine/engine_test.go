package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-demos/common"
	"github.com/Carmen-Shannon/oxy-demos/engine/camera"
	"github.com/Carmen-Shannon/oxy-demos/engine/game_object"
	"github.com/Carmen-Shannon/oxy-demos/engine/model"
	"github.com/Carmen-Shannon/oxy-demos/engine/renderer"
	"github.com/Carmen-Shannon/oxy-demos/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-demos/engine/scene"
	"github.com/Carmen-Shannon/oxy-demos/engine/window"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

type harness struct {
	platform *window.HeadlessPlatform
	backend  *renderer.HeadlessBackend
	clock    *fakeClock
	camera   camera.Camera
	opts     []EngineBuilderOption
}

func newHarness(t *testing.T, frames int) *harness {
	t.Helper()
	platform := window.NewHeadlessPlatform(frames)
	win, err := window.NewWindow(window.WithPlatform(platform), window.WithWidth(800), window.WithHeight(600))
	require.NoError(t, err)

	backend := renderer.NewHeadlessBackend()
	r, err := renderer.NewRenderer(renderer.BackendTypeHeadless, win, renderer.WithBackend(backend))
	require.NoError(t, err)
	t.Cleanup(r.Release)

	ctrl := camera.NewCameraController(camera.WithEyePosition(mgl32.Vec3{0, 0, 5}), camera.WithDamping(false, 0))
	cam := camera.NewCamera(camera.WithAspect(800.0/600.0), camera.WithController(ctrl))

	box := game_object.NewMesh(
		model.NewModel(model.BoxGeometry(1, 1, 1, 1, 1, 1), model.WithName("box")),
		material.NewMaterial(material.WithColor(common.Red)),
	)
	s := scene.NewScene("test", scene.WithObjects(box))

	clock := &fakeClock{t: time.Unix(100, 0)}
	return &harness{
		platform: platform,
		backend:  backend,
		clock:    clock,
		camera:   cam,
		opts: []EngineBuilderOption{
			WithWindow(win), WithRenderer(r), WithScene(s), WithCamera(cam), WithClock(clock.now),
		},
	}
}

func TestRunDrawsOneFramePerIteration(t *testing.T) {
	h := newHarness(t, 5)
	var order []string
	var times []float32
	e := NewEngine(append(h.opts,
		WithMutator("first", func(tm, dt float32) error {
			order = append(order, "first")
			times = append(times, tm)
			h.clock.t = h.clock.t.Add(100 * time.Millisecond)
			return nil
		}),
		WithMutator("second", func(tm, dt float32) error {
			order = append(order, "second")
			return nil
		}),
	)...)

	require.NoError(t, e.Run())
	assert.Equal(t, 5, h.backend.Frames())
	assert.Equal(t, uint64(5), e.Frames())
	assert.Zero(t, e.DroppedFrames())
	assert.Equal(t, []string{"first", "second", "first", "second", "first", "second", "first", "second", "first", "second"}, order)

	require.Len(t, times, 5)
	assert.Equal(t, float32(0), times[0])
	for i := 1; i < len(times); i++ {
		assert.Greater(t, times[i], times[i-1], "clock only moves forward")
	}
}

func TestMutatorRunsBeforeDraw(t *testing.T) {
	h := newHarness(t, 0)
	var drawnBefore []int
	e := NewEngine(append(h.opts, WithMutator("probe", func(_, _ float32) error {
		drawnBefore = append(drawnBefore, h.backend.Frames())
		return nil
	}))...)

	e.Frame()
	e.Frame()
	assert.Equal(t, []int{0, 1}, drawnBefore)
}

func TestFailedFrameSkipsDrawAndContinues(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	h := newHarness(t, 0)
	fail := true
	e := NewEngine(append(h.opts, WithLogger(zap.New(core)), WithMutator("flaky", func(_, _ float32) error {
		if fail {
			return errors.New("boom")
		}
		return nil
	}))...)

	e.Frame()
	assert.Equal(t, 0, h.backend.Frames())
	assert.Equal(t, uint64(1), e.DroppedFrames())
	entries := logs.FilterMessage("frame dropped").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap()["error"], "flaky: boom")

	fail = false
	e.Frame()
	assert.Equal(t, 1, h.backend.Frames())
	assert.Equal(t, uint64(1), e.DroppedFrames())
}

func TestPanickingFrameIsRecovered(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	h := newHarness(t, 3)
	calls := 0
	e := NewEngine(append(h.opts, WithLogger(zap.New(core)), WithMutator("explode", func(_, _ float32) error {
		calls++
		if calls == 2 {
			panic("index out of range")
		}
		return nil
	}))...)

	require.NoError(t, e.Run())
	assert.Equal(t, 3, calls)
	assert.Equal(t, 2, h.backend.Frames())
	assert.Equal(t, uint64(1), e.Panics())
	assert.Equal(t, uint64(1), e.DroppedFrames())

	entries := logs.FilterMessage("frame recovered from panic").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap(), "stack")
}

func TestCameraControllerAdvancesEachFrame(t *testing.T) {
	h := newHarness(t, 0)
	e := NewEngine(h.opts...)
	before := h.camera.Position()

	h.camera.Controller().Zoom(1)
	e.Frame()
	assert.Less(t, h.camera.Position().Len(), before.Len(), "zoom applied by the loop")
}

func TestRunRequiresComponents(t *testing.T) {
	require.Error(t, NewEngine().Run())
}

func TestQuitEndsRun(t *testing.T) {
	h := newHarness(t, 0)
	var e Engine
	e = NewEngine(append(h.opts, WithMutator("quit", func(_, _ float32) error {
		if e.Frames() == 2 {
			e.Quit()
		}
		return nil
	}))...)
	require.NoError(t, e.Run())
	assert.Equal(t, uint64(2), e.Frames())
	e.Quit()
}

func TestMaxFramesStopsLoop(t *testing.T) {
	h := newHarness(t, 0)
	e := NewEngine(append(h.opts, WithMaxFrames(4))...)
	require.NoError(t, e.Run())
	assert.Equal(t, uint64(4), e.Frames())
	assert.Equal(t, 4, h.backend.Frames(), "the last frame is drawn before the window closes")
}

func TestDisabledProfilerStillCountsFrames(t *testing.T) {
	h := newHarness(t, 0)
	e := NewEngine(append(h.opts, WithMaxFrames(5))...)
	e.DisableProfiler()
	require.NoError(t, e.Run())
	assert.Equal(t, uint64(5), e.Profiler().Stats().Frames)
}
