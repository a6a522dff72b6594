package viewer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-demos/common"
	"github.com/Carmen-Shannon/oxy-demos/config"
	"github.com/Carmen-Shannon/oxy-demos/engine/game_object"
	"github.com/Carmen-Shannon/oxy-demos/engine/procedural"
	"github.com/Carmen-Shannon/oxy-demos/engine/renderer"
	"github.com/Carmen-Shannon/oxy-demos/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-demos/engine/window"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func headlessConfig(frames int) config.Config {
	cfg := config.Default()
	cfg.Headless = true
	cfg.Frames = frames
	cfg.Seed = 42
	cfg.Workers.Count = 2
	return cfg
}

func planeDemo(plane *procedural.DisplacedPlane) Demo {
	return Demo{
		Name: "plane",
		Eye:  mgl32.Vec3{0, 0, 10},
		Setup: func(v *Viewer) error {
			p, err := procedural.NewDisplacedPlane(
				procedural.PlaneParams{Width: 20, Height: 20, WidthSegments: 10, HeightSegments: 10},
				procedural.WithRand(v.Rand()),
			)
			if err != nil {
				return err
			}
			*plane = p
			v.Scene().Add(game_object.NewMesh(p.Model(), material.NewMaterial(material.WithVertexColors(true))))
			v.AddMutator("plane", func(t, _ float32) error {
				p.Update(t)
				return nil
			})
			return nil
		},
	}
}

func TestEndToEndResize(t *testing.T) {
	platform := window.NewHeadlessPlatform(3)
	backend := renderer.NewHeadlessBackend()
	var plane procedural.DisplacedPlane

	v, err := New(headlessConfig(3), planeDemo(&plane),
		WithPlatform(platform), WithRendererBackend(backend), WithLogger(zap.NewNop()))
	require.NoError(t, err)
	t.Cleanup(func() { v.Close() })

	assert.Equal(t, float32(800)/float32(600), v.Camera().Aspect())
	assert.Equal(t, 121, plane.Model().Buffers().VertexCount())

	platform.Resize(1024, 768)
	require.NoError(t, v.Run())

	assert.Equal(t, float32(1024)/float32(768), v.Camera().Aspect())
	w, h := v.Renderer().Size()
	assert.Equal(t, 1024, w)
	assert.Equal(t, 768, h)
	w, h = backend.SurfaceSize()
	assert.Equal(t, 1024, w)
	assert.Equal(t, 768, h)
	assert.Equal(t, 3, backend.Frames())
}

func TestHandleResizeUsesContentScale(t *testing.T) {
	v, err := New(headlessConfig(1), Demo{Name: "empty"},
		WithPlatform(window.NewHeadlessPlatform(1)), WithLogger(zap.NewNop()))
	require.NoError(t, err)
	t.Cleanup(func() { v.Close() })

	v.HandleResize(2048, 1536, 2)
	w, h := v.Viewport().Size()
	assert.Equal(t, 1024, w)
	assert.Equal(t, 768, h)
	assert.Equal(t, float32(2), v.Renderer().PixelRatio())
	bw, bh := v.Renderer().DrawingBufferSize()
	assert.Equal(t, 2048, bw)
	assert.Equal(t, 1536, bh)

	v.HandleResize(6000, 3000, 4)
	assert.Equal(t, float32(2), v.Viewport().PixelRatio(), "pixel ratio capped")
}

func TestPanelReadoutInTitle(t *testing.T) {
	platform := window.NewHeadlessPlatform(2)
	speed := float32(1)
	demo := Demo{Name: "knobs", Title: "Knobs", Setup: func(v *Viewer) error {
		v.Panel().Folder("motion").AddFloat("speed", func() float32 { return speed }, func(s float32) { speed = s }, 0, 5, 0.5)
		return nil
	}}
	v, err := New(headlessConfig(2), demo, WithPlatform(platform), WithLogger(zap.NewNop()))
	require.NoError(t, err)
	t.Cleanup(func() { v.Close() })

	platform.PressKey(common.KeyRight)
	require.NoError(t, v.Run())

	assert.Equal(t, float32(1.5), speed)
	assert.Contains(t, platform.Title(), "Knobs")
	assert.Contains(t, platform.Title(), "[motion] speed: 1.5 (1/1)")
}

func TestPresetAppliedAtStartup(t *testing.T) {
	preset := filepath.Join(t.TempDir(), "knobs.toml")
	require.NoError(t, os.WriteFile(preset, []byte("[motion]\nspeed = 4.0\n"), 0o644))

	cfg := headlessConfig(1)
	cfg.Panel.Preset = preset
	cfg.Panel.Watch = false
	speed := float32(1)
	demo := Demo{Name: "knobs", Setup: func(v *Viewer) error {
		v.Panel().Folder("motion").AddFloat("speed", func() float32 { return speed }, func(s float32) { speed = s }, 0, 5, 0.5)
		return nil
	}}
	v, err := New(cfg, demo, WithPlatform(window.NewHeadlessPlatform(1)), WithLogger(zap.NewNop()))
	require.NoError(t, err)
	t.Cleanup(func() { v.Close() })
	assert.Equal(t, float32(4), speed)
}

func TestRegistryLookup(t *testing.T) {
	r := Registry{"b": {Name: "b"}, "a": {Name: "a"}}
	d, err := r.Lookup("a")
	require.NoError(t, err)
	assert.Equal(t, "a", d.Name)
	assert.Equal(t, []string{"a", "b"}, r.Names())

	_, err = r.Lookup("nope")
	require.ErrorIs(t, err, ErrUnknownDemo)
}

func TestSetupErrorClosesViewer(t *testing.T) {
	platform := window.NewHeadlessPlatform(1)
	_, err := New(headlessConfig(1), Demo{Name: "broken", Setup: func(*Viewer) error {
		return config.ErrInvalid
	}}, WithPlatform(platform), WithLogger(zap.NewNop()))
	require.ErrorIs(t, err, config.ErrInvalid)
	assert.False(t, platform.PollEvents(), "window closed on failure")
}

func TestEscapeQuits(t *testing.T) {
	platform := window.NewHeadlessPlatform(0)
	v, err := New(headlessConfig(0), Demo{Name: "esc"}, WithPlatform(platform), WithLogger(zap.NewNop()))
	require.NoError(t, err)
	t.Cleanup(func() { v.Close() })

	platform.PressKey(common.KeyEsc)
	require.NoError(t, v.Run())
	assert.Equal(t, uint64(0), v.Engine().Frames())
}

func TestPointerLeavingWindowStopsPicking(t *testing.T) {
	platform := window.NewHeadlessPlatform(1)
	v, err := New(headlessConfig(1), Demo{Name: "leave"}, WithPlatform(platform), WithLogger(zap.NewNop()))
	require.NoError(t, err)
	t.Cleanup(func() { v.Close() })

	platform.MoveMouse(400, 300)
	platform.LeaveMouse()
	require.NoError(t, v.Run())

	_, _, inside := v.Pointer().NDC()
	assert.False(t, inside)
}
