package demos

import (
	"io/fs"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-demos/config"
	"github.com/Carmen-Shannon/oxy-demos/engine/game_object"
	"github.com/Carmen-Shannon/oxy-demos/engine/renderer"
	"github.com/Carmen-Shannon/oxy-demos/engine/window"
	"github.com/Carmen-Shannon/oxy-demos/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func headlessConfig(frames int) config.Config {
	cfg := config.Default()
	cfg.Headless = true
	cfg.Frames = frames
	cfg.Seed = 7
	cfg.Workers.Count = 2
	cfg.Panel.Watch = false
	cfg.Assets.Dir = "../assets"
	return cfg
}

func runHeadless(t *testing.T, name string, frames int) (*viewer.Viewer, *renderer.HeadlessBackend) {
	t.Helper()
	backend := renderer.NewHeadlessBackend()
	v, err := New(name, headlessConfig(frames),
		viewer.WithPlatform(window.NewHeadlessPlatform(frames)),
		viewer.WithRendererBackend(backend),
		viewer.WithLogger(zap.NewNop()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { v.Close() })
	require.NoError(t, v.Run())
	return v, backend
}

func TestEveryDemoRunsHeadless(t *testing.T) {
	require.Equal(t, []string{"haunted_house", "materials", "particles", "primitives", "terrain", "text"}, All.Names())

	for _, name := range All.Names() {
		t.Run(name, func(t *testing.T) {
			v, backend := runHeadless(t, name, 3)

			assert.Equal(t, 3, backend.Frames())
			assert.NotEmpty(t, backend.Draws(), "last frame drew nothing")
			assert.Equal(t, uint64(3), v.Engine().Frames())
			assert.Zero(t, v.Engine().DroppedFrames())
			assert.Zero(t, v.Engine().Panics())
			assert.NotEmpty(t, v.Panel().Bindings(), "every demo binds panel controls")
		})
	}
}

func TestNewRejectsUnknownDemo(t *testing.T) {
	_, err := New("teapot", headlessConfig(1))
	require.ErrorIs(t, err, viewer.ErrUnknownDemo)
}

func TestPrimitivesPanelTogglesAxes(t *testing.T) {
	v, _ := runHeadless(t, "primitives", 1)
	assert.Equal(t, 7, v.Scene().Count(), "six shapes and the axes helper")

	b, ok := v.Panel().Lookup("primitives", "axes")
	require.True(t, ok)
	require.NoError(t, b.Apply(false))

	var axesVisible bool
	v.Scene().Traverse(func(obj game_object.GameObject) bool {
		if obj.Name() == "axes" {
			axesVisible = obj.Visible()
		}
		return true
	})
	assert.False(t, axesVisible)
}

func TestMaterialsKindChoice(t *testing.T) {
	v, _ := runHeadless(t, "materials", 1)

	b, ok := v.Panel().Lookup("material", "kind")
	require.True(t, ok)
	require.NoError(t, b.Apply("toon"))
	assert.Equal(t, "toon", b.String())

	require.Error(t, b.Apply("glass"))
	assert.Equal(t, "toon", b.String())
}

func TestTerrainRegeneratesFromPanel(t *testing.T) {
	backend := renderer.NewHeadlessBackend()
	platform := window.NewHeadlessPlatform(2)
	v, err := Terrain(headlessConfig(0),
		viewer.WithPlatform(platform),
		viewer.WithRendererBackend(backend),
		viewer.WithLogger(zap.NewNop()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { v.Close() })

	var mesh game_object.GameObject
	v.Scene().Traverse(func(obj game_object.GameObject) bool {
		if obj.Name() == "terrain" {
			mesh = obj
		}
		return mesh == nil
	})
	require.NotNil(t, mesh)
	assert.Equal(t, 41*41, mesh.Model().Buffers().VertexCount())

	b, ok := v.Panel().Lookup("plane", "widthSegments")
	require.True(t, ok)
	require.NoError(t, b.Apply(int64(10)))

	// The new grid is built on the pool and installed by the first frame after it is ready.
	deadline := time.Now().Add(time.Second)
	for mesh.Model().Buffers().VertexCount() != 11*41 && time.Now().Before(deadline) {
		v.Engine().Frame()
		time.Sleep(5 * time.Millisecond)
	}
	assert.Equal(t, 11*41, mesh.Model().Buffers().VertexCount())
	assert.Zero(t, v.Engine().DroppedFrames())
}

func TestHauntedHouseNeedsTextures(t *testing.T) {
	cfg := headlessConfig(1)
	cfg.Assets.Dir = t.TempDir()
	_, err := HauntedHouse(cfg,
		viewer.WithPlatform(window.NewHeadlessPlatform(1)),
		viewer.WithRendererBackend(renderer.NewHeadlessBackend()),
		viewer.WithLogger(zap.NewNop()),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "haunted house texture")
}

func TestHauntedHouseGhostsOrbit(t *testing.T) {
	v, _ := runHeadless(t, "haunted_house", 3)
	fog := v.Scene().Fog()
	require.NotNil(t, fog)
	assert.Equal(t, fogColor, v.Scene().Background())
	assert.InDelta(t, 15, fog.Far, 1e-6)
	assert.Len(t, v.Scene().Lights(), 6, "ambient, moon, door and three ghosts")
}

func TestParticlesPanelRegenerates(t *testing.T) {
	v, _ := runHeadless(t, "particles", 1)

	b, ok := v.Panel().Lookup("particles", "count")
	require.True(t, ok)
	require.NoError(t, b.Apply(int64(1000)))

	var count int
	v.Scene().Traverse(func(obj game_object.GameObject) bool {
		if obj.Name() == "particles" {
			count = obj.Model().Buffers().InstanceCount()
		}
		return true
	})
	assert.Equal(t, 1000, count)
}
