package debug_panel

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-demos/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type params struct {
	size     float32
	count    int
	visible  bool
	color    common.Color
	blending string
}

func newTestPanel(t *testing.T, opts ...PanelBuilderOption) (*Panel, *params) {
	t.Helper()
	v := &params{size: 0.1, count: 100, visible: true, color: common.MustHex("#ff0000"), blending: "normal"}
	p := NewPanel("test", opts...)
	f := p.Folder("particles")
	f.AddFloat("size", func() float32 { return v.size }, func(x float32) { v.size = x }, 0, 1, 0.1)
	f.AddInt("count", func() int { return v.count }, func(x int) { v.count = x }, 1, 1000, 50)
	g := p.Folder("look")
	g.AddBool("visible", func() bool { return v.visible }, func(x bool) { v.visible = x })
	g.AddColor("color", func() common.Color { return v.color }, func(c common.Color) { v.color = c })
	g.AddChoice("blending", func() string { return v.blending }, func(s string) { v.blending = s }, []string{"normal", "additive"})
	return p, v
}

func TestFloatControlStepsAndClamps(t *testing.T) {
	v := float32(0.95)
	var changes, finishes int
	c := newFloatControl("f", "x", func() float32 { return v }, func(x float32) { v = x }, 0, 1, 0.1)
	c.OnChange(func(float32) { changes++ }).OnFinishChange(func(float32) { finishes++ })

	c.Step(1)
	assert.Equal(t, float32(1), v)
	c.Step(-1)
	assert.InDelta(t, 0.9, v, 1e-6)
	assert.Equal(t, "0.9", c.String())
	assert.Equal(t, 2, changes)
	assert.Equal(t, 0, finishes)

	c.SetValue(-4)
	assert.Equal(t, float32(0), v)
	assert.Equal(t, 1, finishes)
}

func TestChoiceAndColorControls(t *testing.T) {
	s := "b"
	c := newChoiceControl("f", "mode", func() string { return s }, func(x string) { s = x }, []string{"a", "b", "c"})
	c.Step(1)
	c.Step(1)
	assert.Equal(t, "a", s)
	c.Step(-1)
	assert.Equal(t, "c", s)
	require.Error(t, c.Apply("z"))

	col := common.MustHex("#ff0000")
	cc := newColorControl("f", "tint", func() common.Color { return col }, func(x common.Color) { col = x })
	cc.Step(1)
	h, _, _ := col.Hsv()
	assert.InDelta(t, 15, h, 1e-6)
	require.NoError(t, cc.Apply("#00ff00"))
	assert.Equal(t, "#00ff00", cc.String())
	require.Error(t, cc.Apply(3.0))
}

func TestKeyboardDriver(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	p, v := newTestPanel(t, WithLogger(zap.New(core)))
	var committed []float32
	b, ok := p.Lookup("particles", "size")
	require.True(t, ok)
	b.(*Control[float32]).OnFinishChange(func(x float32) { committed = append(committed, x) })

	assert.Equal(t, "[particles] size: 0.1 (1/5)", p.Status())

	assert.True(t, p.HandleKeyDown(common.KeyRight))
	assert.True(t, p.HandleKeyDown(common.KeyRight))
	assert.InDelta(t, 0.3, v.size, 1e-6)
	assert.Empty(t, committed)
	p.HandleKeyUp(common.KeyRight)
	require.Len(t, committed, 1)
	assert.InDelta(t, 0.3, committed[0], 1e-6)
	assert.Len(t, logs.FilterMessage("control committed").All(), 1)

	// Shift+Tab wraps to the last control.
	p.HandleKeyDown(common.KeyLeftShift)
	p.HandleKeyDown(common.KeyTab)
	p.HandleKeyUp(common.KeyLeftShift)
	assert.Equal(t, "blending", p.Selected().Name())
	p.HandleKeyDown(common.KeyRight)
	assert.Equal(t, "additive", v.blending)

	p.HandleKeyDown(common.KeyUp)
	p.HandleKeyDown(common.KeyUp)
	assert.Equal(t, "visible", p.Selected().Name())
	assert.True(t, p.HandleKeyDown(common.KeySpace))
	assert.False(t, v.visible)

	p.HandleKeyDown(common.KeyDown)
	assert.False(t, p.HandleKeyDown(common.KeySpace), "space only toggles bools")

	assert.True(t, p.HandleKeyDown(common.KeyH))
	assert.True(t, p.Hidden())
	assert.Empty(t, p.Status())
	assert.False(t, p.HandleKeyDown(common.KeyRight))
	p.HandleKeyDown(common.KeyH)
	assert.False(t, p.Hidden())
}

func TestEmptyPanelIgnoresKeys(t *testing.T) {
	p := NewPanel("empty", WithHidden(false))
	assert.False(t, p.HandleKeyDown(common.KeyRight))
	assert.Nil(t, p.Selected())
	assert.Empty(t, p.Status())
	assert.ErrorIs(t, p.SavePreset(""), ErrNoPresetPath)
}

func TestPresetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.toml")
	p, v := newTestPanel(t, WithPresetPath(path))
	v.size, v.count, v.visible, v.blending = 0.5, 300, false, "additive"
	v.color = common.MustHex("#336699")

	assert.True(t, p.HandleKeyDown(common.KeyP))
	_, err := os.Stat(path)
	require.NoError(t, err)

	q, w := newTestPanel(t)
	require.NoError(t, q.LoadPreset(path))
	assert.InDelta(t, 0.5, w.size, 1e-6)
	assert.Equal(t, 300, w.count)
	assert.False(t, w.visible)
	assert.Equal(t, "additive", w.blending)
	assert.Equal(t, "#336699", w.color.String())
}

func TestApplyPresetSkipsUnknownAndJoinsErrors(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	p, v := newTestPanel(t, WithLogger(zap.New(core)))

	err := p.ApplyPreset([]byte(`
[particles]
size = 0.7
count = "many"
ghost = 1

[look]
blending = "subtractive"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "particles/count")
	assert.Contains(t, err.Error(), "look/blending")
	assert.InDelta(t, 0.7, v.size, 1e-6, "valid values still apply")
	assert.Equal(t, 100, v.count)
	assert.Len(t, logs.FilterMessage("preset names unknown control").All(), 1)

	require.Error(t, p.ApplyPreset([]byte("not = [toml")))
}

func TestWatchReloadsOnPoll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "live.toml")
	require.NoError(t, os.WriteFile(path, []byte("[particles]\nsize = 0.2\n"), 0o644))

	p, v := newTestPanel(t)
	require.NoError(t, p.Watch(path))
	t.Cleanup(func() { p.Close() })
	assert.False(t, p.Poll())

	require.NoError(t, os.WriteFile(path, []byte("[particles]\nsize = 0.8\n"), 0o644))
	require.Eventually(t, func() bool {
		p.Poll()
		return v.size > 0.7
	}, 5*time.Second, 10*time.Millisecond)
	assert.InDelta(t, 0.8, v.size, 1e-6)
	require.NoError(t, p.Close())
}
