package tween

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-demos/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTweenReachesEndAndCompletesOnce(t *testing.T) {
	var got []float32
	completed := 0
	tw := New(0.5, func(p float32) { got = append(got, p) }, WithOnComplete(func() { completed++ }))

	assert.False(t, tw.Step(0.25))
	assert.True(t, tw.Step(0.3))
	assert.True(t, tw.Step(0.1))

	assert.Equal(t, []float32{0.5, 1}, got)
	assert.Equal(t, 1, completed)
	assert.True(t, tw.Done())
}

func TestZeroDurationFinishesOnFirstStep(t *testing.T) {
	var last float32 = -1
	tw := New(0, func(p float32) { last = p })
	assert.True(t, tw.Step(0))
	assert.Equal(t, float32(1), last)
}

func TestEasings(t *testing.T) {
	for name, ease := range map[string]Easing{
		"linear":  Linear,
		"outQuad": EaseOutQuad,
	} {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, 0, ease(0), 1e-6)
			assert.InDelta(t, 1, ease(1), 1e-6)
		})
	}
	assert.InDelta(t, 0.75, EaseOutQuad(0.5), 1e-6)
}

func TestColorTweenBlendsToTarget(t *testing.T) {
	var c common.Color
	g := NewGroup()
	g.Add(Color(common.Black, common.White, 1, func(v common.Color) { c = v }))
	assert.Equal(t, common.Black, c, "start value applied on Add")

	g.Update(0.5)
	assert.InDelta(t, 0.5, c.R, 1e-6)

	g.Update(0.5)
	assert.Equal(t, common.White, c)
	assert.Equal(t, 0, g.Len())
}

func TestGroupRunsTweensIndependently(t *testing.T) {
	g := NewGroup()
	var a, b float32
	g.Add(New(1, func(p float32) { a = p }))
	g.Update(0.5)
	g.Add(New(1, func(p float32) { b = p }))
	require.Equal(t, 2, g.Len())

	g.Update(0.5)
	assert.Equal(t, float32(1), a)
	assert.Equal(t, float32(0.5), b)
	assert.Equal(t, 1, g.Len())

	g.Clear()
	assert.Equal(t, 0, g.Len())
}
