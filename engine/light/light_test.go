package light

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-demos/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectionalLightPointsAtOrigin(t *testing.T) {
	l := NewDirectionalLight(common.White, 0.5, mgl32.Vec3{0, 10, 0})
	assert.True(t, l.Direction().ApproxEqualThreshold(mgl32.Vec3{0, -1, 0}, 1e-6))
	assert.Equal(t, LightTypeDirectional, l.Type())
}

func TestMarshalLightBufferFoldsAmbient(t *testing.T) {
	lights := []Light{
		NewAmbientLight(common.RGB(1, 1, 1), 0.5),
		NewAmbientLight(common.RGB(1, 0, 0), 0.25),
		NewPointLight(common.Red, 2, 3, mgl32.Vec3{1, 2, 3}),
		NewPointLight(common.Green, 2, 3, mgl32.Vec3{}),
	}
	lights[3].SetEnabled(false)

	buf := MarshalLightBuffer(lights)
	require.Len(t, buf, LightBufferSize())

	f := func(off int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:])) }
	assert.InDelta(t, 0.75, f(0), 1e-6)
	assert.InDelta(t, 0.5, f(4), 1e-6)
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(buf[12:]))

	assert.Equal(t, float32(1), f(16))
	assert.Equal(t, uint32(LightTypePoint), binary.LittleEndian.Uint32(buf[28:]))
	assert.Equal(t, float32(3), f(16+44))
}

func TestMarshalLightBufferCapacity(t *testing.T) {
	var lights []Light
	for range MaxGPULights + 4 {
		lights = append(lights, NewPointLight(common.White, 1, 0, mgl32.Vec3{}))
	}
	buf := MarshalLightBuffer(lights)
	assert.Equal(t, uint32(MaxGPULights), binary.LittleEndian.Uint32(buf[12:]))
}

func TestGhostOrbits(t *testing.T) {
	g := GhostOrbits()
	tt := float32(2)

	a := 0.5 * tt
	assert.True(t, g[0](tt).ApproxEqualThreshold(mgl32.Vec3{4 * math32.Cos(a), math32.Sin(3 * tt), 4 * math32.Sin(a)}, 1e-5))

	a = -0.32 * tt
	y := math32.Sin(4*tt) + math32.Sin(2.5*tt)
	assert.True(t, g[1](tt).ApproxEqualThreshold(mgl32.Vec3{5 * math32.Cos(a), y, 5 * math32.Sin(a)}, 1e-5))

	a = -0.18 * tt
	want := mgl32.Vec3{(7 + math32.Sin(0.32*tt)) * math32.Cos(a), y, (7 + math32.Sin(0.5*tt)) * math32.Sin(a)}
	assert.True(t, g[2](tt).ApproxEqualThreshold(want, 1e-5))
}

func TestOrbiterIsPureFunctionOfTime(t *testing.T) {
	l := NewPointLight(common.White, 1, 0, mgl32.Vec3{})
	o := Orbiter{Light: l, Path: CircleOrbit(4, 0.5, 3)}

	o.Update(1)
	first := l.Position()
	o.Update(5)
	o.Update(1)
	assert.Equal(t, first, l.Position())
}
