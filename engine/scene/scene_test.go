package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-demos/common"
	"github.com/Carmen-Shannon/oxy-demos/engine/game_object"
	"github.com/Carmen-Shannon/oxy-demos/engine/light"
	"github.com/Carmen-Shannon/oxy-demos/engine/model"
	"github.com/Carmen-Shannon/oxy-demos/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func box() game_object.GameObject {
	return game_object.NewMesh(model.NewModel(model.BoxGeometry(1, 1, 1, 1, 1, 1)), material.NewMaterial())
}

func TestAddRegistersAttachedLights(t *testing.T) {
	s := NewScene("test")
	doorLight := light.NewPointLight(common.MustHex("#ff7d46"), 1, 7, mgl32.Vec3{})
	house := game_object.NewGameObject(
		game_object.WithPosition(mgl32.Vec3{1, 0, 0}),
		game_object.WithChildren(
			box(),
			game_object.NewGameObject(game_object.WithPosition(mgl32.Vec3{0, 2.2, 2.7}), game_object.WithLight(doorLight)),
		),
	)
	s.Add(house)

	require.Equal(t, []light.Light{doorLight}, s.Lights())
	assert.Equal(t, 1, s.Count())

	s.SyncAttachedLights()
	assert.True(t, doorLight.Position().ApproxEqualThreshold(mgl32.Vec3{1, 2.2, 2.7}, 1e-5))

	assert.True(t, s.Remove(house))
	assert.Empty(t, s.Lights())
	assert.Zero(t, s.Count())
}

func TestAddLightIgnoresDuplicates(t *testing.T) {
	l := light.NewAmbientLight(common.White, 0.5)
	s := NewScene("lights", WithLights(l, l))
	assert.Len(t, s.Lights(), 1)

	s.RemoveLight(l)
	assert.Empty(t, s.Lights())
}

func TestFogSetsBackground(t *testing.T) {
	fogColor := common.MustHex("#262837")
	s := NewScene("fog", WithFog(fogColor, 1, 15))

	require.NotNil(t, s.Fog())
	assert.Equal(t, fogColor, s.Background())
	assert.Zero(t, s.Fog().Factor(0.5))
	assert.InDelta(t, 0.5, s.Fog().Factor(8), 1e-6)
	assert.Equal(t, float32(1), s.Fog().Factor(100))

	u := NewGPUFogUniform(s.Fog())
	assert.Equal(t, uint32(1), u.Enabled)
	assert.Len(t, u.Marshal(), 32)

	s.SetFog(nil)
	assert.Zero(t, NewGPUFogUniform(s.Fog()).Enabled)
}

func TestAdvanceSpinsObjects(t *testing.T) {
	b := box()
	b.SetRotationSpeed(mgl32.Vec3{0, 1, 0})
	s := NewScene("spin", WithObjects(b))
	s.Advance(0.5)
	assert.InDelta(t, 0.5, b.Rotation()[1], 1e-6)
}
