package material

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-demos/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMaterialDefaults(t *testing.T) {
	m := NewMaterial()
	assert.Equal(t, KindBasic, m.Kind())
	assert.Equal(t, common.White, m.Color())
	assert.Equal(t, float32(1), m.Opacity())
	assert.False(t, m.Transparent())
	assert.True(t, m.Fog())
	assert.NotEmpty(t, m.Name())
	assert.Equal(t, m.Name(), m.BindGroupProvider().Label())
}

func TestSettersBumpVersion(t *testing.T) {
	m := NewMaterial(WithName("shared"))
	v := m.Version()

	m.SetMetalness(2)
	assert.Equal(t, float32(1), m.Metalness(), "clamped")
	m.SetColor(common.Red)
	assert.Equal(t, v+2, m.Version())
}

func TestPipelineKeyTracksPipelineState(t *testing.T) {
	m := NewMaterial(WithKind(KindPhong))
	assert.Equal(t, "phong/front", m.PipelineKey())

	m.SetSide(SideDouble)
	m.SetWireframe(true)
	assert.Equal(t, "phong/double/wire", m.PipelineKey())

	o := NewMaterial(WithKind(KindPhong), WithSide(SideDouble), WithWireframe(true))
	assert.Equal(t, m.PipelineKey(), o.PipelineKey())

	m.SetShininess(100)
	assert.Equal(t, o.PipelineKey(), m.PipelineKey(), "uniform-only changes keep the pipeline")
}

func TestParseKind(t *testing.T) {
	for _, name := range SurfaceKinds() {
		k, err := ParseKind(name)
		require.NoError(t, err)
		assert.Equal(t, name, k.String())
	}
	_, err := ParseKind("lambertian")
	assert.ErrorIs(t, err, ErrUnknownKind)

	assert.True(t, KindStandard.Lit())
	assert.False(t, KindNormal.Lit())
	assert.NotContains(t, SurfaceKinds(), "points")
}

func TestGPUMaterialParams(t *testing.T) {
	m := NewMaterial(
		WithKind(KindStandard),
		WithOpacity(0.5),
		WithMetalnessRoughness(0.7, 0.2),
		WithVertexColors(true),
		WithTexture(common.WhiteTexture()),
		WithFog(false),
	)
	p := NewGPUMaterialParams(m)

	assert.Equal(t, float32(0.5), p.Color[3])
	assert.Equal(t, float32(0.7), p.Params[0])
	assert.Equal(t, [4]uint32{uint32(KindStandard), 1, 0, 1}, p.Flags)
	assert.Equal(t, 48, p.Size())
	assert.Len(t, p.Marshal(), 48)
}
