package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-demos/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testShader(t *testing.T) shader.Shader {
	t.Helper()
	s, err := shader.NewShader("test", "//@oxy:include camera\n//@oxy:group 0 0 uniform camera camera\n")
	require.NoError(t, err)
	return s
}

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("basic/front/triangles", testShader(t))

	assert.Equal(t, "vs_main", p.VertexEntryPoint())
	assert.Equal(t, "fs_main", p.FragmentEntryPoint())
	assert.True(t, p.DepthWriteEnabled())
	assert.False(t, p.BlendEnabled())
	assert.Nil(t, p.BlendState(), "no blend state without blending")
	assert.Equal(t, wgpu.CullModeBack, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCCW, p.FrontFace())
	assert.Nil(t, p.Pipeline())
}

func TestPipelineOptions(t *testing.T) {
	custom := &wgpu.BlendState{}
	p := NewPipeline("lines", testShader(t),
		WithEntryPoints("vs_lines", "fs_lines"),
		WithTopology(wgpu.PrimitiveTopologyLineList),
		WithCullMode(wgpu.CullModeNone),
		WithBlendEnabled(true),
		WithBlendState(custom),
		WithDepthWriteEnabled(false),
		WithWriteMask(wgpu.ColorWriteMaskRed),
	)

	assert.Equal(t, "vs_lines", p.VertexEntryPoint())
	assert.Equal(t, wgpu.PrimitiveTopologyLineList, p.Topology())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Same(t, custom, p.BlendState())
	assert.False(t, p.DepthWriteEnabled())
	assert.Equal(t, wgpu.ColorWriteMaskRed, p.WriteMask())
}

func TestNewPipelinePanicsWithoutShader(t *testing.T) {
	assert.Panics(t, func() { NewPipeline("broken", nil) })
}
