package bind_group_provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProviderKeepsLabel(t *testing.T) {
	p := NewBindGroupProvider("camera_0")
	assert.Equal(t, "camera_0", p.Label())
	assert.Nil(t, p.BindGroup())
	assert.Nil(t, p.Buffer(0))
}

func TestSetGeometryWithoutGPU(t *testing.T) {
	p := NewBindGroupProvider("mesh")
	p.SetGeometry(nil, 121, nil, 600, 3)

	assert.Equal(t, 121, p.VertexCount())
	assert.Equal(t, 600, p.IndexCount())
	assert.Equal(t, uint64(3), p.GeometryVersion())

	p.ReleaseGeometry()
	assert.Zero(t, p.VertexCount())
	assert.Zero(t, p.IndexCount())
	assert.Equal(t, uint64(3), p.GeometryVersion(), "version survives so the next upload can compare")

	p.Release()
}
