package model

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"
)

func TestPlaneGeometryLayout(t *testing.T) {
	b := PlaneGeometry(1, 1, 10, 10)

	assert.Equal(t, 121, b.VertexCount())
	assert.Len(t, b.Indices, 600)
	assert.Len(t, b.Normals, 121*3)
	assert.Len(t, b.UVs, 121*2)
	assert.Nil(t, b.Colors)

	assert.Equal(t, mgl32.Vec3{-0.5, 0.5, 0}, b.Position(0))
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0}, b.Position(10))
	assert.True(t, b.Position(120).ApproxEqualThreshold(mgl32.Vec3{0.5, -0.5, 0}, 1e-6))
	assert.Equal(t, []float32{0, 0}, b.UVs[0:2])
}

func TestPlaneGeometryClampsSegments(t *testing.T) {
	b := PlaneGeometry(2, 2, 0, -3)
	assert.Equal(t, 4, b.VertexCount())
	assert.Len(t, b.Indices, 6)
}

// windingAgrees checks every triangle's geometric normal points the same way as its vertex normals.
func windingAgrees(t *testing.T, b *Buffers) {
	t.Helper()
	for i := 0; i < len(b.Indices); i += 3 {
		ia, ib, ic := int(b.Indices[i]), int(b.Indices[i+1]), int(b.Indices[i+2])
		face := b.Position(ib).Sub(b.Position(ia)).Cross(b.Position(ic).Sub(b.Position(ia)))
		if face.Len() < 1e-9 {
			continue
		}
		var n mgl32.Vec3
		for _, idx := range []int{ia, ib, ic} {
			n = n.Add(mgl32.Vec3{b.Normals[idx*3], b.Normals[idx*3+1], b.Normals[idx*3+2]})
		}
		require.Greater(t, face.Dot(n), float32(0), "triangle %d winds against its normals", i/3)
	}
}

func TestPrimitivesWindCounterClockwise(t *testing.T) {
	cases := []struct {
		name string
		b    *Buffers
	}{
		{"plane", PlaneGeometry(1, 1, 4, 4)},
		{"box", BoxGeometry(1, 2, 3, 2, 2, 2)},
		{"sphere", SphereGeometry(1, 16, 12)},
		{"torus", TorusGeometry(1, 0.3, 8, 16)},
		{"cylinder", CylinderGeometry(0.5, 1, 2, 12, 2)},
		{"cone", ConeGeometry(1, 2, 4)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.NotZero(t, tc.b.VertexCount())
			require.Zero(t, len(tc.b.Indices)%3)
			windingAgrees(t, tc.b)
		})
	}
}

func TestBoxGeometryCounts(t *testing.T) {
	b := BoxGeometry(1, 1, 1, 1, 1, 1)
	assert.Equal(t, 24, b.VertexCount())
	assert.Len(t, b.Indices, 36)

	min, max := b.Bounds()
	assert.Equal(t, mgl32.Vec3{-0.5, -0.5, -0.5}, min)
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, max)
}

func TestConeSkipsApexCap(t *testing.T) {
	cone := ConeGeometry(1, 1, 4)
	cylinder := CylinderGeometry(1, 1, 1, 4, 1)
	assert.Less(t, cone.VertexCount(), cylinder.VertexCount())
}

func TestSphereBoundingSphere(t *testing.T) {
	center, radius := SphereGeometry(2, 16, 16).BoundingSphere()
	assert.True(t, center.ApproxEqualThreshold(mgl32.Vec3{}, 1e-5))
	assert.GreaterOrEqual(t, radius, float32(2))
}

func TestAxesGeometryHasColoredLines(t *testing.T) {
	b := AxesGeometry(2)
	assert.Equal(t, 6, b.VertexCount())
	assert.Nil(t, b.Indices)
	assert.Equal(t, mgl32.Vec3{0, 2, 0}, b.Position(3))
	assert.Equal(t, []float32{0, 1, 0}, b.Colors[9:12])
}

func TestComputeNormalsOnPlane(t *testing.T) {
	b := PlaneGeometry(1, 1, 2, 2)
	clear(b.Normals)
	b.ComputeNormals()
	for i := range b.VertexCount() {
		assert.InDelta(t, 1, b.Normals[i*3+2], 1e-6)
	}
}

func TestCloneIsDeep(t *testing.T) {
	b := PlaneGeometry(1, 1, 1, 1)
	b.FillColor([3]float32{1, 0, 0})
	c := b.Clone()
	c.Positions[0] = 42
	c.SetColor(0, [3]float32{0, 1, 0})

	assert.NotEqual(t, float32(42), b.Positions[0])
	assert.Equal(t, []float32{1, 0, 0}, b.Colors[0:3])
}

func TestModelSwapAndDirty(t *testing.T) {
	m := NewModel(PlaneGeometry(1, 1, 1, 1), WithName("plane"))
	assert.Equal(t, "plane", m.Name())
	assert.Equal(t, TopologyTriangles, m.Topology())
	assert.Equal(t, uint64(0), m.Version())

	first := m.Buffers()
	next := PlaneGeometry(2, 2, 2, 2)
	m.Swap(next)
	assert.Equal(t, uint64(1), m.Version())
	assert.Same(t, next, m.Buffers())
	assert.Equal(t, 4, first.VertexCount())

	m.Swap(nil)
	assert.Equal(t, uint64(1), m.Version())

	m.MarkDirty(DirtyPositions)
	m.MarkDirty(DirtyColors)
	assert.Equal(t, DirtyPositions|DirtyColors, m.TakeDirty())
	assert.Zero(t, m.TakeDirty())

	assert.Equal(t, "mesh_plane", m.MeshProvider().Label())
	m.Dispose()
}

func TestInstanceBoundingSphereIncludesSize(t *testing.T) {
	b := InstanceBuffers(2)
	copy(b.Instances[0:4], []float32{-1, 0, 0, 0.5})
	copy(b.Instances[8:12], []float32{1, 0, 0, 0.5})

	center, radius := b.BoundingSphere()
	assert.Equal(t, mgl32.Vec3{}, center)
	assert.InDelta(t, 1.5, radius, 1e-6)
	assert.Equal(t, 2, b.InstanceCount())
}

func TestInterleaveDefaults(t *testing.T) {
	b := &Buffers{Positions: []float32{1, 2, 3}}
	v := Interleave(b)
	require.Len(t, v, 1)
	assert.Equal(t, [3]float32{0, 0, 1}, v[0].Normal)
	assert.Equal(t, [4]float32{1, 1, 1, 1}, v[0].Color)
	assert.Equal(t, 48, v[0].Size())
	assert.Len(t, v[0].Marshal(), 48)
}

func TestTextGeometryExtrudesGlyphs(t *testing.T) {
	b, err := TextGeometry(basicfont.Face7x13, "Hi", 1, 0.2)
	require.NoError(t, err)
	require.NotZero(t, b.VertexCount())
	windingAgrees(t, b)

	min, max := b.Bounds()
	assert.InDelta(t, -0.1, min[2], 1e-6)
	assert.InDelta(t, 0.1, max[2], 1e-6)
	assert.InDelta(t, 0, min[0]+max[0], 1e-5, "centered on x")
	assert.InDelta(t, 0, min[1]+max[1], 1e-5, "centered on y")
}

func TestTextGeometryEmpty(t *testing.T) {
	_, err := TextGeometry(basicfont.Face7x13, "", 1, 0.2)
	assert.ErrorIs(t, err, ErrEmptyText)

	_, err = TextGeometry(basicfont.Face7x13, "   ", 1, 0.2)
	assert.ErrorIs(t, err, ErrEmptyText)
}

func TestWireframeIndicesDedupeSharedEdges(t *testing.T) {
	b := PlaneGeometry(1, 1, 1, 1)
	edges := WireframeIndices(b)
	// two triangles share their diagonal
	assert.Len(t, edges, 5*2)
}

func TestVertexBytesStride(t *testing.T) {
	b := PlaneGeometry(1, 1, 1, 1)
	assert.Len(t, VertexBytes(b, TopologyTriangles), 4*48)

	inst := InstanceBuffers(3)
	assert.Len(t, VertexBytes(inst, TopologyInstancedQuads), 3*32)
}
