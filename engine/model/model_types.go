package model

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Topology selects how the vertex stream is assembled into primitives.
type Topology int

const (
	// TopologyTriangles draws indexed triangles.
	TopologyTriangles Topology = iota
	// TopologyLines draws non-indexed line segments, two vertices each.
	TopologyLines
	// TopologyInstancedQuads draws one camera-facing quad per instance record.
	TopologyInstancedQuads
)

// DirtyFlags marks which vertex attributes changed since the GPU copy was last written.
type DirtyFlags uint32

const (
	DirtyPositions DirtyFlags = 1 << iota
	DirtyNormals
	DirtyColors
	DirtyInstances
)

// InstanceStride is the number of floats per instance record: position xyz, size, color rgba.
const InstanceStride = 8

// Buffers is one complete, self-consistent geometry snapshot. Every per-vertex slice holds
// VertexCount() entries of its component width. A Model publishes Buffers by pointer swap, so
// readers always see a whole snapshot.
type Buffers struct {
	// Positions holds xyz triples.
	Positions []float32
	// Normals holds xyz triples, or nil.
	Normals []float32
	// UVs holds uv pairs with v = 0 at the top of the texture, or nil.
	UVs []float32
	// Colors holds rgb triples, or nil when the geometry has no vertex colors.
	Colors []float32
	// Indices holds triangle indices, or nil for non-indexed geometry.
	Indices []uint32
	// Instances holds InstanceStride floats per instance for TopologyInstancedQuads.
	Instances []float32
}

// VertexCount returns the number of vertices.
func (b *Buffers) VertexCount() int {
	if b == nil {
		return 0
	}
	return len(b.Positions) / 3
}

// InstanceCount returns the number of instance records.
func (b *Buffers) InstanceCount() int {
	if b == nil {
		return 0
	}
	return len(b.Instances) / InstanceStride
}

// TriangleCount returns the number of indexed triangles.
func (b *Buffers) TriangleCount() int {
	if b == nil {
		return 0
	}
	return len(b.Indices) / 3
}

// Position returns vertex i's position.
func (b *Buffers) Position(i int) mgl32.Vec3 {
	return mgl32.Vec3{b.Positions[i*3], b.Positions[i*3+1], b.Positions[i*3+2]}
}

// SetColor writes vertex i's color.
func (b *Buffers) SetColor(i int, rgb [3]float32) {
	copy(b.Colors[i*3:i*3+3], rgb[:])
}

// Clone returns a deep copy.
func (b *Buffers) Clone() *Buffers {
	if b == nil {
		return nil
	}
	return &Buffers{
		Positions: cloneSlice(b.Positions),
		Normals:   cloneSlice(b.Normals),
		UVs:       cloneSlice(b.UVs),
		Colors:    cloneSlice(b.Colors),
		Indices:   cloneSlice(b.Indices),
		Instances: cloneSlice(b.Instances),
	}
}

// FillColor sets every vertex color to rgb, allocating the color slice if needed.
func (b *Buffers) FillColor(rgb [3]float32) {
	n := b.VertexCount()
	if len(b.Colors) != n*3 {
		b.Colors = make([]float32, n*3)
	}
	for i := range n {
		b.SetColor(i, rgb)
	}
}

// Bounds returns the axis-aligned bounding box of the positions.
func (b *Buffers) Bounds() (min, max mgl32.Vec3) {
	n := b.VertexCount()
	if n == 0 {
		return
	}
	min = b.Position(0)
	max = min
	for i := 1; i < n; i++ {
		p := b.Position(i)
		for k := range 3 {
			if p[k] < min[k] {
				min[k] = p[k]
			}
			if p[k] > max[k] {
				max[k] = p[k]
			}
		}
	}
	return min, max
}

// BoundingSphere returns a sphere enclosing the bounding box.
func (b *Buffers) BoundingSphere() (center mgl32.Vec3, radius float32) {
	if b.InstanceCount() > 0 {
		return b.instanceSphere()
	}
	min, max := b.Bounds()
	center = min.Add(max).Mul(0.5)
	return center, max.Sub(center).Len()
}

func (b *Buffers) instanceSphere() (mgl32.Vec3, float32) {
	n := b.InstanceCount()
	var min, max mgl32.Vec3
	var maxSize float32
	for i := range n {
		off := i * InstanceStride
		p := mgl32.Vec3{b.Instances[off], b.Instances[off+1], b.Instances[off+2]}
		if i == 0 {
			min, max = p, p
		}
		for k := range 3 {
			min[k] = math32.Min(min[k], p[k])
			max[k] = math32.Max(max[k], p[k])
		}
		maxSize = math32.Max(maxSize, b.Instances[off+3])
	}
	center := min.Add(max).Mul(0.5)
	return center, max.Sub(center).Len() + maxSize
}

// Translate offsets every position by d.
func (b *Buffers) Translate(d mgl32.Vec3) {
	for i := 0; i+2 < len(b.Positions); i += 3 {
		b.Positions[i] += d[0]
		b.Positions[i+1] += d[1]
		b.Positions[i+2] += d[2]
	}
}

// Center translates the geometry so its bounding box is centered on the origin.
func (b *Buffers) Center() {
	min, max := b.Bounds()
	b.Translate(min.Add(max).Mul(-0.5))
}

// ComputeNormals rebuilds smooth vertex normals from indexed triangles by accumulating
// area-weighted face normals.
func (b *Buffers) ComputeNormals() {
	n := b.VertexCount()
	if len(b.Normals) != n*3 {
		b.Normals = make([]float32, n*3)
	} else {
		clear(b.Normals)
	}
	for t := 0; t+2 < len(b.Indices); t += 3 {
		ia, ib, ic := int(b.Indices[t]), int(b.Indices[t+1]), int(b.Indices[t+2])
		pa, pb, pc := b.Position(ia), b.Position(ib), b.Position(ic)
		face := pb.Sub(pa).Cross(pc.Sub(pa))
		for _, idx := range [3]int{ia, ib, ic} {
			b.Normals[idx*3] += face[0]
			b.Normals[idx*3+1] += face[1]
			b.Normals[idx*3+2] += face[2]
		}
	}
	for i := range n {
		v := mgl32.Vec3{b.Normals[i*3], b.Normals[i*3+1], b.Normals[i*3+2]}
		if l := v.Len(); l > 0 {
			v = v.Mul(1 / l)
		}
		copy(b.Normals[i*3:i*3+3], v[:])
	}
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
