package model

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUVertexSource is the canonical WGSL definition of the VertexInput struct for mesh pipelines.
// Matches GPUVertex layout exactly (48 bytes).
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string

// GPUVertex is the GPU-aligned representation of a single mesh vertex.
// Size: 48 bytes.
type GPUVertex struct {
	Position [3]float32 // offset  0: position in model space
	Normal   [3]float32 // offset 12: vertex normal
	TexCoord [2]float32 // offset 24: uv, v = 0 at the top of the texture
	Color    [4]float32 // offset 32: per-vertex rgba color
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes (48)
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, 48)
	putFloats(buf[0:], g.Position[:])
	putFloats(buf[12:], g.Normal[:])
	putFloats(buf[24:], g.TexCoord[:])
	putFloats(buf[32:], g.Color[:])
	return buf
}

// GPUInstanceSource is the canonical WGSL definition of the InstanceInput struct for billboard
// particle pipelines. Matches GPUInstance layout exactly (32 bytes).
//
//go:embed assets/instance.wgsl
var GPUInstanceSource string

// GPUInstance is one billboard particle. Its layout is the InstanceStride float record of Buffers.
// Size: 32 bytes.
type GPUInstance struct {
	Position [3]float32 // offset  0: world-space center
	Size     float32    // offset 12: world-space edge length
	Color    [4]float32 // offset 16: rgba color
}

// Interleave packs a geometry snapshot into GPU vertices. Missing normals default to +Z, missing
// uvs to zero and missing colors to opaque white.
//
// Parameters:
//   - b: the geometry snapshot
//
// Returns:
//   - []GPUVertex: one entry per vertex
func Interleave(b *Buffers) []GPUVertex {
	n := b.VertexCount()
	out := make([]GPUVertex, n)
	hasNormals := len(b.Normals) == n*3
	hasUVs := len(b.UVs) == n*2
	hasColors := len(b.Colors) == n*3
	for i := range out {
		v := &out[i]
		copy(v.Position[:], b.Positions[i*3:i*3+3])
		if hasNormals {
			copy(v.Normal[:], b.Normals[i*3:i*3+3])
		} else {
			v.Normal = [3]float32{0, 0, 1}
		}
		if hasUVs {
			copy(v.TexCoord[:], b.UVs[i*2:i*2+2])
		}
		if hasColors {
			copy(v.Color[:3], b.Colors[i*3:i*3+3])
		} else {
			v.Color = [4]float32{1, 1, 1, 1}
		}
		v.Color[3] = 1
	}
	return out
}

// VertexBytes packs a geometry snapshot into the byte stream uploaded as a vertex buffer. Instanced
// geometry packs its instance records; everything else packs interleaved GPUVertex entries.
//
// Parameters:
//   - b: the geometry snapshot
//   - topology: how the snapshot is drawn
//
// Returns:
//   - []byte: the vertex buffer contents
func VertexBytes(b *Buffers, topology Topology) []byte {
	if topology == TopologyInstancedQuads {
		buf := make([]byte, len(b.Instances)*4)
		putFloats(buf, b.Instances)
		return buf
	}
	verts := Interleave(b)
	stride := (&GPUVertex{}).Size()
	buf := make([]byte, len(verts)*stride)
	for i := range verts {
		copy(buf[i*stride:], verts[i].Marshal())
	}
	return buf
}

// WireframeIndices returns a line list covering every unique triangle edge once.
//
// Parameters:
//   - b: triangle geometry, indexed or not
//
// Returns:
//   - []uint32: pairs of vertex indices
func WireframeIndices(b *Buffers) []uint32 {
	tri := b.Indices
	if tri == nil {
		tri = make([]uint32, b.VertexCount())
		for i := range tri {
			tri[i] = uint32(i)
		}
	}
	seen := make(map[uint64]struct{}, len(tri))
	out := make([]uint32, 0, len(tri)*2)
	for t := 0; t+2 < len(tri); t += 3 {
		for e := range 3 {
			a, c := tri[t+e], tri[t+(e+1)%3]
			lo, hi := min(a, c), max(a, c)
			key := uint64(lo)<<32 | uint64(hi)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, a, c)
		}
	}
	return out
}

func putFloats(buf []byte, vals []float32) {
	for i, f := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
}
