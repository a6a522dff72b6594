package material

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUMaterialParamsSource is the canonical WGSL definition of the MaterialParams struct.
// Matches GPUMaterialParams layout exactly (48 bytes).
//
//go:embed assets/material_params.wgsl
var GPUMaterialParamsSource string

// GPUMaterialParams is the GPU-aligned material uniform.
// Size: 48 bytes.
type GPUMaterialParams struct {
	Color  [4]float32 // offset  0: base rgb + opacity
	Params [4]float32 // offset 16: metalness, roughness, shininess, point size
	Flags  [4]uint32  // offset 32: kind, vertex colors, flat shading, textured | fog<<1
}

// NewGPUMaterialParams snapshots a material into its uniform layout.
//
// Parameters:
//   - m: the material to snapshot
//
// Returns:
//   - GPUMaterialParams: the uniform contents
func NewGPUMaterialParams(m Material) GPUMaterialParams {
	c := m.Color().Vec4()
	c[3] = m.Opacity()
	var extra uint32
	if m.Texture() != nil {
		extra |= 1
	}
	if m.Fog() {
		extra |= 2
	}
	return GPUMaterialParams{
		Color:  c,
		Params: [4]float32{m.Metalness(), m.Roughness(), m.Shininess(), m.PointSize()},
		Flags:  [4]uint32{uint32(m.Kind()), boolBit(m.VertexColors()), boolBit(m.FlatShading()), extra},
	}
}

// Size returns the size of the GPUMaterialParams struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes (48)
func (g *GPUMaterialParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterialParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 48-byte buffer ready for GPU upload
func (g *GPUMaterialParams) Marshal() []byte {
	buf := make([]byte, 48)
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Color[i]))
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(g.Params[i]))
		binary.LittleEndian.PutUint32(buf[32+i*4:], g.Flags[i])
	}
	return buf
}

func boolBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
