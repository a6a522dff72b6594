package scene

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUFogUniformSource is the canonical WGSL definition of the FogUniform struct.
// Matches GPUFogUniform layout exactly (32 bytes).
//
//go:embed assets/fog_uniform.wgsl
var GPUFogUniformSource string

// GPUFogUniform is the GPU-aligned fog uniform.
// Size: 32 bytes.
type GPUFogUniform struct {
	Color   [3]float32 // offset  0: fog rgb
	Enabled uint32     // offset 12: 1 when fog applies
	Near    float32    // offset 16: start distance
	Far     float32    // offset 20: opaque distance
	_pad    [2]float32 // offset 24: padding to 32 bytes
}

// NewGPUFogUniform snapshots the scene fog; a nil fog yields a disabled uniform.
//
// Parameters:
//   - f: the fog, or nil
//
// Returns:
//   - GPUFogUniform: the uniform contents
func NewGPUFogUniform(f *Fog) GPUFogUniform {
	if f == nil {
		return GPUFogUniform{}
	}
	return GPUFogUniform{Color: f.Color.Vec3(), Enabled: 1, Near: f.Near, Far: f.Far}
}

// Size returns the size of the GPUFogUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (32)
func (g *GPUFogUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUFogUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload
func (g *GPUFogUniform) Marshal() []byte {
	buf := make([]byte, 32)
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Color[i]))
	}
	binary.LittleEndian.PutUint32(buf[12:], g.Enabled)
	binary.LittleEndian.PutUint32(buf[16:], math.Float32bits(g.Near))
	binary.LittleEndian.PutUint32(buf[20:], math.Float32bits(g.Far))
	return buf
}
