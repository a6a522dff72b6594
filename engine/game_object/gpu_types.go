package game_object

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-demos/common"
	"github.com/go-gl/mathgl/mgl32"
)

// GPUObjectUniformSource is the canonical WGSL definition of the ObjectUniform struct.
// Matches GPUObjectUniform layout exactly (128 bytes).
//
//go:embed assets/object_uniform.wgsl
var GPUObjectUniformSource string

// GPUObjectUniform is the per-draw transform uniform.
// Size: 128 bytes.
type GPUObjectUniform struct {
	Model  [16]float32 // offset  0: model-to-world matrix
	Normal [16]float32 // offset 64: inverse-transpose of Model for normals
}

// NewGPUObjectUniform builds the uniform for a world matrix.
//
// Parameters:
//   - world: the model-to-world matrix
//
// Returns:
//   - GPUObjectUniform: the uniform contents
func NewGPUObjectUniform(world mgl32.Mat4) GPUObjectUniform {
	return GPUObjectUniform{Model: world, Normal: common.NormalMatrix(world)}
}

// Size returns the size of the GPUObjectUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (128)
func (g *GPUObjectUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUObjectUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 128-byte buffer ready for GPU upload
func (g *GPUObjectUniform) Marshal() []byte {
	buf := make([]byte, 128)
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Model[i]))
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.Normal[i]))
	}
	return buf
}
