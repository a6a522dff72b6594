package light

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxGPULights is the maximum number of non-ambient lights marshaled into the GPU light buffer
// per frame. Lights past capacity are dropped in scene order.
const MaxGPULights = 16

// GPULightSource is the canonical WGSL definition of the Light, LightHeader and LightBuffer
// structs. Matches GPULight (64 bytes), GPULightHeader (16 bytes) and the MarshalLightBuffer
// layout exactly.
//
//go:embed assets/light.wgsl
var GPULightSource string

// GPULight is the GPU-aligned representation of a single light source.
// Size: 64 bytes.
type GPULight struct {
	Position  [3]float32 // offset  0: world-space position
	LightType uint32     // offset 12: 1 = directional, 2 = point
	Color     [3]float32 // offset 16: rgb color
	Intensity float32    // offset 28: scalar multiplier
	Direction [3]float32 // offset 32: unit direction the light travels
	Distance  float32    // offset 44: point light cutoff, 0 = unlimited
	Decay     float32    // offset 48: point light falloff exponent
	_pad      [3]float32 // offset 52: padding to 64 bytes
}

// Size returns the size of the GPULight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (64)
func (g *GPULight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULight struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 64-byte buffer ready for GPU upload
func (g *GPULight) Marshal() []byte {
	buf := make([]byte, 64)
	putVec3(buf[0:], g.Position)
	binary.LittleEndian.PutUint32(buf[12:], g.LightType)
	putVec3(buf[16:], g.Color)
	binary.LittleEndian.PutUint32(buf[28:], math.Float32bits(g.Intensity))
	putVec3(buf[32:], g.Direction)
	binary.LittleEndian.PutUint32(buf[44:], math.Float32bits(g.Distance))
	binary.LittleEndian.PutUint32(buf[48:], math.Float32bits(g.Decay))
	return buf
}

// GPULightHeader is the header prepended to the light storage buffer.
// Size: 16 bytes.
type GPULightHeader struct {
	AmbientColor [3]float32 // offset  0: summed ambient rgb, intensity applied
	LightCount   uint32     // offset 12: number of lights following the header
}

// Size returns the size of the GPULightHeader struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (16)
func (h *GPULightHeader) Size() int {
	return int(unsafe.Sizeof(*h))
}

// Marshal serializes the GPULightHeader struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload
func (h *GPULightHeader) Marshal() []byte {
	buf := make([]byte, 16)
	putVec3(buf[0:], h.AmbientColor)
	binary.LittleEndian.PutUint32(buf[12:], h.LightCount)
	return buf
}

// ToGPULight converts a Light interface value to its GPU-aligned representation.
//
// Parameters:
//   - l: the Light to convert
//
// Returns:
//   - GPULight: the GPU-aligned representation
func ToGPULight(l Light) GPULight {
	return GPULight{
		Position:  l.Position(),
		LightType: uint32(l.Type()),
		Color:     l.Color().Vec3(),
		Intensity: l.Intensity(),
		Direction: l.Direction(),
		Distance:  l.Distance(),
		Decay:     l.Decay(),
	}
}

// AmbientTerm sums the color times intensity of every enabled ambient light.
//
// Parameters:
//   - lights: the scene lights
//
// Returns:
//   - mgl32.Vec3: the combined ambient rgb
func AmbientTerm(lights []Light) mgl32.Vec3 {
	var sum mgl32.Vec3
	for _, l := range lights {
		if l.Enabled() && l.Type() == LightTypeAmbient {
			sum = sum.Add(mgl32.Vec3(l.Color().Vec3()).Mul(l.Intensity()))
		}
	}
	return sum
}

// MarshalLightBuffer marshals the enabled lights into a byte buffer suitable for GPU upload.
// The buffer always has room for MaxGPULights so it can be written in place every frame:
//
//	[GPULightHeader (16 bytes)] [GPULight × MaxGPULights (64 bytes each)]
//
// Ambient lights are folded into the header. Directional and point lights past capacity are
// dropped.
//
// Parameters:
//   - lights: the scene lights
//
// Returns:
//   - []byte: the marshaled buffer
func MarshalLightBuffer(lights []Light) []byte {
	headerSize := (&GPULightHeader{}).Size()
	lightSize := (&GPULight{}).Size()
	buf := make([]byte, headerSize+MaxGPULights*lightSize)

	offset := headerSize
	written := 0
	for _, l := range lights {
		if !l.Enabled() || l.Type() == LightTypeAmbient {
			continue
		}
		if written >= MaxGPULights {
			break
		}
		gpu := ToGPULight(l)
		copy(buf[offset:offset+lightSize], gpu.Marshal())
		offset += lightSize
		written++
	}

	header := GPULightHeader{AmbientColor: AmbientTerm(lights), LightCount: uint32(written)}
	copy(buf[:headerSize], header.Marshal())
	return buf
}

// LightBufferSize is the byte size of the buffer MarshalLightBuffer produces.
func LightBufferSize() int {
	return (&GPULightHeader{}).Size() + MaxGPULights*(&GPULight{}).Size()
}

func putVec3(buf []byte, v [3]float32) {
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v[i]))
	}
}
