package common

import (
	"unsafe"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
// The returned slice has length equal to the struct's size in memory.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}

// Perspective creates a perspective projection matrix for WebGPU clip space, where depth
// runs from 0 at the near plane to 1 at the far plane.
// mgl32.Perspective targets the OpenGL [-1, 1] depth range and is not used for that reason.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1.0 / math32.Tan(fovY/2.0)

	var out mgl32.Mat4
	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	return out
}

// ComposeTransform builds a model matrix from a translation, an XYZ Euler rotation and a scale.
// The result is T * Rx * Ry * Rz * S.
//
// Parameters:
//   - position: translation in parent space
//   - rotation: Euler angles in radians, applied in X, Y, Z order
//   - scale: per-axis scale factors
//
// Returns:
//   - mgl32.Mat4: the composed column-major matrix
func ComposeTransform(position, rotation, scale mgl32.Vec3) mgl32.Mat4 {
	m := mgl32.Translate3D(position[0], position[1], position[2])
	if rotation[0] != 0 {
		m = m.Mul4(mgl32.HomogRotate3DX(rotation[0]))
	}
	if rotation[1] != 0 {
		m = m.Mul4(mgl32.HomogRotate3DY(rotation[1]))
	}
	if rotation[2] != 0 {
		m = m.Mul4(mgl32.HomogRotate3DZ(rotation[2]))
	}
	return m.Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
}

// TransformPoint applies a 4x4 matrix to a point (w = 1) and performs the perspective divide.
func TransformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	v := m.Mul4x1(p.Vec4(1))
	if v[3] != 0 && v[3] != 1 {
		return v.Vec3().Mul(1 / v[3])
	}
	return v.Vec3()
}

// NormalMatrix returns the inverse-transpose of the upper 3x3 of m, padded to a Mat4 so it can
// be uploaded with std140 column alignment.
func NormalMatrix(m mgl32.Mat4) mgl32.Mat4 {
	n := m.Mat3().Inv().Transpose()
	return n.Mat4()
}

// Clamp limits v to the closed range [lo, hi].
func Clamp[T ~float32 | ~float64 | ~int](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
