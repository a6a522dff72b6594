package common

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Plane represents a plane in 3D space using the equation: ax + by + cz + d = 0
// where (a, b, c) is the normal and d is the distance from origin.
type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

// DistanceTo returns the signed distance from the plane to p. Positive is inside.
func (p Plane) DistanceTo(v mgl32.Vec3) float32 {
	return p.Normal.Dot(v) + p.Distance
}

// Frustum represents the six planes of a view frustum for culling.
// Planes are oriented so that positive half-space is inside the frustum.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumPlane indices for clarity
const (
	FrustumLeft   = 0
	FrustumRight  = 1
	FrustumBottom = 2
	FrustumTop    = 3
	FrustumNear   = 4
	FrustumFar    = 5
)

// ExtractFrustum extracts frustum planes from a projection * view matrix using the
// Gribb/Hartmann method. The near plane follows the [0, 1] depth range, so it is row2 alone
// rather than row3 + row2.
//
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
//
// Parameters:
//   - viewProj: the combined projection * view matrix (column-major)
//
// Returns:
//   - Frustum: the extracted frustum with normalized planes
func ExtractFrustum(viewProj mgl32.Mat4) Frustum {
	r0, r1, r2, r3 := viewProj.Rows()

	var f Frustum
	f.Planes[FrustumLeft] = planeFromVec4(r3.Add(r0))
	f.Planes[FrustumRight] = planeFromVec4(r3.Sub(r0))
	f.Planes[FrustumBottom] = planeFromVec4(r3.Add(r1))
	f.Planes[FrustumTop] = planeFromVec4(r3.Sub(r1))
	f.Planes[FrustumNear] = planeFromVec4(r2)
	f.Planes[FrustumFar] = planeFromVec4(r3.Sub(r2))
	return f
}

// IntersectsSphere reports whether a bounding sphere is at least partially inside the frustum.
func (f Frustum) IntersectsSphere(center mgl32.Vec3, radius float32) bool {
	for _, p := range f.Planes {
		if p.DistanceTo(center) < -radius {
			return false
		}
	}
	return true
}

// planeFromVec4 builds a normalized plane from (a, b, c, d) coefficients.
func planeFromVec4(v mgl32.Vec4) Plane {
	n := v.Vec3()
	length := n.Len()
	if length == 0 {
		return Plane{Normal: n, Distance: v[3]}
	}
	inv := 1.0 / length
	return Plane{Normal: n.Mul(inv), Distance: v[3] * inv}
}
