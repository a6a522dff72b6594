package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// rayEpsilon rejects triangles nearly parallel to the ray and hits behind the origin.
const rayEpsilon = 1e-7

// Ray is a half-line in world space. Direction is kept normalized.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// NewRay builds a Ray, normalizing the direction.
func NewRay(origin, direction mgl32.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// RayFromNDC unprojects a point in normalized device coordinates into a world-space ray.
// The near point is taken at depth 0 and the far point at depth 1, matching the WebGPU clip
// space produced by Perspective.
//
// Parameters:
//   - invViewProj: inverse of the camera's projection * view matrix
//   - ndcX, ndcY: pointer position in [-1, 1], +Y up
//
// Returns:
//   - Ray: the ray from the near plane through the pointer
func RayFromNDC(invViewProj mgl32.Mat4, ndcX, ndcY float32) Ray {
	near := TransformPoint(invViewProj, mgl32.Vec3{ndcX, ndcY, 0})
	far := TransformPoint(invViewProj, mgl32.Vec3{ndcX, ndcY, 1})
	return NewRay(near, far.Sub(near))
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Transform returns the ray expressed in the space described by m. The direction is not
// renormalized so distances stay comparable with the source space.
func (r Ray) Transform(m mgl32.Mat4) Ray {
	o := TransformPoint(m, r.Origin)
	d := m.Mul4x1(r.Direction.Vec4(0)).Vec3()
	return Ray{Origin: o, Direction: d}
}

// IntersectTriangle tests the ray against triangle (a, b, c) using the Moller-Trumbore method.
// Both faces are hit.
//
// Returns:
//   - float32: distance along the ray to the hit point
//   - bool: false if the ray misses or the hit lies behind the origin
func (r Ray) IntersectTriangle(a, b, c mgl32.Vec3) (float32, bool) {
	edge1 := b.Sub(a)
	edge2 := c.Sub(a)
	p := r.Direction.Cross(edge2)
	det := edge1.Dot(p)
	if math32.Abs(det) < rayEpsilon {
		return 0, false
	}
	inv := 1 / det

	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := edge2.Dot(q) * inv
	if t <= rayEpsilon {
		return 0, false
	}
	return t, true
}

// IntersectSphere reports whether the ray passes within radius of center.
func (r Ray) IntersectSphere(center mgl32.Vec3, radius float32) bool {
	toCenter := center.Sub(r.Origin)
	proj := toCenter.Dot(r.Direction)
	lenSq := r.Direction.LenSqr()
	if lenSq == 0 {
		return false
	}
	closest := toCenter.Sub(r.Direction.Mul(proj / lenSq))
	if closest.LenSqr() > radius*radius {
		return false
	}
	// Sphere entirely behind the origin.
	return proj >= 0 || toCenter.LenSqr() <= radius*radius
}
