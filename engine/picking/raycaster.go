// Package picking casts rays from the camera through the pointer and reacts to the faces they hit.
package picking

import (
	"slices"

	"github.com/Carmen-Shannon/oxy-demos/common"
	"github.com/Carmen-Shannon/oxy-demos/engine/camera"
	"github.com/Carmen-Shannon/oxy-demos/engine/game_object"
	"github.com/Carmen-Shannon/oxy-demos/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// Hit is one ray/triangle intersection.
type Hit struct {
	Object game_object.GameObject
	// Face is the triangle index into the model's index buffer (indices Face*3 .. Face*3+2).
	Face int
	// Distance is measured along the world-space ray.
	Distance float32
	Point    mgl32.Vec3
}

// Raycaster intersects a world-space ray with scene objects.
type Raycaster struct {
	ray common.Ray
}

// NewRaycaster creates a raycaster with a ray along -Z from the origin.
func NewRaycaster() *Raycaster {
	return &Raycaster{ray: common.NewRay(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1})}
}

// SetFromCamera aims the ray from the camera through a point in normalized device coordinates.
//
// Parameters:
//   - ndcX, ndcY: pointer position in [-1, 1], +Y up
//   - cam: the camera whose matrices are current
func (r *Raycaster) SetFromCamera(ndcX, ndcY float32, cam camera.Camera) {
	r.ray = common.RayFromNDC(cam.InverseViewProjectionMatrix(), ndcX, ndcY)
}

// Set aims the ray directly.
func (r *Raycaster) Set(ray common.Ray) {
	r.ray = ray
}

// Ray returns the current world-space ray.
func (r *Raycaster) Ray() common.Ray {
	return r.ray
}

// IntersectObject tests the ray against an object's triangles, and its descendants' when
// recursive is set. Hidden objects and non-triangle models are skipped.
//
// Parameters:
//   - obj: the object to test
//   - recursive: whether to descend into children
//
// Returns:
//   - []Hit: every hit sorted nearest first, or nil
func (r *Raycaster) IntersectObject(obj game_object.GameObject, recursive bool) []Hit {
	var hits []Hit
	if recursive {
		obj.Traverse(func(o game_object.GameObject) bool {
			if !o.Visible() {
				return false
			}
			hits = r.intersect(o, hits)
			return true
		})
	} else if obj.Visible() {
		hits = r.intersect(obj, hits)
	}
	slices.SortFunc(hits, func(a, b Hit) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		}
		return a.Face - b.Face
	})
	return hits
}

func (r *Raycaster) intersect(obj game_object.GameObject, hits []Hit) []Hit {
	m := obj.Model()
	if m == nil || m.Topology() != model.TopologyTriangles {
		return hits
	}
	world := obj.WorldMatrix()

	center, radius := m.BoundingSphere()
	worldCenter := common.TransformPoint(world, center)
	scale := max(world.Col(0).Vec3().Len(), world.Col(1).Vec3().Len(), world.Col(2).Vec3().Len())
	if !r.ray.IntersectSphere(worldCenter, radius*scale) {
		return hits
	}

	// The local ray keeps the world direction's length, so t is a world distance.
	local := r.ray.Transform(world.Inv())
	b := m.Buffers()
	for face := 0; face < b.TriangleCount(); face++ {
		a := b.Position(int(b.Indices[face*3]))
		bb := b.Position(int(b.Indices[face*3+1]))
		c := b.Position(int(b.Indices[face*3+2]))
		if t, ok := local.IntersectTriangle(a, bb, c); ok {
			hits = append(hits, Hit{Object: obj, Face: face, Distance: t, Point: r.ray.At(t)})
		}
	}
	return hits
}
