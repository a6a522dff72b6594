package common

import (
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const standardTol = 1e-4

func TestPerspectiveDepthRange(t *testing.T) {
	proj := Perspective(mgl32.DegToRad(75), 800.0/600.0, 0.1, 100)

	near := TransformPoint(proj, mgl32.Vec3{0, 0, -0.1})
	far := TransformPoint(proj, mgl32.Vec3{0, 0, -100})

	assert.InDelta(t, 0, near[2], standardTol)
	assert.InDelta(t, 1, far[2], standardTol)
}

func TestRayFromNDCPointsDownViewAxis(t *testing.T) {
	proj := Perspective(mgl32.DegToRad(75), 1, 0.1, 100)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	inv := proj.Mul4(view).Inv()

	ray := RayFromNDC(inv, 0, 0)

	assert.InDelta(t, 0, ray.Origin[0], standardTol)
	assert.InDelta(t, 0, ray.Origin[1], standardTol)
	assert.InDelta(t, 4.9, ray.Origin[2], 1e-3)
	assert.True(t, ray.Direction.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, standardTol))
}

func TestRayIntersectTriangle(t *testing.T) {
	a := mgl32.Vec3{-1, -1, 0}
	b := mgl32.Vec3{1, -1, 0}
	c := mgl32.Vec3{0, 1, 0}

	tests := []struct {
		name   string
		ray    Ray
		hit    bool
		distTo float32
	}{
		{"front", NewRay(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1}), true, 5},
		{"back face", NewRay(mgl32.Vec3{0, 0, -2}, mgl32.Vec3{0, 0, 1}), true, 2},
		{"miss", NewRay(mgl32.Vec3{3, 3, 5}, mgl32.Vec3{0, 0, -1}), false, 0},
		{"behind origin", NewRay(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 1}), false, 0},
		{"parallel", NewRay(mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}), false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := tt.ray.IntersectTriangle(a, b, c)
			require.Equal(t, tt.hit, ok)
			if ok {
				assert.InDelta(t, tt.distTo, d, standardTol)
			}
		})
	}
}

func TestRayIntersectSphere(t *testing.T) {
	ray := NewRay(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, -1})
	assert.True(t, ray.IntersectSphere(mgl32.Vec3{0, 0.5, 0}, 1))
	assert.False(t, ray.IntersectSphere(mgl32.Vec3{0, 3, 0}, 1))
	assert.False(t, ray.IntersectSphere(mgl32.Vec3{0, 0, 20}, 1))
}

func TestFrustumIntersectsSphere(t *testing.T) {
	proj := Perspective(mgl32.DegToRad(60), 1, 0.1, 50)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	f := ExtractFrustum(proj.Mul4(view))

	assert.True(t, f.IntersectsSphere(mgl32.Vec3{}, 1))
	assert.False(t, f.IntersectsSphere(mgl32.Vec3{0, 0, 20}, 1), "behind the camera")
	assert.False(t, f.IntersectsSphere(mgl32.Vec3{100, 0, 0}, 1), "far to the right")
	assert.False(t, f.IntersectsSphere(mgl32.Vec3{0, 0, -100}, 1), "beyond the far plane")
}

func TestComposeTransformOrder(t *testing.T) {
	m := ComposeTransform(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, mgl32.DegToRad(90), 0}, mgl32.Vec3{2, 2, 2})
	p := TransformPoint(m, mgl32.Vec3{1, 0, 0})

	// scale -> (2,0,0), rotate 90 about Y -> (0,0,-2), translate -> (1,2,1)
	assert.True(t, p.ApproxEqualThreshold(mgl32.Vec3{1, 2, 1}, standardTol), "got %v", p)
}

func TestColorHexAndLerp(t *testing.T) {
	c, err := Hex("#262837")
	require.NoError(t, err)
	assert.Equal(t, "#262837", c.String())

	_, err = Hex("not-a-color")
	assert.Error(t, err)

	mid := Black.Lerp(White, 0.5)
	assert.InDelta(t, 0.5, mid.R, standardTol)
	assert.InDelta(t, 1, mid.A, standardTol)
}

func TestRandomColorIsSeedable(t *testing.T) {
	a := RandomColor(rand.New(rand.NewPCG(1, 2)))
	b := RandomColor(rand.New(rand.NewPCG(1, 2)))
	assert.Equal(t, a, b)
	assert.True(t, a.IsValid())
}

func TestCoalesceAndClamp(t *testing.T) {
	assert.Equal(t, 3, Coalesce(0, 0, 3, 4))
	assert.Equal(t, "", Coalesce("", ""))
	assert.Equal(t, float32(2), Clamp(float32(5), 0, 2))
	assert.Equal(t, 0, Clamp(-1, 0, 2))
}
