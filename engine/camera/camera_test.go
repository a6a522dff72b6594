package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-demos/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAspectWaitsForProjectionUpdate(t *testing.T) {
	c := NewCamera(WithAspect(800.0/600.0), WithController(NewCameraController()))
	before := c.ProjectionMatrix()

	c.SetAspect(1024.0 / 768.0 * 2)
	assert.Equal(t, before, c.ProjectionMatrix())

	c.UpdateProjectionMatrix()
	assert.NotEqual(t, before, c.ProjectionMatrix())
	assert.Equal(t, float32(1024.0/768.0*2), c.Aspect())
}

func TestViewProjectionRoundTrip(t *testing.T) {
	ctrl := NewCameraController(WithEyePosition(mgl32.Vec3{0, 0, 3}), WithDamping(false, 0))
	c := NewCamera(WithController(ctrl))

	p := mgl32.Vec3{0.3, -0.2, 0.5}
	clip := common.TransformPoint(c.ViewProjectionMatrix(), p)
	back := common.TransformPoint(c.InverseViewProjectionMatrix(), clip)
	assert.True(t, p.ApproxEqualThreshold(back, 1e-4), "got %v", back)
}

func TestEyePositionDerivesSpherical(t *testing.T) {
	ctrl := NewCameraController(WithEyePosition(mgl32.Vec3{0, 0, 3}))

	assert.InDelta(t, 3, ctrl.Radius(), 1e-5)
	assert.InDelta(t, 0, ctrl.Azimuth(), 1e-5)
	assert.InDelta(t, 0, ctrl.Elevation(), 1e-5)
	assert.True(t, ctrl.Position().ApproxEqualThreshold(mgl32.Vec3{0, 0, 3}, 1e-5))
}

func TestDampedRotateEasesOut(t *testing.T) {
	ctrl := NewCameraController(WithEyePosition(mgl32.Vec3{0, 0, 3}), WithDamping(true, 0.25))
	ctrl.Rotate(-100, 0)

	require.True(t, ctrl.Update())
	first := ctrl.Azimuth()
	require.True(t, ctrl.Update())
	second := ctrl.Azimuth() - first

	total := float32(100 * 0.005)
	assert.InDelta(t, total*0.25, first, 1e-5)
	assert.InDelta(t, total*0.75*0.25, second, 1e-5)
	assert.Less(t, second, first)

	for range 200 {
		ctrl.Update()
	}
	assert.InDelta(t, total, ctrl.Azimuth(), 1e-3)
	assert.False(t, ctrl.Update(), "motion settles once the delta is consumed")
}

func TestUndampedRotateAppliesAtOnce(t *testing.T) {
	ctrl := NewCameraController(WithDamping(false, 0))
	ctrl.OrbitRight()
	ctrl.Update()
	assert.InDelta(t, ctrl.OrbitSpeed(), ctrl.Azimuth(), 1e-6)
	assert.False(t, ctrl.Update())
}

func TestZoomClampsToRadiusBounds(t *testing.T) {
	ctrl := NewCameraController(WithRadius(2), WithRadiusBounds(1, 4))
	for range 100 {
		ctrl.Zoom(1)
		ctrl.Update()
	}
	assert.Equal(t, float32(1), ctrl.Radius())

	for range 100 {
		ctrl.Zoom(-1)
		ctrl.Update()
	}
	assert.Equal(t, float32(4), ctrl.Radius())
}

func TestElevationClamped(t *testing.T) {
	ctrl := NewCameraController(WithDamping(false, 0))
	ctrl.Rotate(0, 1e6)
	ctrl.Update()
	assert.Equal(t, ctrl.MaxElevation(), ctrl.Elevation())
}

func TestPanMovesTargetAndEye(t *testing.T) {
	ctrl := NewCameraController(WithEyePosition(mgl32.Vec3{0, 0, 3}), WithDamping(false, 0))
	offset := ctrl.Position().Sub(ctrl.Target())

	ctrl.PanRight(1)
	ctrl.Update()

	assert.True(t, ctrl.Target().ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, 1e-5), "target %v", ctrl.Target())
	assert.True(t, ctrl.Position().Sub(ctrl.Target()).ApproxEqualThreshold(offset, 1e-5))
}

func TestGPUCameraUniformMarshal(t *testing.T) {
	c := NewCamera(WithController(NewCameraController(WithEyePosition(mgl32.Vec3{1, 2, 3}))))
	u := NewGPUCameraUniform(c)

	buf := u.Marshal()
	assert.Len(t, buf, 80)
	assert.InDelta(t, 1, u.CameraPosition[0], 1e-5)
}
