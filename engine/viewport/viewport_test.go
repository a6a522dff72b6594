package viewport

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-demos/engine/camera"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSurface struct {
	width, height int
	ratio         float32
	sizeCalls     int
	ratioCalls    int
	err           error
	ratioErr      error
}

func (f *fakeSurface) SetSize(w, h int) error {
	f.sizeCalls++
	if f.err != nil {
		return f.err
	}
	f.width, f.height = w, h
	return nil
}

func (f *fakeSurface) SetPixelRatio(r float32) error {
	f.ratioCalls++
	if f.ratioErr != nil {
		return f.ratioErr
	}
	f.ratio = r
	return nil
}

func TestNewViewportSizesCameraAndSurface(t *testing.T) {
	cam := camera.NewCamera()
	s := &fakeSurface{}
	v, err := NewViewport(800, 600, 1, cam, s)
	require.NoError(t, err)

	assert.Equal(t, float32(800)/float32(600), cam.Aspect())
	assert.Equal(t, 800, s.width)
	assert.Equal(t, 600, s.height)
	w, h := v.Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
}

func TestResizeUnchangedIsNoOp(t *testing.T) {
	cam := camera.NewCamera()
	s := &fakeSurface{}
	v, err := NewViewport(800, 600, 1, cam, s)
	require.NoError(t, err)
	proj := cam.ProjectionMatrix()

	changed, err := v.Resize(800, 600, 3)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 1, s.sizeCalls)
	assert.Equal(t, 1, s.ratioCalls)
	assert.Equal(t, proj, cam.ProjectionMatrix())
	assert.Equal(t, float32(1), v.PixelRatio())
}

func TestResizeAppliesEverything(t *testing.T) {
	cam := camera.NewCamera()
	s := &fakeSurface{}
	v, err := NewViewport(800, 600, 1, cam, s)
	require.NoError(t, err)
	proj := cam.ProjectionMatrix()

	changed, err := v.Resize(1024, 768, 3)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, float32(1024)/float32(768), cam.Aspect())
	assert.NotEqual(t, proj, cam.ProjectionMatrix())
	assert.Equal(t, 1024, s.width)
	assert.Equal(t, 768, s.height)
	assert.Equal(t, float32(2), s.ratio, "pixel ratio is capped at 2")
	assert.Equal(t, float32(2), v.PixelRatio())
}

func TestResizeIgnoresEmptySize(t *testing.T) {
	s := &fakeSurface{}
	v, err := NewViewport(800, 600, 1, camera.NewCamera(), s)
	require.NoError(t, err)

	changed, err := v.Resize(0, 600, 1)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 1, s.sizeCalls)
}

func TestResizePropagatesSurfaceError(t *testing.T) {
	s := &fakeSurface{}
	cam := camera.NewCamera()
	v, err := NewViewport(800, 600, 1, cam, s, WithMaxPixelRatio(1.5))
	require.NoError(t, err)
	aspect := cam.Aspect()

	s.err = errors.New("lost device")
	changed, err := v.Resize(1024, 512, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, s.err)
	assert.False(t, changed)
	assert.Equal(t, aspect, cam.Aspect(), "camera must keep the size the surface still has")
	w, h := v.Size()
	assert.Equal(t, []int{800, 600}, []int{w, h})
	assert.Equal(t, 800, s.width)

	s.err = nil
	changed, err = v.Resize(1024, 512, 2)
	require.NoError(t, err)
	assert.True(t, changed, "a retry after a failure is applied")
	assert.Equal(t, 1024, s.width)
	assert.Equal(t, 512, s.height)
	assert.InDelta(t, 2, cam.Aspect(), 1e-6)

	_, err = NewViewport(1, 1, 1, camera.NewCamera(), &fakeSurface{err: errors.New("lost device")})
	assert.Error(t, err)
}

func TestResizePixelRatioErrorRestoresSurface(t *testing.T) {
	s := &fakeSurface{}
	cam := camera.NewCamera()
	v, err := NewViewport(800, 600, 1, cam, s)
	require.NoError(t, err)
	aspect := cam.Aspect()

	s.ratioErr = errors.New("unsupported ratio")
	_, err = v.Resize(1024, 512, 2)
	require.ErrorIs(t, err, s.ratioErr)
	assert.Equal(t, 800, s.width)
	assert.Equal(t, 600, s.height)
	assert.Equal(t, aspect, cam.Aspect())
	assert.Equal(t, float32(1), v.PixelRatio())
}

func TestMaxPixelRatioOption(t *testing.T) {
	s := &fakeSurface{}
	v, err := NewViewport(800, 600, 3, camera.NewCamera(), s, WithMaxPixelRatio(1.5))
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), v.PixelRatio())
	assert.Equal(t, float32(1.5), s.ratio)
}
