// Package viewport keeps the camera projection and the drawing surface in step with the window.
package viewport

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-demos/engine/camera"
	"github.com/Carmen-Shannon/oxy-demos/engine/logging"
	"go.uber.org/zap"
)

// DefaultMaxPixelRatio caps the device pixel ratio applied to the drawing buffer.
const DefaultMaxPixelRatio float32 = 2

// Surface is the drawing target resized alongside the camera. renderer.Renderer implements it.
type Surface interface {
	SetSize(width, height int) error
	SetPixelRatio(ratio float32) error
}

// Viewport holds the logical viewport size. It is mutated only through Resize, which updates the
// camera aspect, the camera projection and the surface together.
type Viewport struct {
	mu *sync.Mutex

	camera  camera.Camera
	surface Surface
	logger  *zap.Logger

	width, height int
	pixelRatio    float32
	maxPixelRatio float32
}

// NewViewport sizes the camera and surface to an initial viewport.
//
// Parameters:
//   - width, height: logical size in pixels
//   - devicePixelRatio: the display's device pixel ratio
//   - cam: the camera whose aspect follows the viewport
//   - surface: the drawing surface
//   - options: functional options to configure the viewport
//
// Returns:
//   - *Viewport: the viewport
//   - error: error if the surface rejects the size
func NewViewport(width, height int, devicePixelRatio float32, cam camera.Camera, surface Surface, options ...ViewportBuilderOption) (*Viewport, error) {
	if cam == nil || surface == nil {
		panic("viewport: camera and surface are required")
	}
	v := &Viewport{
		mu:            &sync.Mutex{},
		camera:        cam,
		surface:       surface,
		logger:        zap.NewNop(),
		maxPixelRatio: DefaultMaxPixelRatio,
	}
	for _, opt := range options {
		opt(v)
	}
	v.logger = logging.OrNop(v.logger).Named("viewport")

	v.mu.Lock()
	defer v.mu.Unlock()
	if err := v.apply(width, height, devicePixelRatio); err != nil {
		return nil, err
	}
	return v, nil
}

// Resize applies a new viewport size. An unchanged or empty size is a no-op; otherwise the cached
// size, camera aspect, camera projection, surface size and clamped pixel ratio are all updated
// before Resize returns. If the surface rejects the size, none of them change.
//
// Parameters:
//   - width, height: logical size in pixels
//   - devicePixelRatio: the display's device pixel ratio
//
// Returns:
//   - bool: true if anything changed
//   - error: error if the surface rejects the size
func (v *Viewport) Resize(width, height int, devicePixelRatio float32) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if width <= 0 || height <= 0 || (width == v.width && height == v.height) {
		return false, nil
	}
	if err := v.apply(width, height, devicePixelRatio); err != nil {
		return false, err
	}
	v.logger.Debug("viewport resized",
		zap.Int("width", width), zap.Int("height", height), zap.Float32("pixelRatio", v.pixelRatio))
	return true, nil
}

// apply pushes a size to the surface, then commits it to the cached size and the camera. On
// error nothing is committed, so a retry with the same size is applied again. Caller must hold the
// mutex.
func (v *Viewport) apply(width, height int, devicePixelRatio float32) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("viewport size %dx%d must be positive", width, height)
	}
	ratio := v.clampRatio(devicePixelRatio)

	if err := v.surface.SetSize(width, height); err != nil {
		return fmt.Errorf("resize surface: %w", err)
	}
	if err := v.surface.SetPixelRatio(ratio); err != nil {
		if v.width > 0 && v.height > 0 {
			if rerr := v.surface.SetSize(v.width, v.height); rerr != nil {
				v.logger.Warn("restore surface size", zap.Error(rerr))
			}
		}
		return fmt.Errorf("set pixel ratio: %w", err)
	}

	v.width, v.height = width, height
	v.pixelRatio = ratio
	v.camera.SetAspect(float32(width) / float32(height))
	v.camera.UpdateProjectionMatrix()
	return nil
}

func (v *Viewport) clampRatio(r float32) float32 {
	if r <= 0 {
		return 1
	}
	return min(r, v.maxPixelRatio)
}

// Size returns the logical viewport size.
func (v *Viewport) Size() (int, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.width, v.height
}

// PixelRatio returns the clamped pixel ratio last applied.
func (v *Viewport) PixelRatio() float32 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pixelRatio
}
