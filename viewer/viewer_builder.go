package viewer

import (
	"math/rand/v2"

	"github.com/Carmen-Shannon/oxy-demos/engine/renderer"
	"github.com/Carmen-Shannon/oxy-demos/engine/window"
	"go.uber.org/zap"
)

// ViewerBuilderOption is a functional option for configuring a Viewer.
type ViewerBuilderOption func(*Viewer)

// WithPlatform replaces the window platform chosen from the configuration.
//
// Parameters:
//   - p: the platform to open the window on
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithPlatform(p window.Platform) ViewerBuilderOption {
	return func(v *Viewer) {
		v.platform = p
	}
}

// WithRendererBackend replaces the renderer backend chosen from the configuration.
func WithRendererBackend(b renderer.RendererBackend) ViewerBuilderOption {
	return func(v *Viewer) {
		v.backend = b
	}
}

// WithRand sets the random source shared by the demo. It overrides the configured seed.
func WithRand(rng *rand.Rand) ViewerBuilderOption {
	return func(v *Viewer) {
		v.rng = rng
	}
}

// WithLogger sets the logger instead of building one from the configuration.
func WithLogger(logger *zap.Logger) ViewerBuilderOption {
	return func(v *Viewer) {
		v.logger = logger
	}
}
