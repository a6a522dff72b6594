package viewport

import "go.uber.org/zap"

// ViewportBuilderOption is a functional option for configuring a Viewport.
type ViewportBuilderOption func(*Viewport)

// WithMaxPixelRatio overrides the pixel ratio cap of 2.
//
// Parameters:
//   - ratio: the cap; values <= 0 are ignored
//
// Returns:
//   - ViewportBuilderOption: option function to apply
func WithMaxPixelRatio(ratio float32) ViewportBuilderOption {
	return func(v *Viewport) {
		if ratio > 0 {
			v.maxPixelRatio = ratio
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) ViewportBuilderOption {
	return func(v *Viewport) {
		v.logger = logger
	}
}
