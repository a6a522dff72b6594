package picking

import (
	"math/rand/v2"

	"github.com/Carmen-Shannon/oxy-demos/common"
	"go.uber.org/zap"
)

// HoverAnimatorBuilderOption is a functional option for configuring a HoverAnimator.
type HoverAnimatorBuilderOption func(*HoverAnimator)

// WithBaseColor sets the color every tween returns to.
//
// Parameters:
//   - c: the resting vertex color
//
// Returns:
//   - HoverAnimatorBuilderOption: option function to apply
func WithBaseColor(c common.Color) HoverAnimatorBuilderOption {
	return func(h *HoverAnimator) {
		h.baseColor = c
	}
}

// WithDuration sets the tween length in seconds. The default is 0.5.
func WithDuration(seconds float32) HoverAnimatorBuilderOption {
	return func(h *HoverAnimator) {
		h.duration = seconds
	}
}

// WithRand sets the random source for highlight colors.
func WithRand(rng *rand.Rand) HoverAnimatorBuilderOption {
	return func(h *HoverAnimator) {
		h.rng = rng
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) HoverAnimatorBuilderOption {
	return func(h *HoverAnimator) {
		h.logger = logger
	}
}
