package procedural

import (
	"math/rand/v2"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-demos/common"
	"github.com/Carmen-Shannon/oxy-demos/engine/model"
	"go.uber.org/zap"
)

// DisplacedPlaneBuilderOption is a functional option for configuring a DisplacedPlane.
type DisplacedPlaneBuilderOption func(*displacedPlane)

// WithModel sets the model generations are published to. By default the plane creates its own.
//
// Parameters:
//   - m: the target model
//
// Returns:
//   - DisplacedPlaneBuilderOption: option function to apply
func WithModel(m model.Model) DisplacedPlaneBuilderOption {
	return func(p *displacedPlane) {
		p.model = m
	}
}

// WithRand sets the random source used for displacement and phases. Seeded sources make
// generation reproducible.
//
// Parameters:
//   - rng: the random source
//
// Returns:
//   - DisplacedPlaneBuilderOption: option function to apply
func WithRand(rng *rand.Rand) DisplacedPlaneBuilderOption {
	return func(p *displacedPlane) {
		p.rng = rng
	}
}

// WithBaseColor sets the color every generation's color buffer is reset to.
func WithBaseColor(c common.Color) DisplacedPlaneBuilderOption {
	return func(p *displacedPlane) {
		p.baseColor = c
	}
}

// WithWorkerPool sets the pool GenerateAsync runs on.
func WithWorkerPool(pool worker.DynamicWorkerPool) DisplacedPlaneBuilderOption {
	return func(p *displacedPlane) {
		p.pool = pool
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) DisplacedPlaneBuilderOption {
	return func(p *displacedPlane) {
		p.logger = logger
	}
}
