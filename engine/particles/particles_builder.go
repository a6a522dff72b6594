package particles

import (
	"math/rand/v2"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-demos/engine/model"
	"go.uber.org/zap"
)

// FieldBuilderOption is a functional option for configuring a Field.
type FieldBuilderOption func(*Field)

// WithModel sets the instanced model the field writes to.
//
// Parameters:
//   - m: a model with TopologyInstancedQuads
//
// Returns:
//   - FieldBuilderOption: option function to apply
func WithModel(m model.Model) FieldBuilderOption {
	return func(f *Field) {
		f.model = m
	}
}

// WithRand sets the random source used to scatter particles.
func WithRand(rng *rand.Rand) FieldBuilderOption {
	return func(f *Field) {
		f.rng = rng
	}
}

// WithWorkerPool animates the field in parallel chunks on pool.
func WithWorkerPool(pool worker.DynamicWorkerPool) FieldBuilderOption {
	return func(f *Field) {
		f.pool = pool
	}
}

// WithChunkSize sets how many particles one worker task animates. Values < 1 are ignored.
func WithChunkSize(n int) FieldBuilderOption {
	return func(f *Field) {
		if n > 0 {
			f.chunkSize = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) FieldBuilderOption {
	return func(f *Field) {
		f.logger = logger
	}
}
