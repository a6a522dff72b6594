// Package particles owns a field of instanced billboard particles whose height follows a wave.
package particles

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-demos/common"
	"github.com/Carmen-Shannon/oxy-demos/engine/logging"
	"github.com/Carmen-Shannon/oxy-demos/engine/model"
	"github.com/chewxy/math32"
	"go.uber.org/zap"
)

// ErrInvalidParams is returned for a field that cannot be built.
var ErrInvalidParams = errors.New("invalid particle parameters")

// defaultChunkSize is the number of particles one worker task animates.
const defaultChunkSize = 2048

// FieldParams describes a particle field.
type FieldParams struct {
	// Count is the number of particles.
	Count int
	// Extent is the edge length of the cube the particles are scattered in.
	Extent float32
	// Size is the world-space edge length of each particle quad.
	Size float32
}

// DefaultFieldParams returns 20000 particles of size 0.1 in a cube of side 10.
func DefaultFieldParams() FieldParams {
	return FieldParams{Count: 20000, Extent: 10, Size: 0.1}
}

// Validate reports whether the params describe a non-empty field.
func (p FieldParams) Validate() error {
	if p.Count < 1 {
		return fmt.Errorf("%w: count %d must be at least 1", ErrInvalidParams, p.Count)
	}
	if p.Extent <= 0 || p.Size <= 0 {
		return fmt.Errorf("%w: extent %g and size %g must be positive", ErrInvalidParams, p.Extent, p.Size)
	}
	return nil
}

// Field scatters particles with random colors and animates y = sin(t + x) each frame. Every
// method runs on the render thread. Update fans the work out to the worker pool and waits for all
// chunks before returning, so the instance buffer is complete when the frame is drawn.
type Field struct {
	mu *sync.Mutex

	model     model.Model
	params    FieldParams
	rng       *rand.Rand
	pool      worker.DynamicWorkerPool
	chunkSize int
	logger    *zap.Logger
}

// NewField creates a field and scatters its first set of particles.
//
// Parameters:
//   - params: the field to build
//   - options: functional options to configure the field
//
// Returns:
//   - *Field: the field
//   - error: ErrInvalidParams if the params cannot produce a field
func NewField(params FieldParams, options ...FieldBuilderOption) (*Field, error) {
	f := &Field{
		mu:        &sync.Mutex{},
		chunkSize: defaultChunkSize,
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		opt(f)
	}
	f.logger = logging.OrNop(f.logger).Named("particles")
	if f.rng == nil {
		f.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if f.model == nil {
		f.model = model.NewModel(nil, model.WithName("particles"), model.WithTopology(model.TopologyInstancedQuads))
	}
	if err := f.Generate(params); err != nil {
		return nil, err
	}
	return f, nil
}

// Model returns the instanced model the field writes to.
func (f *Field) Model() model.Model {
	return f.model
}

// Params returns the parameters of the current field.
func (f *Field) Params() FieldParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.params
}

// Generate scatters a new set of particles and replaces the model's geometry.
//
// Parameters:
//   - params: the field to build
//
// Returns:
//   - error: ErrInvalidParams if the params cannot produce a field
func (f *Field) Generate(params FieldParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	f.mu.Lock()
	b := model.InstanceBuffers(params.Count)
	for i := range params.Count {
		rec := b.Instances[i*model.InstanceStride : (i+1)*model.InstanceStride]
		rec[0] = (f.rng.Float32() - 0.5) * params.Extent
		rec[1] = (f.rng.Float32() - 0.5) * params.Extent
		rec[2] = (f.rng.Float32() - 0.5) * params.Extent
		rec[3] = params.Size
		c := common.RandomColor(f.rng).Vec4()
		copy(rec[4:], c[:])
	}
	f.params = params
	f.mu.Unlock()

	f.model.Dispose()
	f.model.Swap(b)
	f.logger.Debug("field generated", zap.Int("count", params.Count),
		zap.Float32("extent", params.Extent), zap.Float32("size", params.Size))
	return nil
}

// SetSize changes the quad size of every particle in place.
//
// Parameters:
//   - size: the new edge length; values <= 0 are ignored
func (f *Field) SetSize(size float32) {
	if size <= 0 {
		return
	}
	f.mu.Lock()
	f.params.Size = size
	f.mu.Unlock()

	inst := f.model.Buffers().Instances
	for i := 3; i < len(inst); i += model.InstanceStride {
		inst[i] = size
	}
	f.model.MarkDirty(model.DirtyInstances)
}

// Update sets every particle's height to sin(t + x). Without a worker pool the chunks run
// serially.
//
// Parameters:
//   - t: elapsed seconds of the animation clock
func (f *Field) Update(t float32) {
	inst := f.model.Buffers().Instances
	n := len(inst) / model.InstanceStride
	if n == 0 {
		return
	}

	if f.pool == nil {
		wave(inst, t)
		f.model.MarkDirty(model.DirtyInstances)
		return
	}

	var wg sync.WaitGroup
	id := 0
	for start := 0; start < n; start += f.chunkSize {
		end := min(start+f.chunkSize, n)
		chunk := inst[start*model.InstanceStride : end*model.InstanceStride]
		wg.Add(1)
		f.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				wave(chunk, t)
				return nil, nil
			},
		})
		id++
	}
	wg.Wait()
	f.model.MarkDirty(model.DirtyInstances)
}

// wave writes y = sin(t + x) into each instance record of inst.
func wave(inst []float32, t float32) {
	for i := 0; i+1 < len(inst); i += model.InstanceStride {
		inst[i+1] = math32.Sin(t + inst[i])
	}
}
