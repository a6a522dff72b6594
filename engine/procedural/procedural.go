// Package procedural generates a randomly displaced plane and animates it by swaying every
// vertex around its generated position.
package procedural

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-demos/common"
	"github.com/Carmen-Shannon/oxy-demos/engine/logging"
	"github.com/Carmen-Shannon/oxy-demos/engine/model"
	"github.com/chewxy/math32"
	"go.uber.org/zap"
)

// Displacement and sway amplitudes.
const (
	jitterXY = 1.5
	jitterZ  = 0.5
	swayX    = 0.01
	swayY    = 0.003
)

// ErrInvalidParams is returned when plane parameters cannot produce a grid.
var ErrInvalidParams = errors.New("invalid plane parameters")

// PlaneParams describes the grid before displacement.
type PlaneParams struct {
	Width          float32
	Height         float32
	WidthSegments  int
	HeightSegments int
}

// DefaultPlaneParams returns the terrain demo's defaults: a 20x20 plane split 40x40.
func DefaultPlaneParams() PlaneParams {
	return PlaneParams{Width: 20, Height: 20, WidthSegments: 40, HeightSegments: 40}
}

// Validate reports whether the params describe a non-empty grid.
func (p PlaneParams) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: size %gx%g must be positive", ErrInvalidParams, p.Width, p.Height)
	}
	if p.WidthSegments < 1 || p.HeightSegments < 1 {
		return fmt.Errorf("%w: segments %dx%d must be at least 1", ErrInvalidParams, p.WidthSegments, p.HeightSegments)
	}
	return nil
}

// VertexCount returns (ws+1)*(hs+1).
func (p PlaneParams) VertexCount() int {
	return (p.WidthSegments + 1) * (p.HeightSegments + 1)
}

// planeState is one generation: the live buffers plus the snapshot the sway is computed from.
// The three slices always describe the same vertex count. seq orders generations by request.
type planeState struct {
	seq      uint64
	params   PlaneParams
	buffers  *model.Buffers
	original []float32
	phases   []float32
}

type displacedPlane struct {
	mu *sync.Mutex

	model     model.Model
	baseColor common.Color
	rng       *rand.Rand
	pool      worker.DynamicWorkerPool
	logger    *zap.Logger

	state     atomic.Pointer[planeState]
	pending   atomic.Pointer[planeState]
	requested atomic.Uint64
}

// DisplacedPlane owns the geometry of a randomly displaced plane. Generate and Update run on
// the render thread; GenerateAsync builds the next generation on a worker and hands it over
// through an atomic pointer that the next Update installs.
type DisplacedPlane interface {
	// Model returns the model the plane publishes its geometry to.
	Model() model.Model

	// Params returns the parameters of the installed generation.
	Params() PlaneParams

	// Generate builds a new displaced grid and installs it. The model's previous GPU geometry is
	// disposed before the new buffers are swapped in.
	//
	// Parameters:
	//   - params: the grid to build
	//
	// Returns:
	//   - error: ErrInvalidParams if the params cannot produce a grid
	Generate(params PlaneParams) error

	// GenerateAsync builds a new grid on the worker pool. The result is installed by the first
	// Update after it completes. Without a pool it generates synchronously. Only the most recent
	// request is installed: a build that finishes after a newer Generate or GenerateAsync call is
	// discarded.
	//
	// Parameters:
	//   - params: the grid to build
	//
	// Returns:
	//   - <-chan error: receives nil once the generation is ready to install or has been
	//     superseded, or the build error
	GenerateAsync(params PlaneParams) <-chan error

	// Update sways every vertex around its generated position:
	// x = ox + cos(t + phase) * 0.01 and y = oy + sin(t + phase) * 0.003. Z is left alone.
	//
	// Parameters:
	//   - t: elapsed seconds of the animation clock
	Update(t float32)

	// Original returns a copy of the generated positions the sway is computed from.
	Original() []float32

	// Phases returns a copy of the per-vertex phases.
	Phases() []float32
}

var _ DisplacedPlane = &displacedPlane{}

// NewDisplacedPlane creates a plane and generates its first grid.
//
// Parameters:
//   - params: the initial grid
//   - options: functional options to configure the plane
//
// Returns:
//   - DisplacedPlane: the plane
//   - error: ErrInvalidParams if the params cannot produce a grid
func NewDisplacedPlane(params PlaneParams, options ...DisplacedPlaneBuilderOption) (DisplacedPlane, error) {
	p := &displacedPlane{
		mu:        &sync.Mutex{},
		baseColor: common.White,
		logger:    zap.NewNop(),
	}
	for _, opt := range options {
		opt(p)
	}
	p.logger = logging.OrNop(p.logger).Named("procedural")
	if p.rng == nil {
		p.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if p.model == nil {
		p.model = model.NewModel(nil, model.WithName("displaced_plane"))
	}
	if err := p.Generate(params); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *displacedPlane) Model() model.Model {
	return p.model
}

func (p *displacedPlane) Params() PlaneParams {
	return p.state.Load().params
}

func (p *displacedPlane) Generate(params PlaneParams) error {
	s, err := p.build(params, p.requested.Add(1))
	if err != nil {
		return err
	}
	p.install(s)
	return nil
}

func (p *displacedPlane) GenerateAsync(params PlaneParams) <-chan error {
	done := make(chan error, 1)
	seq := p.requested.Add(1)
	if p.pool == nil {
		s, err := p.build(params, seq)
		if err == nil {
			p.publish(s)
		}
		done <- err
		return done
	}

	p.pool.SubmitTask(worker.Task{
		ID: int(seq),
		Do: func() (any, error) {
			s, err := p.build(params, seq)
			if err == nil {
				p.publish(s)
			}
			done <- err
			return nil, err
		},
	})
	return done
}

// publish hands a finished generation to the next Update unless a newer one was requested or is
// already pending.
func (p *displacedPlane) publish(s *planeState) {
	for {
		if s.seq != p.requested.Load() {
			p.logger.Debug("superseded plane generation dropped", zap.Uint64("seq", s.seq))
			return
		}
		cur := p.pending.Load()
		if cur != nil && cur.seq > s.seq {
			return
		}
		if p.pending.CompareAndSwap(cur, s) {
			return
		}
	}
}

func (p *displacedPlane) Update(t float32) {
	if next := p.pending.Swap(nil); next != nil && next.seq > p.state.Load().seq {
		p.install(next)
	}

	s := p.state.Load()
	pos := s.buffers.Positions
	for v, phase := range s.phases {
		i := v * 3
		pos[i] = s.original[i] + math32.Cos(t+phase)*swayX
		pos[i+1] = s.original[i+1] + math32.Sin(t+phase)*swayY
	}
	p.model.MarkDirty(model.DirtyPositions)
}

func (p *displacedPlane) Original() []float32 {
	return append([]float32(nil), p.state.Load().original...)
}

func (p *displacedPlane) Phases() []float32 {
	return append([]float32(nil), p.state.Load().phases...)
}

// build generates one displaced grid. The random source is shared, so draws are serialized.
func (p *displacedPlane) build(params PlaneParams, seq uint64) (*planeState, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	b := model.PlaneGeometry(params.Width, params.Height, params.WidthSegments, params.HeightSegments)
	n := b.VertexCount()
	phases := make([]float32, n)

	p.mu.Lock()
	for i := 0; i < len(b.Positions); i += 3 {
		b.Positions[i] += uniform(p.rng, -jitterXY, jitterXY)
		b.Positions[i+1] += uniform(p.rng, -jitterXY, jitterXY)
		b.Positions[i+2] += uniform(p.rng, -jitterZ, jitterZ)
		phases[i/3] = uniform(p.rng, 0, math32.Pi)
	}
	p.mu.Unlock()

	b.ComputeNormals()
	b.FillColor(p.baseColor.Vec3())

	return &planeState{
		seq:      seq,
		params:   params,
		buffers:  b,
		original: append([]float32(nil), b.Positions...),
		phases:   phases,
	}, nil
}

// install disposes the model's GPU geometry and publishes a generation.
func (p *displacedPlane) install(s *planeState) {
	p.model.Dispose()
	p.model.Swap(s.buffers)
	p.state.Store(s)
	p.logger.Debug("plane generated",
		zap.Float32("width", s.params.Width),
		zap.Float32("height", s.params.Height),
		zap.Int("widthSegments", s.params.WidthSegments),
		zap.Int("heightSegments", s.params.HeightSegments),
		zap.Int("vertices", s.buffers.VertexCount()))
}

func uniform(rng *rand.Rand, lo, hi float32) float32 {
	return lo + rng.Float32()*(hi-lo)
}
