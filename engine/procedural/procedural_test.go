package procedural

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-demos/common"
	"github.com/Carmen-Shannon/oxy-demos/engine/model"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestGenerateBufferLengths(t *testing.T) {
	params := PlaneParams{Width: 1, Height: 1, WidthSegments: 10, HeightSegments: 10}
	p, err := NewDisplacedPlane(params, WithRand(seeded(1)))
	require.NoError(t, err)

	b := p.Model().Buffers()
	assert.Equal(t, 121, b.VertexCount())
	assert.Len(t, b.Positions, 3*121)
	assert.Len(t, p.Original(), 3*121)
	assert.Len(t, p.Phases(), 121)
	assert.Len(t, b.Colors, 3*121)
}

func TestGenerateDisplacementWithinBounds(t *testing.T) {
	params := PlaneParams{Width: 4, Height: 2, WidthSegments: 4, HeightSegments: 2}
	p, err := NewDisplacedPlane(params, WithRand(seeded(7)), WithBaseColor(common.Red))
	require.NoError(t, err)

	flat := model.PlaneGeometry(4, 2, 4, 2)
	orig := p.Original()
	for i := 0; i < len(orig); i += 3 {
		assert.LessOrEqual(t, math32.Abs(orig[i]-flat.Positions[i]), float32(jitterXY))
		assert.LessOrEqual(t, math32.Abs(orig[i+1]-flat.Positions[i+1]), float32(jitterXY))
		assert.LessOrEqual(t, math32.Abs(orig[i+2]), float32(jitterZ))
	}
	for _, phase := range p.Phases() {
		assert.GreaterOrEqual(t, phase, float32(0))
		assert.Less(t, phase, math32.Pi)
	}
	b := p.Model().Buffers()
	for v := range b.VertexCount() {
		assert.Equal(t, []float32{1, 0, 0}, b.Colors[v*3:v*3+3])
	}
}

func TestUpdateSwaysAroundOriginal(t *testing.T) {
	p, err := NewDisplacedPlane(PlaneParams{Width: 1, Height: 1, WidthSegments: 3, HeightSegments: 3}, WithRand(seeded(3)))
	require.NoError(t, err)
	m := p.Model()
	m.TakeDirty()

	orig, phases := p.Original(), p.Phases()
	for _, tm := range []float32{0, 1.25, 40} {
		p.Update(tm)
		pos := m.Buffers().Positions
		for v, phase := range phases {
			i := v * 3
			assert.InDelta(t, orig[i]+math32.Cos(tm+phase)*0.01, pos[i], 1e-6)
			assert.InDelta(t, orig[i+1]+math32.Sin(tm+phase)*0.003, pos[i+1], 1e-6)
			assert.Equal(t, orig[i+2], pos[i+2])
		}
	}
	assert.Equal(t, model.DirtyPositions, m.TakeDirty())
	assert.Equal(t, orig, p.Original(), "the snapshot is never written")
}

func TestRegenerateKeepsLengthsNotValues(t *testing.T) {
	params := PlaneParams{Width: 2, Height: 2, WidthSegments: 5, HeightSegments: 5}
	p, err := NewDisplacedPlane(params, WithRand(seeded(11)))
	require.NoError(t, err)
	first := p.Original()
	version := p.Model().Version()

	require.NoError(t, p.Generate(params))
	second := p.Original()
	assert.Len(t, second, len(first))
	assert.NotEqual(t, first, second)
	assert.Greater(t, p.Model().Version(), version)
}

func TestSeededGenerationIsReproducible(t *testing.T) {
	params := PlaneParams{Width: 2, Height: 2, WidthSegments: 2, HeightSegments: 2}
	a, err := NewDisplacedPlane(params, WithRand(seeded(5)))
	require.NoError(t, err)
	b, err := NewDisplacedPlane(params, WithRand(seeded(5)))
	require.NoError(t, err)
	assert.Equal(t, a.Original(), b.Original())
	assert.Equal(t, a.Phases(), b.Phases())
}

func TestGenerateRejectsInvalidParams(t *testing.T) {
	p, err := NewDisplacedPlane(DefaultPlaneParams(), WithRand(seeded(1)))
	require.NoError(t, err)
	before := p.Model().Version()

	err = p.Generate(PlaneParams{Width: 1, Height: 1, WidthSegments: 0, HeightSegments: 3})
	require.ErrorIs(t, err, ErrInvalidParams)
	assert.Equal(t, before, p.Model().Version())
	assert.Equal(t, DefaultPlaneParams(), p.Params())

	_, err = NewDisplacedPlane(PlaneParams{Width: -1, Height: 1, WidthSegments: 1, HeightSegments: 1})
	assert.ErrorIs(t, err, ErrInvalidParams)
}

func TestGenerateAsyncInstalledOnNextUpdate(t *testing.T) {
	pool := worker.NewDynamicWorkerPool(2, 16, time.Second)
	defer pool.Stop()

	p, err := NewDisplacedPlane(PlaneParams{Width: 1, Height: 1, WidthSegments: 2, HeightSegments: 2},
		WithRand(seeded(9)), WithWorkerPool(pool))
	require.NoError(t, err)

	next := PlaneParams{Width: 1, Height: 1, WidthSegments: 6, HeightSegments: 4}
	select {
	case err := <-p.GenerateAsync(next):
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("async generation did not finish")
	}
	assert.Equal(t, 9, p.Model().Buffers().VertexCount(), "not visible before Update")

	p.Update(0)
	assert.Equal(t, 35, p.Model().Buffers().VertexCount())
	assert.Equal(t, next, p.Params())
	assert.Len(t, p.Phases(), 35)
}

func TestLatestAsyncRequestWins(t *testing.T) {
	pool := worker.NewDynamicWorkerPool(4, 16, time.Second)
	defer pool.Stop()

	p, err := NewDisplacedPlane(PlaneParams{Width: 1, Height: 1, WidthSegments: 1, HeightSegments: 1},
		WithRand(seeded(3)), WithWorkerPool(pool))
	require.NoError(t, err)

	large := PlaneParams{Width: 10, Height: 10, WidthSegments: 400, HeightSegments: 400}
	small := PlaneParams{Width: 1, Height: 1, WidthSegments: 2, HeightSegments: 2}
	first := p.GenerateAsync(large)
	second := p.GenerateAsync(small)
	for _, done := range []<-chan error{first, second} {
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(10 * time.Second):
			t.Fatal("async generation did not finish")
		}
	}

	p.Update(0)
	assert.Equal(t, small, p.Params())
	assert.Equal(t, 9, p.Model().Buffers().VertexCount())

	p.Update(1)
	assert.Equal(t, small, p.Params(), "an older build is never installed later")
}

func TestGenerateSupersedesPendingBuild(t *testing.T) {
	p, err := NewDisplacedPlane(PlaneParams{Width: 1, Height: 1, WidthSegments: 1, HeightSegments: 1},
		WithRand(seeded(4)))
	require.NoError(t, err)

	pending := PlaneParams{Width: 1, Height: 1, WidthSegments: 5, HeightSegments: 5}
	require.NoError(t, <-p.GenerateAsync(pending))

	now := PlaneParams{Width: 2, Height: 2, WidthSegments: 3, HeightSegments: 3}
	require.NoError(t, p.Generate(now))

	p.Update(0)
	assert.Equal(t, now, p.Params())
	assert.Equal(t, 16, p.Model().Buffers().VertexCount())
}
