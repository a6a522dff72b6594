package particles

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-demos/engine/model"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

func TestGenerateScattersInsideCube(t *testing.T) {
	f, err := NewField(FieldParams{Count: 500, Extent: 10, Size: 0.1}, WithRand(seeded()))
	require.NoError(t, err)

	b := f.Model().Buffers()
	require.Equal(t, 500, b.InstanceCount())
	assert.Equal(t, model.TopologyInstancedQuads, f.Model().Topology())
	for i := range b.InstanceCount() {
		rec := b.Instances[i*model.InstanceStride : (i+1)*model.InstanceStride]
		for _, c := range rec[:3] {
			assert.LessOrEqual(t, math32.Abs(c), float32(5))
		}
		assert.Equal(t, float32(0.1), rec[3])
		assert.Equal(t, float32(1), rec[7], "particles are opaque")
	}
}

func TestInvalidParams(t *testing.T) {
	_, err := NewField(FieldParams{Count: 0, Extent: 10, Size: 0.1})
	require.ErrorIs(t, err, ErrInvalidParams)

	f, err := NewField(DefaultFieldParams(), WithRand(seeded()))
	require.NoError(t, err)
	require.ErrorIs(t, f.Generate(FieldParams{Count: 10, Extent: 10}), ErrInvalidParams)
	assert.Equal(t, 20000, f.Model().Buffers().InstanceCount(), "failed generation keeps the field")
}

func TestUpdateAppliesWave(t *testing.T) {
	pool := worker.NewDynamicWorkerPool(4, 256, time.Second)
	t.Cleanup(pool.Stop)

	f, err := NewField(FieldParams{Count: 1000, Extent: 10, Size: 0.1},
		WithRand(seeded()), WithWorkerPool(pool), WithChunkSize(64))
	require.NoError(t, err)
	f.Model().TakeDirty()

	f.Update(1.25)
	inst := f.Model().Buffers().Instances
	for i := 0; i < len(inst); i += model.InstanceStride {
		require.InDelta(t, math32.Sin(1.25+inst[i]), inst[i+1], 1e-6)
	}
	assert.Equal(t, model.DirtyInstances, f.Model().TakeDirty())
}

func TestPoolAndSerialAgree(t *testing.T) {
	pool := worker.NewDynamicWorkerPool(3, 256, time.Second)
	t.Cleanup(pool.Stop)

	a, err := NewField(FieldParams{Count: 300, Extent: 10, Size: 0.1}, WithRand(seeded()), WithWorkerPool(pool), WithChunkSize(7))
	require.NoError(t, err)
	b, err := NewField(FieldParams{Count: 300, Extent: 10, Size: 0.1}, WithRand(seeded()))
	require.NoError(t, err)

	a.Update(3)
	b.Update(3)
	assert.Equal(t, b.Model().Buffers().Instances, a.Model().Buffers().Instances)
}

func TestRegenerateAndResize(t *testing.T) {
	f, err := NewField(FieldParams{Count: 100, Extent: 10, Size: 0.1}, WithRand(seeded()))
	require.NoError(t, err)
	v := f.Model().Version()

	require.NoError(t, f.Generate(FieldParams{Count: 250, Extent: 10, Size: 0.1}))
	assert.Equal(t, 250, f.Model().Buffers().InstanceCount())
	assert.Greater(t, f.Model().Version(), v)

	f.SetSize(0.3)
	assert.Equal(t, float32(0.3), f.Params().Size)
	inst := f.Model().Buffers().Instances
	for i := 3; i < len(inst); i += model.InstanceStride {
		require.Equal(t, float32(0.3), inst[i])
	}
	f.SetSize(-1)
	assert.Equal(t, float32(0.3), f.Params().Size)
}
