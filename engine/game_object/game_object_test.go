package game_object

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-demos/common"
	"github.com/Carmen-Shannon/oxy-demos/engine/light"
	"github.com/Carmen-Shannon/oxy-demos/engine/model"
	"github.com/Carmen-Shannon/oxy-demos/engine/renderer/material"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldMatrixComposesParents(t *testing.T) {
	house := NewGameObject(WithName("house"), WithPosition(mgl32.Vec3{1, 0, 0}), WithScale(mgl32.Vec3{2, 2, 2}))
	door := NewGameObject(WithPosition(mgl32.Vec3{0, 1, 2}))
	house.Add(door)

	p := common.TransformPoint(door.WorldMatrix(), mgl32.Vec3{})
	assert.True(t, p.ApproxEqualThreshold(mgl32.Vec3{1, 2, 4}, 1e-5), "got %v", p)
	assert.Same(t, house, door.Parent())
}

func TestAddReparents(t *testing.T) {
	a := NewGameObject()
	b := NewGameObject()
	child := NewGameObject()

	a.Add(child)
	b.Add(child)

	assert.Empty(t, a.Children())
	require.Len(t, b.Children(), 1)
	assert.Same(t, b, child.Parent())

	assert.True(t, b.Remove(child))
	assert.False(t, b.Remove(child))
	assert.Nil(t, child.Parent())
}

func TestAddIgnoresSelfAndNil(t *testing.T) {
	a := NewGameObject()
	a.Add(a, nil)
	assert.Empty(t, a.Children())
}

func TestTraverseSkipsPrunedSubtree(t *testing.T) {
	leaf := NewGameObject(WithName("leaf"))
	hidden := NewGameObject(WithName("hidden"), WithVisible(false), WithChildren(leaf))
	root := NewGameObject(WithName("root"), WithChildren(hidden, NewGameObject(WithName("other"))))

	var names []string
	root.Traverse(func(o GameObject) bool {
		names = append(names, o.Name())
		return o.Visible()
	})
	assert.Equal(t, []string{"root", "hidden", "other"}, names)
}

func TestAdvanceSpinsSubtree(t *testing.T) {
	child := NewGameObject(WithRotationSpeed(mgl32.Vec3{0.1, 0.15, 0}))
	root := NewGameObject(WithChildren(child))

	root.Advance(2)
	assert.True(t, child.Rotation().ApproxEqualThreshold(mgl32.Vec3{0.2, 0.3, 0}, 1e-6))
	assert.Equal(t, mgl32.Vec3{}, root.Rotation())
}

func TestNewMeshAndObjectUniform(t *testing.T) {
	m := model.NewModel(model.BoxGeometry(1, 1, 1, 1, 1, 1))
	mat := material.NewMaterial()
	l := light.NewPointLight(common.White, 1, 7, mgl32.Vec3{})
	mesh := NewMesh(m, mat, WithName("box"), WithRotation(mgl32.Vec3{0, math32.Pi / 2, 0}), WithLight(l))

	assert.Same(t, m, mesh.Model())
	assert.Same(t, mat, mesh.Material())
	assert.Same(t, l, mesh.Light())
	assert.Equal(t, "box", mesh.ObjectProvider().Label())

	u := NewGPUObjectUniform(mesh.WorldMatrix())
	assert.Equal(t, 128, u.Size())
	assert.Len(t, u.Marshal(), 128)
	mesh.Dispose()
}
