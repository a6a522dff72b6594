package game_object

import (
	"slices"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-demos/common"
	"github.com/Carmen-Shannon/oxy-demos/engine/light"
	"github.com/Carmen-Shannon/oxy-demos/engine/model"
	"github.com/Carmen-Shannon/oxy-demos/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-demos/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

var objectCount atomic.Uint64

type gameObject struct {
	mu *sync.Mutex

	id      uint64
	name    string
	visible atomic.Bool

	mdl           model.Model
	mat           material.Material
	attachedLight light.Light

	position      mgl32.Vec3
	rotation      mgl32.Vec3
	rotationSpeed mgl32.Vec3
	scale         mgl32.Vec3

	parent   *gameObject
	children []*gameObject

	objectProvider bind_group_provider.BindGroupProvider
}

// GameObject defines the interface for a node in the scene graph.
//
// A node carries a local transform (position, Euler rotation applied X then Y then Z, scale), an
// optional Model and Material to draw, optional children whose transforms are relative to it, and
// an optional attached Light that follows its world position. A node without a Model is a group.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the object's name.
	Name() string

	// Visible returns whether this object and its children are drawn.
	//
	// Returns:
	//   - bool: true if visible
	Visible() bool

	// SetVisible shows or hides the object and its subtree.
	SetVisible(visible bool)

	// Model returns the Model associated with this object, or nil for a group.
	//
	// Returns:
	//   - model.Model: the associated model or nil
	Model() model.Model

	// SetModel assigns a Model to this object.
	//
	// Parameters:
	//   - m: the Model to associate
	SetModel(m model.Model)

	// Material returns the Material used to draw the Model.
	//
	// Returns:
	//   - material.Material: the material or nil
	Material() material.Material

	// SetMaterial assigns the Material used to draw the Model.
	//
	// Parameters:
	//   - m: the Material to associate
	SetMaterial(m material.Material)

	// Position returns the local translation.
	Position() mgl32.Vec3

	// SetPosition sets the local translation.
	//
	// Parameters:
	//   - position: the new translation
	SetPosition(position mgl32.Vec3)

	// Rotation returns the local Euler rotation in radians.
	Rotation() mgl32.Vec3

	// SetRotation sets the local Euler rotation in radians.
	//
	// Parameters:
	//   - rotation: angles around X, Y and Z
	SetRotation(rotation mgl32.Vec3)

	// RotationSpeed returns the spin applied by Advance, in radians per second per axis.
	RotationSpeed() mgl32.Vec3

	// SetRotationSpeed sets the spin applied by Advance.
	//
	// Parameters:
	//   - speed: radians per second around X, Y and Z
	SetRotationSpeed(speed mgl32.Vec3)

	// Scale returns the local scale.
	Scale() mgl32.Vec3

	// SetScale sets the local scale.
	//
	// Parameters:
	//   - scale: scale factors per axis
	SetScale(scale mgl32.Vec3)

	// Advance adds RotationSpeed*dt to the rotation of this object and its subtree.
	//
	// Parameters:
	//   - dt: elapsed seconds since the previous call
	Advance(dt float32)

	// LocalMatrix returns T * Rx * Ry * Rz * S for the local transform.
	//
	// Returns:
	//   - mgl32.Mat4: the local transform
	LocalMatrix() mgl32.Mat4

	// WorldMatrix returns the product of every ancestor's local matrix with this one.
	//
	// Returns:
	//   - mgl32.Mat4: the model-to-world transform
	WorldMatrix() mgl32.Mat4

	// Parent returns the parent node, or nil for a root.
	Parent() GameObject

	// Children returns a snapshot of the direct children.
	Children() []GameObject

	// Add reparents each child under this object.
	//
	// Parameters:
	//   - children: nodes to attach; nil entries and this object itself are ignored
	Add(children ...GameObject)

	// Remove detaches a direct child.
	//
	// Parameters:
	//   - child: the node to detach
	//
	// Returns:
	//   - bool: true if child was attached to this object
	Remove(child GameObject) bool

	// Traverse visits this object and then every descendant depth-first. Returning false from
	// visit skips that node's subtree.
	//
	// Parameters:
	//   - visit: callback receiving each node
	Traverse(visit func(GameObject) bool)

	// Light returns the Light attached to this object, or nil if none is set.
	//
	// Returns:
	//   - light.Light: the attached light or nil
	Light() light.Light

	// SetLight attaches a Light to this object. The scene moves the light to the object's world
	// position every frame. Pass nil to detach.
	//
	// Parameters:
	//   - l: the Light to attach, or nil to detach
	SetLight(l light.Light)

	// ObjectProvider returns the bind group provider holding the per-object uniform.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the object provider
	ObjectProvider() bind_group_provider.BindGroupProvider

	// Dispose releases the GPU resources of this object's provider and its Model.
	Dispose()
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new visible GameObject with identity transform.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		mu:    &sync.Mutex{},
		id:    objectCount.Add(1),
		scale: mgl32.Vec3{1, 1, 1},
	}
	obj.visible.Store(true)
	for _, option := range options {
		option(obj)
	}
	if obj.name == "" {
		obj.name = "object_" + strconv.FormatUint(obj.id, 10)
	}
	if obj.objectProvider == nil {
		obj.objectProvider = bind_group_provider.NewBindGroupProvider(obj.name)
	}
	return obj
}

// NewMesh creates a drawable GameObject from a model and material.
//
// Parameters:
//   - m: the geometry
//   - mat: the material
//   - options: further functional options
//
// Returns:
//   - GameObject: the mesh node
func NewMesh(m model.Model, mat material.Material, options ...GameObjectBuilderOption) GameObject {
	return NewGameObject(append([]GameObjectBuilderOption{WithModel(m), WithMaterial(mat)}, options...)...)
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Visible() bool {
	return g.visible.Load()
}

func (g *gameObject) SetVisible(visible bool) {
	g.visible.Store(visible)
}

func (g *gameObject) Model() model.Model {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mdl
}

func (g *gameObject) SetModel(m model.Model) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mdl = m
}

func (g *gameObject) Material() material.Material {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mat
}

func (g *gameObject) SetMaterial(m material.Material) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mat = m
}

func (g *gameObject) Position() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.position
}

func (g *gameObject) SetPosition(position mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = position
}

func (g *gameObject) Rotation() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rotation
}

func (g *gameObject) SetRotation(rotation mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotation = rotation
}

func (g *gameObject) RotationSpeed() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rotationSpeed
}

func (g *gameObject) SetRotationSpeed(speed mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotationSpeed = speed
}

func (g *gameObject) Scale() mgl32.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scale
}

func (g *gameObject) SetScale(scale mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scale = scale
}

func (g *gameObject) Advance(dt float32) {
	g.Traverse(func(o GameObject) bool {
		n := o.(*gameObject)
		n.mu.Lock()
		n.rotation = n.rotation.Add(n.rotationSpeed.Mul(dt))
		n.mu.Unlock()
		return true
	})
}

func (g *gameObject) LocalMatrix() mgl32.Mat4 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return common.ComposeTransform(g.position, g.rotation, g.scale)
}

func (g *gameObject) WorldMatrix() mgl32.Mat4 {
	m := g.LocalMatrix()
	for p := g.parentNode(); p != nil; p = p.parentNode() {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

func (g *gameObject) parentNode() *gameObject {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.parent
}

func (g *gameObject) Parent() GameObject {
	if p := g.parentNode(); p != nil {
		return p
	}
	return nil
}

func (g *gameObject) Children() []GameObject {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]GameObject, len(g.children))
	for i, c := range g.children {
		out[i] = c
	}
	return out
}

func (g *gameObject) Add(children ...GameObject) {
	for _, c := range children {
		child, ok := c.(*gameObject)
		if !ok || child == nil || child == g {
			continue
		}
		if old := child.parentNode(); old != nil {
			old.Remove(child)
		}
		child.mu.Lock()
		child.parent = g
		child.mu.Unlock()

		g.mu.Lock()
		g.children = append(g.children, child)
		g.mu.Unlock()
	}
}

func (g *gameObject) Remove(c GameObject) bool {
	child, ok := c.(*gameObject)
	if !ok {
		return false
	}
	g.mu.Lock()
	idx := slices.Index(g.children, child)
	if idx >= 0 {
		g.children = slices.Delete(g.children, idx, idx+1)
	}
	g.mu.Unlock()
	if idx < 0 {
		return false
	}
	child.mu.Lock()
	child.parent = nil
	child.mu.Unlock()
	return true
}

func (g *gameObject) Traverse(visit func(GameObject) bool) {
	if !visit(g) {
		return
	}
	g.mu.Lock()
	children := slices.Clone(g.children)
	g.mu.Unlock()
	for _, c := range children {
		c.Traverse(visit)
	}
}

func (g *gameObject) Light() light.Light {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.attachedLight
}

func (g *gameObject) SetLight(l light.Light) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.attachedLight = l
}

func (g *gameObject) ObjectProvider() bind_group_provider.BindGroupProvider {
	return g.objectProvider
}

func (g *gameObject) Dispose() {
	g.objectProvider.Release()
	if m := g.Model(); m != nil {
		m.Dispose()
	}
}
