package model

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-demos/engine/renderer/bind_group_provider"
	"github.com/go-gl/mathgl/mgl32"
)

// model is the implementation of the Model interface.
type model struct {
	name     string
	topology Topology

	buffers atomic.Pointer[Buffers]
	version atomic.Uint64
	dirty   atomic.Uint32

	meshProvider bind_group_provider.BindGroupProvider
}

// Model defines the interface for a piece of renderable geometry.
// The geometry lives in a Buffers snapshot that is published atomically: Swap replaces the whole
// snapshot and bumps the version, so a renderer that reads Buffers once per frame never observes a
// half-written mesh. In-place edits of the current snapshot are allowed on the render thread and
// are announced through the Mark*Dirty methods.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Topology reports how the vertex stream is assembled.
	//
	// Returns:
	//   - Topology: the primitive topology
	Topology() Topology

	// Buffers returns the current geometry snapshot.
	//
	// Returns:
	//   - *Buffers: the snapshot; never nil after NewModel
	Buffers() *Buffers

	// Swap publishes a new snapshot and increments the version. The previous snapshot is left
	// untouched so readers holding it stay valid.
	//
	// Parameters:
	//   - b: the new snapshot
	Swap(b *Buffers)

	// Version returns a counter incremented by every Swap.
	//
	// Returns:
	//   - uint64: the geometry version
	Version() uint64

	// MarkDirty records that attributes of the current snapshot were edited in place.
	//
	// Parameters:
	//   - flags: the edited attributes
	MarkDirty(flags DirtyFlags)

	// TakeDirty returns and clears the pending dirty flags.
	//
	// Returns:
	//   - DirtyFlags: the attributes edited since the previous call
	TakeDirty() DirtyFlags

	// BoundingSphere returns the local-space sphere enclosing the current snapshot.
	//
	// Returns:
	//   - mgl32.Vec3: sphere center
	//   - float32: sphere radius
	BoundingSphere() (mgl32.Vec3, float32)

	// MeshProvider retrieves the BindGroupProvider holding the GPU vertex and index buffers.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	MeshProvider() bind_group_provider.BindGroupProvider

	// Dispose releases the GPU buffers. The CPU snapshot is kept.
	Dispose()
}

var _ Model = &model{}

// NewModel creates a Model from a geometry snapshot.
//
// Parameters:
//   - b: the initial geometry
//   - options: functional options to configure the model
//
// Returns:
//   - Model: the newly created model
func NewModel(b *Buffers, options ...ModelBuilderOption) Model {
	m := &model{topology: TopologyTriangles}
	for _, option := range options {
		option(m)
	}
	if b == nil {
		b = &Buffers{}
	}
	m.buffers.Store(b)
	if m.meshProvider == nil {
		m.meshProvider = bind_group_provider.NewBindGroupProvider("mesh_" + m.name)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Topology() Topology {
	return m.topology
}

func (m *model) Buffers() *Buffers {
	return m.buffers.Load()
}

func (m *model) Swap(b *Buffers) {
	if b == nil {
		return
	}
	m.buffers.Store(b)
	m.version.Add(1)
}

func (m *model) Version() uint64 {
	return m.version.Load()
}

func (m *model) MarkDirty(flags DirtyFlags) {
	for {
		old := m.dirty.Load()
		if m.dirty.CompareAndSwap(old, old|uint32(flags)) {
			return
		}
	}
}

func (m *model) TakeDirty() DirtyFlags {
	return DirtyFlags(m.dirty.Swap(0))
}

func (m *model) BoundingSphere() (mgl32.Vec3, float32) {
	return m.buffers.Load().BoundingSphere()
}

func (m *model) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}

func (m *model) Dispose() {
	if m.meshProvider != nil {
		m.meshProvider.ReleaseGeometry()
	}
}
