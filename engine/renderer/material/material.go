package material

import (
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-demos/common"
	"github.com/Carmen-Shannon/oxy-demos/engine/renderer/bind_group_provider"
)

var materialCount atomic.Uint64

// material is the implementation of the Material interface.
type material struct {
	mu *sync.Mutex

	name         string
	kind         Kind
	color        common.Color
	texture      *common.TextureStagingData
	side         Side
	wireframe    bool
	transparent  bool
	opacity      float32
	vertexColors bool
	flatShading  bool
	metalness    float32
	roughness    float32
	shininess    float32
	pointSize    float32
	fog          bool

	version           uint64
	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Material defines the interface for a render material: a shading model plus the surface
// parameters it reads.
//
// Every setter bumps Version, which the renderer compares against the version it last uploaded to
// decide whether the material uniform must be rewritten. Parameters that change pipeline state
// (kind, side, wireframe, transparency) also change PipelineKey.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Kind retrieves the shading model.
	//
	// Returns:
	//   - Kind: the shading model
	Kind() Kind

	// Color retrieves the base color.
	//
	// Returns:
	//   - common.Color: the base color
	Color() common.Color

	// Texture retrieves the color map, or nil when the material is untextured.
	//
	// Returns:
	//   - *common.TextureStagingData: the color map, or nil
	Texture() *common.TextureStagingData

	Side() Side
	Wireframe() bool
	Transparent() bool
	Opacity() float32
	VertexColors() bool
	FlatShading() bool
	Metalness() float32
	Roughness() float32
	Shininess() float32
	PointSize() float32

	// Fog reports whether scene fog is applied to this material.
	Fog() bool

	// Version returns a counter incremented by every setter.
	//
	// Returns:
	//   - uint64: the parameter version
	Version() uint64

	// PipelineKey identifies the render pipeline state this material needs.
	//
	// Returns:
	//   - string: a key equal for materials that can share a pipeline
	PipelineKey() string

	// BindGroupProvider retrieves the bind group provider holding GPU-side resources for this material.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the bind group provider
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// SetKind changes the shading model.
	//
	// Parameters:
	//   - kind: the new shading model
	SetKind(kind Kind)

	// SetColor changes the base color.
	//
	// Parameters:
	//   - color: the new base color
	SetColor(color common.Color)

	// SetTexture replaces the color map. Pass nil to remove it.
	//
	// Parameters:
	//   - texture: the new color map
	SetTexture(texture *common.TextureStagingData)

	SetSide(side Side)
	SetWireframe(wireframe bool)
	SetTransparent(transparent bool)
	SetOpacity(opacity float32)
	SetVertexColors(vertexColors bool)
	SetFlatShading(flatShading bool)
	SetMetalness(metalness float32)
	SetRoughness(roughness float32)
	SetShininess(shininess float32)
	SetPointSize(size float32)
	SetFog(fog bool)

	// SetBindGroupProvider sets the bind group provider for this material.
	//
	// Parameters:
	//   - provider: the bind group provider containing GPU resources for this material
	SetBindGroupProvider(provider bind_group_provider.BindGroupProvider)
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
// Defaults match a white, opaque, front-sided basic material with fog enabled.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		mu:        &sync.Mutex{},
		kind:      KindBasic,
		color:     common.White,
		opacity:   1,
		roughness: 1,
		shininess: 30,
		pointSize: 0.1,
		fog:       true,
	}
	for _, opt := range options {
		opt(m)
	}
	if m.name == "" {
		m.name = "material_" + strconv.FormatUint(materialCount.Add(1), 10)
	}
	if m.bindGroupProvider == nil {
		m.bindGroupProvider = bind_group_provider.NewBindGroupProvider(m.name)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Kind() Kind {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.kind
}

func (m *material) Color() common.Color {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.color
}

func (m *material) Texture() *common.TextureStagingData {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.texture
}

func (m *material) Side() Side {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.side
}

func (m *material) Wireframe() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.wireframe
}

func (m *material) Transparent() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.transparent
}

func (m *material) Opacity() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opacity
}

func (m *material) VertexColors() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.vertexColors
}

func (m *material) FlatShading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flatShading
}

func (m *material) Metalness() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.metalness
}

func (m *material) Roughness() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.roughness
}

func (m *material) Shininess() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shininess
}

func (m *material) PointSize() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pointSize
}

func (m *material) Fog() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fog
}

func (m *material) Version() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.version
}

func (m *material) PipelineKey() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var sb strings.Builder
	sb.WriteString(m.kind.String())
	sb.WriteByte('/')
	sb.WriteString(m.side.String())
	if m.wireframe {
		sb.WriteString("/wire")
	}
	if m.transparent {
		sb.WriteString("/blend")
	}
	return sb.String()
}

func (m *material) BindGroupProvider() bind_group_provider.BindGroupProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bindGroupProvider
}

// set applies fn under the lock and bumps the version.
func (m *material) set(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn()
	m.version++
}

func (m *material) SetKind(kind Kind) { m.set(func() { m.kind = kind }) }

func (m *material) SetColor(color common.Color) { m.set(func() { m.color = color }) }

func (m *material) SetTexture(texture *common.TextureStagingData) {
	m.set(func() { m.texture = texture })
}

func (m *material) SetSide(side Side) { m.set(func() { m.side = side }) }

func (m *material) SetWireframe(wireframe bool) { m.set(func() { m.wireframe = wireframe }) }

func (m *material) SetTransparent(transparent bool) {
	m.set(func() { m.transparent = transparent })
}

func (m *material) SetOpacity(opacity float32) {
	m.set(func() { m.opacity = common.Clamp(opacity, 0, 1) })
}

func (m *material) SetVertexColors(vertexColors bool) {
	m.set(func() { m.vertexColors = vertexColors })
}

func (m *material) SetFlatShading(flatShading bool) {
	m.set(func() { m.flatShading = flatShading })
}

func (m *material) SetMetalness(metalness float32) {
	m.set(func() { m.metalness = common.Clamp(metalness, 0, 1) })
}

func (m *material) SetRoughness(roughness float32) {
	m.set(func() { m.roughness = common.Clamp(roughness, 0, 1) })
}

func (m *material) SetShininess(shininess float32) {
	m.set(func() { m.shininess = max(shininess, 0) })
}

func (m *material) SetPointSize(size float32) { m.set(func() { m.pointSize = max(size, 0) }) }

func (m *material) SetFog(fog bool) { m.set(func() { m.fog = fog }) }

func (m *material) SetBindGroupProvider(provider bind_group_provider.BindGroupProvider) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bindGroupProvider = provider
}
