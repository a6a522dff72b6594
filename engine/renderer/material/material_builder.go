package material

import (
	"github.com/Carmen-Shannon/oxy-demos/common"
	"github.com/Carmen-Shannon/oxy-demos/engine/renderer/bind_group_provider"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithKind is an option builder that sets the shading model.
//
// Parameters:
//   - kind: the shading model
//
// Returns:
//   - MaterialBuilderOption: a function that applies the kind option to a material
func WithKind(kind Kind) MaterialBuilderOption {
	return func(m *material) {
		m.kind = kind
	}
}

// WithColor is an option builder that sets the base color.
//
// Parameters:
//   - color: the base color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the color option to a material
func WithColor(color common.Color) MaterialBuilderOption {
	return func(m *material) {
		m.color = color
	}
}

// WithTexture is an option builder that sets the color map.
//
// Parameters:
//   - texture: RGBA pixels to sample as the color map
//
// Returns:
//   - MaterialBuilderOption: a function that applies the texture option to a material
func WithTexture(texture *common.TextureStagingData) MaterialBuilderOption {
	return func(m *material) {
		m.texture = texture
	}
}

// WithSide is an option builder that selects which faces are drawn.
func WithSide(side Side) MaterialBuilderOption {
	return func(m *material) {
		m.side = side
	}
}

// WithWireframe is an option builder that draws triangle edges only.
func WithWireframe(wireframe bool) MaterialBuilderOption {
	return func(m *material) {
		m.wireframe = wireframe
	}
}

// WithOpacity is an option builder that enables alpha blending with the given opacity.
//
// Parameters:
//   - opacity: surface opacity in [0, 1]
//
// Returns:
//   - MaterialBuilderOption: a function that applies the transparency option to a material
func WithOpacity(opacity float32) MaterialBuilderOption {
	return func(m *material) {
		m.transparent = true
		m.opacity = common.Clamp(opacity, 0, 1)
	}
}

// WithVertexColors is an option builder that multiplies the base color by per-vertex colors.
func WithVertexColors(vertexColors bool) MaterialBuilderOption {
	return func(m *material) {
		m.vertexColors = vertexColors
	}
}

// WithFlatShading is an option builder that shades with per-face normals.
func WithFlatShading(flatShading bool) MaterialBuilderOption {
	return func(m *material) {
		m.flatShading = flatShading
	}
}

// WithMetalnessRoughness is an option builder for the standard shading model parameters.
//
// Parameters:
//   - metalness: 0 for dielectric, 1 for metal
//   - roughness: 0 for mirror-smooth, 1 for fully rough
//
// Returns:
//   - MaterialBuilderOption: a function that applies the option to a material
func WithMetalnessRoughness(metalness, roughness float32) MaterialBuilderOption {
	return func(m *material) {
		m.metalness = common.Clamp(metalness, 0, 1)
		m.roughness = common.Clamp(roughness, 0, 1)
	}
}

// WithShininess is an option builder that sets the phong specular exponent.
func WithShininess(shininess float32) MaterialBuilderOption {
	return func(m *material) {
		m.shininess = shininess
	}
}

// WithPointSize is an option builder that sets the billboard edge length for KindPoints.
func WithPointSize(size float32) MaterialBuilderOption {
	return func(m *material) {
		m.pointSize = size
	}
}

// WithFog is an option builder that toggles scene fog for the material.
func WithFog(fog bool) MaterialBuilderOption {
	return func(m *material) {
		m.fog = fog
	}
}

// WithBindGroupProvider is an option builder that supplies the GPU resource holder.
//
// Parameters:
//   - provider: the bind group provider
//
// Returns:
//   - MaterialBuilderOption: a function that applies the provider option to a material
func WithBindGroupProvider(provider bind_group_provider.BindGroupProvider) MaterialBuilderOption {
	return func(m *material) {
		m.bindGroupProvider = provider
	}
}
