package shader

import (
	"fmt"
	"slices"

	"github.com/Carmen-Shannon/oxy-demos/engine/model"
	"github.com/cogentcore/webgpu/wgpu"
)

// shader is the implementation of the Shader interface.
type shader struct {
	key    string
	source string

	declarations               []Annotation
	bindGroupLayoutDescriptors []wgpu.BindGroupLayoutDescriptor
	vertexLayouts              []wgpu.VertexBufferLayout
	module                     *wgpu.ShaderModuleDescriptor
}

// Shader is one pre-processed WGSL module holding a vertex and a fragment entry point.
// Bind group layouts and vertex buffer layouts are derived from its annotations, so every
// pipeline created from the same Shader shares them.
type Shader interface {
	// Key returns the shader's label.
	Key() string

	// Source returns the pre-processed WGSL source.
	Source() string

	// Module returns the shader module descriptor for the source.
	Module() *wgpu.ShaderModuleDescriptor

	// Declarations returns the group and provider annotations in source order.
	Declarations() []Annotation

	// BindGroupLayoutDescriptor returns the layout of a bind group. Groups with no declarations
	// get an empty layout.
	//
	// Parameters:
	//   - group: the group index
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the layout descriptor
	BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor

	// BindGroupLayoutDescriptors returns every group layout indexed by group number.
	BindGroupLayoutDescriptors() []wgpu.BindGroupLayoutDescriptor

	// VertexLayouts returns one buffer layout per included vertex input struct, in slot order.
	VertexLayouts() []wgpu.VertexBufferLayout
}

var _ Shader = &shader{}

// NewShader pre-processes annotated WGSL and derives its layouts.
//
// Parameters:
//   - key: label used for the shader module and in errors
//   - source: annotated WGSL source
//
// Returns:
//   - Shader: the processed shader
//   - error: error if pre-processing fails or a slot is declared twice
func NewShader(key, source string) (Shader, error) {
	pp := NewPreProcessor()
	processed, err := pp.Process(source)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}

	s := &shader{
		key:          key,
		source:       processed,
		declarations: slices.Clone(pp.Declarations()),
		module: &wgpu.ShaderModuleDescriptor{
			Label:          key,
			WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: processed},
		},
	}
	if s.bindGroupLayoutDescriptors, err = buildBindGroupLayouts(key, s.declarations); err != nil {
		return nil, err
	}

	for _, inc := range pp.Includes() {
		switch inc {
		case annotationArgVertex:
			s.vertexLayouts = append(s.vertexLayouts, parseVertexLayout(model.GPUVertexSource, wgpu.VertexStepModeVertex))
		case annotationArgInstance:
			s.vertexLayouts = append(s.vertexLayouts, parseVertexLayout(model.GPUInstanceSource, wgpu.VertexStepModeInstance))
		}
	}
	return s, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}

func (s *shader) Declarations() []Annotation {
	return s.declarations
}

func (s *shader) BindGroupLayoutDescriptor(group int) wgpu.BindGroupLayoutDescriptor {
	if group < 0 || group >= len(s.bindGroupLayoutDescriptors) {
		return wgpu.BindGroupLayoutDescriptor{Label: fmt.Sprintf("%s group %d", s.key, group)}
	}
	return s.bindGroupLayoutDescriptors[group]
}

func (s *shader) BindGroupLayoutDescriptors() []wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}

// buildBindGroupLayouts turns declarations into one layout per group. Buffers are visible to both
// stages; textures and samplers only to the fragment stage.
func buildBindGroupLayouts(key string, decls []Annotation) ([]wgpu.BindGroupLayoutDescriptor, error) {
	maxGroup := -1
	for _, d := range decls {
		maxGroup = max(maxGroup, d.Group)
	}
	layouts := make([]wgpu.BindGroupLayoutDescriptor, maxGroup+1)
	for g := range layouts {
		layouts[g].Label = fmt.Sprintf("%s group %d", key, g)
	}

	for _, d := range decls {
		layout := &layouts[d.Group]
		for _, e := range layout.Entries {
			if int(e.Binding) == d.Binding {
				return nil, fmt.Errorf("shader %s: line %d: group %d binding %d declared twice", key, d.Line, d.Group, d.Binding)
			}
		}

		entry := wgpu.BindGroupLayoutEntry{Binding: uint32(d.Binding)}
		switch d.Type {
		case AnnotationTypeBindingGroup:
			entry.Visibility = wgpu.ShaderStageVertex | wgpu.ShaderStageFragment
			if d.Args[0] == annotationArgStorageTypeRead {
				entry.Buffer.Type = wgpu.BufferBindingTypeReadOnlyStorage
			} else {
				entry.Buffer.Type = wgpu.BufferBindingTypeUniform
			}
		case AnnotationTypeProvider:
			entry.Visibility = wgpu.ShaderStageFragment
			switch d.Args[1] {
			case AnnotationArgTexture:
				entry.Texture.SampleType = wgpu.TextureSampleTypeFloat
				entry.Texture.ViewDimension = wgpu.TextureViewDimension2D
			case AnnotationArgSampler:
				entry.Sampler.Type = wgpu.SamplerBindingTypeFiltering
			}
		}
		layout.Entries = append(layout.Entries, entry)
	}
	return layouts, nil
}
