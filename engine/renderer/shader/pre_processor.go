// pre_processor.go implements the WGSL pre-processor. It replaces @oxy: annotations with injected
// struct sources or generated binding declarations and collects the declarations list that the
// Shader turns into bind group layouts.
package shader

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-demos/engine/camera"
	"github.com/Carmen-Shannon/oxy-demos/engine/game_object"
	"github.com/Carmen-Shannon/oxy-demos/engine/light"
	"github.com/Carmen-Shannon/oxy-demos/engine/model"
	"github.com/Carmen-Shannon/oxy-demos/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-demos/engine/scene"
)

// registryEntry pairs an embedded WGSL struct source with the type name used in generated
// declarations.
type registryEntry struct {
	Source string
	Type   string
}

type preProcessor struct {
	structRegistry       map[AnnotationArg]registryEntry
	addressSpaceRegistry map[AnnotationArg]string

	// declarations is reset at the start of each Process call.
	declarations []Annotation
	// includes records struct types injected by the last Process call, in source order.
	includes []AnnotationArg
}

// PreProcessor rewrites annotated WGSL into plain WGSL.
type PreProcessor interface {
	// Process replaces every annotation in source. Include annotations become the embedded
	// struct source; group annotations become @group/@binding declarations; provider annotations
	// produce no output.
	//
	// Parameters:
	//   - source: annotated WGSL
	//
	// Returns:
	//   - string: plain WGSL
	//   - error: error if an annotation is malformed or a struct is included twice
	Process(source string) (string, error)

	// Declarations returns the group and provider annotations of the last Process call in
	// source order.
	//
	// Returns:
	//   - []Annotation: the collected declarations
	Declarations() []Annotation

	// Includes returns the struct types injected by the last Process call in source order.
	Includes() []AnnotationArg
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a PreProcessor with every engine GPU struct registered.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor
func NewPreProcessor() PreProcessor {
	return &preProcessor{
		structRegistry: map[AnnotationArg]registryEntry{
			AnnotationArgCamera:         {Source: camera.GPUCameraUniformSource, Type: "CameraUniform"},
			AnnotationArgLights:         {Source: light.GPULightSource, Type: "LightBuffer"},
			AnnotationArgFog:            {Source: scene.GPUFogUniformSource, Type: "FogUniform"},
			AnnotationArgObject:         {Source: game_object.GPUObjectUniformSource, Type: "ObjectUniform"},
			AnnotationArgMaterialParams: {Source: material.GPUMaterialParamsSource, Type: "MaterialParams"},
			annotationArgVertex:         {Source: model.GPUVertexSource, Type: "VertexInput"},
			annotationArgInstance:       {Source: model.GPUInstanceSource, Type: "InstanceInput"},
		},
		addressSpaceRegistry: map[AnnotationArg]string{
			annotationArgStorageTypeUniform: "var<uniform>",
			annotationArgStorageTypeRead:    "var<storage, read>",
		},
	}
}

func (p *preProcessor) Process(source string) (string, error) {
	p.declarations = p.declarations[:0]
	p.includes = p.includes[:0]

	lines := strings.Split(source, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		a, err := parseAnnotation(line, i+1)
		if err != nil {
			return "", err
		}
		if a == nil {
			out = append(out, line)
			continue
		}

		switch a.Type {
		case annotationTypeInclude:
			for _, inc := range p.includes {
				if inc == a.Args[0] {
					return "", fmt.Errorf("line %d: struct %q included twice", a.Line, a.Args[0])
				}
			}
			p.includes = append(p.includes, a.Args[0])
			out = append(out, p.structRegistry[a.Args[0]].Source)
		case AnnotationTypeBindingGroup:
			entry := p.structRegistry[a.Args[2]]
			out = append(out, fmt.Sprintf("@group(%d) @binding(%d) %s %s: %s;",
				a.Group, a.Binding, p.addressSpaceRegistry[a.Args[0]], a.Args[1], entry.Type))
			p.declarations = append(p.declarations, *a)
		case AnnotationTypeProvider:
			p.declarations = append(p.declarations, *a)
		}
	}
	return strings.Join(out, "\n"), nil
}

func (p *preProcessor) Declarations() []Annotation {
	return p.declarations
}

func (p *preProcessor) Includes() []AnnotationArg {
	return p.includes
}
