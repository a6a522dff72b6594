// annotations.go defines the annotation types, argument constants and parser for the WGSL
// pre-processor. Annotations are single-line WGSL comments prefixed with @oxy: that inject GPU
// struct definitions and declare bind group entries. The parsed declarations drive the bind group
// layouts a pipeline is created with, so shaders and Go-side uniforms cannot drift apart.
package shader

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// annotationPrefix marks an annotation inside a WGSL comment line.
const annotationPrefix = "@oxy:"

// AnnotationType identifies the kind of annotation parsed from a WGSL comment line.
type AnnotationType string

const (
	// annotationTypeInclude injects the WGSL source of a registered struct at the annotation site.
	//
	// Syntax: //@oxy:include <struct_type>
	annotationTypeInclude AnnotationType = "include"

	// AnnotationTypeBindingGroup generates a @group/@binding variable declaration for a registered
	// struct and records it as a buffer entry of the group's layout.
	//
	// Syntax: //@oxy:group <group> <binding> <address_space> <var_name> <struct_type>
	AnnotationTypeBindingGroup AnnotationType = "group"

	// AnnotationTypeProvider records a texture or sampler entry without generating WGSL. The
	// declaration itself stays hand-written on the next line.
	//
	// Syntax: //@oxy:provider <group> <binding> <provider_identity> <binding_role>
	AnnotationTypeProvider AnnotationType = "provider"
)

// Annotation is one parsed @oxy: annotation.
type Annotation struct {
	// Type identifies which annotation was parsed.
	Type AnnotationType

	// Args holds the annotation's arguments:
	//   - include:  [0] = struct type
	//   - group:    [0] = address space, [1] = var name, [2] = struct type
	//   - provider: [0] = provider identity, [1] = binding role
	Args []AnnotationArg

	// Line is the 1-based source line, for error reporting.
	Line int

	// Group and Binding are set for group and provider annotations.
	Group   int
	Binding int
}

// AnnotationArg is a typed annotation argument.
type AnnotationArg string

// Struct type arguments. Each maps to a Go GPU type with an embedded .wgsl asset.
const (
	AnnotationArgCamera         AnnotationArg = "camera"
	AnnotationArgLights         AnnotationArg = "lights"
	AnnotationArgFog            AnnotationArg = "fog"
	AnnotationArgObject         AnnotationArg = "object"
	AnnotationArgMaterialParams AnnotationArg = "material_params"
	annotationArgVertex         AnnotationArg = "vertex"
	annotationArgInstance       AnnotationArg = "instance"
)

// Address space arguments.
const (
	annotationArgStorageTypeUniform AnnotationArg = "uniform"
	annotationArgStorageTypeRead    AnnotationArg = "storage_read"
)

// Provider identities and binding roles.
const (
	AnnotationArgMaterial AnnotationArg = "material"

	AnnotationArgTexture AnnotationArg = "texture"
	AnnotationArgSampler AnnotationArg = "sampler"
)

var validStructTypes = []AnnotationArg{
	AnnotationArgCamera,
	AnnotationArgLights,
	AnnotationArgFog,
	AnnotationArgObject,
	AnnotationArgMaterialParams,
	annotationArgVertex,
	annotationArgInstance,
}

var validAddressSpaces = []AnnotationArg{
	annotationArgStorageTypeUniform,
	annotationArgStorageTypeRead,
}

var validProviderIdentities = []AnnotationArg{
	AnnotationArgMaterial,
}

var validBindingRoles = []AnnotationArg{
	AnnotationArgTexture,
	AnnotationArgSampler,
}

// parseAnnotation parses one line of WGSL source. Lines without the prefix return nil, nil.
//
// Parameters:
//   - line: the raw WGSL source line
//   - lineNum: the 1-based line number for error reporting
//
// Returns:
//   - *Annotation: the parsed annotation, or nil if the line is not an annotation
//   - error: a descriptive error if the annotation is malformed
func parseAnnotation(line string, lineNum int) (*Annotation, error) {
	_, after, ok := strings.Cut(strings.TrimSpace(line), annotationPrefix)
	if !ok {
		return nil, nil
	}

	args := strings.Fields(after)
	if len(args) == 0 {
		return nil, fmt.Errorf("line %d: empty @oxy annotation", lineNum)
	}

	switch AnnotationType(args[0]) {
	case annotationTypeInclude:
		if len(args) != 2 {
			return nil, fmt.Errorf("line %d: @oxy include annotation requires exactly one argument", lineNum)
		}
		if !slices.Contains(validStructTypes, AnnotationArg(args[1])) {
			return nil, fmt.Errorf("line %d: unknown struct type %q in @oxy include annotation", lineNum, args[1])
		}
		return &Annotation{Type: annotationTypeInclude, Args: []AnnotationArg{AnnotationArg(args[1])}, Line: lineNum}, nil

	case AnnotationTypeBindingGroup:
		if len(args) != 6 {
			return nil, fmt.Errorf("line %d: @oxy group annotation requires group, binding, address space, name and struct type", lineNum)
		}
		group, binding, err := parseSlot(args[1], args[2], lineNum)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(validAddressSpaces, AnnotationArg(args[3])) {
			return nil, fmt.Errorf("line %d: unknown address space %q in @oxy group annotation", lineNum, args[3])
		}
		if !slices.Contains(validStructTypes, AnnotationArg(args[5])) {
			return nil, fmt.Errorf("line %d: unknown struct type %q in @oxy group annotation", lineNum, args[5])
		}
		return &Annotation{
			Type:    AnnotationTypeBindingGroup,
			Args:    []AnnotationArg{AnnotationArg(args[3]), AnnotationArg(args[4]), AnnotationArg(args[5])},
			Line:    lineNum,
			Group:   group,
			Binding: binding,
		}, nil

	case AnnotationTypeProvider:
		if len(args) != 5 {
			return nil, fmt.Errorf("line %d: @oxy provider annotation requires group, binding, provider identity and binding role", lineNum)
		}
		group, binding, err := parseSlot(args[1], args[2], lineNum)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(validProviderIdentities, AnnotationArg(args[3])) {
			return nil, fmt.Errorf("line %d: unknown provider identity %q in @oxy provider annotation", lineNum, args[3])
		}
		if !slices.Contains(validBindingRoles, AnnotationArg(args[4])) {
			return nil, fmt.Errorf("line %d: unknown binding role %q in @oxy provider annotation", lineNum, args[4])
		}
		return &Annotation{
			Type:    AnnotationTypeProvider,
			Args:    []AnnotationArg{AnnotationArg(args[3]), AnnotationArg(args[4])},
			Line:    lineNum,
			Group:   group,
			Binding: binding,
		}, nil

	default:
		return nil, fmt.Errorf("line %d: unknown @oxy annotation type %q", lineNum, args[0])
	}
}

func parseSlot(group, binding string, lineNum int) (int, int, error) {
	g, err := strconv.Atoi(group)
	if err != nil || g < 0 {
		return 0, 0, fmt.Errorf("line %d: invalid group number %q", lineNum, group)
	}
	b, err := strconv.Atoi(binding)
	if err != nil || b < 0 {
		return 0, 0, fmt.Errorf("line %d: invalid binding number %q", lineNum, binding)
	}
	return g, b, nil
}
