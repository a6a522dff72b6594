package shader

import (
	"regexp"
	"strconv"

	"github.com/cogentcore/webgpu/wgpu"
)

// vertexFieldPattern matches one `@location(n) name: type` field of a vertex input struct.
var vertexFieldPattern = regexp.MustCompile(`@location\((\d+)\)\s*\w+\s*:\s*([\w<>]+)`)

type vertexFormatInfo struct {
	format wgpu.VertexFormat
	size   uint64
}

var wgslVertexFormatMap = map[string]vertexFormatInfo{
	"f32":       {wgpu.VertexFormatFloat32, 4},
	"vec2<f32>": {wgpu.VertexFormatFloat32x2, 8},
	"vec3<f32>": {wgpu.VertexFormatFloat32x3, 12},
	"vec4<f32>": {wgpu.VertexFormatFloat32x4, 16},
	"u32":       {wgpu.VertexFormatUint32, 4},
	"vec4<u32>": {wgpu.VertexFormatUint32x4, 16},
}

// parseVertexLayout builds a tightly packed buffer layout from a vertex input struct. Fields are
// laid out in declaration order, matching the Go-side Marshal of the same struct.
//
// Parameters:
//   - structSource: WGSL source of the input struct
//   - stepMode: per-vertex or per-instance stepping
//
// Returns:
//   - wgpu.VertexBufferLayout: the layout
func parseVertexLayout(structSource string, stepMode wgpu.VertexStepMode) wgpu.VertexBufferLayout {
	var attrs []wgpu.VertexAttribute
	var offset uint64
	for _, m := range vertexFieldPattern.FindAllStringSubmatch(structSource, -1) {
		info, ok := wgslVertexFormatMap[m[2]]
		if !ok {
			continue
		}
		loc, _ := strconv.Atoi(m[1])
		attrs = append(attrs, wgpu.VertexAttribute{
			Format:         info.format,
			Offset:         offset,
			ShaderLocation: uint32(loc),
		})
		offset += info.size
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: offset,
		StepMode:    stepMode,
		Attributes:  attrs,
	}
}
