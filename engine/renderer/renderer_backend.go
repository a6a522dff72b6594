package renderer

import (
	"github.com/Carmen-Shannon/oxy-demos/common"
	"github.com/Carmen-Shannon/oxy-demos/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-demos/engine/renderer/pipeline"
)

// RendererBackendType identifies the backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota

	// BackendTypeHeadless records draws without touching a GPU. It backs tests and CI runs.
	BackendTypeHeadless
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// RendererBackend is the GPU-facing half of the Renderer. The Renderer decides what to draw and
// in which order; the backend owns devices, buffers and passes.
//
// Resources are stored on the BindGroupProvider handed in, so a backend keeps no per-object maps.
type RendererBackend interface {
	// ConfigureSurface (re)creates the swapchain and the depth and MSAA targets.
	// Must be called whenever the drawing buffer size changes.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: error if the targets cannot be created
	ConfigureSurface(width, height int) error

	// SetPresentMode sets how frames are delivered. Takes effect on the next ConfigureSurface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// RegisterPipeline creates the GPU pipeline for a description and stores it on the
	// description.
	//
	// Parameters:
	//   - p: the pipeline description
	//
	// Returns:
	//   - error: error if shader compilation or pipeline creation fails
	RegisterPipeline(p pipeline.Pipeline) error

	// UploadGeometry replaces a mesh's vertex and index buffers.
	//
	// Parameters:
	//   - mesh: the model's mesh provider
	//   - vertexData: packed vertex or instance records
	//   - vertexCount: vertices per draw (6 for instanced quads)
	//   - indices: index list, or nil for non-indexed draws
	//   - version: stamp stored on the provider so unchanged geometry is not uploaded again
	//
	// Returns:
	//   - error: error if buffer creation fails
	UploadGeometry(mesh bind_group_provider.BindGroupProvider, vertexData []byte, vertexCount int, indices []uint32, version uint64) error

	// WriteGeometry overwrites the existing vertex buffer in place. The data must have the
	// size of the last upload.
	//
	// Parameters:
	//   - mesh: the model's mesh provider
	//   - vertexData: packed vertex or instance records
	WriteGeometry(mesh bind_group_provider.BindGroupProvider, vertexData []byte)

	// WriteBindGroup writes a provider's buffers for one bind group of a pipeline, creating the
	// buffers, texture, sampler and bind group on first use.
	//
	// Parameters:
	//   - p: the pipeline whose layout the group follows
	//   - group: the bind group index
	//   - provider: the provider owning the resources
	//   - buffers: uniform contents keyed by binding
	//   - texture: pixels for a texture binding, or nil for white
	//   - sampler: sampler for a sampler binding, or nil for repeat/linear
	//
	// Returns:
	//   - error: error if resource creation fails
	WriteBindGroup(p pipeline.Pipeline, group int, provider bind_group_provider.BindGroupProvider, buffers map[int][]byte, texture *common.TextureStagingData, sampler *common.SamplerStagingData) error

	// BeginFrame acquires the next surface texture and opens the frame's render pass.
	//
	// Parameters:
	//   - clear: the background color
	//
	// Returns:
	//   - error: error if the previous frame was not presented or the surface is lost
	BeginFrame(clear common.Color) error

	// DrawCall records one draw into the open pass.
	//
	// Parameters:
	//   - p: a registered pipeline
	//   - mesh: the mesh provider holding geometry
	//   - instanceCount: number of instances
	//   - bindGroups: providers bound to groups 0..n in order
	DrawCall(p pipeline.Pipeline, mesh bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider)

	// EndFrame closes the pass and submits the frame's commands.
	EndFrame() error

	// Present shows the frame's surface texture.
	Present()

	// Release frees the device and every frame target.
	Release()
}
