package renderer

import (
	"errors"
	"sync"

	"github.com/Carmen-Shannon/oxy-demos/common"
	"github.com/Carmen-Shannon/oxy-demos/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-demos/engine/renderer/pipeline"
)

// DrawRecord describes one draw recorded by the HeadlessBackend.
type DrawRecord struct {
	Pipeline      string
	Mesh          string
	VertexCount   int
	IndexCount    int
	InstanceCount uint32
	// Groups lists the labels of the bound providers in group order.
	Groups []string
}

// HeadlessBackend is a RendererBackend with no GPU. It keeps geometry counts on the providers
// the same way the GPU backend does, and records every call so tests can assert on what a frame
// would have drawn.
type HeadlessBackend struct {
	mu sync.Mutex

	width, height int
	presentMode   PresentMode

	pipelines     map[string]int
	uploads       int
	geometryWrite int
	groupWrites   map[string]int

	inFrame   bool
	frames    int
	clear     common.Color
	draws     []DrawRecord
	lastDraws []DrawRecord
}

var _ RendererBackend = &HeadlessBackend{}

// NewHeadlessBackend creates an empty recording backend.
func NewHeadlessBackend() *HeadlessBackend {
	return &HeadlessBackend{
		pipelines:   make(map[string]int),
		groupWrites: make(map[string]int),
	}
}

func (h *HeadlessBackend) ConfigureSurface(width, height int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if width <= 0 || height <= 0 {
		return errors.New("surface size must be positive")
	}
	h.width, h.height = width, height
	return nil
}

func (h *HeadlessBackend) SetPresentMode(mode PresentMode) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.presentMode = mode
}

func (h *HeadlessBackend) RegisterPipeline(p pipeline.Pipeline) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pipelines[p.PipelineKey()]++
	return nil
}

func (h *HeadlessBackend) UploadGeometry(mesh bind_group_provider.BindGroupProvider, _ []byte, vertexCount int, indices []uint32, version uint64) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	mesh.ReleaseGeometry()
	mesh.SetGeometry(nil, vertexCount, nil, len(indices), version)
	h.uploads++
	return nil
}

func (h *HeadlessBackend) WriteGeometry(bind_group_provider.BindGroupProvider, []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.geometryWrite++
}

func (h *HeadlessBackend) WriteBindGroup(_ pipeline.Pipeline, _ int, provider bind_group_provider.BindGroupProvider, _ map[int][]byte, _ *common.TextureStagingData, _ *common.SamplerStagingData) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.groupWrites[provider.Label()]++
	return nil
}

func (h *HeadlessBackend) BeginFrame(clear common.Color) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.width == 0 {
		return errors.New("surface not configured")
	}
	if h.inFrame {
		return errors.New("previous frame surface not yet presented")
	}
	h.inFrame = true
	h.clear = clear
	h.draws = h.draws[:0]
	return nil
}

func (h *HeadlessBackend) DrawCall(p pipeline.Pipeline, mesh bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.inFrame {
		return
	}
	groups := make([]string, len(bindGroups))
	for i, bg := range bindGroups {
		groups[i] = bg.Label()
	}
	h.draws = append(h.draws, DrawRecord{
		Pipeline:      p.PipelineKey(),
		Mesh:          mesh.Label(),
		VertexCount:   mesh.VertexCount(),
		IndexCount:    mesh.IndexCount(),
		InstanceCount: instanceCount,
		Groups:        groups,
	})
}

func (h *HeadlessBackend) EndFrame() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.inFrame {
		return errors.New("no frame in progress")
	}
	h.lastDraws = append(h.lastDraws[:0], h.draws...)
	h.frames++
	return nil
}

func (h *HeadlessBackend) Present() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.inFrame = false
}

func (h *HeadlessBackend) Release() {}

// SurfaceSize returns the last configured surface size.
func (h *HeadlessBackend) SurfaceSize() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.width, h.height
}

// Frames returns the number of submitted frames.
func (h *HeadlessBackend) Frames() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frames
}

// Draws returns a copy of the draws of the last submitted frame.
func (h *HeadlessBackend) Draws() []DrawRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]DrawRecord(nil), h.lastDraws...)
}

// ClearColor returns the clear color of the last frame.
func (h *HeadlessBackend) ClearColor() common.Color {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.clear
}

// Uploads returns how many full geometry uploads happened.
func (h *HeadlessBackend) Uploads() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.uploads
}

// GeometryWrites returns how many in-place vertex buffer writes happened.
func (h *HeadlessBackend) GeometryWrites() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.geometryWrite
}

// PipelineRegistrations returns how many times a pipeline key was registered.
func (h *HeadlessBackend) PipelineRegistrations(key string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pipelines[key]
}

// GroupWrites returns how many times a provider's bind group was written.
func (h *HeadlessBackend) GroupWrites(label string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.groupWrites[label]
}
