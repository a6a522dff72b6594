package renderer

import (
	"cmp"
	_ "embed"
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-demos/common"
	"github.com/Carmen-Shannon/oxy-demos/engine/camera"
	"github.com/Carmen-Shannon/oxy-demos/engine/game_object"
	"github.com/Carmen-Shannon/oxy-demos/engine/light"
	"github.com/Carmen-Shannon/oxy-demos/engine/logging"
	"github.com/Carmen-Shannon/oxy-demos/engine/model"
	"github.com/Carmen-Shannon/oxy-demos/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-demos/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-demos/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-demos/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-demos/engine/scene"
	"github.com/Carmen-Shannon/oxy-demos/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// meshShaderSource draws triangle and line geometry with every material kind.
//
//go:embed assets/mesh.wgsl
var meshShaderSource string

// pointsShaderSource draws camera-facing instanced quads.
//
//go:embed assets/points.wgsl
var pointsShaderSource string

// Bind group indices shared by every scene shader.
const (
	groupCamera = iota
	groupScene
	groupObject
	groupMaterial
)

// Stats summarizes the last rendered frame.
type Stats struct {
	Frames    int
	DrawCalls int
	Triangles int
	Culled    int
	Pipelines int
}

type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend
	logger      *zap.Logger

	meshShader   shader.Shader
	pointsShader shader.Shader

	pipelineCache map[string]pipeline.Pipeline

	// materialTextures remembers which texture each material's bind group was built with.
	materialTextures map[material.Material]*common.TextureStagingData

	width, height int
	pixelRatio    float32

	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount

	stats Stats
	draws []drawItem
}

// drawItem is one visible mesh collected for the current frame.
type drawItem struct {
	obj      game_object.GameObject
	mdl      model.Model
	mat      material.Material
	world    mgl32.Mat4
	distance float32
}

// Renderer draws a Scene from a Camera, the way a three.js WebGLRenderer does: it owns the
// drawing buffer size and pixel ratio, uploads whatever geometry and uniforms changed, culls
// against the view frustum and issues one draw per visible mesh.
type Renderer interface {
	// Backend returns the backend the renderer drives.
	Backend() RendererBackend

	// Size returns the drawing size in logical pixels, as passed to SetSize.
	Size() (int, int)

	// DrawingBufferSize returns the surface size in device pixels: Size scaled by PixelRatio.
	DrawingBufferSize() (int, int)

	// SetSize sets the logical drawing size and reconfigures the surface.
	//
	// Parameters:
	//   - width: logical width in pixels
	//   - height: logical height in pixels
	//
	// Returns:
	//   - error: error if the surface cannot be configured
	SetSize(width, height int) error

	// PixelRatio returns the device pixel ratio applied to the drawing buffer.
	PixelRatio() float32

	// SetPixelRatio sets the device pixel ratio and reconfigures the surface if a size is set.
	//
	// Parameters:
	//   - ratio: device pixels per logical pixel; values <= 0 are treated as 1
	//
	// Returns:
	//   - error: error if the surface cannot be configured
	SetPixelRatio(ratio float32) error

	// Render draws one frame of the scene from the camera.
	//
	// Parameters:
	//   - s: the scene to draw
	//   - cam: the viewpoint
	//
	// Returns:
	//   - error: error if the frame could not be started or submitted; draw errors of individual
	//     meshes are joined and the rest of the frame is still drawn
	Render(s scene.Scene, cam camera.Camera) error

	// Stats returns counters for the last rendered frame.
	Stats() Stats

	// Release frees pipelines and the backend.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a renderer for a window. The surface is configured at the window's size.
//
// Parameters:
//   - backendType: the backend to create
//   - win: the window providing the surface and initial size
//   - opts: builder options
//
// Returns:
//   - Renderer: the renderer
//   - error: error if the backend or the built-in shaders cannot be created
func NewRenderer(backendType RendererBackendType, win window.Window, opts ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:               &sync.Mutex{},
		backendType:      backendType,
		logger:           zap.NewNop(),
		pipelineCache:    make(map[string]pipeline.Pipeline),
		materialTextures: make(map[material.Material]*common.TextureStagingData),
		pixelRatio:       1,
		presentMode:      PresentModeVSync,
		msaa:             MSAA4x,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.OrNop(r.logger).Named("renderer")

	var err error
	if r.meshShader, err = shader.NewShader("mesh", meshShaderSource); err != nil {
		return nil, err
	}
	if r.pointsShader, err = shader.NewShader("points", pointsShaderSource); err != nil {
		return nil, err
	}

	if r.backend == nil {
		switch backendType {
		case BackendTypeHeadless:
			r.backend = NewHeadlessBackend()
		case BackendTypeWGPU:
			b, err := newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa)
			if err != nil {
				return nil, fmt.Errorf("create wgpu backend: %w", err)
			}
			r.backend = b
		default:
			return nil, fmt.Errorf("unknown renderer backend %d", backendType)
		}
	}
	r.backend.SetPresentMode(r.presentMode)

	if err := r.SetSize(win.Width(), win.Height()); err != nil {
		r.backend.Release()
		return nil, err
	}
	r.logger.Info("renderer ready",
		zap.Int("width", r.width), zap.Int("height", r.height), zap.Uint32("msaa", uint32(r.msaa)))
	return r, nil
}

func (r *renderer) Backend() RendererBackend {
	return r.backend
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) DrawingBufferSize() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bufferSize()
}

func (r *renderer) SetSize(width, height int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width, r.height = width, height
	return r.configure()
}

func (r *renderer) PixelRatio() float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pixelRatio
}

func (r *renderer) SetPixelRatio(ratio float32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ratio <= 0 {
		ratio = 1
	}
	if ratio == r.pixelRatio {
		return nil
	}
	r.pixelRatio = ratio
	if r.width == 0 || r.height == 0 {
		return nil
	}
	return r.configure()
}

// bufferSize scales the logical size by the pixel ratio. Caller must hold the mutex.
func (r *renderer) bufferSize() (int, int) {
	w := int(math.Round(float64(float32(r.width) * r.pixelRatio)))
	h := int(math.Round(float64(float32(r.height) * r.pixelRatio)))
	return max(w, 1), max(h, 1)
}

// configure pushes the drawing buffer size to the backend. Caller must hold the mutex.
func (r *renderer) configure() error {
	w, h := r.bufferSize()
	if err := r.backend.ConfigureSurface(w, h); err != nil {
		return fmt.Errorf("configure surface %dx%d: %w", w, h, err)
	}
	return nil
}

func (r *renderer) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (r *renderer) Render(s scene.Scene, cam camera.Camera) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s.SyncAttachedLights()
	r.collect(s, cam)

	if err := r.backend.BeginFrame(s.Background()); err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}

	var errs []error
	if err := r.writeFrameGroups(s, cam); err != nil {
		errs = append(errs, err)
	}

	written := make(map[material.Material]bool)
	frameGroups := []bind_group_provider.BindGroupProvider{cam.BindGroupProvider(), s.LightBindGroupProvider()}
	for _, item := range r.draws {
		if err := r.draw(item, frameGroups, written); err != nil {
			errs = append(errs, fmt.Errorf("draw %s: %w", item.obj.Name(), err))
		}
	}

	if err := r.backend.EndFrame(); err != nil {
		errs = append(errs, fmt.Errorf("end frame: %w", err))
	}
	r.backend.Present()
	r.stats.Frames++
	r.stats.Pipelines = len(r.pipelineCache)
	return errors.Join(errs...)
}

// collect walks the scene, culls against the frustum and sorts opaque meshes by pipeline
// followed by transparent meshes back to front. Caller must hold the mutex.
func (r *renderer) collect(s scene.Scene, cam camera.Camera) {
	r.draws = r.draws[:0]
	r.stats.Culled = 0
	r.stats.DrawCalls = 0
	r.stats.Triangles = 0

	frustum := common.ExtractFrustum(cam.ViewProjectionMatrix())
	eye := cam.Position()

	s.Traverse(func(obj game_object.GameObject) bool {
		if !obj.Visible() {
			return false
		}
		mdl, mat := obj.Model(), obj.Material()
		if mdl == nil || mat == nil {
			return true
		}
		world := obj.WorldMatrix()
		center, radius := mdl.BoundingSphere()
		worldCenter := common.TransformPoint(world, center)
		if !frustum.IntersectsSphere(worldCenter, radius*maxScale(world)) {
			r.stats.Culled++
			return true
		}
		r.draws = append(r.draws, drawItem{
			obj:      obj,
			mdl:      mdl,
			mat:      mat,
			world:    world,
			distance: worldCenter.Sub(eye).Len(),
		})
		return true
	})

	slices.SortStableFunc(r.draws, func(a, b drawItem) int {
		at, bt := a.mat.Transparent(), b.mat.Transparent()
		switch {
		case at != bt:
			if at {
				return 1
			}
			return -1
		case at:
			// back to front
			switch {
			case a.distance > b.distance:
				return -1
			case a.distance < b.distance:
				return 1
			}
			return 0
		default:
			return cmp.Compare(a.mat.PipelineKey(), b.mat.PipelineKey())
		}
	})
}

// writeFrameGroups uploads the camera, light and fog uniforms. Caller must hold the mutex.
func (r *renderer) writeFrameGroups(s scene.Scene, cam camera.Camera) error {
	p := r.anyPipeline()
	if p == nil {
		return nil
	}
	camUniform := camera.NewGPUCameraUniform(cam)
	if err := r.backend.WriteBindGroup(p, groupCamera, cam.BindGroupProvider(),
		map[int][]byte{0: camUniform.Marshal()}, nil, nil); err != nil {
		return fmt.Errorf("camera uniforms: %w", err)
	}
	fog := scene.NewGPUFogUniform(s.Fog())
	if err := r.backend.WriteBindGroup(p, groupScene, s.LightBindGroupProvider(),
		map[int][]byte{0: light.MarshalLightBuffer(s.Lights()), 1: fog.Marshal()}, nil, nil); err != nil {
		return fmt.Errorf("scene uniforms: %w", err)
	}
	return nil
}

// anyPipeline returns the pipeline of the first draw; every scene shader declares the same frame
// groups, so its layout serves them all. Nil when nothing is drawn. Caller must hold the mutex.
func (r *renderer) anyPipeline() pipeline.Pipeline {
	if len(r.draws) > 0 {
		if p, err := r.pipelineFor(r.draws[0].mat, r.draws[0].mdl.Topology()); err == nil {
			return p
		}
	}
	return nil
}

// draw uploads one item's geometry and uniforms and records its draw call.
// Caller must hold the mutex.
func (r *renderer) draw(item drawItem, frameGroups []bind_group_provider.BindGroupProvider, written map[material.Material]bool) error {
	topology := item.mdl.Topology()
	p, err := r.pipelineFor(item.mat, topology)
	if err != nil {
		return err
	}

	instances, ok, err := r.syncGeometry(item.mdl, item.mat.Wireframe())
	if err != nil || !ok {
		return err
	}

	objUniform := game_object.NewGPUObjectUniform(item.world)
	if err := r.backend.WriteBindGroup(p, groupObject, item.obj.ObjectProvider(),
		map[int][]byte{0: objUniform.Marshal()}, nil, nil); err != nil {
		return err
	}

	if !written[item.mat] {
		if err := r.writeMaterial(p, item.mat); err != nil {
			return err
		}
		written[item.mat] = true
	}

	mesh := item.mdl.MeshProvider()
	groups := append(slices.Clone(frameGroups), item.obj.ObjectProvider(), item.mat.BindGroupProvider())
	r.backend.DrawCall(p, mesh, instances, groups)

	r.stats.DrawCalls++
	switch {
	case topology == model.TopologyInstancedQuads:
		r.stats.Triangles += 2 * int(instances)
	case topology == model.TopologyTriangles && !item.mat.Wireframe():
		r.stats.Triangles += item.mdl.Buffers().TriangleCount()
	}
	return nil
}

// writeMaterial uploads a material's parameters, rebuilding its bind group when its texture
// changed since the group was created. Caller must hold the mutex.
func (r *renderer) writeMaterial(p pipeline.Pipeline, mat material.Material) error {
	provider := mat.BindGroupProvider()
	tex := mat.Texture()
	if prev, seen := r.materialTextures[mat]; seen && prev != tex {
		provider.Release()
	}
	r.materialTextures[mat] = tex

	params := material.NewGPUMaterialParams(mat)
	return r.backend.WriteBindGroup(p, groupMaterial, provider, map[int][]byte{0: params.Marshal()}, tex, common.RepeatSampler())
}

// syncGeometry uploads a model's geometry when it was swapped, rewrites it in place when it was
// only marked dirty, and returns the instance count to draw with. ok is false for empty geometry.
// Caller must hold the mutex.
func (r *renderer) syncGeometry(m model.Model, wireframe bool) (instances uint32, ok bool, err error) {
	b := m.Buffers()
	dirty := m.TakeDirty()
	topology := m.Topology()

	instances = 1
	vertexCount := b.VertexCount()
	if topology == model.TopologyInstancedQuads {
		instances = uint32(b.InstanceCount())
		vertexCount = 6
		if instances == 0 {
			return 0, false, nil
		}
	} else if vertexCount == 0 {
		return 0, false, nil
	}

	// Version 0 is what a fresh provider reports, so the stamp is offset by one.
	stamp := (m.Version() + 1) << 1
	if wireframe && topology == model.TopologyTriangles {
		stamp |= 1
	}

	mesh := m.MeshProvider()
	if mesh.GeometryVersion() == stamp && mesh.VertexCount() > 0 {
		if dirty != 0 {
			r.backend.WriteGeometry(mesh, model.VertexBytes(b, topology))
		}
		return instances, true, nil
	}

	var indices []uint32
	if topology == model.TopologyTriangles {
		indices = b.Indices
		if wireframe {
			indices = model.WireframeIndices(b)
		}
	}
	if err := r.backend.UploadGeometry(mesh, model.VertexBytes(b, topology), vertexCount, indices, stamp); err != nil {
		return 0, false, fmt.Errorf("upload %s: %w", m.Name(), err)
	}
	return instances, true, nil
}

// pipelineFor returns the cached pipeline for a material and topology, creating and registering
// it on first use. Caller must hold the mutex.
func (r *renderer) pipelineFor(mat material.Material, topology model.Topology) (pipeline.Pipeline, error) {
	key := mat.PipelineKey() + "/" + topologyName(topology)
	if p, ok := r.pipelineCache[key]; ok {
		return p, nil
	}

	s := r.meshShader
	primitive := wgpu.PrimitiveTopologyTriangleList
	cull := wgpu.CullModeNone
	switch topology {
	case model.TopologyLines:
		primitive = wgpu.PrimitiveTopologyLineList
	case model.TopologyInstancedQuads:
		s = r.pointsShader
	default:
		if mat.Wireframe() {
			primitive = wgpu.PrimitiveTopologyLineList
			break
		}
		switch mat.Side() {
		case material.SideFront:
			cull = wgpu.CullModeBack
		case material.SideBack:
			cull = wgpu.CullModeFront
		}
	}

	p := pipeline.NewPipeline(key, s,
		pipeline.WithTopology(primitive),
		pipeline.WithCullMode(cull),
		pipeline.WithBlendEnabled(mat.Transparent()),
		pipeline.WithDepthWriteEnabled(!mat.Transparent()),
	)
	if err := r.backend.RegisterPipeline(p); err != nil {
		return nil, fmt.Errorf("register pipeline %s: %w", key, err)
	}
	r.pipelineCache[key] = p
	r.logger.Debug("pipeline registered", zap.String("key", key))
	return p, nil
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, key)
	}
	for mat := range r.materialTextures {
		mat.BindGroupProvider().Release()
		delete(r.materialTextures, mat)
	}
	r.backend.Release()
}

func topologyName(t model.Topology) string {
	switch t {
	case model.TopologyLines:
		return "lines"
	case model.TopologyInstancedQuads:
		return "points"
	default:
		return "triangles"
	}
}

// maxScale returns the largest axis scale of a transform, used to grow bounding spheres.
func maxScale(m mgl32.Mat4) float32 {
	sx := m.Col(0).Vec3().LenSqr()
	sy := m.Col(1).Vec3().LenSqr()
	sz := m.Col(2).Vec3().LenSqr()
	return float32(math.Sqrt(float64(max(sx, sy, sz))))
}
