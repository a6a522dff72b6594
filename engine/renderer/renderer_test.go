package renderer

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-demos/common"
	"github.com/Carmen-Shannon/oxy-demos/engine/camera"
	"github.com/Carmen-Shannon/oxy-demos/engine/game_object"
	"github.com/Carmen-Shannon/oxy-demos/engine/model"
	"github.com/Carmen-Shannon/oxy-demos/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-demos/engine/scene"
	"github.com/Carmen-Shannon/oxy-demos/engine/window"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(t *testing.T) (Renderer, *HeadlessBackend) {
	t.Helper()
	win, err := window.NewWindow(
		window.WithPlatform(window.NewHeadlessPlatform(0)),
		window.WithWidth(800),
		window.WithHeight(600),
	)
	require.NoError(t, err)
	backend := NewHeadlessBackend()
	r, err := NewRenderer(BackendTypeHeadless, win, WithBackend(backend))
	require.NoError(t, err)
	t.Cleanup(r.Release)
	return r, backend
}

func newTestCamera() camera.Camera {
	ctrl := camera.NewCameraController(
		camera.WithEyePosition(mgl32.Vec3{0, 0, 3}),
		camera.WithDamping(false, 0),
	)
	return camera.NewCamera(camera.WithAspect(800.0/600.0), camera.WithController(ctrl))
}

func newPlaneMesh(name string, mat material.Material, opts ...game_object.GameObjectBuilderOption) (game_object.GameObject, model.Model) {
	m := model.NewModel(model.PlaneGeometry(1, 1, 10, 10), model.WithName(name))
	opts = append([]game_object.GameObjectBuilderOption{game_object.WithName(name)}, opts...)
	return game_object.NewMesh(m, mat, opts...), m
}

func TestSurfaceFollowsSizeAndPixelRatio(t *testing.T) {
	r, backend := newTestRenderer(t)

	w, h := backend.SurfaceSize()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)

	require.NoError(t, r.SetPixelRatio(2))
	w, h = backend.SurfaceSize()
	assert.Equal(t, 1600, w)
	assert.Equal(t, 1200, h)

	require.NoError(t, r.SetSize(1024, 768))
	w, h = r.Size()
	assert.Equal(t, 1024, w)
	assert.Equal(t, 768, h)
	w, h = r.DrawingBufferSize()
	assert.Equal(t, 2048, w)
	assert.Equal(t, 1536, h)

	require.NoError(t, r.SetPixelRatio(-1))
	assert.Equal(t, float32(1), r.PixelRatio())
	w, h = backend.SurfaceSize()
	assert.Equal(t, 1024, w)
	assert.Equal(t, 768, h)
}

func TestRenderCullsObjectsBehindCamera(t *testing.T) {
	r, backend := newTestRenderer(t)
	cam := newTestCamera()
	mat := material.NewMaterial(material.WithName("plane_mat"))

	front, _ := newPlaneMesh("front", mat)
	behind, _ := newPlaneMesh("behind", mat, game_object.WithPosition(mgl32.Vec3{0, 0, 50}))
	s := scene.NewScene("cull", scene.WithBackground(common.MustHex("#112233")))
	s.Add(front, behind)

	require.NoError(t, r.Render(s, cam))

	draws := backend.Draws()
	require.Len(t, draws, 1)
	assert.Equal(t, "mesh_front", draws[0].Mesh)
	assert.Equal(t, 600, draws[0].IndexCount)
	assert.Equal(t, []string{
		cam.BindGroupProvider().Label(),
		s.LightBindGroupProvider().Label(),
		"front",
		"plane_mat",
	}, draws[0].Groups)

	stats := r.Stats()
	assert.Equal(t, 1, stats.Frames)
	assert.Equal(t, 1, stats.DrawCalls)
	assert.Equal(t, 1, stats.Culled)
	assert.Equal(t, 200, stats.Triangles)
	assert.Equal(t, common.MustHex("#112233"), backend.ClearColor())
}

func TestHiddenSubtreeIsSkipped(t *testing.T) {
	r, backend := newTestRenderer(t)
	mat := material.NewMaterial()
	parent, _ := newPlaneMesh("parent", mat)
	child, _ := newPlaneMesh("child", mat)
	parent.Add(child)
	parent.SetVisible(false)

	s := scene.NewScene("hidden")
	s.Add(parent)
	require.NoError(t, r.Render(s, newTestCamera()))
	assert.Empty(t, backend.Draws())
	assert.Equal(t, 0, r.Stats().Culled)
}

func TestGeometryUploadedOnceThenWrittenInPlace(t *testing.T) {
	r, backend := newTestRenderer(t)
	cam := newTestCamera()
	obj, m := newPlaneMesh("plane", material.NewMaterial())
	s := scene.NewScene("upload")
	s.Add(obj)

	require.NoError(t, r.Render(s, cam))
	require.NoError(t, r.Render(s, cam))
	assert.Equal(t, 1, backend.Uploads())
	assert.Equal(t, 0, backend.GeometryWrites())

	m.MarkDirty(model.DirtyPositions)
	require.NoError(t, r.Render(s, cam))
	assert.Equal(t, 1, backend.Uploads())
	assert.Equal(t, 1, backend.GeometryWrites())

	m.Swap(model.PlaneGeometry(1, 1, 2, 2))
	require.NoError(t, r.Render(s, cam))
	assert.Equal(t, 2, backend.Uploads())
	assert.Equal(t, 9, backend.Draws()[0].VertexCount)
}

func TestWireframeUsesEdgeIndices(t *testing.T) {
	r, backend := newTestRenderer(t)
	cam := newTestCamera()
	mat := material.NewMaterial()
	obj, m := newPlaneMesh("plane", mat)
	s := scene.NewScene("wire")
	s.Add(obj)

	require.NoError(t, r.Render(s, cam))
	mat.SetWireframe(true)
	require.NoError(t, r.Render(s, cam))

	assert.Equal(t, 2, backend.Uploads())
	draws := backend.Draws()
	require.Len(t, draws, 1)
	assert.Equal(t, len(model.WireframeIndices(m.Buffers())), draws[0].IndexCount)
	assert.Equal(t, mat.PipelineKey()+"/triangles", draws[0].Pipeline)
	assert.Contains(t, draws[0].Pipeline, "/wire")
	assert.Equal(t, 0, r.Stats().Triangles)
}

func TestPipelinesAreCachedByKey(t *testing.T) {
	r, backend := newTestRenderer(t)
	cam := newTestCamera()
	a, _ := newPlaneMesh("a", material.NewMaterial())
	b, _ := newPlaneMesh("b", material.NewMaterial(material.WithKind(material.KindBasic)))
	c, _ := newPlaneMesh("c", material.NewMaterial(material.WithKind(material.KindPhong)))
	s := scene.NewScene("cache")
	s.Add(a, b, c)

	for range 3 {
		require.NoError(t, r.Render(s, cam))
	}
	assert.Equal(t, 1, backend.PipelineRegistrations("basic/front/triangles"))
	assert.Equal(t, 1, backend.PipelineRegistrations("phong/front/triangles"))
	assert.Equal(t, 2, r.Stats().Pipelines)
}

func TestTransparentDrawnAfterOpaqueBackToFront(t *testing.T) {
	r, backend := newTestRenderer(t)
	cam := newTestCamera()

	glass := material.NewMaterial(material.WithOpacity(0.5))
	near, _ := newPlaneMesh("near", glass, game_object.WithPosition(mgl32.Vec3{0, 0, 1}))
	far, _ := newPlaneMesh("far", glass, game_object.WithPosition(mgl32.Vec3{0, 0, -1}))
	solid, _ := newPlaneMesh("solid", material.NewMaterial())

	s := scene.NewScene("blend")
	s.Add(near, solid, far)
	require.NoError(t, r.Render(s, cam))

	draws := backend.Draws()
	require.Len(t, draws, 3)
	assert.Equal(t, "mesh_solid", draws[0].Mesh)
	assert.Equal(t, "mesh_far", draws[1].Mesh)
	assert.Equal(t, "mesh_near", draws[2].Mesh)
	assert.Contains(t, draws[1].Pipeline, "/blend")
}

func TestInstancedQuadsDrawPerInstance(t *testing.T) {
	r, backend := newTestRenderer(t)
	cam := newTestCamera()

	m := model.NewModel(model.InstanceBuffers(3), model.WithName("dots"), model.WithTopology(model.TopologyInstancedQuads))
	mat := material.NewMaterial(material.WithKind(material.KindPoints))
	empty := model.NewModel(model.InstanceBuffers(0), model.WithName("none"), model.WithTopology(model.TopologyInstancedQuads))

	s := scene.NewScene("points")
	s.Add(game_object.NewMesh(m, mat), game_object.NewMesh(empty, mat))
	require.NoError(t, r.Render(s, cam))

	draws := backend.Draws()
	require.Len(t, draws, 1)
	assert.Equal(t, "mesh_dots", draws[0].Mesh)
	assert.Equal(t, uint32(3), draws[0].InstanceCount)
	assert.Equal(t, 6, draws[0].VertexCount)
	assert.Equal(t, 0, draws[0].IndexCount)
	assert.Equal(t, "points/front/points", draws[0].Pipeline)
	assert.Equal(t, 6, r.Stats().Triangles)
}

func TestMaterialWrittenOncePerFrame(t *testing.T) {
	r, backend := newTestRenderer(t)
	cam := newTestCamera()
	mat := material.NewMaterial(material.WithName("shared"))
	a, _ := newPlaneMesh("one", mat)
	b, _ := newPlaneMesh("two", mat)
	s := scene.NewScene("shared")
	s.Add(a, b)

	require.NoError(t, r.Render(s, cam))
	assert.Equal(t, 1, backend.GroupWrites("shared"))
	assert.Equal(t, 1, backend.GroupWrites("one"))
	assert.Equal(t, 1, backend.GroupWrites("two"))
	assert.Equal(t, 1, backend.GroupWrites(cam.BindGroupProvider().Label()))
}

func TestHeadlessBackendRejectsUnpresentedFrame(t *testing.T) {
	b := NewHeadlessBackend()
	require.Error(t, b.BeginFrame(common.White), "surface must be configured first")

	require.NoError(t, b.ConfigureSurface(4, 4))
	require.NoError(t, b.BeginFrame(common.White))
	assert.Error(t, b.BeginFrame(common.White))
	require.NoError(t, b.EndFrame())
	b.Present()
	assert.NoError(t, b.BeginFrame(common.White))
	assert.Error(t, b.ConfigureSurface(0, 10))
}
