package demos

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-demos/common"
	"github.com/Carmen-Shannon/oxy-demos/engine/game_object"
	"github.com/Carmen-Shannon/oxy-demos/engine/light"
	"github.com/Carmen-Shannon/oxy-demos/engine/picking"
	"github.com/Carmen-Shannon/oxy-demos/engine/procedural"
	"github.com/Carmen-Shannon/oxy-demos/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-demos/viewer"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// terrainBase is the resting vertex color hover flashes fade back to.
var terrainBase = common.RGB(0, 0.19, 0.4)

// TerrainDemo is a randomly displaced plane laid flat that sways in place and flashes the face
// under the pointer.
func TerrainDemo() viewer.Demo {
	return viewer.Demo{
		Name:  "terrain",
		Title: "oxy demos: terrain",
		Eye:   mgl32.Vec3{0, 8, 10},
		Setup: setupTerrain,
	}
}

func setupTerrain(v *viewer.Viewer) error {
	log := v.Logger().Named("terrain")
	plane, err := procedural.NewDisplacedPlane(procedural.DefaultPlaneParams(),
		procedural.WithRand(v.Rand()),
		procedural.WithBaseColor(terrainBase),
		procedural.WithWorkerPool(v.WorkerPool()),
		procedural.WithLogger(v.Logger()),
	)
	if err != nil {
		return fmt.Errorf("terrain plane: %w", err)
	}

	mat := material.NewMaterial(
		material.WithName("terrain"),
		material.WithKind(material.KindPhong),
		material.WithSide(material.SideDouble),
		material.WithVertexColors(true),
		material.WithFlatShading(true),
	)
	mesh := game_object.NewMesh(plane.Model(), mat,
		game_object.WithName("terrain"),
		game_object.WithRotation(mgl32.Vec3{-math32.Pi / 2, 0, 0}),
	)
	v.Scene().Add(mesh)
	v.Scene().AddLight(light.NewDirectionalLight(common.White, 1, mgl32.Vec3{0, 1, 1}))
	v.Scene().AddLight(light.NewDirectionalLight(common.White, 1, mgl32.Vec3{0, -1, -1}))

	hover := picking.NewHoverAnimator(mesh,
		picking.WithBaseColor(terrainBase),
		picking.WithRand(v.Rand()),
		picking.WithLogger(v.Logger()),
	)

	params := plane.Params()
	requested := params
	var pending <-chan error
	regenerate := func() {
		if params == requested {
			return
		}
		next := params
		requested = next
		pending = plane.GenerateAsync(next)
		log.Info("regenerating terrain",
			zap.Float32("width", next.Width), zap.Float32("height", next.Height),
			zap.Int("widthSegments", next.WidthSegments), zap.Int("heightSegments", next.HeightSegments))
	}

	folder := v.Panel().Folder("plane")
	folder.AddFloat("width", func() float32 { return params.Width }, func(w float32) { params.Width = w }, 1, 50, 1).
		OnFinishChange(func(float32) { regenerate() })
	folder.AddFloat("height", func() float32 { return params.Height }, func(h float32) { params.Height = h }, 1, 50, 1).
		OnFinishChange(func(float32) { regenerate() })
	folder.AddInt("widthSegments", func() int { return params.WidthSegments }, func(n int) { params.WidthSegments = n }, 1, 200, 1).
		OnFinishChange(func(int) { regenerate() })
	folder.AddInt("heightSegments", func() int { return params.HeightSegments }, func(n int) { params.HeightSegments = n }, 1, 200, 1).
		OnFinishChange(func(int) { regenerate() })
	folder.AddBool("wireframe", mat.Wireframe, mat.SetWireframe)

	version := plane.Model().Version()
	v.AddMutator("terrain", func(t, dt float32) error {
		if pending != nil {
			select {
			case err := <-pending:
				pending = nil
				if err != nil {
					return fmt.Errorf("regenerate terrain: %w", err)
				}
			default:
			}
		}

		plane.Update(t)
		// A new generation invalidates face indices held by running tweens.
		if cur := plane.Model().Version(); cur != version {
			version = cur
			hover.Reset()
		}
		hover.Update(v.Camera(), v.Pointer(), dt)
		return nil
	})
	return nil
}
