package demos

import (
	"math/rand/v2"

	"github.com/Carmen-Shannon/oxy-demos/common"
	"github.com/Carmen-Shannon/oxy-demos/engine/game_object"
	"github.com/Carmen-Shannon/oxy-demos/engine/light"
	"github.com/Carmen-Shannon/oxy-demos/engine/model"
	"github.com/Carmen-Shannon/oxy-demos/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-demos/viewer"
	"github.com/go-gl/mathgl/mgl32"
)

// primitiveSpacing is the distance between neighbouring shapes on the row.
const primitiveSpacing = 1.5

// PrimitivesDemo lays the built-in geometries out on a row next to an axes helper.
func PrimitivesDemo() viewer.Demo {
	return viewer.Demo{
		Name:  "primitives",
		Title: "oxy demos: primitives",
		Eye:   mgl32.Vec3{0, 2, 7},
		Setup: setupPrimitives,
	}
}

func setupPrimitives(v *viewer.Viewer) error {
	mat := material.NewMaterial(material.WithName("primitives"), material.WithKind(material.KindNormal))

	shapes := []struct {
		name string
		geo  *model.Buffers
	}{
		{"box", model.BoxGeometry(1, 1, 1, 1, 1, 1)},
		{"sphere", model.SphereGeometry(0.5, 32, 16)},
		{"plane", model.PlaneGeometry(1, 1, 1, 1)},
		{"torus", model.TorusGeometry(0.35, 0.15, 16, 32)},
		{"cone", model.ConeGeometry(0.5, 1, 32)},
		{"cylinder", model.CylinderGeometry(0.5, 0.5, 1, 32, 1)},
	}
	meshes := make([]game_object.GameObject, 0, len(shapes))
	offset := -primitiveSpacing * float32(len(shapes)-1) / 2
	for i, s := range shapes {
		mesh := game_object.NewMesh(model.NewModel(s.geo, model.WithName(s.name)), mat,
			game_object.WithName(s.name),
			game_object.WithPosition(mgl32.Vec3{offset + float32(i)*primitiveSpacing, 0, 0}),
		)
		meshes = append(meshes, mesh)
	}
	v.Scene().Add(meshes...)

	axes := game_object.NewMesh(
		model.NewModel(model.AxesGeometry(2), model.WithName("axes"), model.WithTopology(model.TopologyLines)),
		material.NewMaterial(material.WithName("axes"), material.WithVertexColors(true), material.WithFog(false)),
		game_object.WithName("axes"),
	)
	v.Scene().Add(axes)
	v.Scene().SetBackground(common.Black)
	v.Scene().AddLight(light.NewAmbientLight(common.White, 0.4))
	v.Scene().AddLight(light.NewDirectionalLight(common.White, 0.8, mgl32.Vec3{3, 4, 5}))

	spin := float32(1)
	var angle float32

	folder := v.Panel().Folder("primitives")
	folder.AddBool("axes", axes.Visible, axes.SetVisible)
	folder.AddBool("wireframe", mat.Wireframe, mat.SetWireframe)
	folder.AddFloat("spin", func() float32 { return spin }, func(s float32) { spin = s }, 0, 5, 0.1)
	folder.AddChoice("kind",
		func() string { return mat.Kind().String() },
		func(name string) {
			if k, err := material.ParseKind(name); err == nil {
				mat.SetKind(k)
			}
		},
		material.SurfaceKinds(),
	)

	v.AddMutator("spin", func(_, dt float32) error {
		angle += spin * dt
		for _, m := range meshes {
			m.SetRotation(mgl32.Vec3{0.1 * angle, 0.15 * angle, 0})
		}
		return nil
	})
	return nil
}

// uniform draws from [lo, hi).
func uniform(rng *rand.Rand, lo, hi float32) float32 {
	return lo + rng.Float32()*(hi-lo)
}
