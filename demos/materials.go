package demos

import (
	"github.com/Carmen-Shannon/oxy-demos/common"
	"github.com/Carmen-Shannon/oxy-demos/engine/game_object"
	"github.com/Carmen-Shannon/oxy-demos/engine/light"
	"github.com/Carmen-Shannon/oxy-demos/engine/model"
	"github.com/Carmen-Shannon/oxy-demos/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-demos/viewer"
	"github.com/go-gl/mathgl/mgl32"
)

// MaterialsDemo shows one material on a sphere, a plane and a torus so every shading model can be
// compared side by side from the panel.
func MaterialsDemo() viewer.Demo {
	return viewer.Demo{
		Name:  "materials",
		Title: "oxy demos: materials",
		Eye:   mgl32.Vec3{1, 1, 2},
		Setup: setupMaterials,
	}
}

func setupMaterials(v *viewer.Viewer) error {
	mat := material.NewMaterial(
		material.WithName("shared"),
		material.WithKind(material.KindStandard),
		material.WithSide(material.SideDouble),
		material.WithMetalnessRoughness(0.45, 0.65),
	)

	sphere := game_object.NewMesh(model.NewModel(model.SphereGeometry(0.5, 64, 64), model.WithName("sphere")), mat,
		game_object.WithName("sphere"), game_object.WithPosition(mgl32.Vec3{-1.5, 0, 0}))
	plane := game_object.NewMesh(model.NewModel(model.PlaneGeometry(1, 1, 100, 100), model.WithName("plane")), mat,
		game_object.WithName("plane"))
	torus := game_object.NewMesh(model.NewModel(model.TorusGeometry(0.3, 0.2, 64, 128), model.WithName("torus")), mat,
		game_object.WithName("torus"), game_object.WithPosition(mgl32.Vec3{1.5, 0, 0}))
	meshes := []game_object.GameObject{sphere, plane, torus}
	v.Scene().Add(meshes...)

	v.Scene().AddLight(light.NewAmbientLight(common.White, 0.5))
	v.Scene().AddLight(light.NewPointLight(common.White, 0.5, 0, mgl32.Vec3{2, 3, 4}))

	folder := v.Panel().Folder("material")
	folder.AddChoice("kind",
		func() string { return mat.Kind().String() },
		func(name string) {
			if k, err := material.ParseKind(name); err == nil {
				mat.SetKind(k)
			}
		},
		material.SurfaceKinds(),
	)
	folder.AddFloat("metalness", mat.Metalness, mat.SetMetalness, 0, 1, 0.05)
	folder.AddFloat("roughness", mat.Roughness, mat.SetRoughness, 0, 1, 0.05)
	folder.AddFloat("shininess", mat.Shininess, mat.SetShininess, 1, 200, 5)
	folder.AddColor("color", mat.Color, mat.SetColor)
	folder.AddBool("wireframe", mat.Wireframe, mat.SetWireframe)
	folder.AddBool("flatShading", mat.FlatShading, mat.SetFlatShading)

	// Rotation is a function of elapsed time, not of accumulated frame deltas.
	v.AddMutator("rotate", func(t, _ float32) error {
		for _, m := range meshes {
			m.SetRotation(mgl32.Vec3{0.15 * t, 0.1 * t, 0})
		}
		return nil
	})
	return nil
}
