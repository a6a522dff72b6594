package demos

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-demos/common"
	"github.com/Carmen-Shannon/oxy-demos/engine/game_object"
	"github.com/Carmen-Shannon/oxy-demos/engine/loader"
	"github.com/Carmen-Shannon/oxy-demos/engine/model"
	"github.com/Carmen-Shannon/oxy-demos/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-demos/viewer"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	textLabel     = "oxy demos"
	textGlyphSize = 64
	donutCount    = 100
	donutSpread   = 10
)

// TextDemo extrudes a line of text and scatters donuts around it.
func TextDemo() viewer.Demo {
	return viewer.Demo{
		Name:  "text",
		Title: "oxy demos: text",
		Eye:   mgl32.Vec3{1, 1, 4},
		Setup: setupText,
	}
}

func setupText(v *viewer.Viewer) error {
	f, err := v.Loader().DefaultFont()
	if err != nil {
		return fmt.Errorf("text font: %w", err)
	}
	face, err := loader.NewFace(f, textGlyphSize)
	if err != nil {
		return fmt.Errorf("text face: %w", err)
	}
	defer face.Close()

	geo, err := model.TextGeometry(face, textLabel, 0.5, 0.2)
	if err != nil {
		return fmt.Errorf("text geometry: %w", err)
	}

	mat := material.NewMaterial(material.WithName("text"), material.WithKind(material.KindNormal))
	v.Scene().Add(game_object.NewMesh(model.NewModel(geo, model.WithName("text")), mat, game_object.WithName("text")))

	rng := v.Rand()
	donut := model.NewModel(model.TorusGeometry(0.3, 0.2, 20, 45), model.WithName("donut"))
	donuts := make([]game_object.GameObject, 0, donutCount)
	for range donutCount {
		s := uniform(rng, 0.2, 1)
		donuts = append(donuts, game_object.NewMesh(donut, mat,
			game_object.WithName("donut"),
			game_object.WithPosition(mgl32.Vec3{
				uniform(rng, -0.5, 0.5) * donutSpread,
				uniform(rng, -0.5, 0.5) * donutSpread,
				uniform(rng, -0.5, 0.5) * donutSpread,
			}),
			game_object.WithRotation(mgl32.Vec3{uniform(rng, 0, math32.Pi), uniform(rng, 0, math32.Pi), 0}),
			game_object.WithScale(mgl32.Vec3{s, s, s}),
		))
	}
	v.Scene().Add(donuts...)
	v.Scene().SetBackground(common.Black)

	folder := v.Panel().Folder("text")
	folder.AddChoice("kind",
		func() string { return mat.Kind().String() },
		func(name string) {
			if k, err := material.ParseKind(name); err == nil {
				mat.SetKind(k)
			}
		},
		[]string{material.KindNormal.String(), material.KindBasic.String()},
	)
	folder.AddBool("wireframe", mat.Wireframe, mat.SetWireframe)
	folder.AddBool("donuts", func() bool { return donuts[0].Visible() }, func(on bool) {
		for _, d := range donuts {
			d.SetVisible(on)
		}
	})
	return nil
}
