package demos

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-demos/common"
	"github.com/Carmen-Shannon/oxy-demos/engine/game_object"
	"github.com/Carmen-Shannon/oxy-demos/engine/light"
	"github.com/Carmen-Shannon/oxy-demos/engine/model"
	"github.com/Carmen-Shannon/oxy-demos/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-demos/engine/scene"
	"github.com/Carmen-Shannon/oxy-demos/viewer"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Texture paths, relative to the asset directory.
const (
	grassTexture = "textures/grass.png"
	brickTexture = "textures/bricks.png"
	doorTexture  = "textures/door.png"
)

const graveCount = 50

var (
	fogColor   = common.MustHex("#262837")
	moonColor  = common.MustHex("#b9d5ff")
	doorGlow   = common.MustHex("#ff7d46")
	roofColor  = common.MustHex("#b35f45")
	bushColor  = common.MustHex("#89c854")
	graveColor = common.MustHex("#b2b6b1")

	ghostColors = [3]common.Color{
		common.MustHex("#ff00ff"),
		common.MustHex("#00ffff"),
		common.MustHex("#ffff00"),
	}
)

// HauntedHouseDemo is a small fogged yard with a house, bushes, a ring of graves and three ghost
// lights circling at different speeds.
func HauntedHouseDemo() viewer.Demo {
	return viewer.Demo{
		Name:  "haunted_house",
		Title: "oxy demos: haunted house",
		Eye:   mgl32.Vec3{4, 2, 5},
		Setup: setupHauntedHouse,
	}
}

func setupHauntedHouse(v *viewer.Viewer) error {
	textures := map[string]*common.TextureStagingData{}
	for _, path := range []string{grassTexture, brickTexture, doorTexture} {
		tex, err := v.Loader().LoadTexture(path)
		if err != nil {
			return fmt.Errorf("haunted house texture: %w", err)
		}
		textures[path] = tex
	}

	s := v.Scene()
	s.SetFog(&scene.Fog{Color: fogColor, Near: 1, Far: 15})
	s.SetBackground(fogColor)

	floor := game_object.NewMesh(
		model.NewModel(model.PlaneGeometry(20, 20, 1, 1), model.WithName("floor")),
		material.NewMaterial(material.WithName("grass"), material.WithKind(material.KindStandard),
			material.WithTexture(textures[grassTexture])),
		game_object.WithName("floor"),
		game_object.WithRotation(mgl32.Vec3{-math32.Pi / 2, 0, 0}),
	)

	walls := game_object.NewMesh(
		model.NewModel(model.BoxGeometry(4, 2.5, 4, 1, 1, 1), model.WithName("walls")),
		material.NewMaterial(material.WithName("bricks"), material.WithKind(material.KindStandard),
			material.WithTexture(textures[brickTexture])),
		game_object.WithName("walls"),
		game_object.WithPosition(mgl32.Vec3{0, 1.25, 0}),
	)
	roof := game_object.NewMesh(
		model.NewModel(model.ConeGeometry(3.5, 1, 4), model.WithName("roof")),
		material.NewMaterial(material.WithName("roof"), material.WithKind(material.KindStandard), material.WithColor(roofColor)),
		game_object.WithName("roof"),
		game_object.WithPosition(mgl32.Vec3{0, 2.5 + 0.5, 0}),
		game_object.WithRotation(mgl32.Vec3{0, math32.Pi / 4, 0}),
	)
	door := game_object.NewMesh(
		model.NewModel(model.PlaneGeometry(2.2, 2.2, 1, 1), model.WithName("door")),
		material.NewMaterial(material.WithName("door"), material.WithKind(material.KindStandard),
			material.WithTexture(textures[doorTexture])),
		game_object.WithName("door"),
		game_object.WithPosition(mgl32.Vec3{0, 1, 2.01}),
	)
	doorLight := light.NewPointLight(doorGlow, 1, 7, mgl32.Vec3{0, 2.2, 2.7})
	house := game_object.NewGameObject(game_object.WithName("house"), game_object.WithChildren(walls, roof, door))

	s.Add(floor, house)
	s.Add(bushes()...)
	s.Add(graves(v)...)

	ambient := light.NewAmbientLight(moonColor, 0.12)
	moon := light.NewDirectionalLight(moonColor, 0.12, mgl32.Vec3{4, 5, -2})
	s.AddLight(ambient)
	s.AddLight(moon)
	s.AddLight(doorLight)

	orbits := light.GhostOrbits()
	ghosts := make([]light.Orbiter, len(orbits))
	for i, path := range orbits {
		ghost := light.NewPointLight(ghostColors[i], 2, 3, path(0))
		s.AddLight(ghost)
		ghosts[i] = light.Orbiter{Light: ghost, Path: path}
	}

	folder := v.Panel().Folder("lights")
	folder.AddFloat("ambient", ambient.Intensity, ambient.SetIntensity, 0, 1, 0.01)
	folder.AddFloat("moon", moon.Intensity, moon.SetIntensity, 0, 1, 0.01)
	folder.AddFloat("door", doorLight.Intensity, doorLight.SetIntensity, 0, 3, 0.1)
	folder.AddBool("ghosts", ghosts[0].Light.Enabled, func(on bool) {
		for _, g := range ghosts {
			g.Light.SetEnabled(on)
		}
	})
	fog := v.Panel().Folder("fog")
	fog.AddFloat("far", func() float32 { return s.Fog().Far }, func(far float32) {
		s.SetFog(&scene.Fog{Color: fogColor, Near: 1, Far: far})
	}, 2, 50, 1)

	v.AddMutator("ghosts", func(t, _ float32) error {
		for _, g := range ghosts {
			g.Update(t)
		}
		return nil
	})
	return nil
}

func bushes() []game_object.GameObject {
	geo := model.NewModel(model.SphereGeometry(1, 16, 16), model.WithName("bush"))
	mat := material.NewMaterial(material.WithName("bush"), material.WithKind(material.KindStandard), material.WithColor(bushColor))
	placements := []struct {
		scale float32
		pos   mgl32.Vec3
	}{
		{0.5, mgl32.Vec3{0.8, 0.2, 2.2}},
		{0.25, mgl32.Vec3{1.4, 0.1, 2.1}},
		{0.4, mgl32.Vec3{-0.8, 0.1, 2.2}},
		{0.15, mgl32.Vec3{-1, 0.05, 2.6}},
	}
	out := make([]game_object.GameObject, 0, len(placements))
	for _, p := range placements {
		out = append(out, game_object.NewMesh(geo, mat,
			game_object.WithName("bush"),
			game_object.WithPosition(p.pos),
			game_object.WithScale(mgl32.Vec3{p.scale, p.scale, p.scale}),
		))
	}
	return out
}

// graves scatters headstones on a ring between radius 3 and 9 around the house.
func graves(v *viewer.Viewer) []game_object.GameObject {
	rng := v.Rand()
	geo := model.NewModel(model.BoxGeometry(0.6, 0.8, 0.2, 1, 1, 1), model.WithName("grave"))
	mat := material.NewMaterial(material.WithName("grave"), material.WithKind(material.KindStandard), material.WithColor(graveColor))
	out := make([]game_object.GameObject, 0, graveCount)
	for range graveCount {
		angle := uniform(rng, 0, 2*math32.Pi)
		radius := 3 + uniform(rng, 0, 6)
		out = append(out, game_object.NewMesh(geo, mat,
			game_object.WithName("grave"),
			game_object.WithPosition(mgl32.Vec3{math32.Sin(angle) * radius, 0.3, math32.Cos(angle) * radius}),
			game_object.WithRotation(mgl32.Vec3{0, uniform(rng, -0.2, 0.2), uniform(rng, -0.2, 0.2)}),
		))
	}
	return out
}
