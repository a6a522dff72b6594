package demos

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-demos/common"
	"github.com/Carmen-Shannon/oxy-demos/engine/game_object"
	"github.com/Carmen-Shannon/oxy-demos/engine/particles"
	"github.com/Carmen-Shannon/oxy-demos/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-demos/viewer"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// ParticlesDemo is a cube of randomly colored particles riding a sine wave.
func ParticlesDemo() viewer.Demo {
	return viewer.Demo{
		Name:  "particles",
		Title: "oxy demos: particles",
		Eye:   mgl32.Vec3{0, 2, 8},
		Setup: setupParticles,
	}
}

func setupParticles(v *viewer.Viewer) error {
	params := particles.DefaultFieldParams()
	field, err := particles.NewField(params,
		particles.WithRand(v.Rand()),
		particles.WithWorkerPool(v.WorkerPool()),
		particles.WithLogger(v.Logger()),
	)
	if err != nil {
		return fmt.Errorf("particle field: %w", err)
	}

	mat := material.NewMaterial(
		material.WithName("particles"),
		material.WithKind(material.KindPoints),
		material.WithVertexColors(true),
		material.WithPointSize(params.Size),
		material.WithFog(false),
	)
	v.Scene().Add(game_object.NewMesh(field.Model(), mat, game_object.WithName("particles")))
	v.Scene().SetBackground(common.Black)

	folder := v.Panel().Folder("particles")
	count := params.Count
	folder.AddInt("count", func() int { return count }, func(n int) { count = n }, 100, 100000, 1000).
		OnFinishChange(func(n int) {
			if n == field.Params().Count {
				return
			}
			next := field.Params()
			next.Count = n
			if err := field.Generate(next); err != nil {
				v.Logger().Warn("regenerate particles", zap.Error(err))
			}
		})
	folder.AddFloat("size", func() float32 { return field.Params().Size }, func(s float32) {
		field.SetSize(s)
		mat.SetPointSize(s)
	}, 0.01, 1, 0.01)

	v.AddMutator("particles", func(t, _ float32) error {
		field.Update(t)
		return nil
	})
	return nil
}
