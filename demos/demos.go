// Package demos assembles the showcase scenes on top of the viewer. Every demo is a viewer.Demo
// whose Setup populates the scene, binds its debug panel controls and registers the per-frame
// mutators it needs.
package demos

import (
	"github.com/Carmen-Shannon/oxy-demos/config"
	"github.com/Carmen-Shannon/oxy-demos/viewer"
)

// All lists every demo by name.
var All = viewer.Registry{
	"primitives":    PrimitivesDemo(),
	"materials":     MaterialsDemo(),
	"terrain":       TerrainDemo(),
	"text":          TextDemo(),
	"haunted_house": HauntedHouseDemo(),
	"particles":     ParticlesDemo(),
}

// New bootstraps the named demo.
//
// Parameters:
//   - name: a key of All
//   - cfg: the application configuration
//   - options: functional options passed to the viewer
//
// Returns:
//   - *viewer.Viewer: the viewer, ready to Run
//   - error: viewer.ErrUnknownDemo if name is not registered, or the bootstrap error
func New(name string, cfg config.Config, options ...viewer.ViewerBuilderOption) (*viewer.Viewer, error) {
	demo, err := All.Lookup(name)
	if err != nil {
		return nil, err
	}
	return viewer.New(cfg, demo, options...)
}

// Primitives bootstraps the primitives demo.
func Primitives(cfg config.Config, options ...viewer.ViewerBuilderOption) (*viewer.Viewer, error) {
	return viewer.New(cfg, PrimitivesDemo(), options...)
}

// Materials bootstraps the materials demo.
func Materials(cfg config.Config, options ...viewer.ViewerBuilderOption) (*viewer.Viewer, error) {
	return viewer.New(cfg, MaterialsDemo(), options...)
}

// Terrain bootstraps the terrain demo.
func Terrain(cfg config.Config, options ...viewer.ViewerBuilderOption) (*viewer.Viewer, error) {
	return viewer.New(cfg, TerrainDemo(), options...)
}

// Text bootstraps the text demo.
func Text(cfg config.Config, options ...viewer.ViewerBuilderOption) (*viewer.Viewer, error) {
	return viewer.New(cfg, TextDemo(), options...)
}

// HauntedHouse bootstraps the haunted house demo.
func HauntedHouse(cfg config.Config, options ...viewer.ViewerBuilderOption) (*viewer.Viewer, error) {
	return viewer.New(cfg, HauntedHouseDemo(), options...)
}

// Particles bootstraps the particles demo.
func Particles(cfg config.Config, options ...viewer.ViewerBuilderOption) (*viewer.Viewer, error) {
	return viewer.New(cfg, ParticlesDemo(), options...)
}
