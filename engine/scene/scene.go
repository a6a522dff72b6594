package scene

import (
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-demos/common"
	"github.com/Carmen-Shannon/oxy-demos/engine/game_object"
	"github.com/Carmen-Shannon/oxy-demos/engine/light"
	"github.com/Carmen-Shannon/oxy-demos/engine/renderer/bind_group_provider"
)

// Fog is linear distance fog: fragments blend from their own color at Near to Color at Far.
type Fog struct {
	Color common.Color
	Near  float32
	Far   float32
}

// Factor returns the blend weight toward the fog color at the given view distance.
func (f *Fog) Factor(distance float32) float32 {
	if f == nil || f.Far <= f.Near {
		return 0
	}
	return common.Clamp((distance-f.Near)/(f.Far-f.Near), 0, 1)
}

// Scene defines the interface for a scene graph: a root node holding every drawable, the scene's
// lights, background color and optional fog.
//
// The scene knows nothing about GPUs beyond owning the provider for its light and fog uniforms;
// drawing is done by handing the scene and a camera to a Renderer.
type Scene interface {
	// Name returns the scene name.
	Name() string

	// Root returns the root node. Objects added to the scene become its children.
	//
	// Returns:
	//   - game_object.GameObject: the root node
	Root() game_object.GameObject

	// Add attaches objects to the root node and registers their attached lights.
	//
	// Parameters:
	//   - objects: nodes to attach
	Add(objects ...game_object.GameObject)

	// Remove detaches an object from the root node.
	//
	// Parameters:
	//   - obj: the node to detach
	//
	// Returns:
	//   - bool: true if the object was a direct child of the root
	Remove(obj game_object.GameObject) bool

	// Traverse visits every node depth-first starting at the root. Returning false skips the
	// node's subtree.
	//
	// Parameters:
	//   - visit: callback receiving each node
	Traverse(visit func(game_object.GameObject) bool)

	// Count returns the number of nodes carrying a Model.
	//
	// Returns:
	//   - int: the drawable count
	Count() int

	// Advance applies rotation speeds across the whole graph.
	//
	// Parameters:
	//   - dt: elapsed seconds since the previous frame
	Advance(dt float32)

	// Background returns the clear color.
	Background() common.Color

	// SetBackground sets the clear color.
	SetBackground(c common.Color)

	// Fog returns the scene fog, or nil when disabled.
	Fog() *Fog

	// SetFog sets or clears the scene fog.
	SetFog(f *Fog)

	// AddLight registers a light with the scene.
	//
	// Parameters:
	//   - l: the light to add; duplicates are ignored
	AddLight(l light.Light)

	// RemoveLight unregisters a light.
	//
	// Parameters:
	//   - l: the light to remove
	RemoveLight(l light.Light)

	// Lights returns a snapshot of the registered lights.
	//
	// Returns:
	//   - []light.Light: the lights in registration order
	Lights() []light.Light

	// SyncAttachedLights moves every light attached to a visible node to that node's world position.
	SyncAttachedLights()

	// LightBindGroupProvider returns the provider holding the light and fog uniforms.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the scene provider
	LightBindGroupProvider() bind_group_provider.BindGroupProvider

	// Dispose releases GPU resources of the scene and every node.
	Dispose()
}

type scene struct {
	mu *sync.RWMutex

	name       string
	root       game_object.GameObject
	background common.Color
	fog        *Fog
	lights     []light.Light

	lightsBGP bind_group_provider.BindGroupProvider
}

var _ Scene = &scene{}

// NewScene creates an empty Scene with a black background and no fog.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:         &sync.RWMutex{},
		name:       name,
		root:       game_object.NewGameObject(game_object.WithName(name + "_root")),
		background: common.Black,
		lightsBGP:  bind_group_provider.NewBindGroupProvider("scene_" + name),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Root() game_object.GameObject {
	return s.root
}

func (s *scene) Add(objects ...game_object.GameObject) {
	s.root.Add(objects...)
	for _, obj := range objects {
		if obj == nil {
			continue
		}
		obj.Traverse(func(o game_object.GameObject) bool {
			if l := o.Light(); l != nil {
				s.AddLight(l)
			}
			return true
		})
	}
}

func (s *scene) Remove(obj game_object.GameObject) bool {
	if !s.root.Remove(obj) {
		return false
	}
	obj.Traverse(func(o game_object.GameObject) bool {
		if l := o.Light(); l != nil {
			s.RemoveLight(l)
		}
		return true
	})
	return true
}

func (s *scene) Traverse(visit func(game_object.GameObject) bool) {
	s.root.Traverse(visit)
}

func (s *scene) Count() int {
	n := 0
	s.root.Traverse(func(o game_object.GameObject) bool {
		if o.Model() != nil {
			n++
		}
		return true
	})
	return n
}

func (s *scene) Advance(dt float32) {
	s.root.Advance(dt)
}

func (s *scene) Background() common.Color {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.background
}

func (s *scene) SetBackground(c common.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = c
}

func (s *scene) Fog() *Fog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fog
}

func (s *scene) SetFog(f *Fog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fog = f
}

func (s *scene) AddLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l == nil || slices.Contains(s.lights, l) {
		return
	}
	s.lights = append(s.lights, l)
}

func (s *scene) RemoveLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := slices.Index(s.lights, l); idx >= 0 {
		s.lights = slices.Delete(s.lights, idx, idx+1)
	}
}

func (s *scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.lights)
}

func (s *scene) SyncAttachedLights() {
	s.root.Traverse(func(o game_object.GameObject) bool {
		if !o.Visible() {
			return false
		}
		if l := o.Light(); l != nil {
			w := o.WorldMatrix()
			l.SetPosition(w.Col(3).Vec3())
		}
		return true
	})
}

func (s *scene) LightBindGroupProvider() bind_group_provider.BindGroupProvider {
	return s.lightsBGP
}

func (s *scene) Dispose() {
	s.root.Traverse(func(o game_object.GameObject) bool {
		o.Dispose()
		return true
	})
	s.lightsBGP.Release()
}
