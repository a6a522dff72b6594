// Package viewer bootstraps a demo: window, renderer, camera and controls, pointer tracking,
// debug panel and the render loop. A demo only assembles its scene and registers per-frame work.
package viewer

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"slices"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-demos/common"
	"github.com/Carmen-Shannon/oxy-demos/config"
	"github.com/Carmen-Shannon/oxy-demos/engine"
	"github.com/Carmen-Shannon/oxy-demos/engine/camera"
	"github.com/Carmen-Shannon/oxy-demos/engine/debug_panel"
	"github.com/Carmen-Shannon/oxy-demos/engine/loader"
	"github.com/Carmen-Shannon/oxy-demos/engine/logging"
	"github.com/Carmen-Shannon/oxy-demos/engine/picking"
	"github.com/Carmen-Shannon/oxy-demos/engine/profiler"
	"github.com/Carmen-Shannon/oxy-demos/engine/renderer"
	"github.com/Carmen-Shannon/oxy-demos/engine/scene"
	"github.com/Carmen-Shannon/oxy-demos/engine/viewport"
	"github.com/Carmen-Shannon/oxy-demos/engine/window"
	"github.com/Carmen-Shannon/oxy-demos/engine/window/glfw_platform"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// ErrUnknownDemo is returned when a demo name is not registered.
var ErrUnknownDemo = errors.New("unknown demo")

// Demo describes one scene. Setup runs after the viewer is bootstrapped and before the loop
// starts; it populates v.Scene(), binds panel controls and registers mutators.
type Demo struct {
	Name  string
	Title string
	// Eye is the initial camera position. The zero vector keeps the controller default.
	Eye mgl32.Vec3
	// Target is the point the camera orbits.
	Target mgl32.Vec3
	Setup  func(v *Viewer) error
}

// Registry maps demo names to demos.
type Registry map[string]Demo

// Lookup returns the named demo.
//
// Parameters:
//   - name: the demo name
//
// Returns:
//   - Demo: the demo
//   - error: ErrUnknownDemo if name is not registered
func (r Registry) Lookup(name string) (Demo, error) {
	d, ok := r[name]
	if !ok {
		return Demo{}, fmt.Errorf("%w: %q (have %v)", ErrUnknownDemo, name, r.Names())
	}
	return d, nil
}

// Names returns the registered names in sorted order.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for n := range r {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Viewer owns every component a demo runs on. Input callbacks, resize handling and frames all
// run on the window's message loop.
type Viewer struct {
	cfg    config.Config
	demo   Demo
	logger *zap.Logger

	platform window.Platform
	window   window.Window
	backend  renderer.RendererBackend
	renderer renderer.Renderer
	camera   camera.Camera
	scene    scene.Scene
	viewport *viewport.Viewport
	pointer  *picking.Pointer
	panel    *debug_panel.Panel
	loader   loader.Loader
	pool     worker.DynamicWorkerPool
	rng      *rand.Rand
	engine   engine.Engine

	mutators []namedMutator
	closers  []func() error

	dragging  window.MouseButton
	dragOn    bool
	lastX     float32
	lastY     float32
	lastTitle string
	closed    bool
}

type namedMutator struct {
	name string
	fn   engine.FrameFunc
}

// New bootstraps a viewer for a demo and runs its setup.
//
// Parameters:
//   - cfg: the application configuration
//   - demo: the demo to assemble
//   - options: functional options to configure the viewer
//
// Returns:
//   - *Viewer: the viewer, ready to Run
//   - error: error if any component fails to initialize or the demo setup fails
func New(cfg config.Config, demo Demo, options ...ViewerBuilderOption) (v *Viewer, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	v = &Viewer{cfg: cfg, demo: demo}
	for _, opt := range options {
		opt(v)
	}
	defer func() {
		if err != nil {
			v.Close()
		}
	}()

	if v.logger == nil {
		if v.logger, err = logging.NewLogger(logging.Options{
			Level:       cfg.Log.Level,
			Development: cfg.Log.Development,
			File:        cfg.Log.File,
		}); err != nil {
			return nil, err
		}
	}
	v.logger = v.logger.Named("viewer").With(zap.String("demo", demo.Name))

	if err := v.bootstrap(); err != nil {
		return nil, err
	}
	if demo.Setup != nil {
		if err := demo.Setup(v); err != nil {
			return nil, fmt.Errorf("setup %s: %w", demo.Name, err)
		}
	}
	if err := v.wirePanel(); err != nil {
		return nil, err
	}
	v.wireInput()
	v.buildEngine()

	v.logger.Info("viewer ready",
		zap.Int("meshes", v.scene.Count()),
		zap.Int("controls", len(v.panel.Bindings())))
	return v, nil
}

// bootstrap creates the window, renderer, camera, viewport and shared services.
func (v *Viewer) bootstrap() error {
	title := common.Coalesce(v.cfg.Title, v.demo.Title, v.demo.Name)
	v.lastTitle = title

	if v.platform == nil {
		if v.cfg.Headless {
			v.platform = window.NewHeadlessPlatform(v.cfg.Frames)
		} else {
			v.platform = glfw_platform.NewPlatform()
		}
	}
	win, err := window.NewWindow(
		window.WithPlatform(v.platform),
		window.WithTitle(title),
		window.WithWidth(v.cfg.Width),
		window.WithHeight(v.cfg.Height),
		window.WithLogger(v.logger),
	)
	if err != nil {
		return fmt.Errorf("open window: %w", err)
	}
	v.window = win

	backendType := renderer.BackendTypeWGPU
	if v.cfg.Headless {
		backendType = renderer.BackendTypeHeadless
	}
	presentMode := renderer.PresentModeUncapped
	if v.cfg.VSync {
		presentMode = renderer.PresentModeVSync
	}
	ropts := []renderer.RendererBuilderOption{renderer.WithLogger(v.logger), renderer.WithPresentMode(presentMode)}
	if v.backend != nil {
		ropts = append(ropts, renderer.WithBackend(v.backend))
	}
	if v.renderer, err = renderer.NewRenderer(backendType, win, ropts...); err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	v.closers = append(v.closers, func() error { v.renderer.Release(); return nil })

	dpr := win.ContentScale()
	width, height := logicalSize(win, dpr)

	ctrlOpts := []camera.CameraControllerOption{
		camera.WithTarget(v.demo.Target),
		camera.WithDamping(v.cfg.Camera.Damping > 0, v.cfg.Camera.Damping),
	}
	if v.demo.Eye != (mgl32.Vec3{}) {
		ctrlOpts = append(ctrlOpts, camera.WithEyePosition(v.demo.Eye))
	}
	v.camera = camera.NewCamera(
		camera.WithFov(mgl32.DegToRad(v.cfg.Camera.FovDegrees)),
		camera.WithAspect(float32(width)/float32(height)),
		camera.WithNear(v.cfg.Camera.Near),
		camera.WithFar(v.cfg.Camera.Far),
		camera.WithController(camera.NewCameraController(ctrlOpts...)),
	)

	if v.viewport, err = viewport.NewViewport(width, height, dpr, v.camera, v.renderer,
		viewport.WithLogger(v.logger)); err != nil {
		return fmt.Errorf("size viewport: %w", err)
	}

	v.scene = scene.NewScene(v.demo.Name)
	v.pointer = picking.NewPointer()
	v.loader = loader.NewLoader(loader.WithAssetDir(v.cfg.Assets.Dir), loader.WithLogger(v.logger))

	if v.rng == nil {
		seed := v.cfg.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		v.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}

	workers := v.cfg.Workers.Count
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	v.pool = worker.NewDynamicWorkerPool(workers, 256, time.Second)
	v.closers = append(v.closers, func() error { v.pool.Stop(); return nil })

	v.panel = debug_panel.NewPanel(v.demo.Name,
		debug_panel.WithLogger(v.logger),
		debug_panel.WithHidden(v.cfg.Panel.Hidden),
		debug_panel.WithPresetPath(v.cfg.Panel.Preset),
	)
	v.closers = append(v.closers, v.panel.Close)
	return nil
}

// wirePanel applies the startup preset and starts watching it.
func (v *Viewer) wirePanel() error {
	if v.cfg.Panel.Preset == "" {
		return nil
	}
	if err := v.panel.LoadPreset(""); err != nil {
		v.logger.Warn("preset not applied", zap.Error(err))
	}
	if v.cfg.Panel.Watch {
		if err := v.panel.Watch(""); err != nil {
			return fmt.Errorf("watch preset: %w", err)
		}
	}
	return nil
}

// wireInput routes window events to the resize handler, pointer, panel and camera controller.
func (v *Viewer) wireInput() {
	ctrl := v.camera.Controller()

	v.window.SetResizeCallback(func(fbWidth, fbHeight int) {
		v.HandleResize(fbWidth, fbHeight, v.window.ContentScale())
	})
	v.window.SetMouseMoveCallback(func(x, y float32) {
		v.pointer.Move(x, y, v.window.Width(), v.window.Height())
		if !v.dragOn {
			return
		}
		dx, dy := x-v.lastX, y-v.lastY
		v.lastX, v.lastY = x, y
		switch v.dragging {
		case window.MouseButtonLeft:
			ctrl.Rotate(dx, dy)
		case window.MouseButtonRight, window.MouseButtonMiddle:
			ctrl.Pan(dx, dy)
		}
	})
	v.window.SetMouseLeaveCallback(v.pointer.Leave)
	v.window.SetMouseDownCallback(func(button window.MouseButton, x, y float32) {
		v.dragging, v.dragOn = button, true
		v.lastX, v.lastY = x, y
	})
	v.window.SetMouseUpCallback(func(button window.MouseButton, _, _ float32) {
		if button == v.dragging {
			v.dragOn = false
		}
	})
	v.window.SetScrollCallback(ctrl.Zoom)
	v.window.SetKeyDownCallback(func(keyCode uint32) {
		if v.panel.HandleKeyDown(keyCode) {
			return
		}
		switch keyCode {
		case common.KeyEsc:
			v.engine.Quit()
		case common.KeyA:
			ctrl.OrbitLeft()
		case common.KeyD:
			ctrl.OrbitRight()
		case common.KeyW:
			ctrl.OrbitUp()
		case common.KeyS:
			ctrl.OrbitDown()
		}
	})
	v.window.SetKeyUpCallback(v.panel.HandleKeyUp)
}

// buildEngine creates the loop with the demo's mutators followed by the panel housekeeping.
func (v *Viewer) buildEngine() {
	opts := []engine.EngineBuilderOption{
		engine.WithWindow(v.window),
		engine.WithRenderer(v.renderer),
		engine.WithScene(v.scene),
		engine.WithCamera(v.camera),
		engine.WithLogger(v.logger),
		engine.WithMaxFrames(v.cfg.Frames),
		engine.WithProfiling(true),
		engine.WithProfiler(profiler.NewProfiler(
			profiler.WithLogger(v.logger),
			profiler.WithMemStats(!v.cfg.Headless),
		)),
	}
	for _, m := range v.mutators {
		opts = append(opts, engine.WithMutator(m.name, m.fn))
	}
	opts = append(opts, engine.WithMutator("panel", v.updatePanel))
	v.engine = engine.NewEngine(opts...)
}

// updatePanel reapplies a changed preset and mirrors the panel readout and frame rate in the
// window title.
func (v *Viewer) updatePanel(_, _ float32) error {
	v.panel.Poll()

	title := common.Coalesce(v.cfg.Title, v.demo.Title, v.demo.Name)
	if fps := v.engine.Profiler().FPS(); fps > 0 {
		title = fmt.Sprintf("%s | %.0f fps", title, fps)
	}
	if status := v.panel.Status(); status != "" {
		title += " | " + status
	}
	if title != v.lastTitle {
		v.lastTitle = title
		v.window.SetTitle(title)
	}
	return nil
}

// HandleResize applies a framebuffer size change to the viewport, camera and renderer.
//
// Parameters:
//   - fbWidth, fbHeight: the framebuffer size in device pixels
//   - contentScale: device pixels per logical pixel
func (v *Viewer) HandleResize(fbWidth, fbHeight int, contentScale float32) {
	if contentScale <= 0 {
		contentScale = 1
	}
	width := max(1, int(float32(fbWidth)/contentScale+0.5))
	height := max(1, int(float32(fbHeight)/contentScale+0.5))
	if _, err := v.viewport.Resize(width, height, contentScale); err != nil {
		v.logger.Error("resize failed", zap.Int("width", width), zap.Int("height", height), zap.Error(err))
	}
}

// AddMutator registers a per-frame function. Only valid during Setup.
//
// Parameters:
//   - name: label used in logs
//   - fn: the function to call each frame with the clock and frame delta in seconds
func (v *Viewer) AddMutator(name string, fn engine.FrameFunc) {
	if v.engine != nil {
		v.engine.AddMutator(name, fn)
		return
	}
	v.mutators = append(v.mutators, namedMutator{name: name, fn: fn})
}

// OnClose registers a cleanup run by Close, in reverse registration order.
func (v *Viewer) OnClose(fn func() error) {
	v.closers = append(v.closers, fn)
}

// Run drives the render loop until the window closes or the frame limit is reached.
//
// Returns:
//   - error: error if the loop cannot start
func (v *Viewer) Run() error {
	v.logger.Info("running", zap.Bool("headless", v.cfg.Headless), zap.Int("frames", v.cfg.Frames))
	return v.engine.Run()
}

// Close releases the window, renderer, worker pool and anything registered with OnClose.
// Safe to call multiple times.
func (v *Viewer) Close() error {
	if v.closed {
		return nil
	}
	v.closed = true

	var errs []error
	for i := len(v.closers) - 1; i >= 0; i-- {
		errs = append(errs, v.closers[i]())
	}
	if v.window != nil {
		errs = append(errs, v.window.Close())
	}
	if v.logger != nil {
		_ = v.logger.Sync()
	}
	return errors.Join(errs...)
}

func (v *Viewer) Config() config.Config                { return v.cfg }
func (v *Viewer) Logger() *zap.Logger                  { return v.logger }
func (v *Viewer) Window() window.Window                { return v.window }
func (v *Viewer) Renderer() renderer.Renderer          { return v.renderer }
func (v *Viewer) Camera() camera.Camera                { return v.camera }
func (v *Viewer) Scene() scene.Scene                   { return v.scene }
func (v *Viewer) Viewport() *viewport.Viewport         { return v.viewport }
func (v *Viewer) Pointer() *picking.Pointer            { return v.pointer }
func (v *Viewer) Panel() *debug_panel.Panel            { return v.panel }
func (v *Viewer) Loader() loader.Loader                { return v.loader }
func (v *Viewer) WorkerPool() worker.DynamicWorkerPool { return v.pool }
func (v *Viewer) Rand() *rand.Rand                     { return v.rng }
func (v *Viewer) Engine() engine.Engine                { return v.engine }

// logicalSize converts the framebuffer size to logical pixels.
func logicalSize(win window.Window, dpr float32) (int, int) {
	if dpr <= 0 {
		dpr = 1
	}
	return max(1, int(float32(win.Width())/dpr+0.5)), max(1, int(float32(win.Height())/dpr+0.5))
}
