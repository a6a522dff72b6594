package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"
)

// MouseButton identifies a pointer button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// Window provides platform windowing and input event handling.
// Wraps a Platform implementation with a common interface.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving scroll delta (positive = up/zoom in, negative = down/zoom out)
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback sets the callback for key press events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyUpCallback(callback func(keyCode uint32))

	// SetMouseDownCallback sets the callback for mouse button presses.
	//
	// Parameters:
	//   - callback: function receiving the button and pointer x, y in pixels
	SetMouseDownCallback(callback func(button MouseButton, x, y float32))

	// SetMouseUpCallback sets the callback for mouse button releases.
	//
	// Parameters:
	//   - callback: function receiving the button and pointer x, y in pixels
	SetMouseUpCallback(callback func(button MouseButton, x, y float32))

	// SetMouseMoveCallback sets the callback for pointer movement.
	//
	// Parameters:
	//   - callback: function receiving pointer x, y in pixels from the top-left corner
	SetMouseMoveCallback(callback func(x, y float32))

	// SetMouseLeaveCallback sets the callback for the pointer leaving the window.
	//
	// Parameters:
	//   - callback: function called once per exit
	SetMouseLeaveCallback(callback func())

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform surface descriptor, or nil for platforms without one
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls the update callback once per iteration, after
	// pending input and resize events have been dispatched.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	Width() int

	// Height returns the current framebuffer height in pixels.
	Height() int

	// ContentScale returns the ratio between framebuffer pixels and screen coordinates.
	// It plays the role of a device pixel ratio.
	ContentScale() float32

	// Title returns the current window title.
	Title() string

	// SetTitle replaces the window title.
	//
	// Parameters:
	//   - title: the new title
	SetTitle(title string)
}

// EventSink receives events from a Platform. The engine window implements it and forwards each
// event to the registered callback.
type EventSink interface {
	DispatchResize(width, height int)
	DispatchScroll(delta float32)
	DispatchKey(keyCode uint32, pressed bool)
	DispatchMouseButton(button MouseButton, pressed bool, x, y float32)
	DispatchMouseMove(x, y float32)
	DispatchMouseLeave()
}

// Platform is the OS-facing half of a Window.
type Platform interface {
	// Open creates the native window and starts delivering events to sink.
	Open(title string, width, height int, sink EventSink) error
	// PollEvents dispatches pending events and reports whether the window should keep running.
	PollEvents() bool
	// FramebufferSize returns the drawable size in pixels.
	FramebufferSize() (int, int)
	// ContentScale returns the framebuffer to screen coordinate ratio.
	ContentScale() float32
	// SurfaceDescriptor returns the WebGPU surface descriptor, or nil.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	// SetTitle replaces the native window title.
	SetTitle(title string)
	// Close destroys the native window.
	Close() error
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, the platform and event callbacks.
type engineWindow struct {
	title string

	// width and height are the current framebuffer size in pixels.
	width  int
	height int

	platform Platform
	logger   *zap.Logger
	closed   bool

	onUpdate    func()
	onResize    func(width, height int)
	onScroll    func(delta float32)
	onKeyDown   func(keyCode uint32)
	onKeyUp     func(keyCode uint32)
	onMouseDown func(button MouseButton, x, y float32)
	onMouseUp   func(button MouseButton, x, y float32)
	onMouseMove func(x, y float32)
	onLeave     func()
}

var _ Window = &engineWindow{}
var _ EventSink = &engineWindow{}

// NewWindow creates and opens a new Window with the specified options.
// Applies default values first, then each option in order. Without WithPlatform the window
// opens headless.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the opened window
//   - error: error if the platform window cannot be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:  "oxy demos",
		width:  800,
		height: 600,
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		opt(w)
	}
	if w.platform == nil {
		w.platform = NewHeadlessPlatform(0)
	}
	if err := w.platform.Open(w.title, w.width, w.height, w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}

	// The platform may hand back a different framebuffer size on high-DPI displays.
	w.width, w.height = w.platform.FramebufferSize()
	w.logger.Debug("window opened",
		zap.String("title", w.title),
		zap.Int("width", w.width),
		zap.Int("height", w.height),
		zap.Float32("contentScale", w.platform.ContentScale()))
	return w, nil
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetMouseDownCallback(callback func(button MouseButton, x, y float32)) {
	w.onMouseDown = callback
}

func (w *engineWindow) SetMouseUpCallback(callback func(button MouseButton, x, y float32)) {
	w.onMouseUp = callback
}

func (w *engineWindow) SetMouseMoveCallback(callback func(x, y float32)) {
	w.onMouseMove = callback
}

func (w *engineWindow) SetMouseLeaveCallback(callback func()) {
	w.onLeave = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return w.platform.SurfaceDescriptor()
}

func (w *engineWindow) IsRunning() bool {
	return !w.closed
}

func (w *engineWindow) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	return w.platform.Close()
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if ok := w.platform.PollEvents(); !ok {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

func (w *engineWindow) ContentScale() float32 {
	return w.platform.ContentScale()
}

func (w *engineWindow) Title() string {
	return w.title
}

func (w *engineWindow) SetTitle(title string) {
	if title == w.title {
		return
	}
	w.title = title
	w.platform.SetTitle(title)
}

// DispatchResize records the new framebuffer size and fires the resize callback.
func (w *engineWindow) DispatchResize(width, height int) {
	// Minimized windows report 0x0; a zero-sized surface cannot be configured.
	if width <= 0 || height <= 0 {
		return
	}
	w.width = width
	w.height = height
	if w.onResize != nil {
		w.onResize(width, height)
	}
}

func (w *engineWindow) DispatchScroll(delta float32) {
	if w.onScroll != nil {
		w.onScroll(delta)
	}
}

func (w *engineWindow) DispatchKey(keyCode uint32, pressed bool) {
	if pressed {
		if w.onKeyDown != nil {
			w.onKeyDown(keyCode)
		}
		return
	}
	if w.onKeyUp != nil {
		w.onKeyUp(keyCode)
	}
}

func (w *engineWindow) DispatchMouseButton(button MouseButton, pressed bool, x, y float32) {
	if pressed {
		if w.onMouseDown != nil {
			w.onMouseDown(button, x, y)
		}
		return
	}
	if w.onMouseUp != nil {
		w.onMouseUp(button, x, y)
	}
}

func (w *engineWindow) DispatchMouseMove(x, y float32) {
	if w.onMouseMove != nil {
		w.onMouseMove(x, y)
	}
}

func (w *engineWindow) DispatchMouseLeave() {
	if w.onLeave != nil {
		w.onLeave()
	}
}
