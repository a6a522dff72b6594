// Package glfw_platform implements window.Platform on top of GLFW.
package glfw_platform

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-demos/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwPlatform holds the GLFW-specific window state.
type glfwPlatform struct {
	window  *glfw.Window
	sink    window.EventSink
	running bool
}

var _ window.Platform = &glfwPlatform{}

// NewPlatform returns an unopened GLFW platform. Pass it to window.WithPlatform.
func NewPlatform() window.Platform {
	return &glfwPlatform{}
}

// Open creates the GLFW window with input callbacks.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
func (p *glfwPlatform) Open(title string, width, height int, sink window.EventSink) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// WebGPU provides its own graphics API, so disable OpenGL context creation.
	// Reference: https://www.glfw.org/docs/latest/window_guide.html#window_hints_ctx
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %w", err)
	}

	p.window = win
	p.sink = sink
	p.running = true

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			p.running = false
			win.SetShouldClose(true)
			return
		}
		switch action {
		case glfw.Press, glfw.Repeat:
			sink.DispatchKey(uint32(key), true)
		case glfw.Release:
			sink.DispatchKey(uint32(key), false)
		}
	})

	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		sink.DispatchScroll(float32(yoff))
	})

	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		b, ok := mapButton(button)
		if !ok {
			return
		}
		x, y := p.cursorPixels()
		switch action {
		case glfw.Press:
			sink.DispatchMouseButton(b, true, x, y)
		case glfw.Release:
			sink.DispatchMouseButton(b, false, x, y)
		}
	})

	// Cursor positions arrive in screen coordinates; scale them to framebuffer pixels so they
	// share a space with the resize events.
	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		sx, sy := win.GetContentScale()
		sink.DispatchMouseMove(float32(xpos)*sx, float32(ypos)*sy)
	})
	win.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		if !entered {
			sink.DispatchMouseLeave()
		}
	})

	// Use framebuffer size callback for pixel-accurate resize events.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetFramebufferSizeCallback
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		sink.DispatchResize(width, height)
	})

	return nil
}

// PollEvents polls GLFW for pending events without blocking.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#PollEvents
func (p *glfwPlatform) PollEvents() bool {
	if p.window == nil {
		return false
	}
	glfw.PollEvents()
	return p.running && !p.window.ShouldClose()
}

func (p *glfwPlatform) FramebufferSize() (int, int) {
	if p.window == nil {
		return 0, 0
	}
	return p.window.GetFramebufferSize()
}

func (p *glfwPlatform) ContentScale() float32 {
	if p.window == nil {
		return 1
	}
	sx, _ := p.window.GetContentScale()
	if sx <= 0 {
		return 1
	}
	return sx
}

// SurfaceDescriptor creates a platform-appropriate wgpu.SurfaceDescriptor from the GLFW window.
//
// Reference: https://pkg.go.dev/github.com/cogentcore/webgpu/wgpuglfw#GetSurfaceDescriptor
func (p *glfwPlatform) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	if p.window == nil {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(p.window)
}

func (p *glfwPlatform) SetTitle(title string) {
	if p.window != nil {
		p.window.SetTitle(title)
	}
}

// Close destroys the GLFW window and terminates the GLFW library.
func (p *glfwPlatform) Close() error {
	if p.window == nil {
		return fmt.Errorf("window is not initialized")
	}
	p.running = false
	p.window.SetShouldClose(true)
	p.window.Destroy()
	p.window = nil
	glfw.Terminate()
	return nil
}

func (p *glfwPlatform) cursorPixels() (float32, float32) {
	xpos, ypos := p.window.GetCursorPos()
	sx, sy := p.window.GetContentScale()
	return float32(xpos) * sx, float32(ypos) * sy
}

func mapButton(b glfw.MouseButton) (window.MouseButton, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return window.MouseButtonLeft, true
	case glfw.MouseButtonRight:
		return window.MouseButtonRight, true
	case glfw.MouseButtonMiddle:
		return window.MouseButtonMiddle, true
	}
	return 0, false
}
