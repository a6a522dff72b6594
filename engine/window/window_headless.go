package window

import (
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// HeadlessPlatform is a Platform with no native window. Events are queued by the caller and
// delivered on the next PollEvents, the same point in the loop where a native platform would
// deliver them. It backs CI smoke runs and tests.
type HeadlessPlatform struct {
	mu        sync.Mutex
	sink      EventSink
	width     int
	height    int
	scale     float32
	maxFrames int
	polls     int
	closed    bool
	title     string
	pending   []func(EventSink)
}

var _ Platform = &HeadlessPlatform{}

// NewHeadlessPlatform creates a headless platform that reports closed after maxFrames polls.
// A maxFrames of zero never closes on its own.
func NewHeadlessPlatform(maxFrames int) *HeadlessPlatform {
	return &HeadlessPlatform{scale: 1, maxFrames: maxFrames}
}

func (p *HeadlessPlatform) Open(title string, width, height int, sink EventSink) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sink = sink
	p.title = title
	p.width = width
	p.height = height
	return nil
}

func (p *HeadlessPlatform) PollEvents() bool {
	p.mu.Lock()
	events := p.pending
	p.pending = nil
	sink := p.sink
	p.mu.Unlock()

	for _, ev := range events {
		ev(sink)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false
	}
	p.polls++
	if p.maxFrames > 0 && p.polls > p.maxFrames {
		return false
	}
	return true
}

func (p *HeadlessPlatform) FramebufferSize() (int, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.width, p.height
}

func (p *HeadlessPlatform) ContentScale() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.scale
}

func (p *HeadlessPlatform) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return nil
}

func (p *HeadlessPlatform) SetTitle(title string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.title = title
}

// Title returns the last title set on the platform.
func (p *HeadlessPlatform) Title() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.title
}

func (p *HeadlessPlatform) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// Polls returns how many times PollEvents reported the window as running.
func (p *HeadlessPlatform) Polls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.maxFrames > 0 && p.polls > p.maxFrames {
		return p.maxFrames
	}
	return p.polls
}

// SetContentScale changes the reported device pixel ratio.
func (p *HeadlessPlatform) SetContentScale(scale float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scale = scale
}

// Resize queues a framebuffer resize.
func (p *HeadlessPlatform) Resize(width, height int) {
	p.enqueue(func(s EventSink) {
		p.mu.Lock()
		p.width, p.height = width, height
		p.mu.Unlock()
		s.DispatchResize(width, height)
	})
}

// MoveMouse queues a pointer move.
func (p *HeadlessPlatform) MoveMouse(x, y float32) {
	p.enqueue(func(s EventSink) { s.DispatchMouseMove(x, y) })
}

// LeaveMouse queues the pointer leaving the window.
func (p *HeadlessPlatform) LeaveMouse() {
	p.enqueue(func(s EventSink) { s.DispatchMouseLeave() })
}

// PressMouse queues a button press.
func (p *HeadlessPlatform) PressMouse(button MouseButton, x, y float32) {
	p.enqueue(func(s EventSink) { s.DispatchMouseButton(button, true, x, y) })
}

// ReleaseMouse queues a button release.
func (p *HeadlessPlatform) ReleaseMouse(button MouseButton, x, y float32) {
	p.enqueue(func(s EventSink) { s.DispatchMouseButton(button, false, x, y) })
}

// Scroll queues a wheel event.
func (p *HeadlessPlatform) Scroll(delta float32) {
	p.enqueue(func(s EventSink) { s.DispatchScroll(delta) })
}

// PressKey queues a key press and release.
func (p *HeadlessPlatform) PressKey(keyCode uint32) {
	p.enqueue(func(s EventSink) {
		s.DispatchKey(keyCode, true)
		s.DispatchKey(keyCode, false)
	})
}

func (p *HeadlessPlatform) enqueue(ev func(EventSink)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = append(p.pending, ev)
}
