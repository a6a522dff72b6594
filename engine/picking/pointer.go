package picking

import "sync"

// Pointer tracks the last pointer position in normalized device coordinates. It is fed by the
// window's mouse-move callback and read by the frame callback.
type Pointer struct {
	mu     sync.Mutex
	x, y   float32
	inside bool
}

// NewPointer creates a pointer that has not moved yet.
func NewPointer() *Pointer {
	return &Pointer{}
}

// Move records a pointer position in window pixels.
//
// Parameters:
//   - px, py: position in pixels from the top-left corner
//   - width, height: the current viewport size in pixels
func (p *Pointer) Move(px, py float32, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.x = px/float32(width)*2 - 1
	p.y = -(py/float32(height)*2 - 1)
	p.inside = true
}

// Leave marks the pointer as outside the viewport.
func (p *Pointer) Leave() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inside = false
}

// NDC returns the pointer position in [-1, 1] with +Y up.
//
// Returns:
//   - float32, float32: the position
//   - bool: false until the pointer has moved over the viewport
func (p *Pointer) NDC() (float32, float32, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.x, p.y, p.inside
}
