// Package tween runs time-based interpolations advanced by the frame clock.
package tween

import (
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-demos/common"
)

// Easing maps linear progress in [0, 1] to eased progress.
type Easing func(t float32) float32

// Linear leaves progress unchanged.
func Linear(t float32) float32 { return t }

// EaseOutQuad decelerates toward the end.
func EaseOutQuad(t float32) float32 { return 1 - (1-t)*(1-t) }

// Tween calls an update function with eased progress until its duration has elapsed.
// A Tween is driven by a Group and is not safe for use by multiple groups.
type Tween struct {
	duration   float32
	elapsed    float32
	ease       Easing
	onUpdate   func(progress float32)
	onComplete func()
	done       bool
}

// New creates a tween.
//
// Parameters:
//   - duration: length in seconds; values <= 0 finish on the first step
//   - onUpdate: called with eased progress in [0, 1] on start and on every step
//   - options: functional options to configure the tween
//
// Returns:
//   - *Tween: the tween, not yet started
func New(duration float32, onUpdate func(progress float32), options ...TweenBuilderOption) *Tween {
	t := &Tween{
		duration: duration,
		ease:     Linear,
		onUpdate: onUpdate,
	}
	for _, opt := range options {
		opt(t)
	}
	return t
}

// Color creates a tween blending from one color to another and handing each value to apply.
//
// Parameters:
//   - from: the starting color
//   - to: the final color
//   - duration: length in seconds
//   - apply: receives the blended color
//   - options: functional options to configure the tween
//
// Returns:
//   - *Tween: the tween, not yet started
func Color(from, to common.Color, duration float32, apply func(common.Color), options ...TweenBuilderOption) *Tween {
	return New(duration, func(p float32) {
		apply(from.Lerp(to, float64(p)))
	}, options...)
}

// Step advances the tween by dt seconds.
//
// Parameters:
//   - dt: elapsed seconds since the last step
//
// Returns:
//   - bool: true once the tween has finished
func (t *Tween) Step(dt float32) bool {
	if t.done {
		return true
	}
	t.elapsed += dt
	progress := float32(1)
	if t.duration > 0 && t.elapsed < t.duration {
		progress = t.elapsed / t.duration
	}
	t.apply(progress)
	if progress >= 1 {
		t.done = true
		if t.onComplete != nil {
			t.onComplete()
		}
	}
	return t.done
}

// Done reports whether the tween reached its end.
func (t *Tween) Done() bool {
	return t.done
}

// Duration returns the tween length in seconds.
func (t *Tween) Duration() float32 {
	return t.duration
}

func (t *Tween) apply(progress float32) {
	if t.onUpdate != nil {
		t.onUpdate(t.ease(progress))
	}
}

// Group owns a set of running tweens. Tweens in a group run independently of each other.
type Group struct {
	mu     *sync.Mutex
	tweens []*Tween
}

// NewGroup creates an empty group.
func NewGroup() *Group {
	return &Group{mu: &sync.Mutex{}}
}

// Add starts a tween, applying its initial value immediately.
//
// Parameters:
//   - t: the tween to start
func (g *Group) Add(t *Tween) {
	if t == nil {
		return
	}
	t.apply(0)
	g.mu.Lock()
	g.tweens = append(g.tweens, t)
	g.mu.Unlock()
}

// Update steps every running tween by dt seconds and drops the finished ones.
//
// Parameters:
//   - dt: elapsed seconds since the last update
func (g *Group) Update(dt float32) {
	g.mu.Lock()
	running := slices.Clone(g.tweens)
	g.mu.Unlock()

	finished := make(map[*Tween]bool)
	for _, t := range running {
		if t.Step(dt) {
			finished[t] = true
		}
	}
	if len(finished) == 0 {
		return
	}

	g.mu.Lock()
	g.tweens = slices.DeleteFunc(g.tweens, func(t *Tween) bool { return finished[t] })
	g.mu.Unlock()
}

// Len returns the number of running tweens.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.tweens)
}

// Clear drops every running tween without completing it.
func (g *Group) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.tweens = nil
}
