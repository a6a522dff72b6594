package tween

// TweenBuilderOption is a functional option for configuring a Tween.
type TweenBuilderOption func(*Tween)

// WithEasing sets the easing curve. The default is Linear.
//
// Parameters:
//   - ease: the easing function; nil keeps the current one
//
// Returns:
//   - TweenBuilderOption: option function to apply
func WithEasing(ease Easing) TweenBuilderOption {
	return func(t *Tween) {
		if ease != nil {
			t.ease = ease
		}
	}
}

// WithOnComplete sets a function called once when the tween finishes.
func WithOnComplete(fn func()) TweenBuilderOption {
	return func(t *Tween) {
		t.onComplete = fn
	}
}
