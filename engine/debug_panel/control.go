package debug_panel

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/Carmen-Shannon/oxy-demos/common"
	"github.com/lucasb-eyer/go-colorful"
)

// Kind identifies the value type of a binding.
type Kind int

const (
	KindFloat Kind = iota
	KindInt
	KindBool
	KindColor
	KindChoice
)

// Binding is the type-erased view of a Control used by the panel's keyboard driver and presets.
type Binding interface {
	// Folder returns the name of the folder holding the binding.
	Folder() string

	// Name returns the binding label.
	Name() string

	// Kind returns the value type.
	Kind() Kind

	// String formats the current value.
	String() string

	// Step nudges the value one step up (dir > 0) or down (dir < 0). Bools toggle and choices
	// cycle. Fires OnChange.
	Step(dir int)

	// Commit fires OnFinishChange with the current value.
	Commit()

	// Apply sets the value from a decoded preset value and fires OnChange and OnFinishChange.
	//
	// Parameters:
	//   - v: a TOML-decoded value (float64, int64, bool or string)
	//
	// Returns:
	//   - error: error if v has the wrong type or is not a valid choice or color
	Apply(v any) error

	// Encode returns the current value in the form written to presets.
	Encode() any
}

// Control binds one live parameter to getter and setter functions, the way a dat.GUI controller
// binds to an object property. OnChange fires on every edit and OnFinishChange once an edit is
// committed.
type Control[T any] struct {
	folder string
	name   string
	kind   Kind

	get func() T
	set func(T)

	normalize func(T) T
	step      func(T, int) T
	parse     func(any) (T, error)
	format    func(T) string
	encode    func(T) any

	onChange []func(T)
	onFinish []func(T)
}

var _ Binding = &Control[float32]{}

func (c *Control[T]) Folder() string { return c.folder }
func (c *Control[T]) Name() string   { return c.name }
func (c *Control[T]) Kind() Kind     { return c.kind }

// Value returns the current value read through the getter.
func (c *Control[T]) Value() T {
	return c.get()
}

// SetValue writes a value and fires OnChange followed by OnFinishChange.
//
// Parameters:
//   - v: the new value; numeric values are clamped to the control's range
func (c *Control[T]) SetValue(v T) {
	c.change(v)
	c.Commit()
}

// OnChange registers a function called after every edit.
//
// Parameters:
//   - fn: receives the new value
//
// Returns:
//   - *Control[T]: the control, for chaining
func (c *Control[T]) OnChange(fn func(T)) *Control[T] {
	c.onChange = append(c.onChange, fn)
	return c
}

// OnFinishChange registers a function called when an edit is committed.
//
// Parameters:
//   - fn: receives the committed value
//
// Returns:
//   - *Control[T]: the control, for chaining
func (c *Control[T]) OnFinishChange(fn func(T)) *Control[T] {
	c.onFinish = append(c.onFinish, fn)
	return c
}

func (c *Control[T]) String() string {
	return c.format(c.get())
}

func (c *Control[T]) Step(dir int) {
	c.change(c.step(c.get(), dir))
}

func (c *Control[T]) Commit() {
	v := c.get()
	for _, fn := range c.onFinish {
		fn(v)
	}
}

func (c *Control[T]) Apply(raw any) error {
	v, err := c.parse(raw)
	if err != nil {
		return fmt.Errorf("%s/%s: %w", c.folder, c.name, err)
	}
	c.SetValue(v)
	return nil
}

func (c *Control[T]) Encode() any {
	return c.encode(c.get())
}

func (c *Control[T]) change(v T) {
	if c.normalize != nil {
		v = c.normalize(v)
	}
	c.set(v)
	for _, fn := range c.onChange {
		fn(v)
	}
}

func newFloatControl(folder, name string, get func() float32, set func(float32), lo, hi, step float32) *Control[float32] {
	if step <= 0 {
		step = (hi - lo) / 100
	}
	return &Control[float32]{
		folder: folder, name: name, kind: KindFloat, get: get, set: set,
		normalize: func(v float32) float32 { return common.Clamp(v, lo, hi) },
		step:      func(v float32, dir int) float32 { return v + float32(sign(dir))*step },
		parse: func(raw any) (float32, error) {
			switch x := raw.(type) {
			case float64:
				return float32(x), nil
			case int64:
				return float32(x), nil
			}
			return 0, fmt.Errorf("want a number, got %T", raw)
		},
		format: func(v float32) string { return strconv.FormatFloat(float64(v), 'f', decimals(step), 32) },
		encode: func(v float32) any { return float64(v) },
	}
}

func newIntControl(folder, name string, get func() int, set func(int), lo, hi, step int) *Control[int] {
	step = max(step, 1)
	return &Control[int]{
		folder: folder, name: name, kind: KindInt, get: get, set: set,
		normalize: func(v int) int { return common.Clamp(v, lo, hi) },
		step:      func(v, dir int) int { return v + sign(dir)*step },
		parse: func(raw any) (int, error) {
			switch x := raw.(type) {
			case int64:
				return int(x), nil
			case float64:
				if x == math.Trunc(x) {
					return int(x), nil
				}
			}
			return 0, fmt.Errorf("want an integer, got %v", raw)
		},
		format: strconv.Itoa,
		encode: func(v int) any { return int64(v) },
	}
}

func newBoolControl(folder, name string, get func() bool, set func(bool)) *Control[bool] {
	return &Control[bool]{
		folder: folder, name: name, kind: KindBool, get: get, set: set,
		step: func(v bool, _ int) bool { return !v },
		parse: func(raw any) (bool, error) {
			if b, ok := raw.(bool); ok {
				return b, nil
			}
			return false, fmt.Errorf("want a bool, got %T", raw)
		},
		format: strconv.FormatBool,
		encode: func(v bool) any { return v },
	}
}

// hueStep is how far Left/Right rotate a color's hue, in degrees.
const hueStep = 15

func newColorControl(folder, name string, get func() common.Color, set func(common.Color)) *Control[common.Color] {
	return &Control[common.Color]{
		folder: folder, name: name, kind: KindColor, get: get, set: set,
		step: func(c common.Color, dir int) common.Color {
			h, s, v := c.Hsv()
			h = math.Mod(h+float64(sign(dir)*hueStep)+360, 360)
			return common.Color{Color: colorful.Hsv(h, s, v), A: c.A}
		},
		parse: func(raw any) (common.Color, error) {
			s, ok := raw.(string)
			if !ok {
				return common.Color{}, fmt.Errorf("want a hex color string, got %T", raw)
			}
			return common.Hex(s)
		},
		format: common.Color.String,
		encode: func(c common.Color) any { return c.String() },
	}
}

func newChoiceControl(folder, name string, get func() string, set func(string), options []string) *Control[string] {
	options = slices.Clone(options)
	return &Control[string]{
		folder: folder, name: name, kind: KindChoice, get: get, set: set,
		step: func(v string, dir int) string {
			if len(options) == 0 {
				return v
			}
			i := slices.Index(options, v)
			n := len(options)
			return options[((i+sign(dir))%n+n)%n]
		},
		parse: func(raw any) (string, error) {
			s, ok := raw.(string)
			if !ok || !slices.Contains(options, s) {
				return "", fmt.Errorf("want one of %s, got %v", strings.Join(options, ", "), raw)
			}
			return s, nil
		},
		format: func(v string) string { return v },
		encode: func(v string) any { return v },
	}
}

func sign(dir int) int {
	switch {
	case dir > 0:
		return 1
	case dir < 0:
		return -1
	}
	return 0
}

// decimals returns how many fraction digits display a step size.
func decimals(step float32) int {
	d := 0
	for s := float64(step); d < 4 && math.Abs(s-math.Round(s)) > 1e-6; s *= 10 {
		d++
	}
	return d
}
