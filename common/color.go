package common

import (
	"fmt"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a linear-blendable sRGB color with an alpha channel.
// RGB components are held as a colorful.Color so blending and space conversions come for free.
type Color struct {
	colorful.Color
	A float64
}

// RGB returns an opaque Color from sRGB components in [0, 1].
func RGB(r, g, b float64) Color {
	return Color{Color: colorful.Color{R: r, G: g, B: b}, A: 1}
}

// Hex parses a "#rrggbb" string into an opaque Color.
//
// Parameters:
//   - s: hex color string, with leading '#'
//
// Returns:
//   - Color: the parsed color
//   - error: error if the string is not a valid hex color
func Hex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{Color: c, A: 1}, nil
}

// MustHex is Hex for package-level constants. It panics on malformed input.
func MustHex(s string) Color {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// RandomColor returns an opaque color with uniformly random sRGB channels drawn from rng.
func RandomColor(rng *rand.Rand) Color {
	return RGB(rng.Float64(), rng.Float64(), rng.Float64())
}

// Lerp blends c toward other by t in RGB space. Alpha is interpolated linearly.
func (c Color) Lerp(other Color, t float64) Color {
	return Color{
		Color: c.Color.BlendRgb(other.Color, t),
		A:     c.A + (other.A-c.A)*t,
	}
}

// Vec3 returns the RGB channels as float32 values.
func (c Color) Vec3() [3]float32 {
	return [3]float32{float32(c.R), float32(c.G), float32(c.B)}
}

// Vec4 returns the RGBA channels as float32 values, the layout used by GPU uniforms.
func (c Color) Vec4() [4]float32 {
	return [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
}

// String returns the hex form of the color.
func (c Color) String() string {
	return c.Color.Clamped().Hex()
}

// Common colors.
var (
	White = RGB(1, 1, 1)
	Black = RGB(0, 0, 0)
	Red   = RGB(1, 0, 0)
	Green = RGB(0, 1, 0)
	Blue  = RGB(0, 0, 1)
)
