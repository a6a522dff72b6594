package model

import (
	"errors"
	"image"
	"image/draw"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// ErrEmptyText is returned when the rasterized text covers no pixels.
var ErrEmptyText = errors.New("text produced no geometry")

// alphaThreshold is the coverage at which a glyph pixel becomes solid.
const alphaThreshold = 128

// TextGeometry rasterizes text with face and extrudes the covered pixels into a solid block
// model. Each horizontal run of solid pixels becomes one front and one back quad; side walls are
// emitted wherever a solid pixel borders an empty one. The result is centered on the origin.
//
// Parameters:
//   - face: the font face used to rasterize
//   - text: the string to render on a single line
//   - size: world-space height of one line
//   - depth: extrusion depth along Z
//
// Returns:
//   - *Buffers: the extruded geometry
//   - error: ErrEmptyText if nothing was drawn
func TextGeometry(face font.Face, text string, size, depth float32) (*Buffers, error) {
	mask := rasterize(face, text)
	bounds := mask.Bounds()
	solid := func(x, y int) bool {
		if x < bounds.Min.X || y < bounds.Min.Y || x >= bounds.Max.X || y >= bounds.Max.Y {
			return false
		}
		return mask.AlphaAt(x, y).A >= alphaThreshold
	}

	scale := size / float32(bounds.Dy())
	zf, zb := depth/2, -depth/2
	g := &geometryBuilder{}
	uvScale := 1 / size

	for py := bounds.Min.Y; py < bounds.Max.Y; py++ {
		y0 := -float32(py+1) * scale
		y1 := -float32(py) * scale

		run := -1
		for px := bounds.Min.X; px <= bounds.Max.X; px++ {
			if px < bounds.Max.X && solid(px, py) {
				if run < 0 {
					run = px
				}
				x0 := float32(px) * scale
				x1 := float32(px+1) * scale
				if !solid(px-1, py) {
					g.quad(mgl32.Vec3{x0, y0, zb}, mgl32.Vec3{x0, y0, zf}, mgl32.Vec3{x0, y1, zf}, mgl32.Vec3{x0, y1, zb}, mgl32.Vec3{-1, 0, 0}, uvScale)
				}
				if !solid(px+1, py) {
					g.quad(mgl32.Vec3{x1, y0, zf}, mgl32.Vec3{x1, y0, zb}, mgl32.Vec3{x1, y1, zb}, mgl32.Vec3{x1, y1, zf}, mgl32.Vec3{1, 0, 0}, uvScale)
				}
				if !solid(px, py-1) {
					g.quad(mgl32.Vec3{x0, y1, zf}, mgl32.Vec3{x1, y1, zf}, mgl32.Vec3{x1, y1, zb}, mgl32.Vec3{x0, y1, zb}, mgl32.Vec3{0, 1, 0}, uvScale)
				}
				if !solid(px, py+1) {
					g.quad(mgl32.Vec3{x0, y0, zb}, mgl32.Vec3{x1, y0, zb}, mgl32.Vec3{x1, y0, zf}, mgl32.Vec3{x0, y0, zf}, mgl32.Vec3{0, -1, 0}, uvScale)
				}
				continue
			}
			if run >= 0 {
				x0 := float32(run) * scale
				x1 := float32(px) * scale
				g.quad(mgl32.Vec3{x0, y0, zf}, mgl32.Vec3{x1, y0, zf}, mgl32.Vec3{x1, y1, zf}, mgl32.Vec3{x0, y1, zf}, mgl32.Vec3{0, 0, 1}, uvScale)
				g.quad(mgl32.Vec3{x1, y0, zb}, mgl32.Vec3{x0, y0, zb}, mgl32.Vec3{x0, y1, zb}, mgl32.Vec3{x1, y1, zb}, mgl32.Vec3{0, 0, -1}, uvScale)
				run = -1
			}
		}
	}

	b := g.buffers()
	if b.VertexCount() == 0 {
		return nil, ErrEmptyText
	}
	b.Center()
	return b, nil
}

// rasterize draws text onto an alpha mask sized to the face's line height and the string's
// advance width.
func rasterize(face font.Face, text string) *image.Alpha {
	m := face.Metrics()
	width := font.MeasureString(face, text).Ceil()
	height := (m.Ascent + m.Descent).Ceil()
	if width <= 0 || height <= 0 {
		return image.NewAlpha(image.Rect(0, 0, 0, 0))
	}

	dst := image.NewAlpha(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: m.Ascent},
	}
	draw.Draw(dst, dst.Bounds(), image.Transparent, image.Point{}, draw.Src)
	d.DrawString(text)
	return dst
}
