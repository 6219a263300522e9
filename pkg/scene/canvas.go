// Package scene provides the retained scene graph and the software renderer
// used by the demo host. Nodes are painted back-to-front into an in-memory
// RGBA surface each frame; there is no GPU dependency, which keeps the host
// fully testable headless.
package scene

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/go-vivid/vivid/pkg/graphics"
)

// Canvas renders drawing commands into an RGBA buffer.
//
// A Canvas is handed to each node's Paint method during a render pass. All
// coordinates are in the renderer's internal resolution, not display pixels.
type Canvas struct {
	dst *image.RGBA
}

// NewCanvas creates a canvas over the given buffer.
func NewCanvas(dst *image.RGBA) *Canvas {
	return &Canvas{dst: dst}
}

// Bounds returns the drawable area in internal pixels.
func (c *Canvas) Bounds() graphics.Rect {
	b := c.dst.Bounds()
	return graphics.RectFromLTWH(0, 0, float64(b.Dx()), float64(b.Dy()))
}

// Clear fills the entire canvas with the given color.
func (c *Canvas) Clear(col graphics.Color) {
	draw.Draw(c.dst, c.dst.Bounds(), image.NewUniform(toNRGBA(col)), image.Point{}, draw.Src)
}

// FillRect fills a rectangle, alpha-blended over existing content.
func (c *Canvas) FillRect(rect graphics.Rect, col graphics.Color) {
	r := image.Rect(int(rect.Left), int(rect.Top), int(math.Ceil(rect.Right)), int(math.Ceil(rect.Bottom)))
	r = r.Intersect(c.dst.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(c.dst, r, image.NewUniform(toNRGBA(col)), image.Point{}, draw.Over)
}

// FillCircle fills a circle centered at the given point, alpha-blended.
func (c *Canvas) FillCircle(center graphics.Offset, radius float64, col graphics.Color) {
	if radius <= 0 {
		return
	}
	src := image.NewUniform(toNRGBA(col))
	minY := int(center.Y - radius)
	maxY := int(math.Ceil(center.Y + radius))
	bounds := c.dst.Bounds()
	r2 := radius * radius
	for y := minY; y <= maxY; y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		dy := float64(y) + 0.5 - center.Y
		// Horizontal chord of the circle at this scanline.
		span := r2 - dy*dy
		if span < 0 {
			continue
		}
		half := math.Sqrt(span)
		x0 := int(center.X - half)
		x1 := int(math.Ceil(center.X + half))
		row := image.Rect(x0, y, x1, y+1).Intersect(bounds)
		if !row.Empty() {
			draw.Draw(c.dst, row, src, image.Point{}, draw.Over)
		}
	}
}

// FillLine draws a 1px line segment using DDA stepping, alpha-blended.
func (c *Canvas) FillLine(start, end graphics.Offset, col graphics.Color) {
	dx := end.X - start.X
	dy := end.Y - start.Y
	steps := math.Max(math.Abs(dx), math.Abs(dy))
	if steps < 1 {
		steps = 1
	}
	nrgba := toNRGBA(col)
	bounds := c.dst.Bounds()
	for i := 0.0; i <= steps; i++ {
		t := i / steps
		x := int(start.X + dx*t)
		y := int(start.Y + dy*t)
		if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
			blendPixel(c.dst, x, y, nrgba)
		}
	}
}

func blendPixel(dst *image.RGBA, x, y int, src color.NRGBA) {
	if src.A == 0xFF {
		dst.SetRGBA(x, y, color.RGBA{R: src.R, G: src.G, B: src.B, A: 0xFF})
		return
	}
	draw.Draw(dst, image.Rect(x, y, x+1, y+1), image.NewUniform(src), image.Point{}, draw.Over)
}

func toNRGBA(c graphics.Color) color.NRGBA {
	a, r, g, b := c.Components()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}
