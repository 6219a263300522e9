// Package graphics provides the geometry and color primitives shared by the
// scene graph, the input router, and effect components.
package graphics

// Offset represents a 2D point or vector in pixel coordinates.
type Offset struct {
	X float64
	Y float64
}

// Size represents width and height dimensions in pixels.
type Size struct {
	Width  float64
	Height float64
}

// IsEmpty returns true if either dimension is zero or negative.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// AspectRatio returns width divided by height, or 0 for an empty size.
func (s Size) AspectRatio() float64 {
	if s.Height == 0 {
		return 0
	}
	return s.Width / s.Height
}

// Rect represents a rectangle using left, top, right, bottom coordinates.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// RectFromLTWH constructs a Rect from left, top, width, height values.
func RectFromLTWH(left, top, width, height float64) Rect {
	return Rect{
		Left:   left,
		Top:    top,
		Right:  left + width,
		Bottom: top + height,
	}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Size returns the size of the rectangle.
func (r Rect) Size() Size {
	return Size{Width: r.Width(), Height: r.Height()}
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Offset {
	return Offset{
		X: (r.Left + r.Right) * 0.5,
		Y: (r.Top + r.Bottom) * 0.5,
	}
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(p Offset) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// FitInside returns the largest rectangle with the aspect ratio of content
// that fits inside bounds, centered. This is the "aspect-fit" placement used
// when attaching a rendered surface to a mount point: the content is capped
// to the container bounds without stretching either axis.
func FitInside(content Size, bounds Rect) Rect {
	if content.IsEmpty() || bounds.Size().IsEmpty() {
		return Rect{Left: bounds.Left, Top: bounds.Top, Right: bounds.Left, Bottom: bounds.Top}
	}
	scaleX := bounds.Width() / content.Width
	scaleY := bounds.Height() / content.Height
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}
	w := content.Width * scale
	h := content.Height * scale
	left := bounds.Left + (bounds.Width()-w)*0.5
	top := bounds.Top + (bounds.Height()-h)*0.5
	return RectFromLTWH(left, top, w, h)
}
