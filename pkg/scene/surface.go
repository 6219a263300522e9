package scene

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/go-vivid/vivid/pkg/graphics"
)

// Surface is a rendering target with an internal pixel resolution and a
// display placement. The renderer owns one for scene-graph mounts;
// self-context components create and own their surface themselves.
type Surface struct {
	buf     *image.RGBA
	width   int
	height  int
	display graphics.Rect
}

// NewSurface allocates a surface at the given internal resolution.
func NewSurface(width, height int) *Surface {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	return &Surface{
		buf:    image.NewRGBA(image.Rect(0, 0, width, height)),
		width:  width,
		height: height,
	}
}

// Image returns the backing pixel buffer, or nil after Release.
func (s *Surface) Image() *image.RGBA {
	return s.buf
}

// Size returns the internal resolution.
func (s *Surface) Size() graphics.Size {
	return graphics.Size{Width: float64(s.width), Height: float64(s.height)}
}

// FitTo places the surface inside the given bounds preserving aspect ratio.
// The computed placement is what a caller uses to scale input coordinates
// between display space and the internal resolution.
func (s *Surface) FitTo(bounds graphics.Rect) {
	s.display = graphics.FitInside(s.Size(), bounds)
}

// DisplayRect returns the current aspect-fit placement. Zero until FitTo
// has been called.
func (s *Surface) DisplayRect() graphics.Rect {
	return s.display
}

// Scaled resamples the surface into a new image of the given size using
// bilinear filtering. Used when exporting a frame at display resolution.
func (s *Surface) Scaled(width, height int) *image.RGBA {
	if s.buf == nil || width <= 0 || height <= 0 {
		return nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), s.buf, s.buf.Bounds(), xdraw.Src, nil)
	return dst
}

// Release drops the backing buffer. Further painting is a no-op. Release is
// idempotent.
func (s *Surface) Release() {
	s.buf = nil
}

// Released reports whether the backing buffer has been dropped.
func (s *Surface) Released() bool {
	return s.buf == nil
}
