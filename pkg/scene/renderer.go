package scene

import (
	"fmt"

	"github.com/go-vivid/vivid/pkg/graphics"
)

// maxSurfacePixels caps renderer allocations. A mount point reporting an
// absurd size is treated as a backend initialization failure rather than an
// attempt to allocate gigabytes of framebuffer.
const maxSurfacePixels = 16384 * 16384

// Renderer owns a surface and a stage (the root container) and composites
// the scene graph into the surface on each Render call.
//
// A renderer is exclusively owned by one mount. Destroy releases the stage,
// all of its children, and the backing pixel buffer; the renderer must not
// be used afterwards.
type Renderer struct {
	surface    *Surface
	stage      *Container
	clearColor graphics.Color
	destroyed  bool
}

// NewRenderer creates a renderer with an internal resolution of the given
// size. Returns an error if the requested surface cannot be created.
func NewRenderer(width, height int) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("scene: invalid renderer size %dx%d", width, height)
	}
	if width*height > maxSurfacePixels {
		return nil, fmt.Errorf("scene: surface %dx%d exceeds maximum backing store", width, height)
	}
	return &Renderer{
		surface:    NewSurface(width, height),
		stage:      NewContainer(),
		clearColor: graphics.RGB(0, 0, 0),
	}, nil
}

// Stage returns the root container of the scene graph.
func (r *Renderer) Stage() *Container {
	return r.stage
}

// Surface returns the renderer's output surface.
func (r *Renderer) Surface() *Surface {
	return r.surface
}

// Size returns the internal resolution.
func (r *Renderer) Size() graphics.Size {
	return r.surface.Size()
}

// SetClearColor sets the background color used at the start of each frame.
func (r *Renderer) SetClearColor(col graphics.Color) {
	r.clearColor = col
}

// Render composites the scene graph into the surface. A destroyed renderer
// renders nothing.
func (r *Renderer) Render() {
	if r.destroyed || r.surface.Released() {
		return
	}
	canvas := NewCanvas(r.surface.Image())
	canvas.Clear(r.clearColor)
	r.stage.Paint(canvas, graphics.Offset{})
}

// Destroy tears down the stage, every child node, and the backing buffer.
// Destroy is idempotent.
func (r *Renderer) Destroy() {
	if r.destroyed {
		return
	}
	r.destroyed = true
	r.stage.Destroy()
	r.surface.Release()
}

// Destroyed reports whether Destroy has run.
func (r *Renderer) Destroyed() bool {
	return r.destroyed
}
