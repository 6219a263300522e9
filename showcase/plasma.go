package showcase

import (
	"image/color"
	"math"
	"time"

	"github.com/go-vivid/vivid/pkg/animation"
	"github.com/go-vivid/vivid/pkg/host"
	"github.com/go-vivid/vivid/pkg/scene"
)

const (
	plasmaWidth  = 320
	plasmaHeight = 240
)

// Plasma is a self-context effect: it owns its surface and every draw call,
// and the host only aspect-fits the surface into the mount bounds. The
// pointer shifts the interference pattern through normalized SetMouse
// coordinates.
type Plasma struct {
	surface *scene.Surface
	ticker  *animation.Ticker

	focusX float64
	focusY float64

	running   bool
	destroyed bool
}

// NewPlasma allocates the surface and registers the frame callback on the
// mount's scheduler. When cfg.AutoStart is set the pattern animates
// immediately; otherwise it waits for Start.
func NewPlasma(cfg host.SurfaceConfig) (*Plasma, error) {
	p := &Plasma{
		surface: scene.NewSurface(plasmaWidth, plasmaHeight),
		focusX:  0.5,
		focusY:  0.5,
	}
	p.ticker = cfg.Scheduler.NewTicker(p.draw)
	p.draw(0)
	if cfg.AutoStart {
		p.Start()
	}
	return p, nil
}

// draw repaints the interference pattern for the given elapsed time.
func (p *Plasma) draw(elapsed time.Duration) {
	img := p.surface.Image()
	if img == nil {
		return
	}
	t := elapsed.Seconds()
	cx := p.focusX * plasmaWidth
	cy := p.focusY * plasmaHeight
	for y := 0; y < plasmaHeight; y++ {
		for x := 0; x < plasmaWidth; x++ {
			dx := float64(x) - cx
			dy := float64(y) - cy
			v := math.Sin(float64(x)/16+t) +
				math.Sin(float64(y)/12-t) +
				math.Sin(math.Hypot(dx, dy)/14)
			// v is in [-3, 3]; fold it into a byte.
			shade := uint8((v + 3) / 6 * 255)
			img.SetRGBA(x, y, color.RGBA{R: shade / 3, G: shade / 2, B: shade, A: 0xFF})
		}
	}
}

// Start begins animating. Idempotent.
func (p *Plasma) Start() {
	if p.running || p.destroyed {
		return
	}
	p.running = true
	p.ticker.Start()
}

// Stop freezes the pattern.
func (p *Plasma) Stop() {
	if !p.running {
		return
	}
	p.running = false
	p.ticker.Stop()
}

// Destroy stops animation and releases the surface. Idempotent.
func (p *Plasma) Destroy() {
	if p.destroyed {
		return
	}
	p.destroyed = true
	p.Stop()
	p.surface.Release()
}

// SetMouse moves the pattern focus. Coordinates are normalized to [0, 1]
// regardless of the surface resolution.
func (p *Plasma) SetMouse(x, y float64) {
	p.focusX = x
	p.focusY = y
}

// Canvas exposes the owned surface so the host can aspect-fit it into the
// mount bounds.
func (p *Plasma) Canvas() *scene.Surface {
	return p.surface
}
