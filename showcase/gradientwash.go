package showcase

import (
	"context"
	"math"
	"time"

	"github.com/go-vivid/vivid/pkg/animation"
	"github.com/go-vivid/vivid/pkg/effects"
	"github.com/go-vivid/vivid/pkg/graphics"
	"github.com/go-vivid/vivid/pkg/host"
	"github.com/go-vivid/vivid/pkg/scene"
)

const washBands = 48

// GradientWash is a scene-graph effect that sweeps a two-color gradient
// across the mount. Unlike the particle field, its module has no default
// export; the constructor is only reachable through the named export the
// catalog lists. It also carries async setup and a declared init method.
type GradientWash struct {
	timeline *animation.Timeline
	group    *scene.Container
	bands    []*scene.Box
	width    float64
	height   float64

	from  graphics.Color
	to    graphics.Color
	angle float64
	anim  *animation.Animation
	ready bool

	running   bool
	destroyed bool
}

// NewGradientWash builds the wash under the mount target. The declared
// signature matches the host's typed fast path, so construction never goes
// through reflection.
func NewGradientWash(ctx *host.Context, spec host.MountSpec) (effects.Component, error) {
	w := &GradientWash{
		timeline: ctx.Timeline(),
		group:    ctx.Factory().NewContainer(),
		width:    spec.Width,
		height:   spec.Height,
		from:     graphics.RGB(0x1A, 0x23, 0x5E),
		to:       graphics.RGB(0xFF, 0x6E, 0x40),
	}
	bandW := w.width / washBands
	for i := 0; i < washBands; i++ {
		box := ctx.Factory().NewBox(graphics.Size{Width: bandW + 1, Height: w.height}, w.from)
		box.Position = graphics.Offset{X: float64(i) * bandW}
		w.group.AddChild(box)
		w.bands = append(w.bands, box)
	}
	spec.MountTarget.AddChild(w.group)
	return w, nil
}

// Setup precomputes the resting gradient. It respects cancellation so a
// mount abandoned mid-setup does not keep working.
func (w *GradientWash) Setup(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.paint(0)
	w.ready = true
	return nil
}

// SetAngle declares the sweep direction in degrees. Catalog lifecycle
// blocks call this between setup and start.
func (w *GradientWash) SetAngle(degrees float64) {
	w.angle = math.Mod(degrees, 360)
	if w.ready {
		w.paint(0)
	}
}

// Start sweeps the gradient on a repeating two-second timeline.
func (w *GradientWash) Start() {
	if w.running || w.destroyed {
		return
	}
	w.running = true
	w.sweep()
}

func (w *GradientWash) sweep() {
	w.anim = w.timeline.Animate(2*time.Second, animation.EaseInOut, w.paint).OnComplete(func() {
		if w.running {
			w.sweep()
		}
	})
}

// paint recolors each band for sweep progress t in [0, 1].
func (w *GradientWash) paint(t float64) {
	phase := math.Cos(w.angle * math.Pi / 180)
	for i, box := range w.bands {
		pos := float64(i) / float64(len(w.bands)-1)
		if phase < 0 {
			pos = 1 - pos
		}
		box.Color = graphics.LerpColor(w.from, w.to, math.Abs(pos-t))
	}
}

// Stop halts the sweep, leaving the last frame on screen.
func (w *GradientWash) Stop() {
	if !w.running {
		return
	}
	w.running = false
	if w.anim != nil {
		w.anim.Stop()
	}
}

// Destroy stops the sweep and detaches all nodes. Idempotent.
func (w *GradientWash) Destroy() {
	if w.destroyed {
		return
	}
	w.destroyed = true
	w.Stop()
	w.group.Destroy()
	w.bands = nil
}
