package showcase

import (
	"math"
	"math/rand"
	"time"

	"github.com/go-vivid/vivid/pkg/animation"
	"github.com/go-vivid/vivid/pkg/graphics"
	"github.com/go-vivid/vivid/pkg/host"
	"github.com/go-vivid/vivid/pkg/scene"
)

const (
	particleCount     = 120
	particleRadius    = 3.0
	attractorStrength = 40.0
)

// ParticleField is a scene-graph effect: a cloud of drifting dots that are
// gently pulled toward the pointer. Its constructor ships as the module's
// default export.
type ParticleField struct {
	ticker *animation.Ticker
	group  *scene.Container
	dots   []*scene.Dot
	vel    []graphics.Offset
	width  float64
	height float64

	attractor graphics.Offset
	influence float64
	running   bool
	destroyed bool
}

// NewParticleField builds the field and attaches its visuals under the
// mount target. Animation does not begin until Start.
func NewParticleField(ctx *host.Context, spec host.MountSpec) (*ParticleField, error) {
	f := &ParticleField{
		group:     ctx.Factory().NewContainer(),
		width:     spec.Width,
		height:    spec.Height,
		attractor: graphics.Offset{X: spec.Width / 2, Y: spec.Height / 2},
	}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < particleCount; i++ {
		hue := uint8(96 + rng.Intn(128))
		dot := ctx.Factory().NewDot(particleRadius, graphics.RGBA8(hue, hue, 0xFF, 0xC0))
		dot.Position = graphics.Offset{X: rng.Float64() * f.width, Y: rng.Float64() * f.height}
		f.group.AddChild(dot)
		f.dots = append(f.dots, dot)
		f.vel = append(f.vel, graphics.Offset{
			X: (rng.Float64() - 0.5) * 30,
			Y: (rng.Float64() - 0.5) * 30,
		})
	}
	spec.MountTarget.AddChild(f.group)

	f.ticker = ctx.Ticker().NewTicker(f.step)
	return f, nil
}

// step advances the simulation one frame at a nominal 60Hz rate.
func (f *ParticleField) step(time.Duration) {
	const dt = 1.0 / 60
	for i, dot := range f.dots {
		if f.influence > 0 {
			dx := f.attractor.X - dot.Position.X
			dy := f.attractor.Y - dot.Position.Y
			dist := math.Hypot(dx, dy)
			if dist > 1 {
				pull := attractorStrength * f.influence * dt / dist
				f.vel[i].X += dx * pull
				f.vel[i].Y += dy * pull
			}
		}
		dot.Position.X = wrap(dot.Position.X+f.vel[i].X*dt, f.width)
		dot.Position.Y = wrap(dot.Position.Y+f.vel[i].Y*dt, f.height)
	}
}

func wrap(v, bound float64) float64 {
	if v < 0 {
		return v + bound
	}
	if v > bound {
		return v - bound
	}
	return v
}

// Start begins animating. Idempotent.
func (f *ParticleField) Start() {
	if f.running || f.destroyed {
		return
	}
	f.running = true
	f.ticker.Start()
}

// Stop halts animation without releasing anything.
func (f *ParticleField) Stop() {
	if !f.running {
		return
	}
	f.running = false
	f.ticker.Stop()
}

// Destroy stops the animation and detaches all nodes. Idempotent.
func (f *ParticleField) Destroy() {
	if f.destroyed {
		return
	}
	f.destroyed = true
	f.Stop()
	f.group.Destroy()
	f.dots = nil
	f.vel = nil
}

// SetMousePosition moves the attractor. Coordinates are in the internal
// resolution; influence scales the pull, 0 disabling it.
func (f *ParticleField) SetMousePosition(x, y, influence float64) {
	f.attractor = graphics.Offset{X: x, Y: y}
	f.influence = influence
}
