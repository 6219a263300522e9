package host

import (
	"github.com/go-vivid/vivid/pkg/animation"
	"github.com/go-vivid/vivid/pkg/scene"
)

// Context is the frozen bundle of shared primitives handed to scene-graph
// constructors: a factory for graphics nodes, the shared timeline engine,
// the mount's frame scheduler, and the active renderer and stage.
//
// A Context is built once per mount and never mutated afterwards; all
// fields are unexported and accessor-only, so multiple effect instances
// within one mount can share it safely.
type Context struct {
	factory  scene.Factory
	timeline *animation.Timeline
	ticker   *animation.Scheduler
	renderer *scene.Renderer
	stage    *scene.Container
}

func newContext(renderer *scene.Renderer, ticker *animation.Scheduler) *Context {
	return &Context{
		timeline: animation.NewTimeline(ticker),
		ticker:   ticker,
		renderer: renderer,
		stage:    renderer.Stage(),
	}
}

// Factory returns the scene node factory.
func (c *Context) Factory() scene.Factory { return c.factory }

// Timeline returns the shared timeline engine, driven by this mount's
// scheduler.
func (c *Context) Timeline() *animation.Timeline { return c.timeline }

// Ticker returns the per-mount frame scheduler.
func (c *Context) Ticker() *animation.Scheduler { return c.ticker }

// Renderer returns the active renderer.
func (c *Context) Renderer() *scene.Renderer { return c.renderer }

// Stage returns the renderer's root container.
func (c *Context) Stage() *scene.Container { return c.stage }

// MountSpec is passed alongside the Context to scene-graph constructors.
type MountSpec struct {
	// MountTarget is the scene node the candidate should attach its own
	// visuals under.
	MountTarget *scene.Container
	// Width and Height are the renderer's internal resolution.
	Width  float64
	Height float64
}

// SurfaceConfig is the minimal protocol object handed to self-context
// constructors. The module is solely responsible for surface creation,
// sizing, and its own draw calls.
type SurfaceConfig struct {
	// Surface is an existing surface the module may adopt; nil means the
	// module creates its own.
	Surface *scene.Surface
	// Scheduler is the per-frame scheduler dedicated to this mount. The
	// module's animation must be driven by it so it cannot outlive the
	// mount.
	Scheduler *animation.Scheduler
	// Width and Height are the mount bounds in display pixels.
	Width  float64
	Height float64
	// AutoStart tells the module whether to begin animating immediately.
	AutoStart bool
}
