package effects

import (
	"context"

	"github.com/go-vivid/vivid/pkg/scene"
)

// Component is a constructed effect instance. It is opaque to the host:
// every operation beyond construction is an optional capability, declared
// structurally by implementing one of the interfaces below.
type Component any

// Starter begins the effect's animation.
type Starter interface {
	Start()
}

// Stopper pauses the effect's animation.
type Stopper interface {
	Stop()
}

// Destroyer releases the effect's own resources. Absence is tolerated;
// the host releases everything it handed the component regardless.
type Destroyer interface {
	Destroy()
}

// SetupRunner performs asynchronous pre-start initialization. The host
// waits for Setup to return before running init calls; ctx carries the
// mount's cancellation.
type SetupRunner interface {
	Setup(ctx context.Context) error
}

// MouseTarget receives pointer positions in the effect's internal pixel
// space. influence is a weight in [0, 1]; the router always broadcasts 1.
type MouseTarget interface {
	SetMousePosition(x, y, influence float64)
}

// NormalizedMouseTarget receives pointer positions normalized to the 0-1
// range. Used by self-context effects, whose internal resolution the host
// does not know.
type NormalizedMouseTarget interface {
	SetMouse(x, y float64)
}

// SurfaceProvider exposes the surface a self-context effect created for
// itself, so the host can style it to fit the mount bounds.
type SurfaceProvider interface {
	Canvas() *scene.Surface
}

// Capabilities records which optional operations a component implements.
// It is computed once at construction time; lifecycle and input code
// branch on these flags instead of re-probing the instance.
type Capabilities struct {
	Start           bool
	Stop            bool
	Destroy         bool
	Setup           bool
	Mouse           bool
	NormalizedMouse bool
	Surface         bool
}

// DetectCapabilities inspects a component's structural capability set.
func DetectCapabilities(c Component) Capabilities {
	if c == nil {
		return Capabilities{}
	}
	var caps Capabilities
	_, caps.Start = c.(Starter)
	_, caps.Stop = c.(Stopper)
	_, caps.Destroy = c.(Destroyer)
	_, caps.Setup = c.(SetupRunner)
	_, caps.Mouse = c.(MouseTarget)
	_, caps.NormalizedMouse = c.(NormalizedMouseTarget)
	_, caps.Surface = c.(SurfaceProvider)
	return caps
}

// Interactive reports whether the component opted into either pointer
// capability.
func (c Capabilities) Interactive() bool {
	return c.Mouse || c.NormalizedMouse
}
