package input

import (
	"github.com/go-vivid/vivid/pkg/effects"
	"github.com/go-vivid/vivid/pkg/graphics"
)

// broadcastInfluence is the fixed weight passed with every broadcast
// position update.
const broadcastInfluence = 1.0

// Router converts display-space pointer and touch coordinates into an
// effect's coordinate space and delivers them according to each live
// instance's capability set:
//
//   - instances exposing SetMousePosition receive internal pixel
//     coordinates, every move event, all of them;
//   - instances exposing SetMouse receive 0-1 normalized coordinates;
//   - when no instance is interactive, the raw offset is recorded on the
//     shared PointerState (if one was provided) and nothing is broadcast.
type Router struct {
	internal graphics.Size
	display  graphics.Size
	state    *PointerState

	pixel      []effects.MouseTarget
	normalized []effects.NormalizedMouseTarget

	cancels []func()
}

// NewRouter creates a router mapping the given display size onto the
// effect's internal resolution. state may be nil if no passive consumer
// exists.
func NewRouter(internal, display graphics.Size, state *PointerState) *Router {
	if display.IsEmpty() {
		display = internal
	}
	return &Router{internal: internal, display: display, state: state}
}

// AddInstance registers a live component. Non-interactive components are
// ignored; the capability check happens once, here, not per event.
func (r *Router) AddInstance(c effects.Component) {
	if t, ok := c.(effects.MouseTarget); ok {
		r.pixel = append(r.pixel, t)
	}
	if t, ok := c.(effects.NormalizedMouseTarget); ok {
		r.normalized = append(r.normalized, t)
	}
}

// Interactive reports whether any registered instance receives broadcasts.
func (r *Router) Interactive() bool {
	return len(r.pixel) > 0 || len(r.normalized) > 0
}

// Attach subscribes the router to pointer and touch movement on the
// source. Touch events are subscribed separately so the embedder can
// suppress default scrolling when a consumer exists.
func (r *Router) Attach(src *Source) {
	r.cancels = append(r.cancels,
		src.OnPointerMove(r.route),
		src.OnTouchMove(r.route),
	)
}

// Detach cancels every subscription made by Attach. Idempotent.
func (r *Router) Detach() {
	for _, cancel := range r.cancels {
		cancel()
	}
	r.cancels = nil
}

// route delivers one movement event.
func (r *Router) route(ev PointerEvent) {
	if !r.Interactive() {
		if r.state != nil {
			r.state.Record(ev.X, ev.Y)
		}
		return
	}

	x := ev.X * r.internal.Width / r.display.Width
	y := ev.Y * r.internal.Height / r.display.Height
	for _, t := range r.pixel {
		t.SetMousePosition(x, y, broadcastInfluence)
	}

	nx := ev.X / r.display.Width
	ny := ev.Y / r.display.Height
	for _, t := range r.normalized {
		t.SetMouse(clamp01(nx), clamp01(ny))
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
