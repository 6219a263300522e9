package animation

import (
	"sync"
	"time"
)

// Timeline is the shared tween engine handed to scene-graph components
// through the host context. It creates animations driven by the mount's
// scheduler, so every tween dies with the mount.
type Timeline struct {
	sched *Scheduler
}

// NewTimeline creates a timeline driven by the given scheduler.
func NewTimeline(sched *Scheduler) *Timeline {
	return &Timeline{sched: sched}
}

// Animate starts an animation of the given duration. onUpdate receives the
// eased progress in [0, 1] once per frame; it is guaranteed a final call
// with exactly 1 when the duration elapses. A nil curve means linear.
func (tl *Timeline) Animate(duration time.Duration, curve func(float64) float64, onUpdate func(t float64)) *Animation {
	if curve == nil {
		curve = Linear
	}
	a := &Animation{}
	a.ticker = tl.sched.NewTicker(func(elapsed time.Duration) {
		if duration <= 0 || elapsed >= duration {
			a.ticker.Stop()
			a.done = true
			onUpdate(1)
			if a.onComplete != nil {
				a.onComplete()
			}
			return
		}
		onUpdate(curve(float64(elapsed) / float64(duration)))
	})
	a.ticker.Start()
	return a
}

// Animation is a running tween created by [Timeline.Animate].
type Animation struct {
	ticker     *Ticker
	onComplete func()
	done       bool
}

// OnComplete sets a callback invoked when the animation finishes naturally.
func (a *Animation) OnComplete(fn func()) *Animation {
	a.onComplete = fn
	return a
}

// Stop cancels the animation without a final update.
func (a *Animation) Stop() {
	a.ticker.Stop()
}

// Done reports whether the animation ran to completion.
func (a *Animation) Done() bool {
	return a.done
}

// Tween interpolates between Begin and End values based on progress.
type Tween[T any] struct {
	// Begin is the starting value (when t = 0).
	Begin T
	// End is the ending value (when t = 1).
	End T
	// Lerp linearly interpolates between Begin and End at progress t.
	Lerp func(a, b T, t float64) T
}

// Evaluate returns the interpolated value at t (0.0 to 1.0).
func (tw *Tween[T]) Evaluate(t float64) T {
	if tw.Lerp == nil {
		return tw.End
	}
	return tw.Lerp(tw.Begin, tw.End, t)
}

// LerpFloat64 linearly interpolates between two float64 values.
func LerpFloat64(a, b float64, t float64) float64 {
	return a + (b-a)*t
}

// TweenFloat64 creates a float64 tween.
func TweenFloat64(begin, end float64) *Tween[float64] {
	return &Tween[float64]{Begin: begin, End: end, Lerp: LerpFloat64}
}

var (
	pluginMu        sync.Mutex
	timelinePlugins = make(map[string]struct{})
)

// RegisterTimelinePlugin records a process-wide timeline extension. The
// call is idempotent: registering the same name twice is a no-op, and the
// return value reports whether this call performed the registration.
//
// Registration happens explicitly at process start rather than implicitly
// on first use, so hosts can rely on the plugin set being stable before
// any mount begins.
func RegisterTimelinePlugin(name string) bool {
	pluginMu.Lock()
	defer pluginMu.Unlock()
	if _, ok := timelinePlugins[name]; ok {
		return false
	}
	timelinePlugins[name] = struct{}{}
	return true
}

// TimelinePluginRegistered reports whether a plugin name has been registered.
func TimelinePluginRegistered(name string) bool {
	pluginMu.Lock()
	defer pluginMu.Unlock()
	_, ok := timelinePlugins[name]
	return ok
}
