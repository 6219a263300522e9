package host

import (
	"github.com/go-vivid/vivid/pkg/animation"
	"github.com/go-vivid/vivid/pkg/graphics"
)

// mountSelfAdapter prepares the self-context protocol: the module gets a
// dedicated per-frame scheduler scoped to this mount plus the mount
// bounds, and nothing else. Surface creation, sizing, and draw calls are
// the module's own business; the host styles whatever surface the module
// reveals after construction and guarantees the scheduler dies with the
// mount, so no frame callback survives Destroy.
func mountSelfAdapter(sched *animation.Scheduler, size graphics.Size, autoStart bool) builder {
	return selfBuilder(SurfaceConfig{
		Scheduler: sched,
		Width:     size.Width,
		Height:    size.Height,
		AutoStart: autoStart,
	})
}
