package host

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-vivid/vivid/pkg/animation"
	"github.com/go-vivid/vivid/pkg/catalog"
	"github.com/go-vivid/vivid/pkg/effects"
	vviderr "github.com/go-vivid/vivid/pkg/errors"
	"github.com/go-vivid/vivid/pkg/input"
)

// ErrMountCancelled is returned by Mount when the mount point was
// unmounted (or the context cancelled) while a lifecycle step was in
// flight. Everything constructed up to that point has been torn down.
var ErrMountCancelled = errors.New("host: mount cancelled during lifecycle")

// Host mounts effect modules. It carries only the static protocol table;
// all per-mount state lives in the DemoInstance.
type Host struct {
	table ProtocolTable
}

// New creates a host with the given protocol table.
func New(table ProtocolTable) *Host {
	return &Host{table: table}
}

// Mount hosts one effect instance on the mount point and drives it to the
// running state. The previous instance on the same mount point, if any, is
// fully torn down before any new resource is acquired.
//
// On success the caller receives the one artifact this package exposes: a
// handle whose only operation is Destroy. On failure every resource
// acquired along the way has already been released, and the error is one
// of the types in pkg/errors.
//
// There is no timeout on lifecycle steps; a hanging setup hangs the mount.
// Callers needing bounded latency cancel ctx and the orchestrator stops at
// its next suspension point.
func (h *Host) Mount(ctx context.Context, mp *MountPoint, meta catalog.EffectMetadata, mod effects.Module) (*DemoInstance, error) {
	mp.busy.Lock()
	defer mp.busy.Unlock()

	// The previous owner's teardown must fully complete before this mount
	// acquires a surface, a scheduler, or listeners.
	if prev := mp.Current(); prev != nil {
		prev.Destroy()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	inst := &DemoInstance{effectID: meta.ID, mp: mp}
	inst.inFlight.Store(true)
	inst.mounted.Store(true)
	mp.setCurrent(inst)

	cancelled := func() bool {
		return ctx.Err() != nil || !inst.mounted.Load()
	}
	fail := func(err error) (*DemoInstance, error) {
		inst.inFlight.Store(false)
		inst.teardown()
		return nil, err
	}

	sched := animation.NewScheduler()
	inst.sched = sched
	inst.pushCleanup("scheduler", func() error {
		sched.Dispose()
		return nil
	})

	size := mp.Size()
	var build builder
	protocol := h.table.Protocol(meta.ID)
	switch protocol {
	case SceneGraph:
		b, err := mountSceneAdapter(inst, mp, sched, size)
		if err != nil {
			return fail(&vviderr.HostInitError{EffectID: meta.ID, Err: err})
		}
		build = b
	case SelfContext:
		build = mountSelfAdapter(sched, size, meta.Lifecycle.ShouldAutoStart())
	}

	comp, err := instantiate(meta.ID, mod, meta.Components, build)
	if err != nil {
		return fail(err)
	}
	caps := effects.DetectCapabilities(comp)
	inst.pushCleanup("component", func() error {
		if caps.Stop {
			comp.(effects.Stopper).Stop()
		}
		if caps.Destroy {
			comp.(effects.Destroyer).Destroy()
		}
		return nil
	})

	// A self-context module owns its surface; style it to the mount
	// bounds once construction reveals it.
	if protocol == SelfContext && caps.Surface {
		if s := comp.(effects.SurfaceProvider).Canvas(); s != nil {
			mp.attachSurface(s)
			inst.pushCleanup("surface", func() error {
				mp.detachSurface(s)
				return nil
			})
		}
	}

	if err := runLifecycle(ctx, meta.ID, comp, caps, meta.Lifecycle, cancelled); err != nil {
		if errors.Is(err, errCancelled) {
			return fail(ErrMountCancelled)
		}
		return fail(err)
	}

	router := input.NewRouter(size, size, mp.SharedPointer())
	router.AddInstance(comp)
	router.Attach(mp.Events())
	inst.pushCleanup("listeners", func() error {
		router.Detach()
		return nil
	})

	inst.component = comp
	inst.inFlight.Store(false)
	if cancelled() {
		return fail(ErrMountCancelled)
	}
	return inst, nil
}

// DemoInstance is the single artifact the host exposes to callers. Its
// one operation is Destroy, which releases every resource acquired during
// mount and is safe to call more than once.
type DemoInstance struct {
	effectID  string
	mp        *MountPoint
	sched     *animation.Scheduler
	component effects.Component

	mounted  atomic.Bool
	inFlight atomic.Bool

	mu        sync.Mutex
	destroyed bool
	cleanups  []cleanupEntry
}

type cleanupEntry struct {
	name string
	fn   func() error
}

// EffectID returns the catalog id this instance was mounted from.
func (d *DemoInstance) EffectID() string {
	return d.effectID
}

// Destroy releases all resources held by the mount. It is idempotent: the
// second and later calls are no-ops, and no resource is released twice.
// Destroying an instance whose mount is still in flight marks it
// cancelled; the mounting goroutine observes the flag at its next
// suspension point and performs the teardown itself.
func (d *DemoInstance) Destroy() {
	d.mounted.Store(false)
	if d.inFlight.Load() {
		return
	}
	d.teardown()
}

// teardown runs the cleanup stack in reverse acquisition order. Each step
// is isolated: a failing release is reported through the global handler
// and the rest still run.
func (d *DemoInstance) teardown() {
	d.mu.Lock()
	if d.destroyed {
		d.mu.Unlock()
		return
	}
	d.destroyed = true
	entries := d.cleanups
	d.cleanups = nil
	d.mu.Unlock()

	for i := len(entries) - 1; i >= 0; i-- {
		vviderr.SafeRelease(entries[i].name, entries[i].fn)
	}
	d.mp.clearCurrent(d)
}

func (d *DemoInstance) pushCleanup(name string, fn func() error) {
	d.mu.Lock()
	d.cleanups = append(d.cleanups, cleanupEntry{name: name, fn: fn})
	d.mu.Unlock()
}

// Step advances the current mount's frame scheduler by dt: tickers fire,
// timelines progress, and a scene-graph mount re-renders. The embedder's
// frame loop calls this once per frame; it is a no-op while no instance is
// live.
func (m *MountPoint) Step(dt time.Duration) {
	inst := m.Current()
	if inst == nil || inst.inFlight.Load() || inst.sched == nil {
		return
	}
	inst.sched.Step(dt)
}
