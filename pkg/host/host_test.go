package host

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/go-vivid/vivid/pkg/catalog"
	"github.com/go-vivid/vivid/pkg/effects"
	vviderr "github.com/go-vivid/vivid/pkg/errors"
	"github.com/go-vivid/vivid/pkg/graphics"
	"github.com/go-vivid/vivid/pkg/scene"
)

// spyComponent implements the full scene-graph capability set and records
// every call.
type spyComponent struct {
	mu        sync.Mutex
	starts    int
	stops     int
	destroys  int
	setups    int
	density   []float64
	mouse     [][3]float64
	setupErr  error
	setupGate chan struct{} // non-nil: Setup blocks until closed
}

func (s *spyComponent) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.starts++
}

func (s *spyComponent) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stops++
}

func (s *spyComponent) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destroys++
}

func (s *spyComponent) Setup(ctx context.Context) error {
	s.mu.Lock()
	s.setups++
	gate := s.setupGate
	err := s.setupErr
	s.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
		}
	}
	return err
}

func (s *spyComponent) SetDensity(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.density = append(s.density, v)
}

func (s *spyComponent) SetMousePosition(x, y, influence float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mouse = append(s.mouse, [3]float64{x, y, influence})
}

func (s *spyComponent) counts() (starts, stops, destroys, setups int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.starts, s.stops, s.destroys, s.setups
}

// spyModule wraps a spy in a module whose default export is a typed
// scene-graph constructor.
func spyModule(spy *spyComponent) effects.Module {
	return effects.Module{
		Default: func(hctx *Context, spec MountSpec) (effects.Component, error) {
			return spy, nil
		},
	}
}

func sceneMeta(id string, desc *effects.Descriptor) catalog.EffectMetadata {
	return catalog.EffectMetadata{
		ID:         id,
		Components: []string{"Effect"},
		Lifecycle:  desc,
	}
}

func TestMountHappyPath(t *testing.T) {
	h := New(NewProtocolTable())
	mp := NewMountPoint(800, 600)
	spy := &spyComponent{}

	inst, err := h.Mount(context.Background(), mp, sceneMeta("glow", nil), spyModule(spy))
	if err != nil {
		t.Fatalf("Mount failed: %v", err)
	}
	defer inst.Destroy()

	starts, _, _, setups := spy.counts()
	if starts != 1 {
		t.Errorf("Start called %d times, want 1", starts)
	}
	if setups != 1 {
		t.Errorf("Setup called %d times, want 1 (structural capability, no descriptor)", setups)
	}
	if mp.Surface() == nil {
		t.Error("output surface should be attached to the mount point")
	}
	if got := inst.EffectID(); got != "glow" {
		t.Errorf("EffectID = %q", got)
	}
}

func TestMountUnmeasuredMountPointDefaults(t *testing.T) {
	h := New(NewProtocolTable())
	mp := NewMountPoint(0, 0)
	spy := &spyComponent{}
	var gotSpec MountSpec
	mod := effects.Module{
		Default: func(hctx *Context, spec MountSpec) (effects.Component, error) {
			gotSpec = spec
			return spy, nil
		},
	}
	inst, err := h.Mount(context.Background(), mp, sceneMeta("glow", nil), mod)
	if err != nil {
		t.Fatalf("Mount failed: %v", err)
	}
	defer inst.Destroy()
	if gotSpec.Width != 800 || gotSpec.Height != 600 {
		t.Errorf("unmeasured mount spec = %vx%v, want 800x600", gotSpec.Width, gotSpec.Height)
	}
	if gotSpec.MountTarget == nil {
		t.Error("constructor must receive a mount target node")
	}
}

func TestDestroyIsIdempotent(t *testing.T) {
	h := New(NewProtocolTable())
	mp := NewMountPoint(800, 600)
	spy := &spyComponent{}

	inst, err := h.Mount(context.Background(), mp, sceneMeta("glow", nil), spyModule(spy))
	if err != nil {
		t.Fatal(err)
	}

	inst.Destroy()
	inst.Destroy()

	_, stops, destroys, _ := spy.counts()
	if stops != 1 || destroys != 1 {
		t.Errorf("stop/destroy called %d/%d times, want 1/1 (no double release)", stops, destroys)
	}
	if mp.Surface() != nil {
		t.Error("surface should be detached after destroy")
	}
	if mp.Current() != nil {
		t.Error("mount point should have no live instance after destroy")
	}
	if mp.Events().ListenerCount() != 0 {
		t.Error("no listener may survive destroy")
	}
}

func TestNamedExportFallback(t *testing.T) {
	// Only "Bar" is constructible; the failed attempt on "Foo" must not
	// surface as an error.
	spy := &spyComponent{}
	mod := effects.Module{
		Named: map[string]any{
			"Foo": func(hctx *Context, spec MountSpec) (effects.Component, error) {
				return nil, fmt.Errorf("foo is broken")
			},
			"Bar": func(hctx *Context, spec MountSpec) (effects.Component, error) {
				return spy, nil
			},
		},
	}
	meta := catalog.EffectMetadata{ID: "duo", Components: []string{"Foo", "Bar"}}

	h := New(NewProtocolTable())
	mp := NewMountPoint(800, 600)
	inst, err := h.Mount(context.Background(), mp, meta, mod)
	if err != nil {
		t.Fatalf("Mount should succeed via Bar: %v", err)
	}
	defer inst.Destroy()
	if starts, _, _, _ := spy.counts(); starts != 1 {
		t.Error("Bar instance should be running")
	}
}

func TestInstantiationFailureListsAttempts(t *testing.T) {
	mod := effects.Module{
		Named: map[string]any{
			"Foo": func(hctx *Context, spec MountSpec) (effects.Component, error) {
				return nil, fmt.Errorf("nope")
			},
			"Bar": "not even a function",
		},
	}
	meta := catalog.EffectMetadata{ID: "broken", Components: []string{"Foo", "Bar"}}

	h := New(NewProtocolTable())
	mp := NewMountPoint(800, 600)
	_, err := h.Mount(context.Background(), mp, meta, mod)

	var ierr *vviderr.InstantiationError
	if !errors.As(err, &ierr) {
		t.Fatalf("err = %v, want InstantiationError", err)
	}
	if len(ierr.Attempted) != 2 || !contains(ierr.Attempted, "Foo") || !contains(ierr.Attempted, "Bar") {
		t.Errorf("Attempted = %v, want both names", ierr.Attempted)
	}
	// No resource may remain attached after the failed attempt.
	if mp.Surface() != nil {
		t.Error("surface should not remain attached")
	}
	if mp.Current() != nil {
		t.Error("no instance should remain registered")
	}
	if mp.Events().ListenerCount() != 0 {
		t.Error("no listeners should remain")
	}
}

func TestDescriptorSuppressesStart(t *testing.T) {
	off := false
	desc := &effects.Descriptor{
		Setup:     true,
		Init:      []effects.Call{{Method: "SetDensity", Args: []any{0.5}}},
		AutoStart: &off,
	}
	h := New(NewProtocolTable())
	mp := NewMountPoint(800, 600)
	spy := &spyComponent{}

	inst, err := h.Mount(context.Background(), mp, sceneMeta("patient", desc), spyModule(spy))
	if err != nil {
		t.Fatal(err)
	}
	defer inst.Destroy()

	starts, _, _, setups := spy.counts()
	if starts != 0 {
		t.Error("autoStart: false must suppress Start")
	}
	if setups != 1 {
		t.Error("declared setup should still run")
	}
	spy.mu.Lock()
	density := spy.density
	spy.mu.Unlock()
	if len(density) != 1 || density[0] != 0.5 {
		t.Errorf("init call SetDensity(0.5) not applied: %v", density)
	}
}

func TestPointerRoutingAtFiftyPercent(t *testing.T) {
	h := New(NewProtocolTable())
	mp := NewMountPoint(800, 600)
	spy := &spyComponent{}

	inst, err := h.Mount(context.Background(), mp, sceneMeta("reactive", nil), spyModule(spy))
	if err != nil {
		t.Fatal(err)
	}
	defer inst.Destroy()

	mp.Events().PointerMove(400, 300)

	spy.mu.Lock()
	mouse := spy.mouse
	spy.mu.Unlock()
	if len(mouse) != 1 {
		t.Fatalf("SetMousePosition called %d times, want 1", len(mouse))
	}
	if mouse[0] != [3]float64{400, 300, 1} {
		t.Errorf("broadcast = %v, want (400, 300, 1)", mouse[0])
	}
}

func TestUnmountDuringSetup(t *testing.T) {
	gate := make(chan struct{})
	spy := &spyComponent{setupGate: gate}
	desc := &effects.Descriptor{
		Setup: true,
		Init:  []effects.Call{{Method: "SetDensity", Args: []any{1.0}}},
	}

	h := New(NewProtocolTable())
	mp := NewMountPoint(800, 600)

	type result struct {
		inst *DemoInstance
		err  error
	}
	done := make(chan result, 1)
	go func() {
		inst, err := h.Mount(context.Background(), mp, sceneMeta("slow", desc), spyModule(spy))
		done <- result{inst, err}
	}()

	// Wait until setup is definitely in flight, then unmount.
	waitFor(t, func() bool {
		_, _, _, setups := spy.counts()
		return setups == 1
	})
	mp.Unmount()
	close(gate)

	res := <-done
	if !errors.Is(res.err, ErrMountCancelled) {
		t.Fatalf("Mount returned %v, want ErrMountCancelled", res.err)
	}

	starts, _, destroys, _ := spy.counts()
	if starts != 0 {
		t.Error("Start must not run after unmount during setup")
	}
	spy.mu.Lock()
	density := spy.density
	spy.mu.Unlock()
	if len(density) != 0 {
		t.Error("init calls must not run after unmount during setup")
	}
	if destroys != 1 {
		t.Errorf("constructed instance must still be torn down, destroys = %d", destroys)
	}
	if mp.Surface() != nil || mp.Current() != nil || mp.Events().ListenerCount() != 0 {
		t.Error("teardown must run to completion after cancelled mount")
	}
}

func TestLifecycleErrorTearsDownPartialInstance(t *testing.T) {
	spy := &spyComponent{setupErr: fmt.Errorf("shader compile failed")}
	h := New(NewProtocolTable())
	mp := NewMountPoint(800, 600)

	_, err := h.Mount(context.Background(), mp, sceneMeta("flaky", nil), spyModule(spy))
	var lerr *vviderr.LifecycleError
	if !errors.As(err, &lerr) {
		t.Fatalf("err = %v, want LifecycleError", err)
	}
	if lerr.Step != "setup" {
		t.Errorf("failing step = %q, want setup", lerr.Step)
	}
	if _, _, destroys, _ := spy.counts(); destroys != 1 {
		t.Error("partially-constructed instance must still be destroyed")
	}
	if mp.Surface() != nil {
		t.Error("no surface may remain after a lifecycle failure")
	}
}

func TestRemountTearsDownPrevious(t *testing.T) {
	h := New(NewProtocolTable())
	mp := NewMountPoint(800, 600)
	first := &spyComponent{}
	second := &spyComponent{}

	if _, err := h.Mount(context.Background(), mp, sceneMeta("one", nil), spyModule(first)); err != nil {
		t.Fatal(err)
	}
	inst2, err := h.Mount(context.Background(), mp, sceneMeta("two", nil), spyModule(second))
	if err != nil {
		t.Fatal(err)
	}
	defer inst2.Destroy()

	if _, _, destroys, _ := first.counts(); destroys != 1 {
		t.Error("previous instance must be fully torn down before remount")
	}
	if mp.Current() == nil || mp.Current().EffectID() != "two" {
		t.Error("second instance should be live")
	}
}

func TestMountWithCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	h := New(NewProtocolTable())
	mp := NewMountPoint(800, 600)
	if _, err := h.Mount(ctx, mp, sceneMeta("x", nil), spyModule(&spyComponent{})); err == nil {
		t.Fatal("mount with a cancelled context should fail")
	}
	if mp.Current() != nil {
		t.Error("nothing should be mounted")
	}
}

func TestStepDrivesSceneRendering(t *testing.T) {
	h := New(NewProtocolTable())
	mp := NewMountPoint(100, 100)
	mod := effects.Module{
		Default: func(hctx *Context, spec MountSpec) (effects.Component, error) {
			box := hctx.Factory().NewBox(
				graphics.Size{Width: 10, Height: 10},
				graphics.RGB(255, 0, 0),
			)
			spec.MountTarget.AddChild(box)
			return &spyComponent{}, nil
		},
	}
	inst, err := h.Mount(context.Background(), mp, sceneMeta("boxy", nil), mod)
	if err != nil {
		t.Fatal(err)
	}
	defer inst.Destroy()

	mp.Step(16 * time.Millisecond)

	surface := mp.Surface()
	if surface == nil {
		t.Fatal("no surface attached")
	}
	if c := surface.Image().RGBAAt(5, 5); c.R != 255 {
		t.Errorf("stepping should have rendered the box, pixel = %v", c)
	}
}

// selfContextComponent owns its surface the way a bespoke shader effect
// would.
type selfContextComponent struct {
	surface  *scene.Surface
	ticker   interface{ Stop() }
	frames   int
	mouse    [][2]float64
	mu       sync.Mutex
	destroys int
}

func newSelfContextComponent(cfg SurfaceConfig) (effects.Component, error) {
	c := &selfContextComponent{surface: scene.NewSurface(320, 240)}
	ticker := cfg.Scheduler.NewTicker(func(time.Duration) {
		c.mu.Lock()
		c.frames++
		c.mu.Unlock()
	})
	ticker.Start()
	c.ticker = ticker
	return c, nil
}

func (c *selfContextComponent) Canvas() *scene.Surface { return c.surface }

func (c *selfContextComponent) SetMouse(x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mouse = append(c.mouse, [2]float64{x, y})
}

func (c *selfContextComponent) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.destroys++
	c.surface.Release()
}

func (c *selfContextComponent) frameCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frames
}

func TestSelfContextMount(t *testing.T) {
	h := New(NewProtocolTable("bespoke"))
	mp := NewMountPoint(640, 480)
	mod := effects.Module{Default: newSelfContextComponent}
	meta := catalog.EffectMetadata{ID: "bespoke", Components: []string{"Bespoke"}}

	inst, err := h.Mount(context.Background(), mp, meta, mod)
	if err != nil {
		t.Fatalf("Mount failed: %v", err)
	}

	comp := inst.component.(*selfContextComponent)

	// The module-created surface is styled aspect-fit into 640x480.
	surface := mp.Surface()
	if surface == nil {
		t.Fatal("module surface should be attached")
	}
	if got := surface.DisplayRect(); got.Width() != 640 || got.Height() != 480 {
		t.Errorf("320x240 surface in 640x480 mount = %v, want full-bounds fit", got)
	}

	mp.Step(16 * time.Millisecond)
	mp.Step(16 * time.Millisecond)
	if comp.frameCount() != 2 {
		t.Errorf("frames = %d, want 2", comp.frameCount())
	}

	// Normalized mouse coordinates, not pixel space.
	mp.Events().PointerMove(320, 120)
	comp.mu.Lock()
	mouse := comp.mouse
	comp.mu.Unlock()
	if len(mouse) != 1 || mouse[0] != [2]float64{0.5, 0.25} {
		t.Errorf("SetMouse = %v, want (0.5, 0.25)", mouse)
	}

	// No frame callback may survive destroy.
	inst.Destroy()
	mp.Step(16 * time.Millisecond)
	if comp.frameCount() != 2 {
		t.Error("scheduler must be dead after destroy")
	}
	if comp.destroys != 1 {
		t.Errorf("component destroys = %d, want 1", comp.destroys)
	}
}

func TestProtocolMismatchFailsInstantiation(t *testing.T) {
	// The table says self-context, but the module only exports a
	// scene-graph constructor: the host must not guess.
	h := New(NewProtocolTable("confused"))
	mp := NewMountPoint(800, 600)
	mod := spyModule(&spyComponent{})
	meta := catalog.EffectMetadata{ID: "confused", Components: []string{"Effect"}}

	_, err := h.Mount(context.Background(), mp, meta, mod)
	var ierr *vviderr.InstantiationError
	if !errors.As(err, &ierr) {
		t.Fatalf("err = %v, want InstantiationError", err)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition never became true")
}
