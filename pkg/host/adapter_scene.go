package host

import (
	"time"

	"github.com/go-vivid/vivid/pkg/animation"
	"github.com/go-vivid/vivid/pkg/graphics"
	"github.com/go-vivid/vivid/pkg/scene"
)

// mountSceneAdapter acquires the resources of the scene-graph protocol: a
// renderer sized to the mount point, a frozen host context, and a mount
// target container under the stage for the component's own nodes. The
// renderer's output surface is attached to the mount point aspect-fit.
//
// Renderer initialization failure is fatal for the mount attempt; the
// caller wraps it in a HostInitError.
func mountSceneAdapter(inst *DemoInstance, mp *MountPoint, sched *animation.Scheduler, size graphics.Size) (builder, error) {
	renderer, err := scene.NewRenderer(int(size.Width), int(size.Height))
	if err != nil {
		return nil, err
	}
	inst.pushCleanup("renderer", func() error {
		renderer.Destroy()
		return nil
	})

	hctx := newContext(renderer, sched)

	mountTarget := scene.NewContainer()
	renderer.Stage().AddChild(mountTarget)

	// One render per frame, driven by the mount's scheduler so rendering
	// stops with it.
	frame := sched.NewTicker(func(time.Duration) {
		renderer.Render()
	})
	frame.Start()

	surface := renderer.Surface()
	mp.attachSurface(surface)
	inst.pushCleanup("surface", func() error {
		mp.detachSurface(surface)
		return nil
	})

	return sceneBuilder(hctx, MountSpec{
		MountTarget: mountTarget,
		Width:       size.Width,
		Height:      size.Height,
	}), nil
}
