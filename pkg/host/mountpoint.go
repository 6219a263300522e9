package host

import (
	"sync"

	"github.com/go-vivid/vivid/pkg/graphics"
	"github.com/go-vivid/vivid/pkg/input"
	"github.com/go-vivid/vivid/pkg/scene"
)

// Default internal resolution used when a mount point is unmeasured.
const (
	defaultMountWidth  = 800
	defaultMountHeight = 600
)

// MountPoint is the place an effect is hosted: it has a measured display
// size, receives the mount's output surface, and fans input events out to
// whatever router is attached.
//
// Mounting is sequential and non-reentrant per mount point: a new mount
// fully tears down the previous instance before acquiring any resource.
type MountPoint struct {
	width  float64
	height float64
	events *input.Source
	shared *input.PointerState

	// busy serializes mount attempts on this mount point.
	busy sync.Mutex

	stateMu sync.Mutex
	surface *scene.Surface
	current *DemoInstance
}

// NewMountPoint creates a mount point with the given display size in
// pixels. Zero or negative dimensions mean "unmeasured"; such a mount
// falls back to the 800x600 default.
func NewMountPoint(width, height float64) *MountPoint {
	return &MountPoint{
		width:  width,
		height: height,
		events: input.NewSource(),
		shared: &input.PointerState{},
	}
}

// Size returns the display size, falling back to the default when the
// mount point is unmeasured.
func (m *MountPoint) Size() graphics.Size {
	if m.width <= 0 || m.height <= 0 {
		return graphics.Size{Width: defaultMountWidth, Height: defaultMountHeight}
	}
	return graphics.Size{Width: m.width, Height: m.height}
}

// Bounds returns the display rectangle at origin.
func (m *MountPoint) Bounds() graphics.Rect {
	s := m.Size()
	return graphics.RectFromLTWH(0, 0, s.Width, s.Height)
}

// Events returns the mount point's input event source. The embedder feeds
// pointer and touch movement into it.
func (m *MountPoint) Events() *input.Source {
	return m.events
}

// SharedPointer returns the opt-in shared pointer location for passive
// consumers.
func (m *MountPoint) SharedPointer() *input.PointerState {
	return m.shared
}

// attachSurface records the output surface, styled to fit the mount
// bounds without stretching.
func (m *MountPoint) attachSurface(s *scene.Surface) {
	s.FitTo(m.Bounds())
	m.stateMu.Lock()
	m.surface = s
	m.stateMu.Unlock()
}

// detachSurface removes the attached surface if it is the given one.
func (m *MountPoint) detachSurface(s *scene.Surface) {
	m.stateMu.Lock()
	if m.surface == s {
		m.surface = nil
	}
	m.stateMu.Unlock()
}

// Surface returns the currently attached output surface, or nil.
func (m *MountPoint) Surface() *scene.Surface {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	return m.surface
}

// Current returns the live instance, or nil.
func (m *MountPoint) Current() *DemoInstance {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	return m.current
}

// Unmount requests teardown of whatever this mount point hosts. A
// completed mount is destroyed immediately; an in-flight mount observes
// the cleared flag at its next suspension point and drives itself to
// teardown instead of proceeding.
func (m *MountPoint) Unmount() {
	m.stateMu.Lock()
	inst := m.current
	m.stateMu.Unlock()
	if inst != nil {
		inst.Destroy()
	}
}

func (m *MountPoint) setCurrent(inst *DemoInstance) {
	m.stateMu.Lock()
	m.current = inst
	m.stateMu.Unlock()
}

func (m *MountPoint) clearCurrent(inst *DemoInstance) {
	m.stateMu.Lock()
	if m.current == inst {
		m.current = nil
	}
	m.stateMu.Unlock()
}
