package scene

import (
	"testing"

	"github.com/go-vivid/vivid/pkg/graphics"
)

func TestNewRendererRejectsInvalidSize(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		wantOK bool
	}{
		{"valid", 800, 600, true},
		{"zero width", 0, 600, false},
		{"negative height", 800, -1, false},
		{"absurd", 1 << 20, 1 << 20, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRenderer(tt.w, tt.h)
			if tt.wantOK && (err != nil || r == nil) {
				t.Fatalf("NewRenderer(%d, %d) failed: %v", tt.w, tt.h, err)
			}
			if !tt.wantOK && err == nil {
				t.Fatalf("NewRenderer(%d, %d) should have failed", tt.w, tt.h)
			}
		})
	}
}

func TestRenderPaintsChildren(t *testing.T) {
	r, err := NewRenderer(100, 100)
	if err != nil {
		t.Fatal(err)
	}
	r.SetClearColor(graphics.RGB(0, 0, 0))
	box := NewBox(graphics.Size{Width: 10, Height: 10}, graphics.RGB(255, 0, 0))
	box.Position = graphics.Offset{X: 20, Y: 20}
	r.Stage().AddChild(box)
	r.Render()

	img := r.Surface().Image()
	if c := img.RGBAAt(25, 25); c.R != 255 || c.G != 0 {
		t.Errorf("pixel inside box = %v, want red", c)
	}
	if c := img.RGBAAt(50, 50); c.R != 0 {
		t.Errorf("pixel outside box = %v, want clear color", c)
	}
}

func TestContainerOffsetAccumulates(t *testing.T) {
	r, err := NewRenderer(100, 100)
	if err != nil {
		t.Fatal(err)
	}
	group := NewContainer()
	group.Position = graphics.Offset{X: 30, Y: 30}
	dot := NewDot(5, graphics.RGB(0, 255, 0))
	dot.Position = graphics.Offset{X: 10, Y: 10}
	group.AddChild(dot)
	r.Stage().AddChild(group)
	r.Render()

	if c := r.Surface().Image().RGBAAt(40, 40); c.G != 255 {
		t.Errorf("dot center pixel = %v, want green", c)
	}
}

func TestDestroyReleasesEverything(t *testing.T) {
	r, err := NewRenderer(64, 64)
	if err != nil {
		t.Fatal(err)
	}
	child := NewContainer()
	r.Stage().AddChild(child)

	r.Destroy()
	if !r.Destroyed() {
		t.Error("renderer should report destroyed")
	}
	if !r.Surface().Released() {
		t.Error("surface buffer should be released")
	}
	if len(r.Stage().Children()) != 0 {
		t.Error("stage children should be cleared")
	}

	// Second destroy and render after destroy must be harmless.
	r.Destroy()
	r.Render()
}

func TestReparentingRemovesFromOldParent(t *testing.T) {
	a := NewContainer()
	b := NewContainer()
	n := NewBox(graphics.Size{Width: 1, Height: 1}, graphics.RGB(1, 2, 3))
	a.AddChild(n)
	b.AddChild(n)
	if len(a.Children()) != 0 {
		t.Error("node should have been removed from the first parent")
	}
	if len(b.Children()) != 1 {
		t.Error("node should be attached to the second parent")
	}
}

func TestSurfaceFitTo(t *testing.T) {
	s := NewSurface(800, 600)
	s.FitTo(graphics.RectFromLTWH(0, 0, 400, 400))
	got := s.DisplayRect()
	want := graphics.RectFromLTWH(0, 50, 400, 300)
	if got != want {
		t.Errorf("FitTo placement = %v, want %v", got, want)
	}
}

func TestSurfaceScaled(t *testing.T) {
	s := NewSurface(10, 10)
	out := s.Scaled(20, 20)
	if out == nil || out.Bounds().Dx() != 20 || out.Bounds().Dy() != 20 {
		t.Fatalf("Scaled returned %v", out)
	}
	s.Release()
	if s.Scaled(5, 5) != nil {
		t.Error("Scaled after Release should return nil")
	}
}
