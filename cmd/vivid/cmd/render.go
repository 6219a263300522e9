package cmd

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-vivid/vivid/pkg/catalog"
	"github.com/go-vivid/vivid/pkg/host"
	"github.com/go-vivid/vivid/showcase"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Mount an effect headlessly and write a frame to PNG",
		Long: `Mount an effect, advance its animation for a number of frames, and
write the final frame to a PNG file.

The effect is resolved from the built-in showcase catalog unless
--catalog points at an external file. Mounting, lifecycle, and teardown
run exactly as they would under an embedder; only the frame clock is
synthetic.`,
		Usage: "vivid render <effect-id> [--out FILE] [--frames N] [--size WxH] [--catalog FILE]",
		Run:   runRender,
	})
}

type renderOptions struct {
	out     string
	frames  int
	width   float64
	height  float64
	catalog string
}

func parseRenderArgs(args []string) ([]string, renderOptions, error) {
	opts := renderOptions{frames: 120, width: 640, height: 480}
	var rest []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--out":
			if i+1 >= len(args) {
				return nil, opts, fmt.Errorf("--out requires a file path")
			}
			opts.out = args[i+1]
			i++
		case "--frames":
			if i+1 >= len(args) {
				return nil, opts, fmt.Errorf("--frames requires a count")
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil || n < 1 {
				return nil, opts, fmt.Errorf("invalid frame count %q", args[i+1])
			}
			opts.frames = n
			i++
		case "--size":
			if i+1 >= len(args) {
				return nil, opts, fmt.Errorf("--size requires WxH")
			}
			w, h, err := parseSize(args[i+1])
			if err != nil {
				return nil, opts, err
			}
			opts.width, opts.height = w, h
			i++
		case "--catalog":
			if i+1 >= len(args) {
				return nil, opts, fmt.Errorf("--catalog requires a file path")
			}
			opts.catalog = args[i+1]
			i++
		default:
			rest = append(rest, args[i])
		}
	}
	return rest, opts, nil
}

func parseSize(s string) (float64, float64, error) {
	parts := strings.SplitN(strings.ToLower(s), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q, expected WxH", s)
	}
	w, errW := strconv.Atoi(parts[0])
	h, errH := strconv.Atoi(parts[1])
	if errW != nil || errH != nil || w < 1 || h < 1 {
		return 0, 0, fmt.Errorf("invalid size %q, expected WxH", s)
	}
	return float64(w), float64(h), nil
}

func runRender(args []string) error {
	rest, opts, err := parseRenderArgs(args)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return fmt.Errorf("render requires exactly one effect id")
	}
	id := rest[0]
	if opts.out == "" {
		opts.out = id + ".png"
	}

	var c *catalog.Catalog
	if opts.catalog != "" {
		c, err = catalog.Load(opts.catalog)
	} else {
		c, err = showcase.Catalog()
	}
	if err != nil {
		return err
	}
	meta, ok := c.Get(id)
	if !ok {
		return fmt.Errorf("effect %q not in catalog (try \"vivid list\")", id)
	}
	mod, err := showcase.LoadModule(id)
	if err != nil {
		return err
	}

	h := host.New(host.TableFromCatalog(c))
	mp := host.NewMountPoint(opts.width, opts.height)
	inst, err := h.Mount(context.Background(), mp, meta, mod)
	if err != nil {
		return err
	}
	defer inst.Destroy()

	for i := 0; i < opts.frames; i++ {
		mp.Step(16 * time.Millisecond)
	}

	surface := mp.Surface()
	if surface == nil {
		return fmt.Errorf("effect %q produced no surface", id)
	}
	display := surface.DisplayRect()
	img := surface.Scaled(int(display.Width()), int(display.Height()))
	if img == nil {
		return fmt.Errorf("effect %q produced no frame", id)
	}

	f, err := os.Create(opts.out)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return err
	}
	fmt.Printf("Rendered %s (%d frames) to %s\n", id, opts.frames, opts.out)
	return nil
}
