// Command gerberforge loads a stack of Gerber layers, composites them
// through the GPU pipeline, and writes a single PNG snapshot, per §6.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gerberforge/engine/internal/gpu"
	"github.com/gerberforge/engine/internal/orchestrator"
	"golang.org/x/image/draw"
)

// stringListFlag collects a repeatable flag into order-preserving
// slice, the stdlib-idiomatic way to accept "-layer a -layer b -layer
// c" without a third-party CLI framework.
type stringListFlag []string

func (s *stringListFlag) String() string { return strings.Join(*s, ",") }
func (s *stringListFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func main() {
	var layers stringListFlag
	var tints stringListFlag
	flag.Var(&layers, "layer", "path to a Gerber layer file (repeatable; render order follows flag order)")
	flag.Var(&tints, "tint", "RRGGBB hex tint applied to the layer at the matching -layer position (repeatable)")
	dpi := flag.Float64("dpi", 1000, "output resolution in dots per inch")
	out := flag.String("out", "gerberforge.png", "output PNG path")
	alpha := flag.Float64("alpha", 1.0, "global layer alpha, 0-1")
	zoom := flag.Float64("zoom", 1.0, "camera zoom factor")
	ox := flag.Float64("ox", 0, "camera pan offset from the board center, x, mm")
	oy := flag.Float64("oy", 0, "camera pan offset from the board center, y, mm")
	margin := flag.Float64("margin", 1.0, "canvas margin around the board boundary, mm")
	supersample := flag.Int("supersample", 2, "render at this multiple of the target resolution and downsample for antialiasing; 1 disables it")
	flag.Parse()

	if len(layers) == 0 {
		fmt.Fprintln(os.Stderr, "usage: gerberforge -layer a.gbr [-layer b.gbr ...] [-tint RRGGBB ...] -out board.png")
		flag.PrintDefaults()
		os.Exit(1)
	}

	p := newProgress(os.Stderr)

	engine, err := orchestrator.Init(1, 1)
	if err != nil {
		log.Fatalf("init: %v", err)
	}
	defer engine.Close()

	ids := make([]uint32, 0, len(layers))
	for i, path := range layers {
		p.step(fmt.Sprintf("parsing %s (%d/%d)", filepath.Base(path), i+1, len(layers)))
		content, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("reading %s: %v", path, err)
		}
		report, err := engine.AddLayer(string(content))
		if err != nil {
			log.Fatalf("add_layer %s: %v", path, err)
		}
		for _, soft := range report.Errors {
			log.Printf("warning: %s: %v", path, soft)
		}
		ids = append(ids, report.LayerID)
	}

	boundary := engine.GetBoundary()
	widthMM := boundary.MaxX - boundary.MinX + 2*(*margin)
	heightMM := boundary.MaxY - boundary.MinY + 2*(*margin)
	pixelsPerMM := *dpi / 25.4
	width := max(1, int(widthMM*pixelsPerMM))
	height := max(1, int(heightMM*pixelsPerMM))
	ss := max(1, *supersample)

	p.step(fmt.Sprintf("rendering %d layer(s) at %dx%d (%.0f dpi, %dx supersample)", len(ids), width, height, *dpi, ss))
	if err := engine.Resize(width*ss, height*ss); err != nil {
		log.Fatalf("resize: %v", err)
	}

	rgbFlat := make([]float32, 3*len(ids))
	for i := range ids {
		r, g, b := 1.0, 1.0, 1.0
		if i < len(tints) {
			r, g, b, err = parseHexTint(tints[i])
			if err != nil {
				log.Fatalf("tint %q: %v", tints[i], err)
			}
		}
		rgbFlat[i*3], rgbFlat[i*3+1], rgbFlat[i*3+2] = float32(r), float32(g), float32(b)
	}

	centerX := boundary.MinX + (boundary.MaxX-boundary.MinX)/2 + *ox
	centerY := boundary.MinY + (boundary.MaxY-boundary.MinY)/2 + *oy
	snap, err := engine.Render(ids, rgbFlat, *zoom*pixelsPerMM*float64(ss), centerX, centerY, float32(*alpha))
	if err != nil {
		log.Fatalf("render: %v", err)
	}

	if ss > 1 {
		p.step("downsampling")
		snap = downsample(snap, width, height)
	}

	p.step("writing " + *out)
	if err := writePNG(*out, snap); err != nil {
		log.Fatalf("writing %s: %v", *out, err)
	}
	p.done()
}

// downsample resamples a supersampled snapshot down to the target
// resolution with a high-quality kernel, standing in for the
// multisampling the GPU pipeline doesn't do.
func downsample(snap gpu.FrameSnapshot, width, height int) gpu.FrameSnapshot {
	src := image.NewRGBA(image.Rect(0, 0, snap.Width, snap.Height))
	copy(src.Pix, snap.Pixels)
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return gpu.FrameSnapshot{Pixels: dst.Pix, Width: width, Height: height}
}

func parseHexTint(hex string) (r, g, b float64, err error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("want 6 hex digits, got %q", hex)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, err
	}
	return float64((v>>16)&0xFF) / 255, float64((v>>8)&0xFF) / 255, float64(v&0xFF) / 255, nil
}

// writePNG flips the GPU readback (OpenGL's origin is bottom-left) into
// image.RGBA's top-left convention before encoding.
func writePNG(path string, snap gpu.FrameSnapshot) error {
	img := image.NewRGBA(image.Rect(0, 0, snap.Width, snap.Height))
	rowBytes := snap.Width * 4
	for y := 0; y < snap.Height; y++ {
		srcRow := snap.Pixels[(snap.Height-1-y)*rowBytes : (snap.Height-y)*rowBytes]
		copy(img.Pix[y*rowBytes:(y+1)*rowBytes], srcRow)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
