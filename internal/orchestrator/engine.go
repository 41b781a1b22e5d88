// Package orchestrator composes the Gerber/ODB++ parsers, the SoA
// buffer transposition, and the GPU pipeline into the engine's single
// external surface, per §6: init, add_layer, remove_layer, clear,
// render, get_boundary, resize.
package orchestrator

import (
	"github.com/gerberforge/engine/internal/boolops"
	"github.com/gerberforge/engine/internal/geometry"
	"github.com/gerberforge/engine/internal/gerber"
	"github.com/gerberforge/engine/internal/gpu"
	"github.com/gerberforge/engine/internal/odbpp"
	"github.com/gerberforge/engine/internal/sbuf"
)

// layer is the engine's bookkeeping for one open layer: just enough to
// answer get_boundary and to drive a render's per-layer tint lookup.
// The actual geometry lives GPU-side in the pipeline's VAO cache.
type layer struct {
	id     uint32
	bounds geometry.Box
}

// ParseReport is add_layer's non-fatal output: the id of the layer that
// was created, alongside any soft errors accumulated while parsing it.
// Per §7, parsing never fails outright: a non-nil error comes only from
// the GPU side (adding or uploading the layer), and then the report is
// empty.
type ParseReport struct {
	LayerID uint32
	Errors  []error
}

// Engine drives one renderer instance: the `init` operation's result.
type Engine struct {
	pipeline      gpu.Pipeline
	layers        map[uint32]*layer
	order         []uint32
	nextID        uint32
	width, height int
}

// Init opens the GPU pipeline at the given canvas size and returns a
// ready Engine. This is the `init(graphics_ctx)` operation: the host
// graphics context itself is acquired by package gpu, out of scope per
// §1's non-goals, so Init only needs the canvas dimensions.
func Init(width, height int) (*Engine, error) {
	p, err := gpu.New(width, height)
	if err != nil {
		return nil, &Error{Op: "init", Details: "gpu pipeline", Err: err}
	}
	return &Engine{
		pipeline: p,
		layers:   make(map[uint32]*layer),
		width:    width,
		height:   height,
	}, nil
}

// AddLayer parses Gerber source text, uploads its sublayers to the GPU,
// and returns the new layer's id plus any soft parse errors.
func (e *Engine) AddLayer(content string) (ParseReport, error) {
	res := gerber.Parse(content, boolops.EarClipper{})
	return e.addParsed(res.Sublayers, res.Errors)
}

// AddODBPPLayer parses a companion symbols/features pair into the same
// pipeline a Gerber layer uses (§4.11's "plugs into the same SoA
// buffers as Gerber").
func (e *Engine) AddODBPPLayer(symbolsText, featuresText string) (ParseReport, error) {
	symbols, symErrs := odbpp.ParseSymbols(symbolsText)
	prims, featErrs := odbpp.ParseFeatures(featuresText, symbols)
	errs := append(symErrs, featErrs...)
	return e.addParsed([][]geometry.Primitive{prims}, errs)
}

func (e *Engine) addParsed(sublayers [][]geometry.Primitive, softErrors []error) (ParseReport, error) {
	id := e.nextID + 1

	if err := e.pipeline.AddLayer(int(id)); err != nil {
		return ParseReport{}, &Error{Op: "add_layer", Details: "gpu add_layer", Err: err}
	}

	l := &layer{id: id, bounds: geometry.EmptyBox()}
	for _, prims := range sublayers {
		sub := sbuf.Transpose(prims)
		l.bounds.Union(sub.Bounds)
		if err := e.pipeline.Upload(int(id), sub); err != nil {
			e.pipeline.RemoveLayer(int(id))
			return ParseReport{}, &Error{Op: "add_layer", Details: "gpu upload", Err: err}
		}
	}

	e.nextID = id
	e.layers[id] = l
	e.order = append(e.order, id)
	return ParseReport{LayerID: id, Errors: softErrors}, nil
}

// RemoveLayer frees id's slot. Removing an id that was never added, or
// already removed, is a hard error per §7 (invalid layer id).
func (e *Engine) RemoveLayer(id uint32) error {
	if _, ok := e.layers[id]; !ok {
		return &Error{Op: "remove_layer", Details: "unknown layer id"}
	}
	e.pipeline.RemoveLayer(int(id))
	delete(e.layers, id)
	for i, existing := range e.order {
		if existing == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
	return nil
}

// Clear frees every open layer.
func (e *Engine) Clear() {
	e.pipeline.Clear()
	e.layers = make(map[uint32]*layer)
	e.order = nil
}

// Render composites ids back-to-front under the given camera
// parameters. rgbFlat carries one RGB triplet per id (3*len(ids)
// floats, per §6); alpha applies uniformly to every layer in this pass.
func (e *Engine) Render(ids []uint32, rgbFlat []float32, zoom, ox, oy float64, alpha float32) (gpu.FrameSnapshot, error) {
	if len(rgbFlat) != 3*len(ids) {
		return gpu.FrameSnapshot{}, &Error{Op: "render", Details: "rgb_flat must have 3 floats per layer id"}
	}

	order := make([]int, len(ids))
	for i, id := range ids {
		if _, ok := e.layers[id]; !ok {
			return gpu.FrameSnapshot{}, &Error{Op: "render", Details: "invalid layer id"}
		}
		order[i] = int(id)
		e.pipeline.SetTint(int(id), gpu.Tint{
			R: rgbFlat[i*3], G: rgbFlat[i*3+1], B: rgbFlat[i*3+2], A: alpha,
		})
	}

	e.pipeline.SetCamera(gpu.Camera{OffsetX: ox, OffsetY: oy, Zoom: zoom})

	snap, err := e.pipeline.Render(order)
	if err != nil {
		return gpu.FrameSnapshot{}, &Error{Op: "render", Details: "gpu render", Err: err}
	}
	return snap, nil
}

// GetBoundary returns the union bounding box over every open layer.
func (e *Engine) GetBoundary() geometry.Box {
	b := geometry.EmptyBox()
	for _, l := range e.layers {
		b.Union(l.bounds)
	}
	return b.Normalized()
}

// Resize reallocates the per-layer framebuffers to the new canvas size.
func (e *Engine) Resize(width, height int) error {
	if err := e.pipeline.Resize(width, height); err != nil {
		return &Error{Op: "resize", Details: "gpu resize", Err: err}
	}
	e.width, e.height = width, height
	return nil
}

// LayerOrder returns the ids of every open layer, in add order, for
// callers (notably the CLI) that want a default render order.
func (e *Engine) LayerOrder() []uint32 {
	out := make([]uint32, len(e.order))
	copy(out, e.order)
	return out
}

// Close releases the GPU pipeline's resources.
func (e *Engine) Close() error {
	return e.pipeline.Close()
}
