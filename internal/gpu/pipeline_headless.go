//go:build headless

package gpu

import "github.com/gerberforge/engine/internal/sbuf"

// headlessPipeline is a trivial stand-in for glPipeline that tracks the
// same state (open layers, tints, camera, dimensions) without opening a
// real GL context, so package orchestrator's tests can exercise the
// full add/render/resize lifecycle on a machine with no GPU.
type headlessPipeline struct {
	layers map[int]bool
	tints  map[int]Tint
	camera Camera
	width  int
	height int
}

// New returns the headless stand-in. Built only with the "headless" tag.
func New(width, height int) (Pipeline, error) {
	return &headlessPipeline{
		layers: make(map[int]bool),
		tints:  make(map[int]Tint),
		camera: NewCamera(),
		width:  width,
		height: height,
	}, nil
}

func (p *headlessPipeline) AddLayer(id int) error {
	if p.layers[id] {
		return &Error{Operation: "add_layer", Details: "layer already exists"}
	}
	p.layers[id] = true
	p.tints[id] = OpaqueTint()
	return nil
}

func (p *headlessPipeline) RemoveLayer(id int) {
	delete(p.layers, id)
	delete(p.tints, id)
}

func (p *headlessPipeline) Clear() {
	p.layers = make(map[int]bool)
	p.tints = make(map[int]Tint)
}

func (p *headlessPipeline) SetTint(id int, tint Tint) {
	if p.layers[id] {
		p.tints[id] = tint
	}
}

func (p *headlessPipeline) SetCamera(cam Camera) { p.camera = cam }

func (p *headlessPipeline) Upload(id int, sub sbuf.Sublayer) error {
	if !p.layers[id] {
		return &Error{Operation: "render", Details: "layer does not exist"}
	}
	return nil
}

func (p *headlessPipeline) Resize(width, height int) error {
	p.width, p.height = width, height
	return nil
}

func (p *headlessPipeline) Render(order []int) (FrameSnapshot, error) {
	pixels := make([]byte, p.width*p.height*4)
	return FrameSnapshot{Pixels: pixels, Width: p.width, Height: p.height}, nil
}

func (p *headlessPipeline) Close() error { return nil }
