// Package gpu renders a parsed board's polarity-ordered sublayers to a
// single composited image, per §4.10: one framebuffer per layer, a
// shader program per primitive kind, instanced draws fed by the
// struct-of-arrays buffers from package sbuf, composited back-to-front
// into a snapshot the orchestrator hands to the CLI.
package gpu

import "github.com/gerberforge/engine/internal/sbuf"

// Tint is an RGBA multiplier applied to a layer's primitives during its
// render pass, letting the orchestrator color copper vs. soldermask vs.
// silkscreen layers distinctly without touching the parsed geometry.
type Tint struct {
	R, G, B, A float32
}

// OpaqueTint is the identity tint: unmodified primitive color, fully
// opaque.
func OpaqueTint() Tint { return Tint{R: 1, G: 1, B: 1, A: 1} }

// FrameSnapshot is one composited frame read back from the GPU, ready
// for PNG encoding by the CLI.
type FrameSnapshot struct {
	Pixels []byte // RGBA8, row-major, origin at bottom-left (OpenGL convention)
	Width  int
	Height int
}

// Pipeline is the GPU-accelerated layer compositor. Its lifecycle
// mirrors the orchestrator's external interface one-to-one: AddLayer
// and RemoveLayer track the board's open layers, Upload pushes newly
// parsed geometry, Render drives one composite pass, Resize reallocates
// the per-layer framebuffers, and Close releases GL resources.
//
// New returns the production backend, which opens a hidden window via
// glfw for an off-screen GL context. Tests build with the "headless"
// tag to link a trivial stand-in that tracks state without touching a
// real GPU.
type Pipeline interface {
	AddLayer(id int) error
	RemoveLayer(id int)
	Clear()
	Upload(id int, sub sbuf.Sublayer) error
	SetTint(id int, tint Tint)
	SetCamera(cam Camera)
	Resize(width, height int) error
	Render(order []int) (FrameSnapshot, error)
	Close() error
}
