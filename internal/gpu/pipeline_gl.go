//go:build !headless

package gpu

import (
	"fmt"
	"runtime"

	"github.com/gerberforge/engine/internal/geometry"
	"github.com/gerberforge/engine/internal/sbuf"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// glfw/GL contexts are bound to the OS thread that created them.
	runtime.LockOSThread()
}

// glPipeline is the production Pipeline backend: a hidden glfw window
// providing an off-screen GL 3.3 core context, one layerFramebuffer per
// open layer, a programCache of the four primitive-kind shaders plus
// the composite blit shader, and a vaoCache of per-(layer, kind) GPU
// buffers.
type glPipeline struct {
	window *glfw.Window

	programs   *programCache
	composite  *program
	vaos       *vaoCache
	layers     map[int]*layerFramebuffer
	tints      map[int]Tint
	camera     Camera
	width      int
	height     int
}

// New opens a hidden glfw window sized width x height and returns the
// Pipeline that renders into it. The window is never shown; it exists
// only to own the GL context the offline render passes target.
func New(width, height int) (Pipeline, error) {
	if err := glfw.Init(); err != nil {
		return nil, &Error{Operation: "init", Details: "glfw.Init", Err: err}
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(width, height, "gerberforge", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, &Error{Operation: "init", Details: "glfw.CreateWindow", Err: err}
	}
	win.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		glfw.Terminate()
		return nil, &Error{Operation: "init", Details: "gl.Init", Err: err}
	}

	sharedUnitQuad = newQuadMesh(unitQuadVerts[:], 2, []int32{2})
	compositeQuad = newQuadMesh(compositeQuadVerts[:], 4, []int32{2, 2})

	p := &glPipeline{
		window:    win,
		programs:  newProgramCache(),
		vaos:      newVAOCache(),
		layers:    make(map[int]*layerFramebuffer),
		tints:     make(map[int]Tint),
		camera:    NewCamera(),
		width:     width,
		height:    height,
	}

	p.composite, err = linkProgram(compositeVertexShader, compositeFragmentShader)
	if err != nil {
		p.Close()
		return nil, &Error{Operation: "init", Details: "composite program", Err: err}
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	return p, nil
}

func (p *glPipeline) AddLayer(id int) error {
	if _, exists := p.layers[id]; exists {
		return &Error{Operation: "add_layer", Details: fmt.Sprintf("layer %d already exists", id)}
	}
	lf, err := newLayerFramebuffer(p.width, p.height)
	if err != nil {
		return err
	}
	p.layers[id] = lf
	p.tints[id] = OpaqueTint()
	return nil
}

func (p *glPipeline) RemoveLayer(id int) {
	if lf, ok := p.layers[id]; ok {
		lf.close()
		delete(p.layers, id)
		delete(p.tints, id)
		p.vaos.removeLayer(id)
	}
}

func (p *glPipeline) Clear() {
	for id := range p.layers {
		p.RemoveLayer(id)
	}
}

func (p *glPipeline) SetTint(id int, tint Tint) {
	if _, ok := p.layers[id]; ok {
		p.tints[id] = tint
	}
}

func (p *glPipeline) SetCamera(cam Camera) { p.camera = cam }

func (p *glPipeline) Upload(id int, sub sbuf.Sublayer) error {
	if _, ok := p.layers[id]; !ok {
		return &Error{Operation: "render", Details: fmt.Sprintf("layer %d does not exist", id)}
	}
	if sub.Triangles.Count() > 0 {
		b := p.vaos.getOrCreate(bufferKey{layerID: id, kind: geometry.KindTriangle})
		uploadTriangles(b, sub.Triangles)
	}
	if sub.Circles.Count() > 0 {
		b := p.vaos.getOrCreate(bufferKey{layerID: id, kind: geometry.KindCircle})
		uploadCircles(b, sub.Circles)
	}
	if sub.Arcs.Count() > 0 {
		b := p.vaos.getOrCreate(bufferKey{layerID: id, kind: geometry.KindArc})
		uploadArcs(b, sub.Arcs)
	}
	if sub.Thermals.Count() > 0 {
		b := p.vaos.getOrCreate(bufferKey{layerID: id, kind: geometry.KindThermal})
		uploadThermals(b, sub.Thermals)
	}
	return nil
}

func (p *glPipeline) Resize(width, height int) error {
	p.width, p.height = width, height
	p.window.SetSize(width, height)
	for _, lf := range p.layers {
		lf.resize(width, height)
	}
	return nil
}

// Render draws every layer in order (back to front) into its own
// framebuffer, then composites each onto the window's default
// framebuffer before reading the result back.
func (p *glPipeline) Render(order []int) (FrameSnapshot, error) {
	vp := p.camera.ViewProjection(p.width, p.height)

	for _, id := range order {
		lf, ok := p.layers[id]
		if !ok {
			continue
		}
		lf.bind()
		gl.ClearColor(0, 0, 0, 0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		tint := p.tints[id]
		p.drawKind(id, geometry.KindTriangle, vp, tint)
		p.drawKind(id, geometry.KindCircle, vp, tint)
		p.drawKind(id, geometry.KindArc, vp, tint)
		p.drawKind(id, geometry.KindThermal, vp, tint)
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(p.width), int32(p.height))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	p.composite.use()
	gl.ActiveTexture(gl.TEXTURE0)
	gl.Uniform1i(p.composite.uniformLocation("uLayer"), 0)
	gl.BindVertexArray(compositeQuad.vao)
	for _, id := range order {
		lf, ok := p.layers[id]
		if !ok {
			continue
		}
		gl.BindTexture(gl.TEXTURE_2D, lf.texture)
		gl.DrawArrays(gl.TRIANGLE_FAN, 0, 4)
	}

	pixels := make([]byte, p.width*p.height*4)
	gl.ReadPixels(0, 0, int32(p.width), int32(p.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	return FrameSnapshot{Pixels: pixels, Width: p.width, Height: p.height}, nil
}

func (p *glPipeline) drawKind(id int, kind geometry.Kind, vp [16]float32, tint Tint) {
	b, ok := p.vaos.entries[bufferKey{layerID: id, kind: kind}]
	if !ok {
		return
	}
	prog, err := p.programs.getOrCreate(ProgramKey{Kind: kind})
	if err != nil {
		return
	}
	prog.use()
	prog.setMat4("uViewProjection", vp)
	prog.setVec4("uTint", tint.R, tint.G, tint.B, tint.A)
	gl.BindVertexArray(b.vao)

	switch kind {
	case geometry.KindTriangle:
		if b.indexCount > 0 {
			gl.DrawElements(gl.TRIANGLES, b.indexCount, gl.UNSIGNED_INT, nil)
		}
	default:
		if b.instanceCount > 0 {
			gl.DrawArraysInstanced(gl.TRIANGLE_FAN, 0, 4, b.instanceCount)
		}
	}
}

func (p *glPipeline) Close() error {
	for id := range p.layers {
		p.RemoveLayer(id)
	}
	p.vaos.close()
	p.programs.close()
	if p.composite != nil {
		p.composite.close()
	}
	if sharedUnitQuad != nil {
		sharedUnitQuad.close()
		sharedUnitQuad = nil
	}
	if compositeQuad != nil {
		compositeQuad.close()
		compositeQuad = nil
	}
	if p.window != nil {
		p.window.Destroy()
	}
	glfw.Terminate()
	return nil
}
