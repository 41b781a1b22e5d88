//go:build !headless

package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// layerFramebuffer is one layer's off-screen render target: a color
// texture backing an FBO. Each render pass clears it and redraws that
// layer's primitives; the composite pass then samples it as a texture.
type layerFramebuffer struct {
	fbo, texture  uint32
	width, height int32
}

func newLayerFramebuffer(width, height int) (*layerFramebuffer, error) {
	lf := &layerFramebuffer{width: int32(width), height: int32(height)}
	gl.GenFramebuffers(1, &lf.fbo)
	gl.GenTextures(1, &lf.texture)
	lf.allocate()

	gl.BindFramebuffer(gl.FRAMEBUFFER, lf.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, lf.texture, 0)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		lf.close()
		return nil, &Error{Operation: "add_layer", Details: fmt.Sprintf("incomplete framebuffer (status 0x%x)", status)}
	}
	return lf, nil
}

func (lf *layerFramebuffer) allocate() {
	gl.BindTexture(gl.TEXTURE_2D, lf.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, lf.width, lf.height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// resize reallocates the backing texture storage in place; the FBO's
// attachment stays valid since it's bound by texture id, not size.
func (lf *layerFramebuffer) resize(width, height int) {
	lf.width, lf.height = int32(width), int32(height)
	lf.allocate()
}

func (lf *layerFramebuffer) bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, lf.fbo)
	gl.Viewport(0, 0, lf.width, lf.height)
}

func (lf *layerFramebuffer) close() {
	gl.DeleteTextures(1, &lf.texture)
	gl.DeleteFramebuffers(1, &lf.fbo)
}
