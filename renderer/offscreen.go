package renderer

import (
	"fmt"
	"log"

	"github.com/go-gl/gl/v4.6-core/gl"
)

// OffscreenTarget is the float render target the user program draws into.
// It keeps the window size for the lifetime of the process.
type OffscreenTarget struct {
	fbo               uint32
	textureID         uint32
	depthRenderbuffer uint32
	width             int
	height            int
}

func NewOffscreenTarget(width, height int) (*OffscreenTarget, error) {
	ot := &OffscreenTarget{width: width, height: height}

	gl.GenFramebuffers(1, &ot.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, ot.fbo)
	gl.GenTextures(1, &ot.textureID)
	gl.BindTexture(gl.TEXTURE_2D, ot.textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGB32F, int32(width), int32(height), 0, gl.RGB, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, ot.textureID, 0)

	gl.GenRenderbuffers(1, &ot.depthRenderbuffer)
	gl.BindRenderbuffer(gl.RENDERBUFFER, ot.depthRenderbuffer)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH24_STENCIL8, int32(width), int32(height))
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.RENDERBUFFER, ot.depthRenderbuffer)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		ot.Destroy()
		return nil, fmt.Errorf("offscreen framebuffer is not complete: 0x%x", status)
	}
	log.Printf("Offscreen target: %dx%d RGB32F", width, height)
	return ot, nil
}

// Bind directs drawing into the target and clears it.
func (ot *OffscreenTarget) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, ot.fbo)
	gl.Viewport(0, 0, int32(ot.width), int32(ot.height))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (ot *OffscreenTarget) Texture() uint32 { return ot.textureID }

func (ot *OffscreenTarget) Destroy() {
	gl.DeleteFramebuffers(1, &ot.fbo)
	gl.DeleteTextures(1, &ot.textureID)
	gl.DeleteRenderbuffers(1, &ot.depthRenderbuffer)
}

// readPixel reads one RGB float pixel from framebuffer fbo, bottom-left origin.
func readPixel(fbo uint32, x, y int) [3]float32 {
	var px [3]float32
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(int32(x), int32(y), 1, 1, gl.RGB, gl.FLOAT, gl.Ptr(&px[0]))
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return px
}

// readFrame16 reads the default framebuffer as RGBA with 16 bits per
// channel, rows bottom to top.
func readFrame16(width, height int) []uint16 {
	pix := make([]uint16, width*height*4)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 2)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_SHORT, gl.Ptr(pix))
	return pix
}
