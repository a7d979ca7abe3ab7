package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/golang/freetype/truetype"
	"github.com/richinsley/shaderview/shader"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
)

const (
	overlayFontSize = 14
	overlayPadding  = 4
)

var overlayBackground = color.RGBA{A: 160}

// Overlay draws one line of text in the top-left corner of the window. The
// text is rasterized again only after it changes.
type Overlay struct {
	face  font.Face
	text  string
	dirty bool
	img   *image.RGBA

	width, height int
	prog          uint32
	tex           uint32
	vao, vbo      uint32
}

func newOverlayFace() (font.Face, error) {
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse overlay font: %w", err)
	}
	return truetype.NewFace(ttf, &truetype.Options{
		Size:    overlayFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// NewOverlay creates the GL objects for a window of the given size.
func NewOverlay(width, height int) (*Overlay, error) {
	face, err := newOverlayFace()
	if err != nil {
		return nil, err
	}
	vs, fs := shader.GetOverlayShaders()
	prog, err := linkProgram(stageSource{gl.VERTEX_SHADER, vs}, stageSource{gl.FRAGMENT_SHADER, fs})
	if err != nil {
		return nil, fmt.Errorf("failed to create overlay program: %w", err)
	}
	o := &Overlay{face: face, width: width, height: height, prog: prog}
	gl.GenTextures(1, &o.tex)
	gl.BindTexture(gl.TEXTURE_2D, o.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenVertexArrays(1, &o.vao)
	gl.GenBuffers(1, &o.vbo)
	gl.BindVertexArray(o.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 6*4*4, nil, gl.DYNAMIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 4, gl.FLOAT, false, 4*4, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return o, nil
}

// SetText replaces the overlay text.
func (o *Overlay) SetText(text string) {
	if text != o.text {
		o.text = text
		o.dirty = true
	}
}

// Draw renders the overlay over the current contents of the default
// framebuffer.
func (o *Overlay) Draw() {
	if o.text == "" {
		return
	}
	if o.dirty || o.img == nil {
		o.img = rasterizeText(o.face, o.text)
		o.upload()
		o.dirty = false
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(o.width), int32(o.height))
	gl.Enable(gl.BLEND)
	// image.RGBA is alpha-premultiplied.
	gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	gl.UseProgram(o.prog)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, o.tex)
	gl.BindVertexArray(o.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.Disable(gl.BLEND)
}

func (o *Overlay) upload() {
	b := o.img.Bounds()
	gl.BindTexture(gl.TEXTURE_2D, o.tex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(b.Dx()), int32(b.Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(o.img.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	verts := overlayQuad(b.Dx(), b.Dy(), o.width, o.height)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*4, gl.Ptr(&verts[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (o *Overlay) Destroy() {
	gl.DeleteProgram(o.prog)
	gl.DeleteTextures(1, &o.tex)
	gl.DeleteBuffers(1, &o.vbo)
	gl.DeleteVertexArrays(1, &o.vao)
}

// rasterizeText draws text in white on a translucent box sized to fit it.
// Row 0 of the result is the top of the text.
func rasterizeText(face font.Face, text string) *image.RGBA {
	metrics := face.Metrics()
	advance := font.MeasureString(face, text)
	w := advance.Ceil() + 2*overlayPadding
	h := (metrics.Ascent + metrics.Descent).Ceil() + 2*overlayPadding
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(overlayBackground), image.Point{}, draw.Src)
	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(overlayPadding), Y: fixed.I(overlayPadding) + metrics.Ascent},
	}
	d.DrawString(text)
	return img
}

// overlayQuad places a w×h pixel image at the top-left corner of a
// winW×winH window. Each vertex is clip x, clip y, s, t.
func overlayQuad(w, h, winW, winH int) [24]float32 {
	x0, y0 := float32(-1), float32(1)
	x1 := -1 + 2*float32(w)/float32(winW)
	y1 := 1 - 2*float32(h)/float32(winH)
	return [24]float32{
		x0, y0, 0, 0,
		x0, y1, 0, 1,
		x1, y0, 1, 0,
		x1, y0, 1, 0,
		x0, y1, 0, 1,
		x1, y1, 1, 1,
	}
}
