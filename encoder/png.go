package encoder

import (
	"fmt"
	"image"
	"image/png"
	"io"
)

// FlipRows reverses the row order of a packed image in place. GL reads
// bottom row first, image files store the top row first.
func FlipRows[T any](pix []T, stride int) {
	rows := len(pix) / stride
	tmp := make([]T, stride)
	for top, bot := 0, rows-1; top < bot; top, bot = top+1, bot-1 {
		a := pix[top*stride : (top+1)*stride]
		b := pix[bot*stride : (bot+1)*stride]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}

// straightAlpha keeps the alpha channel in the file even when every pixel is
// opaque.
type straightAlpha struct{ *image.NRGBA64 }

func (straightAlpha) Opaque() bool { return false }

// WritePNG16 encodes top-down RGBA samples as 16-bit RGBA.
func WritePNG16(w io.Writer, pix []uint16, width, height int) error {
	if len(pix) != width*height*4 {
		return fmt.Errorf("frame has %d samples, want %d", len(pix), width*height*4)
	}
	img := image.NewNRGBA64(image.Rect(0, 0, width, height))
	for i, v := range pix {
		img.Pix[2*i] = byte(v >> 8)
		img.Pix[2*i+1] = byte(v)
	}
	return png.Encode(w, straightAlpha{img})
}
