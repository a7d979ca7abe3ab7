package encoder

import (
	"bytes"
	"image"
	"image/png"
	"slices"
	"testing"
)

func TestFlipRows(t *testing.T) {
	pix := []int{1, 1, 2, 2, 3, 3}
	FlipRows(pix, 2)
	if want := []int{3, 3, 2, 2, 1, 1}; !slices.Equal(pix, want) {
		t.Errorf("got %v, want %v", pix, want)
	}
	even := []int{1, 2, 3, 4}
	FlipRows(even, 1)
	if want := []int{4, 3, 2, 1}; !slices.Equal(even, want) {
		t.Errorf("got %v, want %v", even, want)
	}
}

func TestWritePNG16(t *testing.T) {
	pix := []uint16{
		0x1234, 0x5678, 0x9abc, 0xffff,
		0xffff, 0, 0, 0x8000,
	}
	var buf bytes.Buffer
	if err := WritePNG16(&buf, pix, 2, 1); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	r, g, b, a := img.At(0, 0).RGBA()
	if r != 0x1234 || g != 0x5678 || b != 0x9abc || a != 0xffff {
		t.Errorf("pixel 0 = %x %x %x %x", r, g, b, a)
	}
	// Translucent pixels keep their full 16-bit alpha.
	if _, _, _, a := img.At(1, 0).RGBA(); a != 0x8000 {
		t.Errorf("pixel 1 alpha %x", a)
	}

	if err := WritePNG16(&buf, pix, 3, 1); err == nil {
		t.Error("expected size mismatch error")
	}
}

func TestWritePNG16OpaqueKeepsAlpha(t *testing.T) {
	pix := []uint16{
		0, 0xffff, 0, 0xffff,
		0xffff, 0, 0, 0xffff,
	}
	var buf bytes.Buffer
	if err := WritePNG16(&buf, pix, 1, 2); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()
	// IHDR follows the signature: length, type, width, height, depth, color type.
	if string(data[12:16]) != "IHDR" {
		t.Fatalf("first chunk %q", data[12:16])
	}
	if depth := data[24]; depth != 16 {
		t.Errorf("bit depth %d, want 16", depth)
	}
	if ct := data[25]; ct != 6 {
		t.Errorf("color type %d, want 6 (truecolor with alpha)", ct)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := img.(*image.NRGBA64); !ok {
		t.Errorf("decoded %T, want *image.NRGBA64", img)
	}
}
