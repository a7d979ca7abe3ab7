package renderer

import (
	"testing"
)

func TestRasterizeText(t *testing.T) {
	face, err := newOverlayFace()
	if err != nil {
		t.Fatal(err)
	}
	short := rasterizeText(face, "INFO")
	long := rasterizeText(face, "INFO/R+0.000/G+0.000/B+0.000")
	if long.Bounds().Dx() <= short.Bounds().Dx() {
		t.Errorf("longer text should rasterize wider: %v vs %v", long.Bounds(), short.Bounds())
	}
	if long.Bounds().Dy() != short.Bounds().Dy() {
		t.Errorf("single lines should share a height: %v vs %v", long.Bounds(), short.Bounds())
	}
	// Glyphs are drawn over a translucent background.
	var glyph int
	for i := 3; i < len(long.Pix); i += 4 {
		if long.Pix[i] > overlayBackground.A {
			glyph++
		}
	}
	if glyph == 0 {
		t.Error("no glyph pixels were drawn")
	}
	if long.Pix[3] != overlayBackground.A {
		t.Errorf("corner should be background, alpha %d", long.Pix[3])
	}
}

func TestOverlayQuad(t *testing.T) {
	v := overlayQuad(150, 30, 600, 300)
	const eps = 1e-6
	near := func(a, b float32) bool { return a-b < eps && b-a < eps }
	// top-left vertex at the window corner
	if !near(v[0], -1) || !near(v[1], 1) {
		t.Errorf("top-left at (%v,%v)", v[0], v[1])
	}
	// bottom-right vertex
	if !near(v[20], -0.5) || !near(v[21], 0.8) || v[22] != 1 || v[23] != 1 {
		t.Errorf("bottom-right vertex %v", v[20:24])
	}
}

func TestOverlaySetTextDirty(t *testing.T) {
	o := &Overlay{}
	o.SetText("a")
	if !o.dirty {
		t.Error("new text should mark overlay dirty")
	}
	o.dirty = false
	o.SetText("a")
	if o.dirty {
		t.Error("same text should not mark overlay dirty")
	}
}
