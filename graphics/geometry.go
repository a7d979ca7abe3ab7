package graphics

// Position3 is a vertex position in clip space.
type Position3 struct {
	X, Y, Z float32
}

// TexCoord3 is a texture coordinate. It has the same shape as Position3 but
// is never interchangeable with it without an explicit conversion.
type TexCoord3 struct {
	U, V, W float32
}

// TexCoord reinterprets p as a texture coordinate.
func (p Position3) TexCoord() TexCoord3 {
	return TexCoord3{U: p.X, V: p.Y, W: p.Z}
}

// Position reinterprets t as a position.
func (t TexCoord3) Position() Position3 {
	return Position3{X: t.U, Y: t.V, Z: t.W}
}

// ScaleNDC corrects a normalized device coordinate for the aspect ratio of a
// w×h surface so that one unit spans the same number of pixels on both axes.
// Portrait surfaces stretch Y, landscape surfaces stretch X.
//
// ScaleNDC is not idempotent for non-square surfaces; apply it exactly once.
func ScaleNDC(p Position3, w, h int) Position3 {
	ratio := float32(w) / float32(h)
	if ratio < 1 {
		return Position3{X: p.X, Y: p.Y / ratio, Z: p.Z}
	}
	return Position3{X: p.X * ratio, Y: p.Y, Z: p.Z}
}

// PixelToNDC maps a framebuffer pixel (origin top-left) to normalized device
// coordinates with Y pointing up.
func PixelToNDC(x, y, w, h int) Position3 {
	nx := float32(x)/float32(w)*2 - 1
	ny := float32(y)/float32(h)*2 - 1
	return Position3{X: nx, Y: -ny}
}
