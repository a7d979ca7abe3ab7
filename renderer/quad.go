package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/richinsley/shaderview/graphics"
)

var quadCorners = [6]graphics.Position3{
	{X: 1, Y: 1}, {X: -1, Y: -1}, {X: -1, Y: 1},
	{X: 1, Y: -1}, {X: -1, Y: -1}, {X: 1, Y: 1},
}

// quadVertices returns the full-screen quad: clip-space corners and the
// aspect-corrected coordinates every fragment program receives as uv.
func quadVertices(width, height int) (pos [6]graphics.Position3, tex [6]graphics.TexCoord3) {
	for i, c := range quadCorners {
		pos[i] = c
		tex[i] = graphics.ScaleNDC(c, width, height).TexCoord()
	}
	return pos, tex
}

type quad struct {
	vao  uint32
	vbos [2]uint32
}

func newQuad(width, height int) *quad {
	pos, tex := quadVertices(width, height)
	q := &quad{}
	gl.GenVertexArrays(1, &q.vao)
	gl.GenBuffers(2, &q.vbos[0])
	gl.BindVertexArray(q.vao)

	stride := int32(unsafe.Sizeof(graphics.Position3{}))
	gl.BindBuffer(gl.ARRAY_BUFFER, q.vbos[0])
	gl.BufferData(gl.ARRAY_BUFFER, len(pos)*int(stride), gl.Ptr(&pos[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))

	gl.BindBuffer(gl.ARRAY_BUFFER, q.vbos[1])
	gl.BufferData(gl.ARRAY_BUFFER, len(tex)*int(stride), gl.Ptr(&tex[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return q
}

func (q *quad) draw() {
	gl.BindVertexArray(q.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(quadCorners)))
	gl.BindVertexArray(0)
}

func (q *quad) destroy() {
	gl.DeleteBuffers(2, &q.vbos[0])
	gl.DeleteVertexArrays(1, &q.vao)
}
