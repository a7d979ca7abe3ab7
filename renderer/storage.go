package renderer

import (
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/richinsley/shaderview/shader"
)

// bufferAllocator creates and frees shader storage buffers.
type bufferAllocator interface {
	allocate(size int) uint32
	release(id uint32)
}

// ComputeBuffer is the storage shared by the compute and fragment programs at
// binding 0. It survives reloads and is only reallocated when its byte size
// changes.
type ComputeBuffer struct {
	alloc  bufferAllocator
	id     uint32
	sizing shader.ComputeSizing
	size   int
}

func newComputeBuffer(alloc bufferAllocator) *ComputeBuffer {
	return &ComputeBuffer{alloc: alloc}
}

// Resize adopts sizing and reports whether the buffer had to be reallocated.
// A zero byte size frees the buffer.
func (b *ComputeBuffer) Resize(sizing shader.ComputeSizing) bool {
	b.sizing = sizing
	size := sizing.Bytes()
	if size == b.size {
		return false
	}
	if b.id != 0 {
		b.alloc.release(b.id)
		b.id = 0
	}
	b.size = size
	if size > 0 {
		b.id = b.alloc.allocate(size)
	}
	return true
}

// Empty reports whether there is nothing to dispatch over.
func (b *ComputeBuffer) Empty() bool { return b.size == 0 || b.id == 0 }

func (b *ComputeBuffer) Sizing() shader.ComputeSizing { return b.sizing }

func (b *ComputeBuffer) Destroy() {
	if b.id != 0 {
		b.alloc.release(b.id)
		b.id = 0
	}
	b.size = 0
}

type glAllocator struct{}

func (glAllocator) allocate(size int) uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, id)
	gl.BufferData(gl.SHADER_STORAGE_BUFFER, size, nil, gl.DYNAMIC_COPY)
	gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, 0, id)
	gl.BindBuffer(gl.SHADER_STORAGE_BUFFER, 0)
	return id
}

func (glAllocator) release(id uint32) {
	gl.DeleteBuffers(1, &id)
}

// dispatchGroups returns the work group counts covering numItems invocations
// along X for a program declaring the given local size.
func dispatchGroups(numItems int, local [3]int32) (x, y, z uint32) {
	gx := int(local[0])
	if gx <= 0 {
		gx = 1
	}
	x = uint32((numItems + gx - 1) / gx)
	y, z = uint32(max(local[1], 1)), uint32(max(local[2], 1))
	return x, y, z
}
