package renderer

import (
	"testing"

	"github.com/richinsley/shaderview/shader"
)

type fakeAllocator struct {
	next      uint32
	allocated []int
	released  []uint32
}

func (f *fakeAllocator) allocate(size int) uint32 {
	f.next++
	f.allocated = append(f.allocated, size)
	return f.next
}

func (f *fakeAllocator) release(id uint32) {
	f.released = append(f.released, id)
}

func TestComputeBufferReuse(t *testing.T) {
	alloc := &fakeAllocator{}
	buf := newComputeBuffer(alloc)

	if !buf.Resize(shader.ComputeSizing{ItemSize: 16, NumItems: 64}) {
		t.Fatal("first sizing should allocate")
	}
	// Same product, different factors.
	if buf.Resize(shader.ComputeSizing{ItemSize: 32, NumItems: 32}) {
		t.Error("unchanged byte size should not reallocate")
	}
	if len(alloc.allocated) != 1 {
		t.Fatalf("expected 1 allocation, got %d", len(alloc.allocated))
	}
	if buf.Sizing().NumItems != 32 {
		t.Errorf("sizing not updated: %+v", buf.Sizing())
	}

	if !buf.Resize(shader.ComputeSizing{ItemSize: 16, NumItems: 128}) {
		t.Fatal("changed byte size should reallocate")
	}
	if len(alloc.allocated) != 2 || alloc.allocated[1] != 16*128 {
		t.Errorf("expected exactly one new allocation of %d bytes, got %v", 16*128, alloc.allocated)
	}
	if len(alloc.released) != 1 || alloc.released[0] != 1 {
		t.Errorf("old buffer should be released once, got %v", alloc.released)
	}

	buf.Resize(shader.ComputeSizing{})
	if !buf.Empty() {
		t.Error("zero sizing should leave the buffer empty")
	}
	if len(alloc.allocated) != 2 {
		t.Errorf("zero sizing should not allocate, got %v", alloc.allocated)
	}
	buf.Destroy()
	if len(alloc.released) != 2 {
		t.Errorf("expected 2 releases, got %v", alloc.released)
	}
}

func TestDispatchGroups(t *testing.T) {
	for _, test := range []struct {
		items   int
		local   [3]int32
		x, y, z uint32
	}{
		{1024, [3]int32{16, 1, 1}, 64, 1, 1},
		{1000, [3]int32{16, 1, 1}, 63, 1, 1},
		{1, [3]int32{64, 2, 3}, 1, 2, 3},
		{10, [3]int32{0, 0, 0}, 10, 1, 1},
	} {
		x, y, z := dispatchGroups(test.items, test.local)
		if x != test.x || y != test.y || z != test.z {
			t.Errorf("dispatchGroups(%d, %v) = %d,%d,%d; want %d,%d,%d",
				test.items, test.local, x, y, z, test.x, test.y, test.z)
		}
	}
}
