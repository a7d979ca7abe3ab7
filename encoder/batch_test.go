package encoder

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

// fakeSource renders a vertical gradient: row y (bottom-up) has red = y.
type fakeSource struct {
	w, h     int
	times    []float32
	presents int
	fail     error
}

func (f *fakeSource) Size() (int, int) { return f.w, f.h }

func (f *fakeSource) SetTime(t float32) { f.times = append(f.times, t) }

func (f *fakeSource) RenderFrame() error { return f.fail }

func (f *fakeSource) ReadFrame16() []uint16 {
	pix := make([]uint16, f.w*f.h*4)
	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x++ {
			i := (y*f.w + x) * 4
			pix[i] = uint16(y)
			pix[i+3] = 0xffff
		}
	}
	return pix
}

func (f *fakeSource) Present() { f.presents++ }

func TestBatchTimes(t *testing.T) {
	b := Batch{Frames: 5, Duration: 1}
	want := []float32{0, 0.25, 0.5, 0.75, 1}
	if got := b.Times(); !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got := (Batch{Frames: 1, Duration: 1}).Times(); !slices.Equal(got, []float32{0}) {
		t.Errorf("single frame: %v", got)
	}
	if got := (Batch{Frames: 0, Duration: 1}).Times(); len(got) != 0 {
		t.Errorf("no frames: %v", got)
	}
}

func TestNewBatch(t *testing.T) {
	for _, test := range []struct {
		output    string
		dir, name string
	}{
		{"out/anim", "out", "anim"},
		{"a/b/c/frame.png", filepath.Join("a", "b", "c"), "frame"},
		{"anim", ".", "anim"},
	} {
		b := NewBatch(test.output, 3, 1)
		if b.Dir != test.dir || b.Name != test.name {
			t.Errorf("NewBatch(%q) = %q, %q; want %q, %q", test.output, b.Dir, b.Name, test.dir, test.name)
		}
	}
}

func TestBatchRun(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "frames")
	b := NewBatch(filepath.Join(dir, "name"), 5, 1)
	src := &fakeSource{w: 3, h: 4}
	if err := b.Run(src); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(src.times, []float32{0, 0.25, 0.5, 0.75, 1}) {
		t.Errorf("time uniforms %v", src.times)
	}
	if src.presents != 5 {
		t.Errorf("presented %d frames", src.presents)
	}
	for n := 0; n < 5; n++ {
		path := filepath.Join(dir, "name_"+string(rune('0'+n))+".png")
		if path != b.FramePath(n) {
			t.Errorf("frame path %q, want %q", b.FramePath(n), path)
		}
		f, err := os.Open(path)
		if err != nil {
			t.Fatal(err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatal(err)
		}
		if got := img.Bounds().Size(); got.X != 3 || got.Y != 4 {
			t.Fatalf("image size %v", got)
		}
		// Top row of the file is the last row read from GL.
		if r, _, _, _ := img.At(0, 0).RGBA(); r != 3 {
			t.Errorf("top-left red %d, want 3", r)
		}
		if r, _, _, _ := img.At(0, 3).RGBA(); r != 0 {
			t.Errorf("bottom-left red %d, want 0", r)
		}
	}

	// Running again into the existing directory is fine.
	if err := b.Run(&fakeSource{w: 3, h: 4}); err != nil {
		t.Errorf("rerun into existing directory: %v", err)
	}
}

func TestBatchRunErrors(t *testing.T) {
	errGL := errors.New("GL_INVALID_OPERATION")
	b := NewBatch(filepath.Join(t.TempDir(), "x"), 3, 1)
	src := &fakeSource{w: 2, h: 2, fail: errGL}
	if err := b.Run(src); !errors.Is(err, errGL) {
		t.Errorf("got %v, want %v", err, errGL)
	}
	if len(src.times) != 1 {
		t.Errorf("batch continued after a failed frame: %v", src.times)
	}

	// A directory in place of a frame file makes the create fail.
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "x_0.png"), 0o755); err != nil {
		t.Fatal(err)
	}
	b = NewBatch(filepath.Join(dir, "x"), 3, 1)
	src = &fakeSource{w: 2, h: 2}
	if err := b.Run(src); err == nil {
		t.Fatal("expected file create failure")
	}
	if len(src.times) != 1 {
		t.Errorf("batch continued after a failed file: %v", src.times)
	}
}
