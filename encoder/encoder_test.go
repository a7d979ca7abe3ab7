package encoder

import (
	"path/filepath"
	"slices"
	"testing"
)

func TestVideoCommand(t *testing.T) {
	b := NewBatch(filepath.Join("frames", "anim"), 48, 2)
	args := videoCommand(b, 24, "anim.mp4", "").GetArgs()
	for _, pair := range [][2]string{
		{"-framerate", "24"},
		{"-start_number", "0"},
		{"-i", filepath.Join("frames", "anim_%d.png")},
		{"-c:v", "libx264"},
		{"-pix_fmt", "yuv420p"},
	} {
		i := slices.Index(args, pair[0])
		if i < 0 || i+1 >= len(args) || args[i+1] != pair[1] {
			t.Errorf("missing %s %s in %v", pair[0], pair[1], args)
		}
	}
	if !slices.Contains(args, "anim.mp4") || !slices.Contains(args, "-y") {
		t.Errorf("output or overwrite flag missing from %v", args)
	}
	if err := AssembleVideo(b, 0, "anim.mp4", ""); err == nil {
		t.Error("zero frame rate should be rejected")
	}
}
