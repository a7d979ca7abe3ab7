// Package encoder exports rendered frames as numbered 16-bit PNG files and
// optionally stitches them into a video.
package encoder

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// FrameSource renders frames on demand.
type FrameSource interface {
	Size() (int, int)
	SetTime(t float32)
	RenderFrame() error
	// ReadFrame16 returns RGBA16 samples, bottom row first.
	ReadFrame16() []uint16
	Present()
}

// Batch renders Frames frames spread evenly over Duration seconds and writes
// them to Dir/Name_<n>.png.
type Batch struct {
	Dir      string
	Name     string
	Frames   int
	Duration float64
}

// NewBatch splits an output base path like "out/anim" into directory and
// file name prefix.
func NewBatch(output string, frames int, duration float64) Batch {
	dir, name := filepath.Split(output)
	if dir == "" {
		dir = "."
	}
	return Batch{Dir: filepath.Clean(dir), Name: strings.TrimSuffix(name, ".png"), Frames: frames, Duration: duration}
}

// Times returns the time uniform of every frame. The first frame is at 0
// and the last at Duration.
func (b Batch) Times() []float32 {
	if b.Frames <= 0 {
		return nil
	}
	times := make([]float32, b.Frames)
	if b.Frames == 1 {
		return times
	}
	delta := b.Duration / float64(b.Frames-1)
	for n := range times {
		times[n] = float32(delta * float64(n))
	}
	return times
}

func (b Batch) FramePath(n int) string {
	return filepath.Join(b.Dir, fmt.Sprintf("%s_%d.png", b.Name, n))
}

// Pattern is the ffmpeg image sequence pattern matching FramePath.
func (b Batch) Pattern() string {
	return filepath.Join(b.Dir, b.Name+"_%d.png")
}

// Run renders and writes every frame. The first failure aborts the batch.
func (b Batch) Run(src FrameSource) error {
	if err := os.MkdirAll(b.Dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	width, height := src.Size()
	times := b.Times()
	log.Printf("Rendering %d frames to %s", len(times), b.Pattern())
	for n, t := range times {
		src.SetTime(t)
		if err := src.RenderFrame(); err != nil {
			return fmt.Errorf("render frame %d: %w", n, err)
		}
		pix := src.ReadFrame16()
		src.Present()
		FlipRows(pix, width*4)
		if err := writeFrame(b.FramePath(n), pix, width, height); err != nil {
			return err
		}
	}
	log.Printf("... done (%d frames).", len(times))
	return nil
}

func writeFrame(path string, pix []uint16, width, height int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	bw := bufio.NewWriter(f)
	err = WritePNG16(bw, pix, width, height)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
