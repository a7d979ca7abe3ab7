package encoder

import (
	"fmt"
	"log"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// videoCommand builds the ffmpeg invocation turning the batch's PNG
// sequence into an H.264 file.
func videoCommand(b Batch, fps float64, output, ffmpegPath string) *ffmpeg.Stream {
	inputArgs := ffmpeg.KwArgs{
		"framerate":    strconv.FormatFloat(fps, 'f', -1, 64),
		"start_number": "0",
	}
	outputArgs := ffmpeg.KwArgs{
		"c:v":     "libx264",
		"pix_fmt": "yuv420p",
	}
	cmd := ffmpeg.Input(b.Pattern(), inputArgs).
		Output(output, outputArgs).
		OverWriteOutput().ErrorToStdOut()
	if ffmpegPath != "" {
		cmd = cmd.SetFfmpegPath(ffmpegPath)
	}
	return cmd
}

// AssembleVideo encodes the frames written by b.Run into output.
func AssembleVideo(b Batch, fps float64, output, ffmpegPath string) error {
	if fps <= 0 {
		return fmt.Errorf("invalid frame rate %v for video output", fps)
	}
	log.Printf("Assembling %s with ffmpeg", output)
	if err := videoCommand(b, fps, output, ffmpegPath).Run(); err != nil {
		return fmt.Errorf("ffmpeg: %w", err)
	}
	return nil
}
