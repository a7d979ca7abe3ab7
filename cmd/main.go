package main

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/richinsley/shaderview/encoder"
	"github.com/richinsley/shaderview/glfwcontext"
	"github.com/richinsley/shaderview/interaction"
	"github.com/richinsley/shaderview/options"
	"github.com/richinsley/shaderview/reload"
	"github.com/richinsley/shaderview/renderer"
	"github.com/richinsley/shaderview/shader"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(args []string) error {
	opts, err := options.Parse(args, os.Stdout)
	if err != nil {
		return err
	}
	if *opts.Help {
		return nil
	}

	if err := glfwcontext.InitGraphics(); err != nil {
		return fmt.Errorf("failed to initialize graphics: %w", err)
	}
	defer glfwcontext.TerminateGraphics()

	ctx, err := glfwcontext.New("shaderview: "+*opts.ShaderFile, opts.Width, opts.Height, !opts.Batch())
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer ctx.Shutdown()

	// Framebuffer pixels may differ from the requested size on high-DPI screens.
	width, height := ctx.GetFramebufferSize()
	r, err := renderer.NewRenderer(ctx, width, height)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	defer r.Shutdown()

	if opts.Batch() {
		return runBatch(r, opts)
	}

	ctrl := interaction.NewController(r, ctx, width, height, *opts.Interactive)
	watcher := reload.NewWatcher(*opts.ShaderFile)
	defer watcher.Close()
	log.Printf("Watching %s", *opts.ShaderFile)
	return r.Run(watcher, ctrl, opts.Delay)
}

func runBatch(r *renderer.Renderer, opts *options.ShaderOptions) error {
	src, err := shader.Load(*opts.ShaderFile)
	if err != nil {
		return err
	}
	block, err := src.Stages()
	if err != nil {
		return fmt.Errorf("load shader code: %w", err)
	}
	if err := r.Reload(block); err != nil {
		return fmt.Errorf("compile %s: %w", src.Path, err)
	}

	batch := encoder.NewBatch(*opts.OutputFile, opts.Frames, opts.Duration)
	if err := batch.Run(r); err != nil {
		return err
	}
	if *opts.VideoFile != "" {
		return encoder.AssembleVideo(batch, opts.FPS, *opts.VideoFile, *opts.FFMPEGPath)
	}
	return nil
}
