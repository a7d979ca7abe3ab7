package renderer

import (
	"fmt"
	"log"
	"sync"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/richinsley/shaderview/graphics"
	"github.com/richinsley/shaderview/shader"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/glgl/v4.6-core/glgl"
)

var glInitOnce sync.Once

// Renderer owns every GL object of the viewer: the active ProgramSet, the
// fixed post-process program, the offscreen target and the compute storage.
type Renderer struct {
	context graphics.Context
	width   int
	height  int

	builder  programBuilder
	uniforms uniformWriter
	storage  *ComputeBuffer
	active   *ProgramSet

	post    uint32
	target  *OffscreenTarget
	quad    *quad
	overlay *Overlay

	time    float32
	pointer ms2.Vec
	mode    int

	// reported is set once a GL error of the active set has been logged.
	reported bool
}

func NewRenderer(ctx graphics.Context, width, height int) (*Renderer, error) {
	r := &Renderer{
		context:  ctx,
		width:    width,
		height:   height,
		builder:  glBuilder{},
		uniforms: glUniforms{},
		storage:  newComputeBuffer(glAllocator{}),
		pointer:  ms2.Vec{X: 0.5, Y: 0.5},
	}
	r.context.MakeCurrent()

	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	log.Printf("OpenGL version %s", gl.GoStr(gl.GetString(gl.VERSION)))

	var err error
	r.target, err = NewOffscreenTarget(width, height)
	if err != nil {
		return nil, fmt.Errorf("failed to create offscreen target: %w", err)
	}
	r.quad = newQuad(width, height)
	r.post, err = linkProgram(
		stageSource{gl.VERTEX_SHADER, shader.GenerateVertexShader(shader.DialectNative)},
		stageSource{gl.FRAGMENT_SHADER, shader.GetPostFragmentShader()},
	)
	if err != nil {
		r.Shutdown()
		return nil, fmt.Errorf("failed to create post-process program: %w", err)
	}
	r.overlay, err = NewOverlay(width, height)
	if err != nil {
		r.Shutdown()
		return nil, err
	}
	if err = glgl.Err(); err != nil {
		r.Shutdown()
		return nil, fmt.Errorf("renderer setup: %w", err)
	}
	return r, nil
}

// Reload builds a new ProgramSet from block and swaps it in. On failure the
// active set, its uniforms and the compute storage are left untouched.
func (r *Renderer) Reload(block *shader.StageBlock) error {
	set, err := r.builder.build(block)
	if err != nil {
		return err
	}
	if r.active != nil {
		r.builder.release(r.active)
	}
	r.active = set
	r.reported = false
	r.storage.Resize(set.Sizing)
	for _, p := range set.programs() {
		if p.size >= 0 {
			r.uniforms.setIVec2(p.handle, p.size, int32(r.width), int32(r.height))
		}
		if p.pointer >= 0 {
			r.uniforms.setVec2(p.handle, p.pointer, r.pointer.X, r.pointer.Y)
		}
		if p.time >= 0 {
			r.uniforms.setFloat(p.handle, p.time, r.time)
		}
	}
	return nil
}

// Active returns the program set currently drawn, nil before the first
// successful Reload.
func (r *Renderer) Active() *ProgramSet { return r.active }

func (r *Renderer) Size() (int, int) { return r.width, r.height }

func (r *Renderer) SetTime(t float32) {
	r.time = t
	r.each(func(p *program) {
		if p.time >= 0 {
			r.uniforms.setFloat(p.handle, p.time, t)
		}
	})
}

func (r *Renderer) SetPointer(v ms2.Vec) {
	r.pointer = v
	r.each(func(p *program) {
		if p.pointer >= 0 {
			r.uniforms.setVec2(p.handle, p.pointer, v.X, v.Y)
		}
	})
}

// SetMode selects the channel shown by the post-process pass.
func (r *Renderer) SetMode(mode int) {
	r.mode = mode
	r.uniforms.setInt(r.post, shader.ModeLocation, int32(mode))
}

func (r *Renderer) Mode() int { return r.mode }

func (r *Renderer) each(fn func(p *program)) {
	if r.active == nil {
		return
	}
	for _, p := range r.active.programs() {
		fn(p)
	}
}

// RenderFrame runs the compute pass, draws the active program into the
// offscreen target and post-processes it into the default framebuffer.
func (r *Renderer) RenderFrame() error {
	set := r.active
	if set != nil && set.Compute != nil && !r.storage.Empty() {
		gl.UseProgram(set.Compute.handle)
		gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, 0, r.storage.id)
		var local [3]int32
		gl.GetProgramiv(set.Compute.handle, gl.COMPUTE_WORK_GROUP_SIZE, &local[0])
		gx, gy, gz := dispatchGroups(r.storage.Sizing().NumItems, local)
		gl.DispatchCompute(gx, gy, gz)
		gl.MemoryBarrier(gl.SHADER_STORAGE_BARRIER_BIT | gl.VERTEX_ATTRIB_ARRAY_BARRIER_BIT)
	}

	r.target.Bind()
	if set != nil {
		if r.storage.id != 0 {
			gl.BindBufferBase(gl.SHADER_STORAGE_BUFFER, 0, r.storage.id)
		}
		gl.UseProgram(set.Fragment.handle)
		r.quad.draw()
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(r.width), int32(r.height))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.UseProgram(r.post)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.target.Texture())
	r.quad.draw()
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)
	return glgl.Err()
}

// DrawOverlay draws text over the default framebuffer. An empty string
// draws nothing.
func (r *Renderer) DrawOverlay(text string) {
	r.overlay.SetText(text)
	r.overlay.Draw()
}

func (r *Renderer) Present() {
	r.context.SwapBuffers()
}

// PickPixel reads one pixel, origin bottom-left, from the offscreen target
// or from the final image when composite is set.
func (r *Renderer) PickPixel(x, y int, composite bool) [3]float32 {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return [3]float32{}
	}
	fbo := r.target.fbo
	if composite {
		fbo = 0
	}
	return readPixel(fbo, x, y)
}

// ReadFrame16 returns the default framebuffer as RGBA16, bottom row first.
func (r *Renderer) ReadFrame16() []uint16 {
	return readFrame16(r.width, r.height)
}

// Shutdown releases every GL object the renderer created. The window is
// owned by the caller.
func (r *Renderer) Shutdown() {
	if r.active != nil {
		r.builder.release(r.active)
		r.active = nil
	}
	if r.storage != nil {
		r.storage.Destroy()
	}
	if r.post != 0 {
		gl.DeleteProgram(r.post)
		r.post = 0
	}
	if r.overlay != nil {
		r.overlay.Destroy()
		r.overlay = nil
	}
	if r.quad != nil {
		r.quad.destroy()
		r.quad = nil
	}
	if r.target != nil {
		r.target.Destroy()
		r.target = nil
	}
}

// reportGLError logs the first GL error raised while drawing the active set.
func (r *Renderer) reportGLError(err error) {
	if err == nil || r.reported {
		return
	}
	r.reported = true
	log.Printf("GL error while drawing: %v", err)
}
