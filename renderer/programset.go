package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/richinsley/shaderview/shader"
	"github.com/richinsley/shaderview/translator"
)

// program is a linked program and the locations of the fixed uniforms it
// actually uses. Unused uniforms are -1 and never written.
type program struct {
	handle  uint32
	time    int32
	pointer int32
	size    int32
}

// ProgramSet is everything one successful build of a shader file produced.
// It is replaced as a whole and never mutated after construction.
type ProgramSet struct {
	Fragment program
	Compute  *program
	Sizing   shader.ComputeSizing
}

func (s *ProgramSet) programs() []*program {
	if s.Compute != nil {
		return []*program{&s.Fragment, s.Compute}
	}
	return []*program{&s.Fragment}
}

// programBuilder turns stage sources into a ProgramSet. Either a complete set
// is returned or every object created during the attempt has been released.
type programBuilder interface {
	build(block *shader.StageBlock) (*ProgramSet, error)
	release(set *ProgramSet)
}

type glBuilder struct{}

func (glBuilder) build(block *shader.StageBlock) (*ProgramSet, error) {
	var (
		frag *program
		err  error
	)
	if block.Dialect == shader.DialectWebGL2 {
		frag, err = buildTranslated(block.Fragment)
	} else {
		frag, err = buildNative(stageSource{gl.VERTEX_SHADER, shader.GenerateVertexShader(shader.DialectNative)},
			stageSource{gl.FRAGMENT_SHADER, block.Fragment})
	}
	if err != nil {
		return nil, err
	}
	set := &ProgramSet{Fragment: *frag}
	if block.HasCompute() {
		comp, err := buildNative(stageSource{gl.COMPUTE_SHADER, block.Compute})
		if err != nil {
			gl.DeleteProgram(frag.handle)
			return nil, err
		}
		set.Compute = comp
		set.Sizing = block.Sizing
	}
	return set, nil
}

func (glBuilder) release(set *ProgramSet) {
	for _, p := range set.programs() {
		gl.DeleteProgram(p.handle)
	}
}

func buildNative(stages ...stageSource) (*program, error) {
	handle, err := linkProgram(stages...)
	if err != nil {
		return nil, err
	}
	active := activeUniforms(handle)
	p := &program{handle: handle, time: -1, pointer: -1, size: -1}
	if active[shader.TimeLocation] {
		p.time = shader.TimeLocation
	}
	if active[shader.PointerLocation] {
		p.pointer = shader.PointerLocation
	}
	if active[shader.SizeLocation] {
		p.size = shader.SizeLocation
	}
	return p, nil
}

// buildTranslated compiles a WebGL2 fragment shader. The vertex twin goes
// through the same translator so the varying names agree.
func buildTranslated(fragment string) (*program, error) {
	vs, err := translator.Translate(shader.GenerateVertexShader(shader.DialectWebGL2), "vertex")
	if err != nil {
		return nil, fmt.Errorf("translate bypass vertex shader: %w", err)
	}
	fs, err := translator.Translate(fragment, "fragment")
	if err != nil {
		return nil, &CompileError{Stage: "fragment", Log: err.Error()}
	}
	handle, err := linkProgram(stageSource{gl.VERTEX_SHADER, vs.Code}, stageSource{gl.FRAGMENT_SHADER, fs.Code})
	if err != nil {
		return nil, err
	}
	p := &program{handle: handle, time: -1, pointer: -1, size: -1}
	lookup := func(name string) int32 {
		if mapped, ok := fs.MappedName(name); ok {
			return uniformLocation(handle, mapped)
		}
		return -1
	}
	p.time = lookup(shader.TimeUniform)
	p.pointer = lookup(shader.PointerUniform)
	p.size = lookup(shader.SizeUniform)
	return p, nil
}

// uniformWriter sets uniforms on a program without binding it.
type uniformWriter interface {
	setFloat(program uint32, loc int32, v float32)
	setVec2(program uint32, loc int32, x, y float32)
	setIVec2(program uint32, loc int32, x, y int32)
	setInt(program uint32, loc int32, v int32)
}

type glUniforms struct{}

func (glUniforms) setFloat(program uint32, loc int32, v float32) {
	gl.ProgramUniform1f(program, loc, v)
}

func (glUniforms) setVec2(program uint32, loc int32, x, y float32) {
	gl.ProgramUniform2f(program, loc, x, y)
}

func (glUniforms) setIVec2(program uint32, loc int32, x, y int32) {
	gl.ProgramUniform2i(program, loc, x, y)
}

func (glUniforms) setInt(program uint32, loc int32, v int32) {
	gl.ProgramUniform1i(program, loc, v)
}
