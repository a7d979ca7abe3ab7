package renderer

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"
)

// CompileError carries the driver's diagnostic for a failed stage or link.
type CompileError struct {
	Stage string // "vertex", "fragment", "compute" or "link"
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s: %s", e.Stage, strings.TrimRight(e.Log, "\x00\n "))
}

func stageName(shaderType uint32) string {
	switch shaderType {
	case gl.VERTEX_SHADER:
		return "vertex"
	case gl.FRAGMENT_SHADER:
		return "fragment"
	case gl.COMPUTE_SHADER:
		return "compute"
	}
	return "unknown"
}

type stageSource struct {
	kind   uint32
	source string
}

// linkProgram compiles every stage and links them into a program. Nothing
// but the returned program handle survives, and on failure nothing does.
func linkProgram(stages ...stageSource) (uint32, error) {
	shaders := make([]uint32, 0, len(stages))
	deleteShaders := func() {
		for _, s := range shaders {
			gl.DeleteShader(s)
		}
	}
	for _, st := range stages {
		s, err := compileShader(st.source, st.kind)
		if err != nil {
			deleteShaders()
			return 0, err
		}
		shaders = append(shaders, s)
	}

	program := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)
	for _, s := range shaders {
		gl.DetachShader(program, s)
	}
	deleteShaders()

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, &CompileError{Stage: "link", Log: log}
	}
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	s := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(s, 1, csources, nil)
	free()
	gl.CompileShader(s)

	var status int32
	gl.GetShaderiv(s, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(s, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(s, logLength, nil, gl.Str(log))
		gl.DeleteShader(s)
		return 0, &CompileError{Stage: stageName(shaderType), Log: log}
	}
	return s, nil
}

// activeUniforms lists the locations of every uniform the linker kept.
func activeUniforms(program uint32) map[int32]bool {
	var count int32
	gl.GetProgramiv(program, gl.ACTIVE_UNIFORMS, &count)
	active := make(map[int32]bool, count)
	var name [256]uint8
	for i := uint32(0); i < uint32(count); i++ {
		var length, size int32
		var xtype uint32
		gl.GetActiveUniform(program, i, int32(len(name)), &length, &size, &xtype, &name[0])
		loc := gl.GetUniformLocation(program, &name[0])
		if loc >= 0 {
			active[loc] = true
		}
	}
	return active
}

func uniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}
