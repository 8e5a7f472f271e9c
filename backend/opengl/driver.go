// Package opengl provides an OpenGL 4.1 core driver for the shader package.
package opengl

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/shader"
)

// Driver implements shader.Driver on the OpenGL context that is current on
// the calling thread. It holds no state of its own.
type Driver struct{}

var _ shader.Driver = (*Driver)(nil)

// NewDriver returns a driver for the current context.
// gl.Init must have been called (NewContext does this).
func NewDriver() *Driver {
	return &Driver{}
}

// stage maps a shader kind to the GL shader type enumerant.
// Unsupported kinds map to 0, which GL rejects with GL_INVALID_ENUM.
func stage(kind shader.Kind) uint32 {
	switch kind {
	case shader.Vertex:
		return gl.VERTEX_SHADER
	case shader.Fragment:
		return gl.FRAGMENT_SHADER
	default:
		return 0
	}
}

func (*Driver) CreateShader(kind shader.Kind) uint32 {
	return gl.CreateShader(stage(kind))
}

// ShaderSource submits source as one string with an explicit length, so
// the text reaches the compiler byte for byte.
func (*Driver) ShaderSource(sh uint32, source string) {
	csource, free := gl.Strs(source + "\x00")
	length := int32(len(source))
	gl.ShaderSource(sh, 1, csource, &length)
	free()
}

func (*Driver) CompileShader(sh uint32) {
	gl.CompileShader(sh)
}

func (*Driver) CompileStatus(sh uint32) bool {
	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	return status == gl.TRUE
}

func (*Driver) ShaderInfoLog(sh uint32, maxLen int) string {
	var logLength int32
	gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLength)
	size := boundedLogSize(logLength, maxLen)
	if size == 0 {
		return ""
	}
	log := make([]byte, size)
	var written int32
	gl.GetShaderInfoLog(sh, size, &written, &log[0])
	return string(log[:written])
}

func (*Driver) DeleteShader(sh uint32) {
	gl.DeleteShader(sh)
}

func (*Driver) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (*Driver) AttachShader(program, sh uint32) {
	gl.AttachShader(program, sh)
}

func (*Driver) DetachShader(program, sh uint32) {
	gl.DetachShader(program, sh)
}

func (*Driver) LinkProgram(program uint32) {
	gl.LinkProgram(program)
}

func (*Driver) LinkStatus(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status == gl.TRUE
}

func (*Driver) ProgramInfoLog(program uint32, maxLen int) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	size := boundedLogSize(logLength, maxLen)
	if size == 0 {
		return ""
	}
	log := make([]byte, size)
	var written int32
	gl.GetProgramInfoLog(program, size, &written, &log[0])
	return string(log[:written])
}

func (*Driver) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (*Driver) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (*Driver) GetError() shader.ErrorCode {
	return shader.ErrorCode(gl.GetError())
}

// boundedLogSize returns the buffer size for an info log of logLength
// bytes (terminator included), capped at maxLen+1 so at most maxLen bytes
// of text come back.
func boundedLogSize(logLength int32, maxLen int) int32 {
	if logLength <= 1 {
		return 0
	}
	if maxLen > 0 && int(logLength) > maxLen+1 {
		return int32(maxLen + 1)
	}
	return logLength
}
