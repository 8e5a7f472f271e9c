package shader

import (
	"fmt"
	"strings"
)

// Driver is the graphics binding the pipeline builds against.
//
// A Driver value stands for exactly one rendering context: its UseProgram
// sets that context's current program and its GetError polls that
// context's error queue. Callers sharing a context between goroutines must
// serialise every call themselves.
type Driver interface {
	CreateShader(kind Kind) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	CompileStatus(shader uint32) bool
	// ShaderInfoLog returns at most maxLen bytes of the compile log.
	ShaderInfoLog(shader uint32, maxLen int) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	LinkStatus(program uint32) bool
	// ProgramInfoLog returns at most maxLen bytes of the link log.
	ProgramInfoLog(program uint32, maxLen int) string
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	// GetError pops one code from the error queue, NoError when empty.
	GetError() ErrorCode
}

// ErrorCode is a value from the driver's error queue.
// The numeric values match the OpenGL enumerants.
type ErrorCode uint32

const (
	NoError                     ErrorCode = 0
	InvalidEnum                 ErrorCode = 0x0500
	InvalidValue                ErrorCode = 0x0501
	InvalidOperation            ErrorCode = 0x0502
	StackOverflow               ErrorCode = 0x0503
	StackUnderflow              ErrorCode = 0x0504
	OutOfMemory                 ErrorCode = 0x0505
	InvalidFramebufferOperation ErrorCode = 0x0506
	ContextLost                 ErrorCode = 0x0507
)

var errorCodeNames = map[ErrorCode]struct {
	constant string
	message  string
}{
	NoError:                     {"GL_NO_ERROR", "no error"},
	InvalidEnum:                 {"GL_INVALID_ENUM", "invalid enumerant"},
	InvalidValue:                {"GL_INVALID_VALUE", "invalid value"},
	InvalidOperation:            {"GL_INVALID_OPERATION", "invalid operation"},
	StackOverflow:               {"GL_STACK_OVERFLOW", "stack overflow"},
	StackUnderflow:              {"GL_STACK_UNDERFLOW", "stack underflow"},
	OutOfMemory:                 {"GL_OUT_OF_MEMORY", "out of memory"},
	InvalidFramebufferOperation: {"GL_INVALID_FRAMEBUFFER_OPERATION", "invalid framebuffer operation"},
	ContextLost:                 {"GL_CONTEXT_LOST", "context lost"},
}

// String returns the human-readable message for the code, in the wording
// GLU uses for gluErrorString.
func (c ErrorCode) String() string {
	if n, ok := errorCodeNames[c]; ok {
		return n.message
	}
	return fmt.Sprintf("unknown error 0x%04x", uint32(c))
}

// Constant returns the C constant name, e.g. GL_INVALID_ENUM.
func (c ErrorCode) Constant() string {
	if n, ok := errorCodeNames[c]; ok {
		return n.constant
	}
	return fmt.Sprintf("0x%04X", uint32(c))
}

// ParseErrorCode accepts a constant name ("GL_INVALID_ENUM"), its short
// form ("invalid_enum") or the message ("invalid enumerant").
func ParseErrorCode(s string) (ErrorCode, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for code, n := range errorCodeNames {
		constant := strings.ToLower(n.constant)
		if norm == constant || norm == strings.TrimPrefix(constant, "gl_") || norm == n.message {
			return code, nil
		}
	}
	return 0, fmt.Errorf("unknown driver error code %q", s)
}
