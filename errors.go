package shader

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrResourceNotFound is returned when a shader resource cannot be opened.
	ErrResourceNotFound = errors.New("shader resource not found")

	// ErrEmptySource is returned when a shader resource has no content.
	ErrEmptySource = errors.New("empty shader source")

	// ErrUnsupportedKind is returned for any stage other than vertex or fragment.
	ErrUnsupportedKind = errors.New("unsupported shader kind")

	// ErrKindMismatch is returned when shaders are passed to the linker in
	// the wrong stage slots.
	ErrKindMismatch = errors.New("shader kind mismatch")
)

// CompileError reports a shader that the driver refused to compile.
// Source is the exact text that was submitted.
type CompileError struct {
	Kind   Kind
	Name   string
	Source string
	Log    string
}

func (e *CompileError) Error() string {
	msg := fmt.Sprintf("%s shader compilation failed", e.Kind)
	if e.Name != "" {
		msg = fmt.Sprintf("%s shader %q compilation failed", e.Kind, e.Name)
	}
	if log := strings.TrimSpace(e.Log); log != "" {
		msg += ": " + log
	}
	return msg
}

// Diagnostic returns the failure as a BuildDiagnostic.
func (e *CompileError) Diagnostic() BuildDiagnostic {
	return BuildDiagnostic{
		Stage:  StageCompile,
		Kind:   e.Kind,
		Name:   e.Name,
		Source: e.Source,
		Log:    e.Log,
	}
}

// LinkError reports a program that the driver refused to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	if log := strings.TrimSpace(e.Log); log != "" {
		return "shader program linking failed: " + log
	}
	return "shader program linking failed"
}

// Diagnostic returns the failure as a BuildDiagnostic.
func (e *LinkError) Diagnostic() BuildDiagnostic {
	return BuildDiagnostic{Stage: StageLink, Log: e.Log}
}

// InitError reports driver errors found right after context or extension
// initialisation that are not on the tolerated list.
type InitError struct {
	Codes []ErrorCode
}

func (e *InitError) Error() string {
	names := make([]string, len(e.Codes))
	for i, c := range e.Codes {
		names[i] = c.String()
	}
	return "driver initialisation failed: " + strings.Join(names, ", ")
}
