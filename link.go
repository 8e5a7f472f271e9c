package shader

import (
	"fmt"
	"log/slog"
)

// Program is a linked shader program. Only successfully linked programs
// are ever handed out; the caller owns it and must Delete it.
type Program struct {
	Handle uint32
}

// Use makes p the current program of d's context.
func (p Program) Use(d Driver) {
	d.UseProgram(p.Handle)
}

// Delete releases the program on d.
func (p Program) Delete(d Driver) {
	if p.Handle != 0 {
		d.DeleteProgram(p.Handle)
	}
}

// Linker combines a compiled vertex and fragment shader into a program.
type Linker struct {
	Reporter *Reporter
	LogLimit int
	Logger   *slog.Logger
}

// Link attaches vs and fs to a new program and links it. On success the
// program becomes current on d and is returned. On failure the program
// object is released and a *LinkError is returned. The shaders are left
// to the caller; they may be deleted as soon as Link returns.
func (l *Linker) Link(d Driver, vs, fs Shader) (Program, error) {
	if vs.Kind != Vertex || fs.Kind != Fragment {
		return Program{}, fmt.Errorf("link: %w: got %s and %s, want vertex and fragment", ErrKindMismatch, vs.Kind, fs.Kind)
	}

	handle := d.CreateProgram()
	d.AttachShader(handle, vs.Handle)
	d.AttachShader(handle, fs.Handle)
	d.LinkProgram(handle)

	if !d.LinkStatus(handle) {
		log := d.ProgramInfoLog(handle, l.logLimit())
		d.DeleteProgram(handle)
		return Program{}, &LinkError{Log: log}
	}

	d.UseProgram(handle)
	l.reporter().Drain(d, "link")
	l.logger().Debug("program linked", "handle", handle, "vertex", vs.Handle, "fragment", fs.Handle)
	return Program{Handle: handle}, nil
}

func (l *Linker) logLimit() int {
	if l.LogLimit <= 0 {
		return DefaultLogLimit
	}
	return l.LogLimit
}

func (l *Linker) reporter() *Reporter {
	if l.Reporter == nil {
		l.Reporter = NewReporter(nil)
	}
	return l.Reporter
}

func (l *Linker) logger() *slog.Logger {
	if l.Logger == nil {
		return defaultLogger
	}
	return l.Logger
}
