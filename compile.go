package shader

import (
	"fmt"
	"log/slog"
)

// DefaultLogLimit bounds the compile and link logs read back from the
// driver. Longer logs are truncated.
const DefaultLogLimit = 512

// Shader is a compiled shader object owned by whoever compiled it.
type Shader struct {
	Handle uint32
	Kind   Kind
}

// Delete releases the shader on d.
func (s Shader) Delete(d Driver) {
	if s.Handle != 0 {
		d.DeleteShader(s.Handle)
	}
}

// Compiler submits sources to a driver.
type Compiler struct {
	Reporter *Reporter
	LogLimit int
	Logger   *slog.Logger
}

// Compile compiles src as a single unit. The status query blocks until the
// driver has finished. On failure the shader object is released and a
// *CompileError carrying the submitted text and the driver log is
// returned. On success residual driver errors are drained and printed but
// do not fail the compile.
func (c *Compiler) Compile(d Driver, src Source) (Shader, error) {
	if !src.Kind.Valid() {
		return Shader{}, fmt.Errorf("compile %q: %w: %s", src.Name, ErrUnsupportedKind, src.Kind)
	}
	if len(src.Text) == 0 {
		return Shader{}, fmt.Errorf("compile %q: %w", src.Name, ErrEmptySource)
	}

	handle := d.CreateShader(src.Kind)
	d.ShaderSource(handle, src.Text)
	d.CompileShader(handle)

	if !d.CompileStatus(handle) {
		log := d.ShaderInfoLog(handle, c.logLimit())
		d.DeleteShader(handle)
		return Shader{}, &CompileError{
			Kind:   src.Kind,
			Name:   src.Name,
			Source: src.Text,
			Log:    log,
		}
	}

	c.reporter().Drain(d, fmt.Sprintf("compile %s %s", src.Kind, src.Name))
	c.logger().Debug("shader compiled", "kind", src.Kind.String(), "name", src.Name, "handle", handle)
	return Shader{Handle: handle, Kind: src.Kind}, nil
}

func (c *Compiler) logLimit() int {
	if c.LogLimit <= 0 {
		return DefaultLogLimit
	}
	return c.LogLimit
}

func (c *Compiler) reporter() *Reporter {
	if c.Reporter == nil {
		c.Reporter = NewReporter(nil)
	}
	return c.Reporter
}

func (c *Compiler) logger() *slog.Logger {
	if c.Logger == nil {
		return defaultLogger
	}
	return c.Logger
}
