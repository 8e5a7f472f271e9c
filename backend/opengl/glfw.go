package opengl

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// ContextConfig describes the window and GL context NewContext creates.
type ContextConfig struct {
	Width, Height int
	Title         string
	Major, Minor  int
	Core          bool // core profile, forward compatible
	Visible       bool
	SwapInterval  int
}

// DefaultContextConfig returns a hidden 800x600 OpenGL 4.1 core context,
// enough to compile and link shaders.
func DefaultContextConfig() ContextConfig {
	return ContextConfig{
		Width:        800,
		Height:       600,
		Title:        "shader",
		Major:        4,
		Minor:        1,
		Core:         true,
		Visible:      false,
		SwapInterval: 1,
	}
}

// Context owns a GLFW window whose GL context is current on the thread
// that created it. All methods must be called from that thread.
type Context struct {
	window *glfw.Window
	driver *Driver
}

// NewContext initialises GLFW, creates the window, makes its context
// current and loads the GL entry points. The caller should have locked
// the OS thread (runtime.LockOSThread) beforehand.
func NewContext(cfg ContextConfig) (*Context, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, cfg.Major)
	glfw.WindowHint(glfw.ContextVersionMinor, cfg.Minor)
	if cfg.Core {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}
	if cfg.Visible {
		glfw.WindowHint(glfw.Visible, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(cfg.SwapInterval)

	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("gl init: %w", err)
	}

	return &Context{window: window, driver: NewDriver()}, nil
}

// Driver returns the shader driver bound to this context.
func (c *Context) Driver() *Driver {
	return c.driver
}

// Version returns the GL_VERSION string of the context.
func (c *Context) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

// FramebufferSize returns the drawable size in pixels.
func (c *Context) FramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

// ShouldClose reports whether the user asked to close the window.
func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

// CloseOnKey makes any key press request the window to close.
func (c *Context) CloseOnKey() {
	c.window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Press {
			w.SetShouldClose(true)
		}
	})
}

// PollEvents processes pending window events.
func (c *Context) PollEvents() {
	glfw.PollEvents()
}

// SwapBuffers presents the back buffer.
func (c *Context) SwapBuffers() {
	c.window.SwapBuffers()
}

// Close destroys the window and terminates GLFW.
func (c *Context) Close() {
	if c.window != nil {
		c.window.Destroy()
		c.window = nil
	}
	glfw.Terminate()
}
