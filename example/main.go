// Example draws a single coloured triangle with a program built by the
// shader pipeline.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
//
// The example creates a GLFW window, builds the embedded shaders, uploads
// three vertices and redraws until the window is closed or a key is pressed.
package main

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/go-theft-auto/shader"
	"github.com/go-theft-auto/shader/backend/opengl"
)

//go:embed shaders/*.glsl
var shaderFiles embed.FS

const (
	windowWidth  = 800
	windowHeight = 600
	windowTitle  = "shader example"
)

// Interleaved position (x, y) and colour (r, g, b).
var vertices = []float32{
	0.0, 0.5, 1.0, 0.0, 0.0, // vertex 1: red
	0.5, -0.5, 0.0, 1.0, 0.0, // vertex 2: green
	-0.5, -0.5, 0.0, 0.0, 1.0, // vertex 3: blue
}

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg := opengl.DefaultContextConfig()
	cfg.Width, cfg.Height, cfg.Title = windowWidth, windowHeight, windowTitle
	cfg.Visible = true

	ctx, err := opengl.NewContext(cfg)
	if err != nil {
		return err
	}
	defer ctx.Close()
	ctx.CloseOnKey()
	drv := ctx.Driver()

	shaders, err := fs.Sub(shaderFiles, "shaders")
	if err != nil {
		return err
	}
	p := shader.New(shader.WithFS(shaders))
	if err := p.CheckInit(drv); err != nil {
		return err
	}

	prog, err := p.Build(drv, "vshader.glsl", "fshader.glsl")
	if err != nil {
		return fmt.Errorf("build shaders: %w", err)
	}
	defer prog.Delete(drv)

	vao, vbo, err := initBuffers(prog)
	if err != nil {
		return err
	}
	defer gl.DeleteVertexArrays(1, &vao)
	defer gl.DeleteBuffers(1, &vbo)
	p.Reporter().Drain(drv, "initBuffers")

	for !ctx.ShouldClose() {
		ctx.PollEvents()

		w, h := ctx.FramebufferSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		gl.BindVertexArray(vao)
		gl.DrawArrays(gl.TRIANGLES, 0, 3)
		p.Reporter().Drain(drv, "paint")

		ctx.SwapBuffers()
	}

	return nil
}

// initBuffers uploads the vertices, wires the program's attributes to a
// VAO and sets the tint uniform. The buffers are released again when an
// attribute is missing from the program.
func initBuffers(prog shader.Program) (vao, vbo uint32, err error) {
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	stride := int32(5 * unsafe.Sizeof(float32(0)))

	posAttrib, err := attribIndex(prog, "position", gl.GetAttribLocation(prog.Handle, gl.Str("position\x00")))
	if err != nil {
		gl.DeleteVertexArrays(1, &vao)
		gl.DeleteBuffers(1, &vbo)
		return 0, 0, err
	}
	gl.EnableVertexAttribArray(posAttrib)
	gl.VertexAttribPointerWithOffset(posAttrib, 2, gl.FLOAT, false, stride, 0)

	colorAttrib, err := attribIndex(prog, "color", gl.GetAttribLocation(prog.Handle, gl.Str("color\x00")))
	if err != nil {
		gl.DeleteVertexArrays(1, &vao)
		gl.DeleteBuffers(1, &vbo)
		return 0, 0, err
	}
	gl.EnableVertexAttribArray(colorAttrib)
	gl.VertexAttribPointerWithOffset(colorAttrib, 3, gl.FLOAT, false, stride, 2*unsafe.Sizeof(float32(0)))

	uniColor := gl.GetUniformLocation(prog.Handle, gl.Str("triangleColor\x00"))
	gl.Uniform3f(uniColor, 1.0, 0.0, 0.0)

	return vao, vbo, nil
}

// attribIndex converts a location from glGetAttribLocation. GL returns -1
// for a name the program does not use as an active attribute, which
// happens when the linker optimises it away.
func attribIndex(prog shader.Program, name string, loc int32) (uint32, error) {
	if loc < 0 {
		return 0, fmt.Errorf("attribute %q not active in program %d", name, prog.Handle)
	}
	return uint32(loc), nil
}
