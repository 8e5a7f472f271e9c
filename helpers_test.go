package shader_test

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/go-theft-auto/shader"
	"github.com/go-theft-auto/shader/internal/fakegl"
)

const vertexGLSL = `#version 150 core
in vec2 position;
in vec3 color;
out vec3 Color;

void main() {
    Color = color;
    gl_Position = vec4(position, 0.0, 1.0);
}
`

const fragmentGLSL = `#version 150 core
in vec3 Color;
out vec4 outColor;
uniform vec3 triangleColor;

void main() {
    outColor = vec4(Color, 1.0);
}
`

// Missing closing brace.
const brokenFragmentGLSL = `#version 150 core
in vec3 Color;
out vec4 outColor;

void main() {
    outColor = vec4(Color, 1.0);
`

// Reads an input the vertex stage never writes.
const mismatchedFragmentGLSL = `#version 150 core
in vec3 Colour;
out vec4 outColor;

void main() {
    outColor = vec4(Colour, 1.0);
}
`

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"vshader.glsl":    {Data: []byte(vertexGLSL)},
		"fshader.glsl":    {Data: []byte(fragmentGLSL)},
		"broken.glsl":     {Data: []byte(brokenFragmentGLSL)},
		"mismatched.glsl": {Data: []byte(mismatchedFragmentGLSL)},
		"empty.glsl":      {Data: []byte{}},
	}
}

// newTestPipeline returns a pipeline over testFS writing diagnostics to the
// returned buffer, plus a fresh fake driver.
func newTestPipeline(t *testing.T, opts ...shader.Option) (*shader.Pipeline, *fakegl.Driver, *bytes.Buffer) {
	t.Helper()
	var diag bytes.Buffer
	opts = append([]shader.Option{shader.WithFS(testFS()), shader.WithDiagnostics(&diag)}, opts...)
	return shader.New(opts...), fakegl.New(), &diag
}
