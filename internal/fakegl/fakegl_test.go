package fakegl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-theft-auto/shader"
)

func TestCheckSyntax(t *testing.T) {
	ok, log := CheckSyntax(shader.Vertex, "void main() { gl_Position = vec4(0.0); }")
	assert.True(t, ok)
	assert.Empty(t, log)

	ok, log = CheckSyntax(shader.Vertex, "void main() {")
	assert.False(t, ok)
	assert.Contains(t, log, "unexpected end of file")

	ok, log = CheckSyntax(shader.Fragment, "void main() }\n")
	assert.False(t, ok)
	assert.Contains(t, log, "0:1(1)")

	ok, _ = CheckSyntax(shader.Fragment, "void helper() {}")
	assert.False(t, ok)
}

func TestCheckInterface(t *testing.T) {
	vs := "in vec2 position;\nout vec3 Color;\nlayout (location = 1) out vec2 uv;\n"

	ok, _ := CheckInterface(vs, "in vec3 Color;\nin vec2 uv;\nout vec4 frag;\n")
	assert.True(t, ok)

	ok, log := CheckInterface(vs, "in vec3 colour;\n")
	assert.False(t, ok)
	assert.Contains(t, log, "`colour'")
}

func TestUseUnlinkedProgramQueuesError(t *testing.T) {
	d := New()
	p := d.CreateProgram()
	d.UseProgram(p)

	assert.Zero(t, d.Current())
	assert.Equal(t, shader.InvalidOperation, d.GetError())
	assert.Equal(t, shader.NoError, d.GetError())
}

func TestDeletedShaderStaysAliveWhileAttached(t *testing.T) {
	d := New()
	sh := d.CreateShader(shader.Vertex)
	p := d.CreateProgram()
	d.AttachShader(p, sh)
	d.DeleteShader(sh)

	assert.Equal(t, []uint32{sh}, d.LiveShaders())
	d.DetachShader(p, sh)
	assert.Empty(t, d.LiveShaders())
	assert.Zero(t, d.Pending())
}

func TestInvalidKindQueuesInvalidEnum(t *testing.T) {
	d := New()
	assert.Zero(t, d.CreateShader(shader.Kind(5)))
	assert.Equal(t, shader.InvalidEnum, d.GetError())
}
