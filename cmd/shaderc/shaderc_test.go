package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/shader"
	"github.com/go-theft-auto/shader/internal/fakegl"
)

const vertexGLSL = `#version 410 core
in vec2 position;
out vec3 Color;
void main() {
    Color = vec3(position, 0.0);
    gl_Position = vec4(position, 0.0, 1.0);
}
`

const fragmentGLSL = `#version 410 core
in vec3 Color;
out vec4 outColor;
void main() {
    outColor = vec4(Color, 1.0);
}
`

func shaderDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vshader.glsl"), []byte(vertexGLSL), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fshader.glsl"), []byte(fragmentGLSL), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.glsl"), nil, 0o644))
	return dir
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCheckOK(t *testing.T) {
	dir := shaderDir(t)

	stdout, _, err := runCLI(t, "check", "--dir", dir, "--color", "off")
	require.NoError(t, err)
	assert.Contains(t, stdout, "ok: vshader.glsl (vertex, ")
	assert.Contains(t, stdout, "ok: fshader.glsl (fragment, ")
}

func TestCheckMissing(t *testing.T) {
	dir := shaderDir(t)

	stdout, _, err := runCLI(t, "check", "--dir", dir, "--fragment", "nope.glsl", "--color", "off")
	assert.ErrorIs(t, err, shader.ErrResourceNotFound)
	assert.Contains(t, stdout, "fail: nope.glsl (fragment)")
}

func TestCheckEmpty(t *testing.T) {
	dir := shaderDir(t)

	_, _, err := runCLI(t, "check", "--dir", dir, "--vertex", "empty.glsl", "--color", "off")
	assert.ErrorIs(t, err, shader.ErrEmptySource)
}

func TestCheckUsesConfigFile(t *testing.T) {
	dir := shaderDir(t)
	cfgPath := filepath.Join(dir, "shaderc.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("shader_dir = \".\"\nfragment = \"empty.glsl\"\n"), 0o644))

	_, _, err := runCLI(t, "check", "--config", cfgPath, "--color", "off")
	assert.ErrorIs(t, err, shader.ErrEmptySource)

	// Flags win over the file.
	_, _, err = runCLI(t, "check", "--config", cfgPath, "--fragment", "fshader.glsl", "--color", "off")
	assert.NoError(t, err)
}

func TestCheckRejectsSwappedSuffixes(t *testing.T) {
	dir := shaderDir(t)

	_, _, err := runCLI(t, "check", "--dir", dir, "--vertex", "tri.frag", "--color", "off")
	assert.ErrorIs(t, err, shader.ErrKindMismatch)
}

func TestInvalidColorMode(t *testing.T) {
	dir := shaderDir(t)

	_, _, err := runCLI(t, "check", "--dir", dir, "--color", "sometimes")
	assert.ErrorContains(t, err, "invalid --color")
}

func noColor() *color.Color {
	c := color.New(color.FgWhite)
	c.DisableColor()
	return c
}

func newTestReloader(t *testing.T, dir string) (*reloader, *fakegl.Driver, *bytes.Buffer) {
	t.Helper()
	var out, diag bytes.Buffer
	drv := fakegl.New()
	return &reloader{
		p:        shader.New(shader.WithBaseDir(dir), shader.WithDiagnostics(&diag)),
		drv:      drv,
		vertex:   "vshader.glsl",
		fragment: "fshader.glsl",
		out:      &printer{w: &out, ok: noColor(), fail: noColor(), info: noColor()},
	}, drv, &out
}

func TestReloaderSwapsOnlyOnSuccess(t *testing.T) {
	dir := shaderDir(t)
	r, drv, out := newTestReloader(t, dir)

	require.NoError(t, r.rebuild())
	first := r.prog
	assert.Equal(t, first.Handle, drv.Current())

	// Break the fragment shader: the old program stays current.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fshader.glsl"), []byte("void main() {"), 0o644))
	assert.Error(t, r.rebuild())
	assert.Equal(t, first, r.prog)
	assert.Equal(t, first.Handle, drv.Current())
	assert.Contains(t, out.String(), "keeping program")

	// Fix it: the new program replaces and releases the old one.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fshader.glsl"), []byte(fragmentGLSL), 0o644))
	require.NoError(t, r.rebuild())
	assert.NotEqual(t, first.Handle, r.prog.Handle)
	assert.Equal(t, []uint32{r.prog.Handle}, drv.LivePrograms())
	assert.Empty(t, drv.LiveShaders())

	r.close()
	assert.Empty(t, drv.LivePrograms())
}

func TestWatchedFilesAndRelevant(t *testing.T) {
	files, dirs := watchedFiles(shader.NewLoader("/s"), "vshader.glsl", "sub/fshader.glsl")
	assert.Equal(t, []string{"/s", "/s/sub"}, dirs)

	assert.True(t, relevant(fsnotify.Event{Name: "/s/vshader.glsl", Op: fsnotify.Write}, files))
	assert.True(t, relevant(fsnotify.Event{Name: "/s/sub/fshader.glsl", Op: fsnotify.Create}, files))
	assert.False(t, relevant(fsnotify.Event{Name: "/s/vshader.glsl", Op: fsnotify.Chmod}, files))
	assert.False(t, relevant(fsnotify.Event{Name: "/s/other.glsl", Op: fsnotify.Write}, files))

	files, dirs = watchedFiles(shader.NewLoader("/s"), "./v.glsl", "../common/f.glsl", "/abs/g.glsl")
	assert.Equal(t, []string{"/s", "/common", "/abs"}, dirs)
	assert.True(t, files["/s/v.glsl"])
	assert.True(t, files["/common/f.glsl"])
	assert.True(t, files["/abs/g.glsl"])
}

func TestCheckAcceptsDotAndParentNames(t *testing.T) {
	dir := shaderDir(t)
	common := filepath.Join(filepath.Dir(dir), filepath.Base(dir)+"-common")
	require.NoError(t, os.MkdirAll(common, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(common, "f.glsl"), []byte(fragmentGLSL), 0o644))

	stdout, _, err := runCLI(t, "check", "--dir", dir, "--color", "off",
		"--vertex", "./vshader.glsl", "--fragment", "../"+filepath.Base(common)+"/f.glsl")
	require.NoError(t, err)
	assert.Contains(t, stdout, "ok: ./vshader.glsl (vertex, ")
}
