package shader_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/shader"
)

func TestLoaderReadsExactText(t *testing.T) {
	l := shader.NewFSLoader(testFS())

	src, err := l.Load("vshader.glsl", shader.Vertex)
	require.NoError(t, err)
	assert.Equal(t, "vshader.glsl", src.Name)
	assert.Equal(t, shader.Vertex, src.Kind)
	assert.Equal(t, vertexGLSL, src.Text)
}

func TestLoaderMissingResource(t *testing.T) {
	l := shader.NewFSLoader(testFS())

	_, err := l.Load("nope.glsl", shader.Fragment)
	require.Error(t, err)
	assert.ErrorIs(t, err, shader.ErrResourceNotFound)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoaderEmptyResource(t *testing.T) {
	l := shader.NewFSLoader(testFS())

	_, err := l.Load("empty.glsl", shader.Fragment)
	assert.ErrorIs(t, err, shader.ErrEmptySource)
	assert.NotErrorIs(t, err, shader.ErrResourceNotFound)
}

func TestLoaderBaseDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "shaders"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shaders", "f.glsl"), []byte(fragmentGLSL), 0o644))

	src, err := shader.NewLoader(dir).Load("shaders/f.glsl", shader.Fragment)
	require.NoError(t, err)
	assert.Equal(t, fragmentGLSL, src.Text)

	_, err = shader.NewLoader(filepath.Join(dir, "shaders")).Load("missing.glsl", shader.Fragment)
	assert.ErrorIs(t, err, shader.ErrResourceNotFound)
}

func TestLoaderRelativeAndAbsoluteNames(t *testing.T) {
	root := t.TempDir()
	base := filepath.Join(root, "shaders")
	require.NoError(t, os.MkdirAll(base, 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "common"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "v.glsl"), []byte(vertexGLSL), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "common", "f.glsl"), []byte(fragmentGLSL), 0o644))

	l := shader.NewLoader(base)
	tests := []struct {
		name string
		want string
	}{
		{"v.glsl", vertexGLSL},
		{"./v.glsl", vertexGLSL},
		{"../common/f.glsl", fragmentGLSL},
		{filepath.Join(root, "common", "f.glsl"), fragmentGLSL},
	}
	for _, tt := range tests {
		src, err := l.Load(tt.name, shader.Vertex)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, src.Text, tt.name)
		assert.Equal(t, tt.name, src.Name, tt.name)
	}

	_, err := l.Load("../common/missing.glsl", shader.Fragment)
	assert.ErrorIs(t, err, shader.ErrResourceNotFound)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoaderPath(t *testing.T) {
	l := shader.NewLoader("/s")
	assert.Equal(t, filepath.Join("/s", "v.glsl"), l.Path("./v.glsl"))
	assert.Equal(t, filepath.Join("/", "common", "f.glsl"), l.Path("../common/f.glsl"))
	assert.Equal(t, "/abs/f.glsl", l.Path("/abs/f.glsl"))

	assert.Equal(t, "sub/v.glsl", shader.NewFSLoader(testFS()).Path("sub/v.glsl"))
}

func TestNewSourceRejectsEmpty(t *testing.T) {
	_, err := shader.NewSource("inline", shader.Vertex, "")
	assert.ErrorIs(t, err, shader.ErrEmptySource)

	src, err := shader.NewSource("inline", shader.Vertex, vertexGLSL)
	require.NoError(t, err)
	assert.Equal(t, vertexGLSL, src.Text)
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want shader.Kind
	}{
		{"vertex", shader.Vertex},
		{"Fragment", shader.Fragment},
		{".vert", shader.Vertex},
		{".frag", shader.Fragment},
	}
	for _, tt := range tests {
		got, err := shader.ParseKind(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := shader.ParseKind("geometry")
	assert.ErrorIs(t, err, shader.ErrUnsupportedKind)
}
