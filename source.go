package shader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Source is shader text tagged with the stage it is meant for.
type Source struct {
	Name string
	Kind Kind
	Text string
}

// NewSource wraps in-memory text as a Source.
func NewSource(name string, kind Kind, text string) (Source, error) {
	if len(text) == 0 {
		return Source{}, fmt.Errorf("source %q: %w", name, ErrEmptySource)
	}
	return Source{Name: name, Kind: kind, Text: text}, nil
}

// Loader reads shader sources from a directory or an fs.FS.
type Loader struct {
	dir  string
	fsys fs.FS
}

// NewLoader returns a Loader that resolves names relative to dir. Names
// may climb out of dir with "../"; absolute names are read as given.
func NewLoader(dir string) *Loader {
	if dir == "" {
		dir = "."
	}
	return &Loader{dir: dir}
}

// NewFSLoader returns a Loader over fsys, e.g. an embed.FS.
func NewFSLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// Load reads the named resource in full. The text is returned untouched.
func (l *Loader) Load(name string, kind Kind) (Source, error) {
	data, err := l.read(name)
	if err != nil {
		return Source{}, fmt.Errorf("load %q: %w: %w", name, ErrResourceNotFound, err)
	}
	if len(data) == 0 {
		return Source{}, fmt.Errorf("load %q: %w", name, ErrEmptySource)
	}
	return Source{Name: name, Kind: kind, Text: string(data)}, nil
}

func (l *Loader) read(name string) ([]byte, error) {
	if l.fsys != nil {
		return fs.ReadFile(l.fsys, name)
	}
	return os.ReadFile(l.Path(name))
}

// Path returns the file a directory Loader reads for name. For an fs.FS
// Loader the name is returned unchanged.
func (l *Loader) Path(name string) string {
	if l.fsys != nil || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(l.dir, name)
}
