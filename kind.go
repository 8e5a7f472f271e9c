package shader

import (
	"fmt"
	"strings"
)

// Kind identifies the pipeline stage a shader is compiled for.
// Only vertex and fragment stages are supported.
type Kind int

const (
	Vertex Kind = iota
	Fragment
)

// String returns the lower-case stage name.
func (k Kind) String() string {
	switch k {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Valid reports whether k is one of the supported stages.
func (k Kind) Valid() bool {
	return k == Vertex || k == Fragment
}

// ParseKind maps a stage name ("vertex", "fragment") or a conventional
// file suffix (".vert", ".frag") to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vertex", "vert", ".vert", "vs":
		return Vertex, nil
	case "fragment", "frag", ".frag", "fs":
		return Fragment, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedKind, s)
}
