// Package fakegl is an in-memory shader.Driver for tests.
//
// It allocates handles, simulates compile and link checks on the GLSL text,
// keeps a FIFO error queue and tracks which objects are still alive so
// tests can assert that nothing leaks.
package fakegl

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/go-theft-auto/shader"
)

// CompileFunc decides whether a source compiles and what log it leaves.
type CompileFunc func(kind shader.Kind, source string) (ok bool, log string)

// LinkFunc decides whether a vertex/fragment pair links.
type LinkFunc func(vertex, fragment string) (ok bool, log string)

type shaderObj struct {
	kind     shader.Kind
	source   string
	compiled bool
	log      string
	deleted  bool
	attached int
}

type programObj struct {
	shaders []uint32
	linked  bool
	log     string
}

// Driver implements shader.Driver without a GPU.
type Driver struct {
	// Compile and Link override the built-in checks when set.
	Compile CompileFunc
	Link    LinkFunc

	// Calls records every driver call in order, e.g. "CompileShader(1)".
	Calls []string

	next     uint32
	shaders  map[uint32]*shaderObj
	programs map[uint32]*programObj
	current  uint32
	queue    []shader.ErrorCode
}

var _ shader.Driver = (*Driver)(nil)

// New returns an empty driver with no current program.
func New() *Driver {
	return &Driver{
		shaders:  make(map[uint32]*shaderObj),
		programs: make(map[uint32]*programObj),
	}
}

// Push appends codes to the error queue.
func (d *Driver) Push(codes ...shader.ErrorCode) {
	d.queue = append(d.queue, codes...)
}

// Pending returns the number of codes still queued.
func (d *Driver) Pending() int { return len(d.queue) }

// Current returns the handle of the current program, 0 if none.
func (d *Driver) Current() uint32 { return d.current }

// LiveShaders returns the shader objects that still hold driver memory.
// A deleted shader stays alive while it is attached to a program.
func (d *Driver) LiveShaders() []uint32 {
	var live []uint32
	for h, s := range d.shaders {
		if !s.deleted || s.attached > 0 {
			live = append(live, h)
		}
	}
	sort.Slice(live, func(i, j int) bool { return live[i] < live[j] })
	return live
}

// LivePrograms returns the program objects that have not been deleted.
func (d *Driver) LivePrograms() []uint32 {
	live := make([]uint32, 0, len(d.programs))
	for h := range d.programs {
		live = append(live, h)
	}
	sort.Slice(live, func(i, j int) bool { return live[i] < live[j] })
	return live
}

// Linked reports whether program exists and linked successfully.
func (d *Driver) Linked(program uint32) bool {
	p, ok := d.programs[program]
	return ok && p.linked
}

// Attached returns the shaders attached to program.
func (d *Driver) Attached(program uint32) []uint32 {
	if p, ok := d.programs[program]; ok {
		return append([]uint32(nil), p.shaders...)
	}
	return nil
}

func (d *Driver) record(format string, args ...any) {
	d.Calls = append(d.Calls, fmt.Sprintf(format, args...))
}

func (d *Driver) alloc() uint32 {
	d.next++
	return d.next
}

func (d *Driver) liveShader(h uint32) (*shaderObj, bool) {
	s, ok := d.shaders[h]
	if !ok || s.deleted {
		d.Push(shader.InvalidValue)
		return nil, false
	}
	return s, true
}

func (d *Driver) CreateShader(kind shader.Kind) uint32 {
	d.record("CreateShader(%s)", kind)
	if !kind.Valid() {
		d.Push(shader.InvalidEnum)
		return 0
	}
	h := d.alloc()
	d.shaders[h] = &shaderObj{kind: kind}
	return h
}

func (d *Driver) ShaderSource(h uint32, source string) {
	d.record("ShaderSource(%d)", h)
	if s, ok := d.liveShader(h); ok {
		s.source = source
	}
}

func (d *Driver) CompileShader(h uint32) {
	d.record("CompileShader(%d)", h)
	s, ok := d.liveShader(h)
	if !ok {
		return
	}
	check := d.Compile
	if check == nil {
		check = CheckSyntax
	}
	s.compiled, s.log = check(s.kind, s.source)
}

func (d *Driver) CompileStatus(h uint32) bool {
	d.record("CompileStatus(%d)", h)
	s, ok := d.liveShader(h)
	return ok && s.compiled
}

func (d *Driver) ShaderInfoLog(h uint32, maxLen int) string {
	d.record("ShaderInfoLog(%d)", h)
	s, ok := d.liveShader(h)
	if !ok {
		return ""
	}
	return truncate(s.log, maxLen)
}

func (d *Driver) DeleteShader(h uint32) {
	d.record("DeleteShader(%d)", h)
	if s, ok := d.liveShader(h); ok {
		s.deleted = true
	}
}

func (d *Driver) CreateProgram() uint32 {
	d.record("CreateProgram()")
	h := d.alloc()
	d.programs[h] = &programObj{}
	return h
}

func (d *Driver) AttachShader(program, h uint32) {
	d.record("AttachShader(%d, %d)", program, h)
	p, ok := d.programs[program]
	if !ok {
		d.Push(shader.InvalidValue)
		return
	}
	s, ok := d.liveShader(h)
	if !ok {
		return
	}
	for _, a := range p.shaders {
		if a == h {
			d.Push(shader.InvalidOperation)
			return
		}
	}
	p.shaders = append(p.shaders, h)
	s.attached++
}

func (d *Driver) DetachShader(program, h uint32) {
	d.record("DetachShader(%d, %d)", program, h)
	p, ok := d.programs[program]
	if !ok {
		d.Push(shader.InvalidValue)
		return
	}
	for i, a := range p.shaders {
		if a == h {
			p.shaders = append(p.shaders[:i], p.shaders[i+1:]...)
			d.shaders[h].attached--
			return
		}
	}
	d.Push(shader.InvalidOperation)
}

func (d *Driver) LinkProgram(program uint32) {
	d.record("LinkProgram(%d)", program)
	p, ok := d.programs[program]
	if !ok {
		d.Push(shader.InvalidValue)
		return
	}
	var vs, fs *shaderObj
	for _, h := range p.shaders {
		s := d.shaders[h]
		if !s.compiled {
			p.linked, p.log = false, fmt.Sprintf("error: %s shader %d is not compiled\n", s.kind, h)
			return
		}
		switch s.kind {
		case shader.Vertex:
			vs = s
		case shader.Fragment:
			fs = s
		}
	}
	if vs == nil || fs == nil {
		p.linked, p.log = false, "error: program needs a vertex and a fragment shader\n"
		return
	}
	check := d.Link
	if check == nil {
		check = CheckInterface
	}
	p.linked, p.log = check(vs.source, fs.source)
}

func (d *Driver) LinkStatus(program uint32) bool {
	d.record("LinkStatus(%d)", program)
	p, ok := d.programs[program]
	if !ok {
		d.Push(shader.InvalidValue)
		return false
	}
	return p.linked
}

func (d *Driver) ProgramInfoLog(program uint32, maxLen int) string {
	d.record("ProgramInfoLog(%d)", program)
	p, ok := d.programs[program]
	if !ok {
		d.Push(shader.InvalidValue)
		return ""
	}
	return truncate(p.log, maxLen)
}

func (d *Driver) DeleteProgram(program uint32) {
	d.record("DeleteProgram(%d)", program)
	p, ok := d.programs[program]
	if !ok {
		d.Push(shader.InvalidValue)
		return
	}
	for _, h := range p.shaders {
		d.shaders[h].attached--
	}
	delete(d.programs, program)
	if d.current == program {
		d.current = 0
	}
}

func (d *Driver) UseProgram(program uint32) {
	d.record("UseProgram(%d)", program)
	if program == 0 {
		d.current = 0
		return
	}
	p, ok := d.programs[program]
	if !ok {
		d.Push(shader.InvalidValue)
		return
	}
	if !p.linked {
		d.Push(shader.InvalidOperation)
		return
	}
	d.current = program
}

func (d *Driver) GetError() shader.ErrorCode {
	if len(d.queue) == 0 {
		return shader.NoError
	}
	code := d.queue[0]
	d.queue = d.queue[1:]
	return code
}

func truncate(s string, n int) string {
	if n > 0 && len(s) > n {
		return s[:n]
	}
	return s
}

// CheckSyntax is the default compile check: the source must define main
// and its braces and parentheses must balance.
func CheckSyntax(kind shader.Kind, source string) (bool, string) {
	if !strings.Contains(source, "main(") {
		return false, "0:1(1): error: no function with name 'main'\n"
	}
	var depth int
	for i, line := range strings.Split(source, "\n") {
		for _, r := range line {
			switch r {
			case '{', '(':
				depth++
			case '}', ')':
				depth--
			}
			if depth < 0 {
				return false, fmt.Sprintf("0:%d(1): error: syntax error, unexpected '%c'\n", i+1, r)
			}
		}
	}
	if depth != 0 {
		return false, "0:0(1): error: syntax error, unexpected end of file\n"
	}
	return true, ""
}

var varDecl = regexp.MustCompile(`(?m)^\s*(?:layout\s*\([^)]*\)\s*)?(in|out)\s+\w+\s+(\w+)\s*;`)

// CheckInterface is the default link check: every "in" variable of the
// fragment shader must be an "out" variable of the vertex shader.
func CheckInterface(vertex, fragment string) (bool, string) {
	outs := make(map[string]bool)
	for _, m := range varDecl.FindAllStringSubmatch(vertex, -1) {
		if m[1] == "out" {
			outs[m[2]] = true
		}
	}
	var missing []string
	for _, m := range varDecl.FindAllStringSubmatch(fragment, -1) {
		if m[1] == "in" && !outs[m[2]] {
			missing = append(missing, m[2])
		}
	}
	if len(missing) == 0 {
		return true, ""
	}
	var b strings.Builder
	for _, name := range missing {
		fmt.Fprintf(&b, "error: fragment shader input `%s' has no matching output in the previous stage\n", name)
	}
	return false, b.String()
}
