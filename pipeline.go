package shader

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
)

// Pipeline turns a vertex and a fragment source into a linked program.
// It holds no driver state; every Build is independent.
type Pipeline struct {
	loader   *Loader
	reporter *Reporter
	compiler *Compiler
	linker   *Linker
	logger   *slog.Logger
	logLimit int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithBaseDir resolves shader names relative to dir.
func WithBaseDir(dir string) Option {
	return func(p *Pipeline) { p.loader = NewLoader(dir) }
}

// WithFS resolves shader names inside fsys.
func WithFS(fsys fs.FS) Option {
	return func(p *Pipeline) { p.loader = NewFSLoader(fsys) }
}

// WithDiagnostics sets the stream "[ERROR] ..." lines are written to.
func WithDiagnostics(w io.Writer) Option {
	return func(p *Pipeline) {
		if w != nil {
			p.reporter.w = w
		}
	}
}

// WithTolerated replaces the codes CheckInit accepts after initialisation.
func WithTolerated(codes ...ErrorCode) Option {
	return func(p *Pipeline) { p.reporter.Tolerate(codes...) }
}

// WithLogLimit bounds how many bytes of driver log are kept per failure.
func WithLogLimit(n int) Option {
	return func(p *Pipeline) { p.logLimit = n }
}

// WithLogger sets the structured logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a Pipeline. By default shaders are read from the current
// directory and diagnostics go to stderr.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		loader:   NewLoader("."),
		reporter: NewReporter(nil),
		logger:   defaultLogger,
		logLimit: DefaultLogLimit,
	}

	for _, opt := range opts {
		opt(p)
	}

	p.reporter.logger = p.logger
	p.compiler = &Compiler{Reporter: p.reporter, LogLimit: p.logLimit, Logger: p.logger}
	p.linker = &Linker{Reporter: p.reporter, LogLimit: p.logLimit, Logger: p.logger}
	return p
}

// Loader returns the pipeline's source loader.
func (p *Pipeline) Loader() *Loader { return p.loader }

// Reporter returns the pipeline's diagnostics reporter.
func (p *Pipeline) Reporter() *Reporter { return p.reporter }

// CheckInit drains d right after context or extension initialisation.
// See Reporter.CheckInit.
func (p *Pipeline) CheckInit(d Driver) error {
	return p.reporter.CheckInit(d, "init")
}

// Build loads vertexName and fragmentName and builds them into a program
// that is current on d. Both resources are read before any driver call.
func (p *Pipeline) Build(d Driver, vertexName, fragmentName string) (Program, error) {
	vs, err := p.loader.Load(vertexName, Vertex)
	if err != nil {
		return Program{}, err
	}
	fs, err := p.loader.Load(fragmentName, Fragment)
	if err != nil {
		return Program{}, err
	}
	return p.BuildSources(d, vs, fs)
}

// BuildSources compiles and links vs and fs. The compiled shaders are
// always released before returning. Compile and link failures are printed
// to the diagnostic stream and returned; no partial program escapes.
func (p *Pipeline) BuildSources(d Driver, vs, fs Source) (Program, error) {
	vsh, err := p.compiler.Compile(d, vs)
	if err != nil {
		p.report(err, vs, fs)
		return Program{}, err
	}
	defer vsh.Delete(d)

	fsh, err := p.compiler.Compile(d, fs)
	if err != nil {
		p.report(err, vs, fs)
		return Program{}, err
	}
	defer fsh.Delete(d)

	prog, err := p.linker.Link(d, vsh, fsh)
	if err != nil {
		p.report(err, vs, fs)
		return Program{}, err
	}
	d.DetachShader(prog.Handle, vsh.Handle)
	d.DetachShader(prog.Handle, fsh.Handle)

	p.logger.Debug("program built", "handle", prog.Handle, "vertex", vs.Name, "fragment", fs.Name)
	return prog, nil
}

func (p *Pipeline) report(err error, vs, fs Source) {
	var ce *CompileError
	if errors.As(err, &ce) {
		p.reporter.Report(ce.Diagnostic())
		return
	}
	var le *LinkError
	if errors.As(err, &le) {
		diag := le.Diagnostic()
		diag.Name = vs.Name + " + " + fs.Name
		p.reporter.Report(diag)
	}
}
