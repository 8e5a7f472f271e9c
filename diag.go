package shader

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Stage names the build step a diagnostic came from.
type Stage string

const (
	StageCompile Stage = "compile"
	StageLink    Stage = "link"
)

// BuildDiagnostic describes a failed compile or link. Kind and Source are
// only set for StageCompile. Name is the source name for a compile and,
// when known, the "vertex + fragment" pair for a link.
type BuildDiagnostic struct {
	Stage  Stage
	Kind   Kind
	Name   string
	Source string
	Log    string
}

// Location is the tag Report prints, e.g. "compile vertex tri.vert" or
// "link tri.vert + tri.frag". It matches the tag Drain gets from the
// compiler for the same source.
func (d BuildDiagnostic) Location() string {
	if d.Stage == StageCompile {
		name := d.Name
		if name == "" {
			name = "<inline>"
		}
		return fmt.Sprintf("%s %s %s", StageCompile, d.Kind, name)
	}
	if d.Name == "" {
		return string(StageLink)
	}
	return string(StageLink) + " " + d.Name
}

// maxDrainPolls bounds a single drain. A lost context keeps reporting
// ContextLost on every poll.
const maxDrainPolls = 1024

const sourceLogSeparator = "************************************"

// Reporter writes driver errors and build failures to a diagnostic stream.
// Lines have the form "[ERROR] (<location>) <message>". The zero value
// writes to stderr, logs through the package logger and tolerates nothing.
type Reporter struct {
	w         io.Writer
	tolerated map[ErrorCode]bool
	logger    *slog.Logger
}

// NewReporter creates a Reporter writing to w (stderr when nil).
// The tolerated list starts as {InvalidEnum}; see Tolerate.
func NewReporter(w io.Writer) *Reporter {
	if w == nil {
		w = os.Stderr
	}
	return &Reporter{
		w:         w,
		tolerated: map[ErrorCode]bool{InvalidEnum: true},
		logger:    defaultLogger,
	}
}

// Tolerate replaces the list of codes CheckInit treats as expected.
// Calling it with no codes makes every code fatal.
func (r *Reporter) Tolerate(codes ...ErrorCode) {
	r.tolerated = make(map[ErrorCode]bool, len(codes))
	for _, c := range codes {
		r.tolerated[c] = true
	}
}

// Tolerated reports whether CheckInit accepts code.
func (r *Reporter) Tolerated(code ErrorCode) bool {
	return r.tolerated[code]
}

// Drain polls d's error queue until it is empty, printing one line per
// code. It never fails and returns the codes in the order they were
// polled.
func (r *Reporter) Drain(d Driver, location string) []ErrorCode {
	var codes []ErrorCode
	for i := 0; i < maxDrainPolls; i++ {
		code := d.GetError()
		if code == NoError {
			return codes
		}
		codes = append(codes, code)
		r.printf(location, "%s", code)
	}
	r.log().Warn("error queue not empty after drain limit", "location", location, "polls", maxDrainPolls)
	return codes
}

// CheckInit drains the error queue right after context or extension
// initialisation. Tolerated codes are removed from the queue and logged
// at debug level; any other code is printed and returned in an InitError.
func (r *Reporter) CheckInit(d Driver, location string) error {
	var fatal []ErrorCode
	for i := 0; i < maxDrainPolls; i++ {
		code := d.GetError()
		if code == NoError {
			break
		}
		if r.tolerated[code] {
			r.log().Debug("ignoring expected driver error after init", "location", location, "code", code.Constant())
			continue
		}
		fatal = append(fatal, code)
		r.printf(location, "%s", code)
	}
	if len(fatal) > 0 {
		return &InitError{Codes: fatal}
	}
	return nil
}

// Report prints a build failure together with the driver log and, for
// compile failures, the offending source.
func (r *Reporter) Report(diag BuildDiagnostic) {
	w := r.out()
	switch diag.Stage {
	case StageCompile:
		r.printf(diag.Location(), "shader compilation failed:")
		fmt.Fprintln(w, strings.TrimRight(diag.Source, "\n"))
		fmt.Fprintln(w, sourceLogSeparator)
	default:
		r.printf(diag.Location(), "program linking failed:")
	}
	fmt.Fprintln(w, strings.TrimRight(diag.Log, "\n"))
}

func (r *Reporter) printf(location, format string, args ...any) {
	fmt.Fprintf(r.out(), "[ERROR] (%s) %s\n", location, fmt.Sprintf(format, args...))
}

func (r *Reporter) out() io.Writer {
	if r.w == nil {
		return os.Stderr
	}
	return r.w
}

func (r *Reporter) log() *slog.Logger {
	if r.logger == nil {
		return defaultLogger
	}
	return r.logger
}
