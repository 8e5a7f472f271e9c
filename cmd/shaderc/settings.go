package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/go-theft-auto/shader"
	"github.com/go-theft-auto/shader/backend/opengl"
	"github.com/go-theft-auto/shader/internal/config"
)

// settings is the config file merged with command-line overrides.
type settings struct {
	cfg       config.Config
	tolerated []shader.ErrorCode
}

func loadSettings(cmd *cobra.Command) (settings, error) {
	flags := cmd.Flags()

	path, err := flags.GetString("config")
	if err != nil {
		return settings{}, err
	}
	cfg, err := config.LoadOptional(path)
	if err != nil {
		return settings{}, err
	}

	overrides := map[string]*string{
		"dir":      &cfg.ShaderDir,
		"vertex":   &cfg.Vertex,
		"fragment": &cfg.Fragment,
	}
	for name, dst := range overrides {
		if flags.Changed(name) {
			if *dst, err = flags.GetString(name); err != nil {
				return settings{}, err
			}
		}
	}
	if flags.Changed("verbose") {
		if cfg.Verbose, err = flags.GetBool("verbose"); err != nil {
			return settings{}, err
		}
	}

	codes, err := cfg.Validate()
	if err != nil {
		return settings{}, err
	}
	shader.SetVerbose(cfg.Verbose)
	return settings{cfg: cfg, tolerated: codes}, nil
}

func (s settings) pipeline(diag io.Writer) *shader.Pipeline {
	return shader.New(
		shader.WithBaseDir(s.cfg.ShaderDir),
		shader.WithDiagnostics(diag),
		shader.WithTolerated(s.tolerated...),
		shader.WithLogLimit(s.cfg.LogLimit),
	)
}

func (s settings) contextConfig() opengl.ContextConfig {
	cc := opengl.DefaultContextConfig()
	cc.Title = "shaderc"
	cc.Major = s.cfg.Context.Major
	cc.Minor = s.cfg.Context.Minor
	cc.Core = s.cfg.Context.Core
	cc.Visible = s.cfg.Context.Visible
	return cc
}

// printer writes status lines, coloured when the mode allows it.
type printer struct {
	w    io.Writer
	ok   *color.Color
	fail *color.Color
	info *color.Color
}

func newPrinter(cmd *cobra.Command) (*printer, error) {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return nil, err
	}
	w := cmd.OutOrStdout()

	var enabled bool
	switch mode {
	case "on":
		enabled = true
	case "off":
		enabled = false
	case "auto":
		if f, ok := w.(*os.File); ok {
			enabled = term.IsTerminal(int(f.Fd()))
		}
	default:
		return nil, fmt.Errorf("invalid --color %q (want auto, on or off)", mode)
	}

	p := &printer{
		w:    w,
		ok:   color.New(color.FgGreen, color.Bold),
		fail: color.New(color.FgRed, color.Bold),
		info: color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.ok, p.fail, p.info} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p, nil
}

func (p *printer) okf(format string, args ...any) {
	p.ok.Fprint(p.w, "ok")
	fmt.Fprintf(p.w, ": "+format+"\n", args...)
}

func (p *printer) failf(format string, args ...any) {
	p.fail.Fprint(p.w, "fail")
	fmt.Fprintf(p.w, ": "+format+"\n", args...)
}

func (p *printer) infof(format string, args ...any) {
	p.info.Fprintf(p.w, format+"\n", args...)
}
