package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-theft-auto/shader/backend/opengl"
)

func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Compile and link the shader pair on a hidden OpenGL context",
		Args:  cobra.NoArgs,
		RunE:  runBuild,
	}
}

func runBuild(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	out, err := newPrinter(cmd)
	if err != nil {
		return err
	}

	ctx, err := opengl.NewContext(s.contextConfig())
	if err != nil {
		return err
	}
	defer ctx.Close()
	drv := ctx.Driver()

	p := s.pipeline(cmd.ErrOrStderr())
	if err := p.CheckInit(drv); err != nil {
		return err
	}
	out.infof("OpenGL %s", ctx.Version())

	prog, err := p.Build(drv, s.cfg.Vertex, s.cfg.Fragment)
	if err != nil {
		out.failf("%s + %s", s.cfg.Vertex, s.cfg.Fragment)
		return fmt.Errorf("build: %w", err)
	}
	defer prog.Delete(drv)

	out.okf("program %d (%s + %s)", prog.Handle, s.cfg.Vertex, s.cfg.Fragment)
	return nil
}
