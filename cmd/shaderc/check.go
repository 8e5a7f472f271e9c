package main

import (
	"github.com/spf13/cobra"

	"github.com/go-theft-auto/shader"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load both shader sources without creating a GL context",
		Args:  cobra.NoArgs,
		RunE:  runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	out, err := newPrinter(cmd)
	if err != nil {
		return err
	}

	loader := s.pipeline(cmd.ErrOrStderr()).Loader()
	for _, item := range []struct {
		name string
		kind shader.Kind
	}{
		{s.cfg.Vertex, shader.Vertex},
		{s.cfg.Fragment, shader.Fragment},
	} {
		src, err := loader.Load(item.name, item.kind)
		if err != nil {
			out.failf("%s (%s)", item.name, item.kind)
			return err
		}
		out.okf("%s (%s, %d bytes)", src.Name, src.Kind, len(src.Text))
	}
	return nil
}
