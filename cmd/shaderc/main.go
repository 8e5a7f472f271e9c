// Command shaderc checks and builds GLSL vertex/fragment shader pairs.
//
// Usage:
//
//	shaderc check --dir shaders
//	shaderc build --vertex tri.vert --fragment tri.frag
//	shaderc watch --config shaderc.toml
//
// build and watch create a hidden OpenGL context; check only reads files.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/go-theft-auto/shader/internal/config"
)

func init() {
	// GLFW and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "shaderc",
		Short:         "Compile and link GLSL shader programs",
		Long:          "shaderc loads a vertex and a fragment shader, compiles and links them against a real OpenGL context and reports driver diagnostics.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "config file (default ./"+config.DefaultFile+" if present)")
	root.PersistentFlags().String("dir", "", "directory shader names are resolved against")
	root.PersistentFlags().String("vertex", "", "vertex shader name")
	root.PersistentFlags().String("fragment", "", "fragment shader name")
	root.PersistentFlags().Bool("verbose", false, "enable debug logging")
	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	root.AddCommand(newCheckCmd())
	root.AddCommand(newBuildCmd())
	root.AddCommand(newWatchCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
