// Command mandelview explores the Mandelbrot set interactively, or renders
// a single view to PNG.
//
// Usage:
//
//	mandelview view [--gpu] [--hud]
//	mandelview render -o mandel.png [--supersample 4] [--hud]
//
// Scroll to zoom, arrow keys or WASD to pan.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/mandel"
)

func mainCmd() *cobra.Command {
	s := newSettings()

	cmd := &cobra.Command{
		Use:     "mandelview",
		Short:   "Interactive Mandelbrot set viewer",
		Version: mandel.Version,
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			mandel.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: s.level,
			})))
			return nil
		},
	}
	s.register(cmd.PersistentFlags())

	cmd.AddCommand(viewCmd(s), renderCmd(s))
	return cmd
}

func main() {
	ctx := context.Background()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
