package main

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/mandel"
)

type renderOptions struct {
	output      string
	supersample int
	hud         bool
}

func renderCmd(s *settings) *cobra.Command {
	var o renderOptions

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the initial view to a PNG file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// At this point usage information has already been printed if obviously incorrect.
			cmd.SilenceUsage = true

			cfg, err := s.config()
			if err != nil {
				return err
			}
			if o.supersample < 1 {
				return fmt.Errorf("%w: supersample %d", mandel.ErrInvalidConfig, o.supersample)
			}
			if cfg.Precision == mandel.Float32 {
				return runRender[float32](cfg, o)
			}
			return runRender[float64](cfg, o)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&o.output, "output", "o", "mandel.png", "output file")
	flags.IntVar(&o.supersample, "supersample", 1, "render at this multiple of the resolution and downsample")
	flags.BoolVar(&o.hud, "hud", false, "draw zoom and center into the image")
	return cmd
}

func runRender[F mandel.Float](cfg mandel.Config, o renderOptions) error {
	v, err := mandel.NewViewer[F](cfg)
	if err != nil {
		return err
	}
	defer func() { _ = v.Close() }()

	if _, err := v.Step(); err != nil {
		return err
	}

	var img *image.RGBA
	if o.supersample > 1 {
		img, err = v.Snapshot(o.supersample)
		if err != nil {
			return err
		}
	} else {
		img = v.Pixmap().ToImage()
	}
	if o.hud {
		mandel.DrawHUDImage(img, mandel.HUDLines(v.View(), cfg.MaxIterations, v.Stats()), mandel.White)
	}

	if err := writePNG(o.output, img); err != nil {
		return err
	}
	mandel.Logger().Info("mandelview: image written",
		slog.String("path", o.output),
		slog.Int("supersample", o.supersample),
		slog.Duration("frame", v.Stats().LastFrame))
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
