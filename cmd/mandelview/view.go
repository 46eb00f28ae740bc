package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gogpu/mandel"
	"github.com/gogpu/mandel/integration/ebitenview"
	"github.com/gogpu/mandel/render"
)

type viewOptions struct {
	gpu   bool
	hud   bool
	title string
}

func viewCmd(s *settings) *cobra.Command {
	var o viewOptions

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open an interactive window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// At this point usage information has already been printed if obviously incorrect.
			cmd.SilenceUsage = true

			cfg, err := s.config()
			if err != nil {
				return err
			}
			if cfg.Precision == mandel.Float32 || o.gpu {
				return runView[float32](cfg, o)
			}
			return runView[float64](cfg, o)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&o.gpu, "gpu", false, "evaluate the set in a shader (float32)")
	flags.BoolVar(&o.hud, "hud", false, "show zoom, center and frame time")
	flags.StringVar(&o.title, "title", "mandel", "window title")
	return cmd
}

func runView[F mandel.Float](cfg mandel.Config, o viewOptions) error {
	var (
		viewerOpts []mandel.Option[F]
		gameOpts   = []ebitenview.Option{ebitenview.WithTitle(o.title)}
	)
	if o.hud {
		gameOpts = append(gameOpts, ebitenview.WithHUD())
	}
	if o.gpu {
		sink := ebitenview.NewShaderSink()
		gpu, err := render.NewGPURenderer[F](render.NullDeviceHandle{}, sink,
			render.WithShaderCompilation(),
			render.WithFallbackWorkers(cfg.Workers))
		if err != nil {
			return err
		}
		viewerOpts = append(viewerOpts, mandel.WithRenderer[F](gpu))
		gameOpts = append(gameOpts, ebitenview.WithShaderSink(sink))
	}

	v, err := mandel.NewViewer(cfg, viewerOpts...)
	if err != nil {
		return err
	}
	defer func() { _ = v.Close() }()

	game, err := ebitenview.New(v, gameOpts...)
	if err != nil {
		return err
	}

	mandel.Logger().Info("mandelview: opening window",
		slog.Int("width", cfg.Width),
		slog.Int("height", cfg.Height),
		slog.Bool("gpu", o.gpu))
	return game.Run()
}
