package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/gogpu/mandel"
)

// enumFlag adapts a mandel enum with a Parse function to pflag.Value.
type enumFlag[T fmt.Stringer] struct {
	value *T
	parse func(string) (T, error)
	name  string
}

func newEnumFlag[T fmt.Stringer](value *T, name string, parse func(string) (T, error)) *enumFlag[T] {
	return &enumFlag[T]{value: value, parse: parse, name: name}
}

func (f *enumFlag[T]) String() string { return (*f.value).String() }

func (f *enumFlag[T]) Set(s string) error {
	v, err := f.parse(s)
	if err != nil {
		return err
	}
	*f.value = v
	return nil
}

func (f *enumFlag[T]) Type() string { return f.name }

// levelFlag is a slog.Level flag.
type levelFlag struct {
	level *slog.Level
}

func (f levelFlag) String() string { return f.level.String() }

func (f levelFlag) Set(s string) error { return f.level.UnmarshalText([]byte(s)) }

func (f levelFlag) Type() string { return "level" }

var (
	_ pflag.Value = (*enumFlag[mandel.PaletteKind])(nil)
	_ pflag.Value = levelFlag{}
)

// settings is everything the persistent flags set.
type settings struct {
	cfg      mandel.Config
	centerRe float64
	centerIm float64
	level    slog.Level
}

func newSettings() *settings {
	cfg := mandel.DefaultConfig()
	return &settings{
		cfg:      cfg,
		centerRe: real(cfg.Center),
		centerIm: imag(cfg.Center),
		level:    slog.LevelInfo,
	}
}

// register binds the persistent flags to s.
func (s *settings) register(fs *pflag.FlagSet) {
	fs.IntVar(&s.cfg.Width, "width", s.cfg.Width, "window width in pixels")
	fs.IntVar(&s.cfg.Height, "height", s.cfg.Height, "window height in pixels")
	fs.IntVarP(&s.cfg.MaxIterations, "iterations", "n", s.cfg.MaxIterations, "maximum escape iterations")
	fs.Float64Var(&s.cfg.Zoom, "zoom", s.cfg.Zoom, "initial zoom (span multiplier)")
	fs.Float64Var(&s.centerRe, "center-re", s.centerRe, "real part of the initial center")
	fs.Float64Var(&s.centerIm, "center-im", s.centerIm, "imaginary part of the initial center")
	fs.IntVar(&s.cfg.Workers, "workers", s.cfg.Workers, "CPU render strips (0 = one per CPU)")
	fs.IntVar(&s.cfg.PaletteSize, "palette-size", s.cfg.PaletteSize, "number of palette entries")

	fs.VarP(newEnumFlag(&s.cfg.Palette, "palette", mandel.ParsePaletteKind), "palette", "p",
		"palette: smooth, grayscale, random or polynomial")
	fs.Var(newEnumFlag(&s.cfg.Precision, "precision", mandel.ParsePrecision), "precision",
		"sample precision: float32 or float64")
	fs.Var(newEnumFlag(&s.cfg.ZoomAnchor, "anchor", mandel.ParseZoomAnchor), "zoom-anchor",
		"wheel zoom anchor: center or cursor")
	fs.Var(newEnumFlag(&s.cfg.PanMode, "mode", mandel.ParsePanMode), "pan-mode",
		"pan step: inverse or span")
	fs.Var(levelFlag{level: &s.level}, "log-level", "log level: debug, info, warn or error")
}

// config returns the validated configuration.
func (s *settings) config() (mandel.Config, error) {
	cfg := s.cfg
	cfg.Center = complex(s.centerRe, s.centerIm)
	if err := cfg.Validate(); err != nil {
		return mandel.Config{}, err
	}
	return cfg, nil
}
