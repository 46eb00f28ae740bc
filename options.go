package mandel

// Option configures a Viewer during creation.
//
// Example:
//
//	// Default CPU rendering
//	v, _ := mandel.NewViewer[float64](cfg)
//
//	// GPU texture path (dependency injection)
//	gpu, _ := render.NewGPURenderer[float32](render.NullDeviceHandle{}, sink)
//	v, _ := mandel.NewViewer(cfg, mandel.WithRenderer[float32](gpu))
type Option[F Float] func(*options[F])

type options[F Float] struct {
	renderer Renderer[F]
	inside   *RGB
	palette  Palette
}

// WithRenderer replaces the default SoftwareRenderer. The Viewer takes
// ownership and closes it.
func WithRenderer[F Float](r Renderer[F]) Option[F] {
	return func(o *options[F]) {
		o.renderer = r
	}
}

// WithInsideColor colors points that never escape.
func WithInsideColor[F Float](c RGB) Option[F] {
	return func(o *options[F]) {
		o.inside = &c
	}
}

// WithPalette supplies a prebuilt palette instead of generating one from
// Config.Palette.
func WithPalette[F Float](p Palette) Option[F] {
	return func(o *options[F]) {
		o.palette = p
	}
}
