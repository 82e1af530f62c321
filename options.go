package flatqa

import "log/slog"

// Option configures a Generator during creation.
// Use functional options to customize Generator behavior.
//
// Example:
//
//	// Scene-only generator, no images
//	g, err := flatqa.NewGenerator(cfg)
//
//	// With the software renderer (dependency injection)
//	g, err := flatqa.NewGenerator(cfg, flatqa.WithRenderer(render.New(cfg.ImageSize)))
type Option func(*generatorOptions)

// generatorOptions holds optional configuration for Generator creation.
type generatorOptions struct {
	renderer Renderer
	logger   *slog.Logger
}

// defaultGeneratorOptions returns the default generator options.
func defaultGeneratorOptions() generatorOptions {
	return generatorOptions{
		renderer: nil, // Will be set to the no-op renderer if nil
		logger:   nil, // Will be set to the package logger if nil
	}
}

// WithRenderer sets the renderer that turns scenes into image bytes.
// Without it the generator emits examples with empty image payloads,
// which is what scene-level tests and token-only workloads want.
func WithRenderer(r Renderer) Option {
	return func(o *generatorOptions) {
		o.renderer = r
	}
}

// WithLogger overrides the package logger for one generator instance.
func WithLogger(l *slog.Logger) Option {
	return func(o *generatorOptions) {
		o.logger = l
	}
}
