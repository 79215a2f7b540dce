package annotate

import "log/slog"

// DefaultMaxPixels is the default pixel limit of a Compositor: 2^28 pixels,
// or 1 GiB of RGBA samples per working copy.
const DefaultMaxPixels = 1 << 28

// CompositorOption configures a Compositor during creation.
//
// Example:
//
//	c, err := annotate.NewCompositor(
//	    annotate.WithLogger(logger),
//	    annotate.WithMaxPixels(64<<20),
//	)
type CompositorOption func(*compositorOptions)

// compositorOptions holds optional configuration for Compositor creation.
type compositorOptions struct {
	logger      *slog.Logger
	maxPixels   int
	strokeColor string
	workers     int
}

// defaultOptions returns the default compositor options.
func defaultOptions() compositorOptions {
	return compositorOptions{
		logger:      nil, // falls back to Logger() at call time
		maxPixels:   DefaultMaxPixels,
		strokeColor: DefaultStrokeColor,
		workers:     0, // GOMAXPROCS
	}
}

// WithLogger sets the logger for one compositor, overriding the
// package-wide logger from SetLogger.
func WithLogger(l *slog.Logger) CompositorOption {
	return func(o *compositorOptions) {
		o.logger = l
	}
}

// WithMaxPixels sets the largest base image, in pixels, that Composite
// accepts. Values <= 0 keep the default.
func WithMaxPixels(n int) CompositorOption {
	return func(o *compositorOptions) {
		if n > 0 {
			o.maxPixels = n
		}
	}
}

// WithDefaultStrokeColor sets the stroke color used when an annotation has
// none. NewCompositor fails if spec does not parse.
func WithDefaultStrokeColor(spec string) CompositorOption {
	return func(o *compositorOptions) {
		o.strokeColor = spec
	}
}

// WithWorkers sets the number of workers CompositeAll uses.
// Values <= 0 mean GOMAXPROCS.
func WithWorkers(n int) CompositorOption {
	return func(o *compositorOptions) {
		o.workers = n
	}
}
