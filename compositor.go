package annotate

import (
	"fmt"
	"image"
	"log/slog"
	"sync"

	"github.com/fotoshot/annotate/internal/parallel"
	"github.com/fotoshot/annotate/text"
)

// Compositor paints annotation lists onto images.
//
// A Compositor is safe for concurrent use. The zero value is not usable;
// create one with NewCompositor.
type Compositor struct {
	logger    *slog.Logger
	maxPixels int
	stroke    Color
	workers   int

	poolOnce sync.Once
	pool     *parallel.WorkerPool
}

// NewCompositor creates a Compositor. It returns an error when a
// caller-supplied default color does not parse.
func NewCompositor(opts ...CompositorOption) (*Compositor, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	stroke, err := ParseColor(o.strokeColor)
	if err != nil {
		return nil, fmt.Errorf("annotate: default stroke color: %w", err)
	}

	return &Compositor{
		logger:    o.logger,
		maxPixels: o.maxPixels,
		stroke:    stroke,
		workers:   o.workers,
	}, nil
}

// defaultCompositor backs the package-level Composite functions.
var defaultCompositor = sync.OnceValue(func() *Compositor {
	c, _ := NewCompositor()
	return c
})

// Composite paints annotations onto a copy of base using the default
// compositor.
func Composite(base *Pixmap, annotations []Annotation) (*Pixmap, error) {
	return defaultCompositor().Composite(base, annotations)
}

// CompositeImage is Composite for any image.Image.
func CompositeImage(img image.Image, annotations []Annotation) (*image.NRGBA, error) {
	return defaultCompositor().CompositeImage(img, annotations)
}

func (c *Compositor) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return Logger()
}

// Composite paints annotations onto a copy of base, in slice order, and
// returns the copy. base is never modified.
//
// Per-annotation problems never fail the call: degenerate geometry is a
// no-op, an invalid color skips that paint, and unknown kinds are skipped.
// Errors are returned only for a nil or oversized base image and when the
// embedded font cannot be loaded for a label.
func (c *Compositor) Composite(base *Pixmap, annotations []Annotation) (*Pixmap, error) {
	if base == nil {
		return nil, ErrNilImage
	}
	if n := base.width * base.height; n > c.maxPixels {
		return nil, &ImageTooLargeError{Width: base.width, Height: base.height, Limit: c.maxPixels}
	}

	cv, err := c.newCanvas(base.Clone(), annotations)
	if err != nil {
		return nil, err
	}
	defer cv.close()

	for i := range annotations {
		cv.render(&annotations[i])
	}
	return cv.pm, nil
}

// CompositeImage converts img to a Pixmap, composites it and returns the
// result as an *image.NRGBA with origin (0, 0).
func (c *Compositor) CompositeImage(img image.Image, annotations []Annotation) (*image.NRGBA, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	if b := img.Bounds(); b.Dx()*b.Dy() > c.maxPixels {
		return nil, &ImageTooLargeError{Width: b.Dx(), Height: b.Dy(), Limit: c.maxPixels}
	}
	out, err := c.Composite(FromImage(img), annotations)
	if err != nil {
		return nil, err
	}
	return out.ToImage(), nil
}

// Damage returns the rectangle of base that compositing annotations can
// change, clipped to base. See Bounds.
func (c *Compositor) Damage(base *Pixmap, annotations []Annotation) image.Rectangle {
	if base == nil {
		return image.Rectangle{}
	}
	var r image.Rectangle
	for i := range annotations {
		r = r.Union(Bounds(&annotations[i]))
	}
	return r.Intersect(base.Bounds())
}

// Job is one independent unit of CompositeAll.
type Job struct {
	Base        *Pixmap
	Annotations []Annotation
}

// Result is the outcome of one Job.
type Result struct {
	Image *Pixmap
	Err   error
}

// CompositeAll composites every job on the compositor's worker pool and
// returns the results in job order. Jobs must not share a Base that another
// goroutine is writing.
func (c *Compositor) CompositeAll(jobs []Job) []Result {
	results := make([]Result, len(jobs))
	if len(jobs) == 0 {
		return results
	}

	work := make([]func(), len(jobs))
	for i := range jobs {
		work[i] = func() {
			img, err := c.Composite(jobs[i].Base, jobs[i].Annotations)
			results[i] = Result{Image: img, Err: err}
		}
	}
	if p := c.workerPool(); p != nil {
		p.ExecuteAll(work)
	} else {
		for _, fn := range work {
			fn()
		}
	}
	return results
}

// workerPool starts the pool on first use. It returns nil if Close ran
// before any batch.
func (c *Compositor) workerPool() *parallel.WorkerPool {
	c.poolOnce.Do(func() {
		c.pool = parallel.NewWorkerPool(c.workers)
		c.log().Info("annotate: worker pool started", "workers", c.pool.Workers())
	})
	return c.pool
}

// Close stops the worker pool started by CompositeAll. The compositor stays
// usable; later batches run on the calling goroutine.
func (c *Compositor) Close() {
	c.poolOnce.Do(func() {})
	if c.pool != nil {
		c.pool.Close()
		c.log().Info("annotate: worker pool closed")
	}
}

// needsFont reports whether any annotation draws glyphs.
func needsFont(annotations []Annotation) bool {
	for i := range annotations {
		switch annotations[i].Kind {
		case KindStepMarker:
			if annotations[i].StepNumber != nil {
				return true
			}
		case KindText:
			if annotations[i].text() != "" {
				return true
			}
		}
	}
	return false
}

// loadFont returns the embedded font.
func loadFont() (*text.Font, error) {
	f, err := text.Default()
	if err != nil {
		return nil, fmt.Errorf("annotate: load font: %w", err)
	}
	return f, nil
}
