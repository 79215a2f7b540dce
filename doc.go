// Package annotate flattens screenshot annotations onto a raster image.
//
// # Overview
//
// A capture is held as a [Pixmap] of straight-alpha RGBA8 samples. A list of
// [Annotation] records (rectangles, arrows, ellipses, freehand strokes,
// highlights, pixelated regions, numbered step markers and text) is painted
// onto a copy of it, in list order, producing a new Pixmap of the same size.
//
// # Quick Start
//
//	import "github.com/fotoshot/annotate"
//
//	base := annotate.FromImage(img)
//	out, err := annotate.Composite(base, []annotate.Annotation{{
//	    Kind:        annotate.KindRect,
//	    X:           10,
//	    Y:           10,
//	    Width:       annotate.Ptr(30.0),
//	    Height:      annotate.Ptr(20.0),
//	    StrokeColor: annotate.Ptr("#FF0000"),
//	}})
//
// # Rendering Model
//
// Rendering is aliased and integer-addressed. Every paint operation is first
// rasterized into a coverage mask and then blended once per pixel with
// source-over compositing, so opaque colors produce exact pixel values.
// Strokes are approximations: wide lines are drawn as parallel 1px segments
// and wide rectangle borders as concentric outlines.
//
// Malformed annotations never fail a composite. Degenerate geometry is a
// no-op, an unparsable color skips the paint that needed it, and unknown
// kinds are skipped with a debug log. Only resource failures are returned as
// errors.
//
// # Coordinate System
//
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Fractional coordinates are truncated toward zero
//
// # Concurrency
//
// A [Compositor] is safe for concurrent use. Each Composite call works on
// its own clone of the base image; the embedded font is parsed once and
// shared read-only. [Compositor.CompositeAll] runs independent jobs on a
// worker pool.
package annotate
