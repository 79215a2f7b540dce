// Package text supplies font metrics and glyph coverage for the annotation
// renderers.
//
// One font is embedded in the binary (Go Regular, from
// golang.org/x/image/font/gofont). It is parsed on first use and shared
// read-only by every caller afterwards:
//
//	f, err := text.Default()
//	if err != nil {
//	    return err
//	}
//	w := f.TextAdvance("42", 14)  // horizontal advance in pixels
//	a := f.Ascent(14)             // baseline to top of the font
//
// Sizes are pixel heights: ascent plus descent spans size pixels.
//
// Rasterizing glyphs needs a Face, which holds per-size scratch state and
// must not be shared between goroutines:
//
//	face, err := f.NewFace(20)
//	if err != nil {
//	    return err
//	}
//	defer face.Close()
//	text.Draw(mask, face, "Hello", x, baseline)
//
// Draw writes coverage, not color. Callers composite the coverage with
// their own blending.
//
// ShapedAdvance measures a string with HarfBuzz shaping
// (github.com/go-text/typesetting), so kerning and ligatures are included.
package text
