package annotate

import (
	"image"
	"unicode/utf8"

	"github.com/fotoshot/annotate/text"
)

// Bounds returns a rectangle containing every pixel that rendering a could
// change, in image coordinates and not clipped to any image. It is
// conservative: colors are not resolved, so an annotation whose colors are
// transparent or invalid still reports its geometry. Degenerate geometry
// and unknown kinds yield an empty rectangle.
//
// Text extents use HarfBuzz-shaped widths when they exceed the raw glyph
// advances.
func Bounds(a *Annotation) image.Rectangle {
	switch a.Kind {
	case KindRect:
		x, y := pixel(a.X), pixel(a.Y)
		w, h := a.width(), a.height()
		if w <= 0 || h <= 0 {
			return image.Rectangle{}
		}
		sw := int(max(a.strokeWidth(), 0))
		grow := max(sw-1-sw/2, 0)
		return image.Rect(x-grow, y-grow, x+w+grow, y+h+grow)

	case KindEllipse:
		w, h := a.width(), a.height()
		if w <= 0 || h <= 0 {
			return image.Rectangle{}
		}
		rx, ry := w/2, h/2
		cx, cy := pixel(a.X)+rx, pixel(a.Y)+ry
		return image.Rect(cx-rx, cy-ry, cx+rx+1, cy+ry+1)

	case KindHighlight, KindPixelate:
		x, y := pixel(a.X), pixel(a.Y)
		w, h := a.width(), a.height()
		if w <= 0 || h <= 0 {
			return image.Rectangle{}
		}
		return image.Rect(x, y, x+w, y+h)

	case KindArrow:
		if len(a.Points) < 2 {
			return image.Rectangle{}
		}
		sw := a.lineWidth()
		w1, w2, ok := arrowWings(a.Points[0], a.Points[1], sw)
		if !ok {
			return image.Rectangle{}
		}
		return strokeBounds(sw, a.Points[0], a.Points[1], w1, w2)

	case KindFreehand:
		if len(a.Points) < 2 {
			return image.Rectangle{}
		}
		return strokeBounds(a.lineWidth(), a.Points...)

	case KindStepMarker:
		return stepBounds(a)

	case KindText:
		return textBounds(a)
	}
	return image.Rectangle{}
}

func stepBounds(a *Annotation) image.Rectangle {
	cx, cy := pixel(a.X), pixel(a.Y)
	r := pixel(a.fontSize(DefaultStepSize)) / 2

	var b image.Rectangle
	if r >= 0 {
		b = image.Rect(cx-r, cy-r, cx+r+1, cy+r+1)
	}

	label, size, ok := stepLabel(a)
	if !ok {
		return b
	}
	f, err := text.Default()
	if err != nil {
		return b.Union(estimateBox(cx-int(size), cy-int(size), []string{label}, size))
	}
	width := max(f.TextAdvance(label, size), f.ShapedAdvance(label, size))
	tx, ty := stepLabelOrigin(cx, cy, width, f.Ascent(size))
	return b.Union(labelBox(tx, ty, width, size))
}

func textBounds(a *Annotation) image.Rectangle {
	s := a.text()
	size := a.fontSize(DefaultTextSize)
	if s == "" || !(size > 0) {
		return image.Rectangle{}
	}
	x, y := pixel(a.X), pixel(a.Y)
	lines := text.Lines(s)

	f, err := text.Default()
	if err != nil {
		return estimateBox(x, y, lines, size)
	}
	return textBox(f, x, y, lines, size, true)
}

// estimateBox bounds text without font metrics by assuming every rune is
// one em wide.
func estimateBox(x, y int, lines []string, size float64) image.Rectangle {
	var r image.Rectangle
	lh := lineHeight(size)
	for i, line := range lines {
		if line == "" {
			continue
		}
		width := float64(utf8.RuneCountInString(line)) * size
		r = r.Union(labelBox(x, y+i*lh, width, size))
	}
	return r
}
