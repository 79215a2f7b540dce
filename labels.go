package annotate

import (
	"image"
	"math"
	"strconv"

	"github.com/fotoshot/annotate/text"
)

// Label layout.
const (
	stepLabelScale   = 0.6
	minStepLabelSize = 8
	lineSpacing      = 1.4
)

// stepLabelColor is the color of step numbers.
var stepLabelColor = White

// stepLabel returns the text and font size of a step marker's label.
func stepLabel(a *Annotation) (string, float64, bool) {
	if a.StepNumber == nil {
		return "", 0, false
	}
	size := pixel(a.fontSize(DefaultStepSize))
	return strconv.FormatUint(uint64(*a.StepNumber), 10),
		max(float64(size)*stepLabelScale, minStepLabelSize), true
}

// stepLabelOrigin returns the left edge and top of a label centred on
// (cx, cy), using the glyph advance sum for width and the ascent for
// height.
func stepLabelOrigin(cx, cy int, width, ascent float64) (int, int) {
	return cx - int(width/2), cy - int(ascent/2)
}

// renderStepMarker draws a filled circle of diameter FontSize centred on
// the annotation origin and the step number centred inside it.
func renderStepMarker(cv *canvas, a *Annotation) {
	stroke, ok := cv.color(a, "strokeColor", a.StrokeColor, cv.stroke)
	if !ok {
		return
	}
	cx, cy := pixel(a.X), pixel(a.Y)
	r := pixel(a.fontSize(DefaultStepSize)) / 2
	opacity := a.opacity()

	if r >= 0 && stroke.A > 0 {
		m := cv.mask(image.Rect(cx-r, cy-r, cx+r+1, cy+r+1))
		m.FillCircle(cx, cy, r)
		cv.paint(m, stroke, opacity)
	}

	label, size, ok := stepLabel(a)
	if !ok {
		return
	}
	face, ok := cv.face(size)
	if !ok {
		return
	}
	f := face.Font()
	width := f.TextAdvance(label, size)
	ascent := f.Ascent(size)
	tx, ty := stepLabelOrigin(cx, cy, width, ascent)

	m := cv.mask(labelBox(tx, ty, width, size))
	if m.Empty() {
		return
	}
	text.Draw(m, face, label, float64(tx), float64(ty)+ascent)
	cv.paint(m, stepLabelColor, opacity)
}

// renderText draws each line left-aligned at X. Line i has its top at
// Y + i*int(FontSize*1.4); empty lines draw nothing but keep their slot.
func renderText(cv *canvas, a *Annotation) {
	s := a.text()
	if s == "" {
		return
	}
	stroke, ok := cv.color(a, "strokeColor", a.StrokeColor, cv.stroke)
	if !ok || stroke.A == 0 {
		return
	}
	size := a.fontSize(DefaultTextSize)
	face, ok := cv.face(size)
	if !ok {
		return
	}

	x, y := pixel(a.X), pixel(a.Y)
	lines := text.Lines(s)
	m := cv.mask(textBox(face.Font(), x, y, lines, size, false))
	if m.Empty() {
		return
	}

	ascent := face.Font().Ascent(size)
	lh := lineHeight(size)
	for i, line := range lines {
		if line == "" {
			continue
		}
		top := y + i*lh
		text.Draw(m, face, line, float64(x), float64(top)+ascent)
	}
	cv.paint(m, stroke, a.opacity())
}

// lineHeight is the distance between the tops of consecutive text lines.
func lineHeight(size float64) int {
	return pixel(size * lineSpacing)
}

// labelBox is a rectangle that contains every glyph pixel of a one-line
// label of the given advance width whose top is at (x, top). The margin
// covers descenders and side bearings.
func labelBox(x, top int, width, size float64) image.Rectangle {
	pad := int(math.Ceil(size/4)) + 1
	return image.Rect(
		x-pad, top-pad,
		x+int(math.Ceil(width))+pad, top+int(math.Ceil(size*1.5))+pad,
	)
}

// textBox is the union of the label boxes of lines. With shaped set the
// widths come from HarfBuzz shaping and the larger of the shaped and raw
// advances is used.
func textBox(f *text.Font, x, y int, lines []string, size float64, shaped bool) image.Rectangle {
	var r image.Rectangle
	lh := lineHeight(size)
	for i, line := range lines {
		if line == "" {
			continue
		}
		width := f.TextAdvance(line, size)
		if shaped {
			width = max(width, f.ShapedAdvance(line, size))
		}
		r = r.Union(labelBox(x, y+i*lh, width, size))
	}
	return r
}
