package annotate

import "image"

// highlightAlpha is the fixed alpha of highlight fills (0.4 * 255). The
// annotation's own opacity never applies to highlights.
const highlightAlpha = 102

// renderRect fills the rectangle, then strokes it. The stroke is sw
// concentric 1px outlines at offsets -sw/2 .. sw-1-sw/2 around the nominal
// edge, so wide borders straddle it.
func renderRect(cv *canvas, a *Annotation) {
	x, y := pixel(a.X), pixel(a.Y)
	w, h := a.width(), a.height()
	if w <= 0 || h <= 0 {
		return
	}
	opacity := a.opacity()

	if fill, ok := cv.color(a, "fillColor", a.FillColor, Transparent); ok && fill.A > 0 {
		m := cv.mask(image.Rect(x, y, x+w, y+h))
		m.FillRect(x, y, w, h)
		cv.paint(m, fill, opacity)
	}

	stroke, ok := cv.color(a, "strokeColor", a.StrokeColor, cv.stroke)
	if !ok || stroke.A == 0 {
		return
	}

	sw := int(max(a.strokeWidth(), 0))
	if sw == 0 {
		return
	}
	half := sw / 2

	// Outlines with a non-positive size are skipped, and outlines grown
	// past every image edge touch nothing.
	lo := max(-half, -(min(w, h)-1)/2)
	hi := min(sw-1-half, max(x, y, cv.pm.width-x-w, cv.pm.height-y-h)+1)

	m := cv.mask(image.Rect(x-hi, y-hi, x+w+hi, y+h+hi))
	if m.Empty() {
		return
	}
	for off := lo; off <= hi; off++ {
		m.HollowRect(x-off, y-off, w+2*off, h+2*off)
	}
	cv.paint(m, stroke, opacity)
}

// renderEllipse fills and strokes the ellipse inscribed in the annotation
// box. Radii are half the integer box size.
func renderEllipse(cv *canvas, a *Annotation) {
	x, y := pixel(a.X), pixel(a.Y)
	w, h := a.width(), a.height()
	if w <= 0 || h <= 0 {
		return
	}
	rx, ry := w/2, h/2
	cx, cy := x+rx, y+ry
	box := image.Rect(cx-rx, cy-ry, cx+rx+1, cy+ry+1)
	opacity := a.opacity()

	if fill, ok := cv.color(a, "fillColor", a.FillColor, Transparent); ok && fill.A > 0 {
		m := cv.mask(box)
		m.FillEllipse(cx, cy, rx, ry)
		cv.paint(m, fill, opacity)
	}

	if stroke, ok := cv.color(a, "strokeColor", a.StrokeColor, cv.stroke); ok && stroke.A > 0 {
		m := cv.mask(box)
		m.HollowEllipse(cx, cy, rx, ry)
		cv.paint(m, stroke, opacity)
	}
}

// renderHighlight tints the region with the highlight color at a fixed
// 40% alpha.
func renderHighlight(cv *canvas, a *Annotation) {
	x, y := pixel(a.X), pixel(a.Y)
	w, h := a.width(), a.height()
	if w <= 0 || h <= 0 {
		return
	}

	c, ok := cv.color(a, "highlightColor", a.HighlightColor, Yellow)
	if !ok {
		return
	}

	m := cv.mask(image.Rect(x, y, x+w, y+h))
	m.FillRect(x, y, w, h)
	cv.paint(m, c.WithAlpha(highlightAlpha), 1)
}
