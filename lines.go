package annotate

import (
	"image"
	"math"

	"github.com/fotoshot/annotate/internal/raster"
)

// Arrow head geometry.
const (
	headLengthFactor = 5
	minHeadLength    = 12
	wingAngle        = math.Pi / 6
)

// lineWidth is the stroke width of line-based kinds, at least 1.
func (a *Annotation) lineWidth() float64 {
	return max(a.strokeWidth(), 1)
}

// headLength is the length of an arrow's wings.
func headLength(sw float64) float64 {
	return max(sw*headLengthFactor, minHeadLength)
}

// renderArrow draws the shaft from Points[0] to Points[1] and two wings
// back from the tip at ±30° off the shaft.
func renderArrow(cv *canvas, a *Annotation) {
	if len(a.Points) < 2 {
		return
	}
	stroke, ok := cv.color(a, "strokeColor", a.StrokeColor, cv.stroke)
	if !ok || stroke.A == 0 {
		return
	}

	sw := a.lineWidth()
	p1, p2 := a.Points[0], a.Points[1]
	w1, w2, ok := arrowWings(p1, p2, sw)
	if !ok {
		return
	}

	m := cv.mask(strokeBounds(sw, p1, p2, w1, w2))
	if m.Empty() {
		return
	}
	m.ThickLine(p1.X, p1.Y, p2.X, p2.Y, sw)
	m.ThickLine(p2.X, p2.Y, w1.X, w1.Y, sw)
	m.ThickLine(p2.X, p2.Y, w2.X, w2.Y, sw)
	cv.paint(m, stroke, a.opacity())
}

// arrowWings returns the outer ends of the two head segments of an arrow
// from p1 to p2. It reports false for shafts too short to have a
// direction.
func arrowWings(p1, p2 Point, sw float64) (Point, Point, bool) {
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	if math.Hypot(dx, dy) < raster.MinSegmentLength {
		return Point{}, Point{}, false
	}
	head := headLength(sw)
	angle := math.Atan2(dy, dx)
	w1 := Point{X: p2.X - head*math.Cos(angle-wingAngle), Y: p2.Y - head*math.Sin(angle-wingAngle)}
	w2 := Point{X: p2.X - head*math.Cos(angle+wingAngle), Y: p2.Y - head*math.Sin(angle+wingAngle)}
	return w1, w2, true
}

// renderFreehand draws thick segments through consecutive points.
func renderFreehand(cv *canvas, a *Annotation) {
	if len(a.Points) < 2 {
		return
	}
	stroke, ok := cv.color(a, "strokeColor", a.StrokeColor, cv.stroke)
	if !ok || stroke.A == 0 {
		return
	}

	sw := a.lineWidth()
	m := cv.mask(strokeBounds(sw, a.Points...))
	if m.Empty() {
		return
	}
	for i := 1; i < len(a.Points); i++ {
		p, q := a.Points[i-1], a.Points[i]
		m.ThickLine(p.X, p.Y, q.X, q.Y, sw)
	}
	cv.paint(m, stroke, a.opacity())
}

// strokeBounds returns the pixel rectangle that a stroke of width sw
// through pts can touch. Non-finite points are skipped; the segments
// touching them are never drawn.
func strokeBounds(sw float64, pts ...Point) image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	finite := false
	for _, p := range pts {
		if !p.finite() {
			continue
		}
		finite = true
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	if !finite {
		return image.Rectangle{}
	}
	pad := int(math.Ceil(sw/2)) + 2
	return image.Rect(
		pixel(minX)-pad, pixel(minY)-pad,
		pixel(maxX)+pad+1, pixel(maxY)+pad+1,
	)
}
