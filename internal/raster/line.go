package raster

import "math"

// MinSegmentLength is the length below which a segment has no usable
// direction.
const MinSegmentLength = 0.001

// clipMargin keeps clipped endpoints a little outside the mask so that
// clipping never moves a pixel that would have been visible.
const clipMargin = 2

// Line marks a 1px Bresenham segment from (x0, y0) to (x1, y1).
// Endpoints are truncated toward zero, matching integer pixel addressing.
func (m *Mask) Line(x0, y0, x1, y1 float64) {
	if m.Empty() || !finite(x0, y0, x1, y1) {
		return
	}

	var ok bool
	x0, y0, x1, y1, ok = m.clip(x0, y0, x1, y1)
	if !ok {
		return
	}

	steep := math.Abs(y1-y0) > math.Abs(x1-x0)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	dx := x1 - x0
	dy := math.Abs(y1 - y0)
	yStep := -1
	if y0 < y1 {
		yStep = 1
	}

	y := int(y0)
	endX := int(x1)
	e := dx / 2
	for x := int(x0); x <= endX; x++ {
		if steep {
			m.Set(y, x, Opaque)
		} else {
			m.Set(x, y, Opaque)
		}
		e -= dy
		if e < 0 {
			y += yStep
			e += dx
		}
	}
}

// ThickLine approximates a stroked segment of the given width. Widths up to
// 1 draw a single segment; wider strokes draw ceil(width)+1 parallel
// segments evenly spread from -width/2 to +width/2 along the perpendicular.
func (m *Mask) ThickLine(x0, y0, x1, y1, width float64) {
	if width <= 1 {
		m.Line(x0, y0, x1, y1)
		return
	}

	dx := x1 - x0
	dy := y1 - y0
	length := math.Hypot(dx, dy)
	if length < MinSegmentLength || !finite(length, width) {
		return
	}

	// unit perpendicular
	px := -dy / length
	py := dx / length

	half := width / 2
	steps := int(math.Ceil(width))
	for i := 0; i <= steps; i++ {
		t := (float64(i)/float64(steps) - 0.5) * width
		t = min(max(t, -half), half)
		m.Line(x0+px*t, y0+py*t, x1+px*t, y1+py*t)
	}
}

// clip restricts the segment to the mask rectangle grown by clipMargin
// (Liang-Barsky). Segments entirely outside report false.
func (m *Mask) clip(x0, y0, x1, y1 float64) (float64, float64, float64, float64, bool) {
	minX := float64(m.rect.Min.X - clipMargin)
	minY := float64(m.rect.Min.Y - clipMargin)
	maxX := float64(m.rect.Max.X + clipMargin)
	maxY := float64(m.rect.Max.Y + clipMargin)

	if x0 >= minX && x0 <= maxX && y0 >= minY && y0 <= maxY &&
		x1 >= minX && x1 <= maxX && y1 >= minY && y1 <= maxY {
		return x0, y0, x1, y1, true
	}

	dx := x1 - x0
	dy := y1 - y0
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{x0 - minX, maxX - x0, y0 - minY, maxY - y0}

	t0, t1 := 0.0, 1.0
	for i := range p {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, t)
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, t)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}
