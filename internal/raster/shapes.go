package raster

// FillRect marks every pixel in [x, x+w) × [y, y+h).
func (m *Mask) FillRect(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	for py := y; py < y+h; py++ {
		m.Span(x, x+w-1, py)
	}
}

// HollowRect marks the 1px outline of the w×h rectangle at (x, y). The
// outline lies on the rectangle's outermost pixels.
func (m *Mask) HollowRect(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	right := x + w - 1
	bottom := y + h - 1

	m.Span(x, right, y)
	m.Span(x, right, bottom)
	for py := y; py <= bottom; py++ {
		m.Set(x, py, Opaque)
		m.Set(right, py, Opaque)
	}
}

// FillEllipse marks the axis-aligned ellipse centred on (cx, cy) with radii
// rx and ry, filled.
func (m *Mask) FillEllipse(cx, cy, rx, ry int) {
	if rx < 0 || ry < 0 {
		return
	}
	walkEllipse(rx, ry, func(x, y int) {
		m.Span(cx-x, cx+x, cy+y)
		m.Span(cx-x, cx+x, cy-y)
	})
}

// HollowEllipse marks the 1px outline of the ellipse centred on (cx, cy).
func (m *Mask) HollowEllipse(cx, cy, rx, ry int) {
	if rx < 0 || ry < 0 {
		return
	}
	walkEllipse(rx, ry, func(x, y int) {
		m.Set(cx+x, cy+y, Opaque)
		m.Set(cx-x, cy+y, Opaque)
		m.Set(cx+x, cy-y, Opaque)
		m.Set(cx-x, cy-y, Opaque)
	})
}

// FillCircle marks a filled circle of radius r centred on (cx, cy).
func (m *Mask) FillCircle(cx, cy, r int) {
	m.FillEllipse(cx, cy, r, r)
}

// walkEllipse visits the first-quadrant points of a midpoint ellipse with
// radii rx, ry, from (0, ry) to (rx, 0). Degenerate radii produce a line.
func walkEllipse(rx, ry int, plot func(x, y int)) {
	switch {
	case rx == 0:
		for y := 0; y <= ry; y++ {
			plot(0, y)
		}
		return
	case ry == 0:
		for x := 0; x <= rx; x++ {
			plot(x, 0)
		}
		return
	}

	rx2 := float64(rx) * float64(rx)
	ry2 := float64(ry) * float64(ry)

	x, y := 0, ry
	px := 0.0
	py := 2 * rx2 * float64(y)

	// region 1: slope > -1
	p := ry2 - rx2*float64(ry) + rx2/4
	for px < py {
		plot(x, y)
		x++
		px += 2 * ry2
		if p < 0 {
			p += ry2 + px
		} else {
			y--
			py -= 2 * rx2
			p += ry2 + px - py
		}
	}

	// region 2: slope <= -1
	fx := float64(x) + 0.5
	fy := float64(y - 1)
	p = ry2*fx*fx + rx2*fy*fy - rx2*ry2
	for y >= 0 {
		plot(x, y)
		y--
		py -= 2 * rx2
		if p > 0 {
			p += rx2 - py
		} else {
			x++
			px += 2 * ry2
			p += rx2 - py + px
		}
	}
}
