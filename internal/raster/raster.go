// Package raster provides aliased rasterization of annotation primitives
// into 8-bit coverage masks.
//
// Primitives never paint directly. They mark pixels in a Mask; the caller
// then composites the mask once, so overlapping primitives of the same
// shape (the parallel strokes of a thick line, the concentric outlines of a
// wide rectangle border) never blend a pixel twice.
package raster

import (
	"image"
	"math"
)

// Opaque is full coverage.
const Opaque = 0xff

// Mask is an 8-bit coverage buffer over a rectangle of device pixels.
// Writes outside the rectangle are ignored.
type Mask struct {
	rect image.Rectangle
	data []uint8
}

// NewMask creates an empty mask covering r.
func NewMask(r image.Rectangle) *Mask {
	r = r.Canon()
	return &Mask{
		rect: r,
		data: make([]uint8, r.Dx()*r.Dy()),
	}
}

// Bounds returns the rectangle covered by the mask.
func (m *Mask) Bounds() image.Rectangle { return m.rect }

// Empty reports whether the mask covers no pixels at all.
func (m *Mask) Empty() bool { return m.rect.Empty() }

func (m *Mask) offset(x, y int) (int, bool) {
	if x < m.rect.Min.X || x >= m.rect.Max.X || y < m.rect.Min.Y || y >= m.rect.Max.Y {
		return 0, false
	}
	return (y-m.rect.Min.Y)*m.rect.Dx() + (x - m.rect.Min.X), true
}

// At returns the coverage at (x, y), or 0 outside the mask.
func (m *Mask) At(x, y int) uint8 {
	if i, ok := m.offset(x, y); ok {
		return m.data[i]
	}
	return 0
}

// Set sets the coverage at (x, y).
func (m *Mask) Set(x, y int, v uint8) {
	if i, ok := m.offset(x, y); ok {
		m.data[i] = v
	}
}

// Cover raises the coverage at (x, y) to v if it is currently lower.
func (m *Mask) Cover(x, y int, v uint8) {
	if i, ok := m.offset(x, y); ok && m.data[i] < v {
		m.data[i] = v
	}
}

// Span marks the pixels x0..x1 (inclusive) on row y.
func (m *Mask) Span(x0, x1, y int) {
	if y < m.rect.Min.Y || y >= m.rect.Max.Y {
		return
	}
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	x0 = max(x0, m.rect.Min.X)
	x1 = min(x1, m.rect.Max.X-1)
	if x0 > x1 {
		return
	}
	row := (y - m.rect.Min.Y) * m.rect.Dx()
	start := row + x0 - m.rect.Min.X
	end := row + x1 - m.rect.Min.X
	for i := start; i <= end; i++ {
		m.data[i] = Opaque
	}
}

// Each calls fn for every pixel with non-zero coverage, in row-major order.
func (m *Mask) Each(fn func(x, y int, cov uint8)) {
	w := m.rect.Dx()
	if w == 0 {
		return
	}
	for i, v := range m.data {
		if v == 0 {
			continue
		}
		fn(m.rect.Min.X+i%w, m.rect.Min.Y+i/w, v)
	}
}

// Count returns the number of pixels with non-zero coverage.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.data {
		if v != 0 {
			n++
		}
	}
	return n
}

// Clear resets all coverage to zero.
func (m *Mask) Clear() {
	clear(m.data)
}

// finite reports whether all values are neither NaN nor infinite.
func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
