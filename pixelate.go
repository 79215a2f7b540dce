package annotate

import "image"

// renderPixelate replaces every block of the region with the mean of its
// pixels. The block grid starts at the region's top-left corner; blocks are
// clipped to the region and to the image, so edge blocks may be smaller.
// Pixelation is destructive and ignores colors and opacity.
func renderPixelate(cv *canvas, a *Annotation) {
	x, y := pixel(a.X), pixel(a.Y)
	w, h := a.width(), a.height()
	if w <= 0 || h <= 0 {
		return
	}
	cv.pm.pixelate(image.Rect(x, y, x+w, y+h), a.blockSize())
}

// pixelate averages r in block×block cells anchored at r.Min.
func (p *Pixmap) pixelate(r image.Rectangle, block int) {
	clip := r.Intersect(p.Bounds())
	if clip.Empty() || block < 1 {
		return
	}

	// First cell that reaches into the clipped area.
	startX := r.Min.X + (clip.Min.X-r.Min.X)/block*block
	startY := r.Min.Y + (clip.Min.Y-r.Min.Y)/block*block

	for by := startY; by < clip.Max.Y; by += block {
		for bx := startX; bx < clip.Max.X; bx += block {
			cell := image.Rect(bx, by, bx+block, by+block).Intersect(clip)
			p.averageCell(cell)
		}
	}
}

// averageCell overwrites every pixel of cell with the integer mean of each
// channel over the cell.
func (p *Pixmap) averageCell(cell image.Rectangle) {
	if cell.Empty() {
		return
	}
	var sum [4]uint64
	for y := cell.Min.Y; y < cell.Max.Y; y++ {
		row := p.data[(y*p.width+cell.Min.X)*4 : (y*p.width+cell.Max.X)*4]
		for i := 0; i < len(row); i += 4 {
			sum[0] += uint64(row[i])
			sum[1] += uint64(row[i+1])
			sum[2] += uint64(row[i+2])
			sum[3] += uint64(row[i+3])
		}
	}

	n := uint64(cell.Dx() * cell.Dy())
	avg := [4]uint8{
		uint8(sum[0] / n),
		uint8(sum[1] / n),
		uint8(sum[2] / n),
		uint8(sum[3] / n),
	}
	for y := cell.Min.Y; y < cell.Max.Y; y++ {
		row := p.data[(y*p.width+cell.Min.X)*4 : (y*p.width+cell.Max.X)*4]
		for i := 0; i < len(row); i += 4 {
			copy(row[i:i+4], avg[:])
		}
	}
}
