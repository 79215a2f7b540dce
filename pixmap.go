package annotate

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/fotoshot/annotate/internal/blend"
	"github.com/fotoshot/annotate/internal/raster"
)

// Pixmap is a rectangular buffer of straight-alpha RGBA8 pixels, row-major,
// 4 bytes per pixel. All accessors are bounds-checked: reads outside the
// buffer return Transparent and writes outside it are dropped.
type Pixmap struct {
	width  int
	height int
	data   []uint8
}

// Verify at compile time that Pixmap is a draw.Image.
var _ draw.Image = (*Pixmap)(nil)

// NewPixmap creates a transparent pixmap. Negative dimensions are treated
// as zero.
func NewPixmap(width, height int) *Pixmap {
	width, height = max(width, 0), max(height, 0)
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// NewPixmapFromRGBA copies raw straight-alpha RGBA samples into a new
// pixmap. len(data) must equal width*height*4.
func NewPixmapFromRGBA(width, height int, data []uint8) (*Pixmap, error) {
	if width < 0 || height < 0 || len(data) != width*height*4 {
		return nil, ErrBufferSize
	}
	pm := NewPixmap(width, height)
	copy(pm.data, data)
	return pm, nil
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data. The slice aliases the pixmap.
func (p *Pixmap) Data() []uint8 {
	return p.data
}

func (p *Pixmap) offset(x, y int) (int, bool) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return 0, false
	}
	return (y*p.width + x) * 4, true
}

// Pixel returns the color at (x, y).
func (p *Pixmap) Pixel(x, y int) Color {
	i, ok := p.offset(x, y)
	if !ok {
		return Transparent
	}
	return Color{R: p.data[i], G: p.data[i+1], B: p.data[i+2], A: p.data[i+3]}
}

// SetPixel overwrites the color at (x, y).
func (p *Pixmap) SetPixel(x, y int, c Color) {
	i, ok := p.offset(x, y)
	if !ok {
		return
	}
	p.data[i+0] = c.R
	p.data[i+1] = c.G
	p.data[i+2] = c.B
	p.data[i+3] = c.A
}

// BlendPixel composites c over the pixel at (x, y).
func (p *Pixmap) BlendPixel(x, y int, c Color) {
	i, ok := p.offset(x, y)
	if !ok {
		return
	}
	p.blendAt(i, c.NRGBA())
}

func (p *Pixmap) blendAt(i int, src color.NRGBA) {
	px := p.data[i : i+4 : i+4]
	out := blend.SourceOver(src, color.NRGBA{R: px[0], G: px[1], B: px[2], A: px[3]})
	px[0], px[1], px[2], px[3] = out.R, out.G, out.B, out.A
}

// blendMask composites c over every pixel covered by m, scaling c's alpha
// by the coverage. Each pixel is blended at most once.
func (p *Pixmap) blendMask(m *raster.Mask, c Color) {
	if c.A == 0 {
		return
	}
	src := c.NRGBA()
	m.Each(func(x, y int, cov uint8) {
		if i, ok := p.offset(x, y); ok {
			p.blendAt(i, blend.Coverage(src, cov))
		}
	})
}

// Fill overwrites every pixel with c.
func (p *Pixmap) Fill(c Color) {
	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = c.R
		p.data[i+1] = c.G
		p.data[i+2] = c.B
		p.data[i+3] = c.A
	}
}

// Clone returns a deep copy of p.
func (p *Pixmap) Clone() *Pixmap {
	c := &Pixmap{width: p.width, height: p.height, data: make([]uint8, len(p.data))}
	copy(c.data, p.data)
	return c
}

// Crop returns a copy of the part of p inside r. The result is empty when
// r does not overlap p.
func (p *Pixmap) Crop(r image.Rectangle) *Pixmap {
	r = r.Intersect(p.Bounds())
	out := NewPixmap(r.Dx(), r.Dy())
	rowBytes := r.Dx() * 4
	for y := 0; y < r.Dy(); y++ {
		src := ((r.Min.Y+y)*p.width + r.Min.X) * 4
		copy(out.data[y*rowBytes:(y+1)*rowBytes], p.data[src:src+rowBytes])
	}
	return out
}

// ToImage returns an *image.NRGBA holding a copy of the pixels.
func (p *Pixmap) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// FromImage creates a pixmap from any image. The result's origin is the
// image's Bounds().Min.
func FromImage(img image.Image) *Pixmap {
	b := img.Bounds()
	pm := NewPixmap(b.Dx(), b.Dy())

	if src, ok := img.(*image.NRGBA); ok {
		rowBytes := b.Dx() * 4
		for y := 0; y < b.Dy(); y++ {
			start := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(pm.data[y*rowBytes:(y+1)*rowBytes], src.Pix[start:start+rowBytes])
		}
		return pm
	}

	dst := &image.NRGBA{Pix: pm.data, Stride: pm.width * 4, Rect: image.Rect(0, 0, pm.width, pm.height)}
	draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	return pm
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	return p.Pixel(x, y).NRGBA()
}

// Set implements the draw.Image interface.
func (p *Pixmap) Set(x, y int, c color.Color) {
	p.SetPixel(x, y, FromColor(c))
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.NRGBAModel
}
