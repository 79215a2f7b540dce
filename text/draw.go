package text

import (
	"image"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"
)

// Coverage receives glyph coverage. Implementations keep the larger value
// when a pixel is covered more than once.
type Coverage interface {
	Cover(x, y int, alpha uint8)
}

// Face rasterizes glyphs of a Font at one size.
// A Face is not safe for concurrent use.
type Face struct {
	font *Font
	size float64
	face font.Face
}

// NewFace creates a Face at the given size.
func (f *Font) NewFace(size float64) (*Face, error) {
	if !validSize(size) {
		return nil, ErrInvalidSize
	}
	face, err := opentype.NewFace(f.sfnt, &opentype.FaceOptions{
		Size:    f.em(size),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, &FontError{Backend: "sfnt", Err: err}
	}
	return &Face{font: f, size: size, face: face}, nil
}

// Size returns the face size as a pixel height.
func (fc *Face) Size() float64 { return fc.size }

// Font returns the font the face was created from.
func (fc *Face) Font() *Font { return fc.font }

// Close releases the face.
func (fc *Face) Close() error { return fc.face.Close() }

// Draw writes the coverage of s to dst with the pen starting at x on the
// given baseline, and returns the total advance. Glyphs advance by their
// unkerned widths, so the result equals Font.TextAdvance.
func Draw(dst Coverage, face *Face, s string, x, baseline float64) float64 {
	if s == "" || face == nil || dst == nil {
		return 0
	}

	dot := fixed.Point26_6{X: floatToFixed(x), Y: floatToFixed(baseline)}
	start := dot.X
	for _, r := range s {
		dr, mask, maskp, adv, ok := face.face.Glyph(dot, r)
		if ok {
			blitGlyph(dst, dr, mask, maskp)
		}
		dot.X += adv
	}
	return fixedToFloat64(dot.X - start)
}

// blitGlyph copies the glyph mask into dst.
func blitGlyph(dst Coverage, dr image.Rectangle, mask image.Image, maskp image.Point) {
	w, h := dr.Dx(), dr.Dy()
	if alpha, ok := mask.(*image.Alpha); ok {
		for dy := range h {
			for dx := range w {
				if a := alpha.AlphaAt(maskp.X+dx, maskp.Y+dy).A; a != 0 {
					dst.Cover(dr.Min.X+dx, dr.Min.Y+dy, a)
				}
			}
		}
		return
	}
	for dy := range h {
		for dx := range w {
			_, _, _, a := mask.At(maskp.X+dx, maskp.Y+dy).RGBA()
			if a != 0 {
				// #nosec G115 -- a>>8 is always in range [0, 255]
				dst.Cover(dr.Min.X+dx, dr.Min.Y+dy, uint8(a>>8))
			}
		}
	}
}

// Lines splits s into lines on '\n', drops a trailing '\r' from each line
// and normalizes every line to NFC so that combining sequences map onto
// precomposed glyphs where the font has them.
func Lines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = norm.NFC.String(strings.TrimSuffix(line, "\r"))
	}
	return lines
}
