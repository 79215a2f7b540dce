package annotate

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/fotoshot/annotate/internal/blend"
)

// Color is a straight (non-premultiplied) RGBA color with 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

// Common colors.
var (
	Transparent = Color{}
	Black       = Color{0, 0, 0, 255}
	White       = Color{255, 255, 255, 255}
	Red         = Color{255, 0, 0, 255}
	Yellow      = Color{255, 255, 0, 255}
)

// ParseColor resolves a color string. Accepted forms are "transparent"
// (any case), "#RRGGBB" with alpha 255 and "#RRGGBBAA". Any other input
// returns an *InvalidColorSpecError.
func ParseColor(spec string) (Color, error) {
	if strings.EqualFold(spec, "transparent") {
		return Transparent, nil
	}

	hex, ok := strings.CutPrefix(spec, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return Color{}, &InvalidColorSpecError{Spec: spec}
	}

	var b [4]uint8
	b[3] = 0xff
	for i := 0; i < len(hex); i += 2 {
		hi, ok1 := hexDigit(hex[i])
		lo, ok2 := hexDigit(hex[i+1])
		if !ok1 || !ok2 {
			return Color{}, &InvalidColorSpecError{Spec: spec}
		}
		b[i/2] = hi<<4 | lo
	}
	return Color{R: b[0], G: b[1], B: b[2], A: b[3]}, nil
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// NRGBA converts c to the standard library's non-premultiplied color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

// String formats c as #RRGGBB, or #RRGGBBAA when it is not opaque.
func (c Color) String() string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

func fromNRGBA(c color.NRGBA) Color {
	return Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// FromColor converts any color.Color to Color.
func FromColor(c color.Color) Color {
	return fromNRGBA(color.NRGBAModel.Convert(c).(color.NRGBA))
}

// Blend composites src over *dst in place using straight-alpha
// source-over. An opaque src replaces *dst; a fully transparent src leaves
// it unchanged.
func Blend(dst *Color, src Color) {
	*dst = fromNRGBA(blend.SourceOver(src.NRGBA(), dst.NRGBA()))
}
