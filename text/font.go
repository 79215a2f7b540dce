package text

import (
	"math"
	"sync"

	gtfont "github.com/go-text/typesetting/font"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Font is a parsed font. It is immutable after Parse and safe for
// concurrent use.
type Font struct {
	name    string
	sfnt    *opentype.Font
	shaping *gtfont.Font

	// emScale converts a pixel height (ascent plus descent) to the em size
	// the rasterizers take.
	emScale float64
}

// defaultFont parses the embedded font once per process.
var defaultFont = sync.OnceValues(func() (*Font, error) {
	return Parse(goregular.TTF)
})

// Default returns the embedded font. The first call parses it; later calls
// return the same value.
func Default() (*Font, error) {
	return defaultFont()
}

// Parse parses TTF or OTF data. The data must not be modified afterwards.
func Parse(data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, &FontError{Backend: "sfnt", Err: err}
	}

	shaping, err := parseShapingFont(data)
	if err != nil {
		return nil, &FontError{Backend: "typesetting", Err: err}
	}

	return &Font{
		name:    familyName(f),
		sfnt:    f,
		shaping: shaping,
		emScale: emScale(f),
	}, nil
}

// emScale returns unitsPerEm / (ascent + descent), or 1 when the font
// reports no usable vertical metrics.
func emScale(f *opentype.Font) float64 {
	upem := float64(f.UnitsPerEm())
	if upem <= 0 {
		return 1
	}
	var buf sfnt.Buffer
	m, err := f.Metrics(&buf, floatToFixed(upem), font.HintingNone)
	if err != nil {
		return 1
	}
	h := fixedToFloat64(m.Ascent + m.Descent)
	if h <= 0 {
		return 1
	}
	return upem / h
}

// em converts a pixel height to the em size.
func (f *Font) em(size float64) float64 { return size * f.emScale }

// Name returns the font family name.
func (f *Font) Name() string { return f.name }

// Advance returns the horizontal advance of r at the given size, or 0 if
// the font cannot measure it.
func (f *Font) Advance(r rune, size float64) float64 {
	if !validSize(size) {
		return 0
	}
	var buf sfnt.Buffer
	return f.advance(&buf, r, floatToFixed(f.em(size)))
}

// TextAdvance returns the sum of the glyph advances of s at the given size.
// Kerning is not applied.
func (f *Font) TextAdvance(s string, size float64) float64 {
	if s == "" || !validSize(size) {
		return 0
	}
	var buf sfnt.Buffer
	ppem := floatToFixed(f.em(size))
	total := 0.0
	for _, r := range s {
		total += f.advance(&buf, r, ppem)
	}
	return total
}

func (f *Font) advance(buf *sfnt.Buffer, r rune, ppem fixed.Int26_6) float64 {
	gi, err := f.sfnt.GlyphIndex(buf, r)
	if err != nil {
		return 0
	}
	adv, err := f.sfnt.GlyphAdvance(buf, gi, ppem, font.HintingNone)
	if err != nil {
		return 0
	}
	return fixedToFloat64(adv)
}

// Ascent returns the distance from the baseline to the top of the font at
// the given size.
func (f *Font) Ascent(size float64) float64 {
	return f.Metrics(size).Ascent
}

// Metrics are vertical font metrics in pixels at one size. Descent is
// positive below the baseline.
type Metrics struct {
	Ascent, Descent, LineGap float64
}

// LineHeight is the baseline-to-baseline distance the font recommends.
func (m Metrics) LineHeight() float64 { return m.Ascent + m.Descent + m.LineGap }

// Metrics returns the font metrics at the given size.
func (f *Font) Metrics(size float64) Metrics {
	if !validSize(size) {
		return Metrics{}
	}
	var buf sfnt.Buffer
	m, err := f.sfnt.Metrics(&buf, floatToFixed(f.em(size)), font.HintingNone)
	if err != nil {
		return Metrics{}
	}
	ascent := fixedToFloat64(m.Ascent)
	descent := fixedToFloat64(m.Descent)
	return Metrics{
		Ascent:  ascent,
		Descent: descent,
		LineGap: max(fixedToFloat64(m.Height)-ascent-descent, 0),
	}
}

// familyName extracts the family name, falling back to the full name.
func familyName(f *opentype.Font) string {
	if name, err := f.Name(nil, sfnt.NameIDFamily); err == nil && name != "" {
		return name
	}
	if name, err := f.Name(nil, sfnt.NameIDFull); err == nil && name != "" {
		return name
	}
	return "Unknown Font"
}

func validSize(size float64) bool {
	return size > 0 && !math.IsInf(size, 1)
}

// floatToFixed converts a float64 font size to fixed.Int26_6.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

// fixedToFloat64 converts fixed.Int26_6 to float64.
func fixedToFloat64(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}
