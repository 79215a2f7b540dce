package text

import (
	"bytes"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
)

// shaperPool pools HarfbuzzShaper instances. A HarfbuzzShaper keeps
// internal buffers and is not safe for concurrent use.
var shaperPool = sync.Pool{
	New: func() any {
		return &shaping.HarfbuzzShaper{}
	},
}

// parseShapingFont parses data with go-text/typesetting. The returned Font
// is read-only and safe for concurrent use; Faces made from it are not.
func parseShapingFont(data []byte) (*font.Font, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return face.Font, nil
}

// ShapedAdvance returns the advance of s at the given size after HarfBuzz
// shaping, so kerning and ligatures are taken into account.
func (f *Font) ShapedAdvance(s string, size float64) float64 {
	if s == "" || !validSize(size) || f.shaping == nil {
		return 0
	}

	runes := []rune(s)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      font.NewFace(f.shaping),
		Size:      floatToFixed(f.em(size)),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := shaperPool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	shaperPool.Put(hb)

	adv := fixedToFloat64(out.Advance)
	if adv < 0 {
		adv = -adv
	}
	return adv
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
