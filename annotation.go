package annotate

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
)

// Kind names an annotation shape. The values are the wire names used in
// JSON documents.
type Kind string

// Annotation kinds.
const (
	KindRect       Kind = "rect"
	KindArrow      Kind = "arrow"
	KindEllipse    Kind = "ellipse"
	KindFreehand   Kind = "freehand"
	KindHighlight  Kind = "highlight"
	KindPixelate   Kind = "blur"
	KindStepMarker Kind = "step"
	KindText       Kind = "text"
)

// Kinds lists every kind the compositor renders.
var Kinds = []Kind{
	KindRect, KindArrow, KindEllipse, KindFreehand,
	KindHighlight, KindPixelate, KindStepMarker, KindText,
}

// Known reports whether k has a renderer.
func (k Kind) Known() bool {
	_, ok := renderers[k]
	return ok
}

// Defaults applied to absent fields.
const (
	DefaultStrokeColor    = "#FF0000"
	DefaultFillColor      = "transparent"
	DefaultHighlightColor = "#FFFF00"
	DefaultStrokeWidth    = 2.0
	DefaultOpacity        = 1.0
	DefaultBlockSize      = 10.0
	DefaultTextSize       = 20.0
	DefaultStepSize       = 24.0
)

// Point is a position in image pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Annotation is one user-authored markup shape. Optional fields are
// pointers; nil means "use the default". Fields a kind does not use are
// ignored.
type Annotation struct {
	ID   string  `json:"id"`
	Kind Kind    `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`

	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`

	StrokeColor *string  `json:"strokeColor,omitempty"`
	FillColor   *string  `json:"fillColor,omitempty"`
	StrokeWidth *float64 `json:"strokeWidth,omitempty"`
	Opacity     *float64 `json:"opacity,omitempty"`

	Text       *string  `json:"text,omitempty"`
	FontSize   *float64 `json:"fontSize,omitempty"`
	FontFamily *string  `json:"fontFamily,omitempty"`

	Points []Point `json:"points,omitempty"`

	// StepNumber is the label of a step marker.
	StepNumber *uint32 `json:"stepNumber,omitempty"`
	// BlurRadius is the pixelation block size.
	BlurRadius     *float64 `json:"blurRadius,omitempty"`
	HighlightColor *string  `json:"highlightColor,omitempty"`

	CreatedAt *string `json:"createdAt,omitempty"`
	Locked    *bool   `json:"locked,omitempty"`
}

// Ptr returns a pointer to v, for filling optional Annotation fields.
func Ptr[T any](v T) *T {
	return &v
}

// DecodeAnnotations reads a JSON array of annotations.
func DecodeAnnotations(r io.Reader) ([]Annotation, error) {
	var list []Annotation
	if err := json.NewDecoder(r).Decode(&list); err != nil {
		return nil, fmt.Errorf("annotate: decode annotations: %w", err)
	}
	return list, nil
}

// maxCoord bounds integer pixel coordinates so that sums of a few of them
// never overflow.
const maxCoord = 1 << 28

// maxStrokeWidth bounds stroke widths and font sizes. Anything wider covers
// any realistic capture many times over.
const maxStrokeWidth = 1 << 14

// pixel truncates v toward zero and clamps it to ±maxCoord. NaN maps to 0.
func pixel(v float64) int {
	switch {
	case v != v:
		return 0
	case v > maxCoord:
		return maxCoord
	case v < -maxCoord:
		return -maxCoord
	}
	return int(v)
}

// number returns *p, or def when p is nil or not finite.
func number(p *float64, def float64) float64 {
	if p == nil || math.IsNaN(*p) || math.IsInf(*p, 0) {
		return def
	}
	return *p
}

func (a *Annotation) width() int  { return pixel(number(a.Width, 0)) }
func (a *Annotation) height() int { return pixel(number(a.Height, 0)) }

func (a *Annotation) strokeWidth() float64 {
	return min(number(a.StrokeWidth, DefaultStrokeWidth), maxStrokeWidth)
}

// opacity returns the opacity clamped to [0, 1].
func (a *Annotation) opacity() float64 {
	return min(max(number(a.Opacity, DefaultOpacity), 0), 1)
}

func (a *Annotation) fontSize(def float64) float64 {
	return min(number(a.FontSize, def), maxStrokeWidth)
}

func (a *Annotation) blockSize() int {
	return pixel(max(min(number(a.BlurRadius, DefaultBlockSize), maxCoord), 1))
}

func (a *Annotation) text() string {
	if a.Text == nil {
		return ""
	}
	return *a.Text
}
