package annotate

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestDecodeAnnotationsCamelCase(t *testing.T) {
	const doc = `[
	  {"id":"a1","type":"rect","x":10.5,"y":20,"width":30,"height":40,
	   "strokeColor":"#00FF00","fillColor":"transparent","strokeWidth":3,
	   "opacity":0.5,"createdAt":"2024-01-01T00:00:00Z","locked":true},
	  {"id":"a2","type":"arrow","x":0,"y":0,"points":[{"x":1,"y":2},{"x":3,"y":4}]},
	  {"id":"a3","type":"step","x":50,"y":60,"stepNumber":7,"fontSize":30},
	  {"id":"a4","type":"blur","x":0,"y":0,"width":8,"height":8,"blurRadius":4},
	  {"id":"a5","type":"text","x":1,"y":2,"text":"hi","fontFamily":"Inter"},
	  {"id":"a6","type":"highlight","x":1,"y":2,"width":3,"height":4,"highlightColor":"#00FFFF"},
	  {"id":"a7","type":"hexagon","x":1,"y":2}
	]`

	list, err := DecodeAnnotations(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("DecodeAnnotations() error = %v", err)
	}
	if len(list) != 7 {
		t.Fatalf("decoded %d annotations, want 7", len(list))
	}

	r := list[0]
	if r.ID != "a1" || r.Kind != KindRect || r.X != 10.5 || *r.Width != 30 || *r.Height != 40 {
		t.Errorf("rect = %+v", r)
	}
	if *r.StrokeColor != "#00FF00" || *r.FillColor != "transparent" || *r.StrokeWidth != 3 || *r.Opacity != 0.5 {
		t.Errorf("rect paint fields = %+v", r)
	}
	if r.CreatedAt == nil || !*r.Locked {
		t.Errorf("pass-through fields lost: %+v", r)
	}

	if a := list[1]; len(a.Points) != 2 || a.Points[1] != (Point{3, 4}) {
		t.Errorf("arrow points = %v", a.Points)
	}
	if s := list[2]; s.Kind != KindStepMarker || *s.StepNumber != 7 || *s.FontSize != 30 {
		t.Errorf("step = %+v", s)
	}
	if b := list[3]; b.Kind != KindPixelate || *b.BlurRadius != 4 {
		t.Errorf("blur = %+v", b)
	}
	if x := list[4]; x.text() != "hi" || *x.FontFamily != "Inter" {
		t.Errorf("text = %+v", x)
	}
	if h := list[5]; *h.HighlightColor != "#00FFFF" {
		t.Errorf("highlight = %+v", h)
	}
	if u := list[6]; u.Kind.Known() {
		t.Errorf("kind %q reported as known", u.Kind)
	}
}

func TestDecodeAnnotationsError(t *testing.T) {
	_, err := DecodeAnnotations(strings.NewReader(`{"not":"a list"}`))
	if err == nil || !strings.HasPrefix(err.Error(), "annotate: decode annotations") {
		t.Errorf("error = %v", err)
	}
	var syntax interface{ Unwrap() error }
	if !errors.As(err, &syntax) {
		t.Error("decode error does not wrap its cause")
	}
}

func TestKindsAreKnown(t *testing.T) {
	for _, k := range Kinds {
		if !k.Known() {
			t.Errorf("Kind %q has no renderer", k)
		}
	}
	if len(Kinds) != len(renderers) {
		t.Errorf("Kinds lists %d kinds, dispatch table has %d", len(Kinds), len(renderers))
	}
}

func TestAnnotationDefaults(t *testing.T) {
	var a Annotation
	if a.strokeWidth() != DefaultStrokeWidth {
		t.Errorf("strokeWidth() = %v", a.strokeWidth())
	}
	if a.opacity() != 1 {
		t.Errorf("opacity() = %v", a.opacity())
	}
	if a.blockSize() != 10 {
		t.Errorf("blockSize() = %v", a.blockSize())
	}
	if a.fontSize(DefaultTextSize) != 20 {
		t.Errorf("fontSize() = %v", a.fontSize(DefaultTextSize))
	}
}

func TestAnnotationClamping(t *testing.T) {
	tests := []struct {
		name    string
		opacity float64
		want    float64
	}{
		{"above one", 3, 1},
		{"negative", -0.5, 0},
		{"inside", 0.25, 0.25},
		{"nan", math.NaN(), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Annotation{Opacity: Ptr(tt.opacity)}
			if got := a.opacity(); got != tt.want {
				t.Errorf("opacity() = %v, want %v", got, tt.want)
			}
		})
	}

	if got := (&Annotation{BlurRadius: Ptr(0.2)}).blockSize(); got != 1 {
		t.Errorf("blockSize(0.2) = %d, want 1", got)
	}
	if got := (&Annotation{BlurRadius: Ptr(-5.0)}).blockSize(); got != 1 {
		t.Errorf("blockSize(-5) = %d, want 1", got)
	}
	if got := pixel(-3.9); got != -3 {
		t.Errorf("pixel(-3.9) = %d, want -3 (truncation)", got)
	}
	if got := pixel(math.Inf(1)); got != maxCoord {
		t.Errorf("pixel(+Inf) = %d", got)
	}
}
