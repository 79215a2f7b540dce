package text

import (
	"math"
	"testing"
)

func TestShapedAdvanceCloseToRawAdvance(t *testing.T) {
	f := loadDefault(t)

	tests := []string{"12", "Hello, world", "Step 7", "AVAVAV"}
	for _, s := range tests {
		raw := f.TextAdvance(s, 20)
		shaped := f.ShapedAdvance(s, 20)
		if shaped <= 0 {
			t.Errorf("ShapedAdvance(%q) = %f, want > 0", s, shaped)
			continue
		}
		// Kerning moves glyphs by a fraction of an em at most.
		if math.Abs(shaped-raw) > 0.25*20*float64(len(s)) {
			t.Errorf("ShapedAdvance(%q) = %f, raw advance %f", s, shaped, raw)
		}
	}
}

func TestShapedAdvanceDegenerate(t *testing.T) {
	f := loadDefault(t)
	if got := f.ShapedAdvance("", 20); got != 0 {
		t.Errorf("ShapedAdvance(\"\") = %f, want 0", got)
	}
	if got := f.ShapedAdvance("abc", 0); got != 0 {
		t.Errorf("ShapedAdvance(size 0) = %f, want 0", got)
	}
}

func BenchmarkShapedAdvance(b *testing.B) {
	f, err := Default()
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for b.Loop() {
		_ = f.ShapedAdvance("Annotated screenshot", 18)
	}
}
