package annotate

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func TestNewPixmap(t *testing.T) {
	pm := NewPixmap(3, 2)
	if pm.Width() != 3 || pm.Height() != 2 {
		t.Errorf("size = %dx%d, want 3x2", pm.Width(), pm.Height())
	}
	if len(pm.Data()) != 3*2*4 {
		t.Errorf("len(Data()) = %d, want 24", len(pm.Data()))
	}
	if neg := NewPixmap(-4, 5); neg.Width() != 0 || len(neg.Data()) != 0 {
		t.Errorf("NewPixmap(-4, 5) = %dx%d", neg.Width(), neg.Height())
	}
}

func TestPixmapAccessorsAreBoundsChecked(t *testing.T) {
	pm := NewPixmap(4, 4)
	pm.Fill(White)

	for _, p := range []image.Point{{-1, 0}, {0, -1}, {4, 0}, {0, 4}, {1 << 30, 1 << 30}} {
		pm.SetPixel(p.X, p.Y, Red)
		pm.BlendPixel(p.X, p.Y, Red)
		if got := pm.Pixel(p.X, p.Y); got != Transparent {
			t.Errorf("Pixel(%v) = %v, want Transparent", p, got)
		}
	}
	for i, v := range pm.Data() {
		if v != 255 {
			t.Fatalf("out-of-range write changed byte %d", i)
		}
	}
}

func TestPixmapSetAndBlend(t *testing.T) {
	pm := NewPixmap(2, 2)
	pm.Fill(White)

	pm.SetPixel(0, 0, Color{1, 2, 3, 4})
	if got := pm.Pixel(0, 0); got != (Color{1, 2, 3, 4}) {
		t.Errorf("Pixel(0,0) = %v", got)
	}

	pm.BlendPixel(1, 1, Red.WithAlpha(128))
	got := pm.Pixel(1, 1)
	if got.R != 255 || got.G == 0 || got.G == 255 || got.A != 255 {
		t.Errorf("half red over white = %v", got)
	}
}

func TestPixmapClone(t *testing.T) {
	pm := NewPixmap(2, 2)
	pm.Fill(Black)
	c := pm.Clone()
	c.SetPixel(0, 0, Red)
	if pm.Pixel(0, 0) != Black {
		t.Error("Clone shares pixel storage with the original")
	}
}

func TestPixmapCrop(t *testing.T) {
	pm := NewPixmap(10, 10)
	pm.SetPixel(5, 6, Red)

	c := pm.Crop(image.Rect(4, 4, 8, 12))
	if c.Width() != 4 || c.Height() != 6 {
		t.Fatalf("Crop size = %dx%d, want 4x6", c.Width(), c.Height())
	}
	if c.Pixel(1, 2) != Red {
		t.Errorf("cropped pixel = %v, want red", c.Pixel(1, 2))
	}

	if e := pm.Crop(image.Rect(20, 20, 30, 30)); e.Width() != 0 || e.Height() != 0 {
		t.Errorf("disjoint Crop = %dx%d, want empty", e.Width(), e.Height())
	}
}

func TestNewPixmapFromRGBA(t *testing.T) {
	data := []uint8{1, 2, 3, 4, 5, 6, 7, 8}
	pm, err := NewPixmapFromRGBA(2, 1, data)
	if err != nil {
		t.Fatalf("NewPixmapFromRGBA() error = %v", err)
	}
	data[0] = 99
	if pm.Pixel(0, 0) != (Color{1, 2, 3, 4}) || pm.Pixel(1, 0) != (Color{5, 6, 7, 8}) {
		t.Errorf("pixels = %v %v", pm.Pixel(0, 0), pm.Pixel(1, 0))
	}

	if _, err := NewPixmapFromRGBA(2, 2, data); !errors.Is(err, ErrBufferSize) {
		t.Errorf("short buffer error = %v, want ErrBufferSize", err)
	}
}

func TestFromImageAndToImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 20, 13, 22))
	src.SetNRGBA(11, 21, color.NRGBA{R: 9, G: 8, B: 7, A: 6})

	pm := FromImage(src)
	if pm.Width() != 3 || pm.Height() != 2 {
		t.Fatalf("size = %dx%d, want 3x2", pm.Width(), pm.Height())
	}
	if got := pm.Pixel(1, 1); got != (Color{9, 8, 7, 6}) {
		t.Errorf("Pixel(1,1) = %v", got)
	}

	out := pm.ToImage()
	if out.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Errorf("ToImage bounds = %v", out.Bounds())
	}
	if got := out.NRGBAAt(1, 1); got != (color.NRGBA{9, 8, 7, 6}) {
		t.Errorf("ToImage pixel = %v", got)
	}
}

func TestFromImageConvertsPremultiplied(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.SetRGBA(0, 0, color.RGBA{R: 100, G: 0, B: 0, A: 200})

	got := FromImage(src).Pixel(0, 0)
	if got.A != 200 || got.R < 126 || got.R > 128 {
		t.Errorf("FromImage(premultiplied) = %v, want about (127,0,0,200)", got)
	}
}

func TestPixmapIsDrawImage(t *testing.T) {
	pm := NewPixmap(4, 4)
	draw.Draw(pm, image.Rect(1, 1, 3, 3), image.NewUniform(color.NRGBA{0, 0, 255, 255}), image.Point{}, draw.Src)
	if pm.Pixel(2, 2) != (Color{0, 0, 255, 255}) || pm.Pixel(0, 0) != Transparent {
		t.Errorf("draw.Draw result: (2,2)=%v (0,0)=%v", pm.Pixel(2, 2), pm.Pixel(0, 0))
	}
	if pm.ColorModel() != color.NRGBAModel {
		t.Error("ColorModel is not NRGBAModel")
	}
}

func BenchmarkPixmapClone(b *testing.B) {
	pm := NewPixmap(1920, 1080)
	b.ReportAllocs()
	for b.Loop() {
		_ = pm.Clone()
	}
}
