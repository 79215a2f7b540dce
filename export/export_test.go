package export

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 7), G: uint8(y * 5), B: 200, A: 255})
		}
	}
	return img
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"png", PNG}, {".PNG", PNG}, {"jpg", JPEG}, {"JPEG", JPEG},
		{"bmp", BMP}, {"tif", TIFF}, {".tiff", TIFF}, {"pdf", PDF},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseFormat("webp"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ParseFormat(webp) error = %v", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	if f, err := FormatFromPath("/tmp/shot.JPG"); err != nil || f != JPEG {
		t.Errorf("FormatFromPath(.JPG) = %v, %v", f, err)
	}
	if _, err := FormatFromPath("/tmp/shot"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("FormatFromPath(no ext) error = %v", err)
	}
	if PDF.MIMEType() != "application/pdf" || JPEG.Extension() != ".jpg" || Format(42).String() != "Format(42)" {
		t.Error("format metadata mismatch")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	src := testImage(16, 9)
	for _, f := range []Format{PNG, BMP, TIFF} {
		t.Run(f.String(), func(t *testing.T) {
			data, err := EncodeBytes(src, f, nil)
			if err != nil {
				t.Fatalf("EncodeBytes() error = %v", err)
			}
			img, got, err := Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if got != f {
				t.Errorf("decoded format = %v, want %v", got, f)
			}
			if img.Bounds() != src.Bounds() {
				t.Fatalf("bounds = %v, want %v", img.Bounds(), src.Bounds())
			}
			for _, p := range []image.Point{{0, 0}, {15, 8}, {7, 3}} {
				want := src.NRGBAAt(p.X, p.Y)
				if c := color.NRGBAModel.Convert(img.At(p.X, p.Y)).(color.NRGBA); c != want {
					t.Errorf("pixel %v = %v, want %v", p, c, want)
				}
			}
		})
	}
}

func TestEncodeJPEGDropsAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < len(src.Pix); i += 4 {
		copy(src.Pix[i:i+4], []uint8{250, 250, 250, 0})
	}
	data, err := EncodeBytes(src, JPEG, &Options{Quality: 95})
	if err != nil {
		t.Fatal(err)
	}
	img, f, err := Decode(bytes.NewReader(data))
	if err != nil || f != JPEG {
		t.Fatalf("Decode() = %v, %v", f, err)
	}
	r, _, _, _ := img.At(4, 4).RGBA()
	if r>>8 < 240 {
		t.Errorf("transparent white became %d, want the straight color kept", r>>8)
	}
}

func TestEncodeErrors(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, nil, PNG, nil); !errors.Is(err, ErrNilImage) {
		t.Errorf("nil image error = %v", err)
	}
	if err := Encode(&buf, testImage(1, 1), Format(9), nil); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("bad format error = %v", err)
	}
}

func TestDataURL(t *testing.T) {
	u, err := DataURL(testImage(3, 3))
	if err != nil {
		t.Fatal(err)
	}
	b64, ok := strings.CutPrefix(u, "data:image/png;base64,")
	if !ok {
		t.Fatalf("DataURL prefix = %.30q", u)
	}
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		t.Fatal(err)
	}
	if _, f, err := Decode(bytes.NewReader(raw)); err != nil || f != PNG {
		t.Errorf("payload decode = %v, %v", f, err)
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, testImage(40, 30), testImage(10, 50)); err != nil {
		t.Fatalf("WritePDF() error = %v", err)
	}
	out := buf.Bytes()
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("output does not start with a PDF header: %.8q", out)
	}
	if n := bytes.Count(out, []byte("/Type /Page")) - bytes.Count(out, []byte("/Type /Pages")); n != 2 {
		t.Errorf("found %d pages, want 2", n)
	}
	if err := WritePDF(&buf); !errors.Is(err, ErrNilImage) {
		t.Errorf("WritePDF() with no images error = %v", err)
	}
}

func TestDownscale(t *testing.T) {
	src := testImage(400, 100)

	if got := Downscale(src, 0); got != image.Image(src) {
		t.Error("maxDim 0 should return the input")
	}
	if got := Downscale(src, 400); got != image.Image(src) {
		t.Error("fitting image should be returned unchanged")
	}

	got := Downscale(src, 100)
	if b := got.Bounds(); b.Dx() != 100 || b.Dy() != 25 {
		t.Errorf("Downscale(400x100, 100) = %v, want 100x25", b)
	}

	thin := Downscale(testImage(1000, 1), 10)
	if b := thin.Bounds(); b.Dx() != 10 || b.Dy() != 1 {
		t.Errorf("thin image = %v, want 10x1", b)
	}
}

func TestEncodeForUpload(t *testing.T) {
	s, err := EncodeForUpload(testImage(300, 200), 150, 80)
	if err != nil {
		t.Fatal(err)
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		t.Fatal(err)
	}
	img, f, err := Decode(bytes.NewReader(raw))
	if err != nil || f != JPEG {
		t.Fatalf("Decode() = %v, %v", f, err)
	}
	if b := img.Bounds(); b.Dx() != 150 || b.Dy() != 100 {
		t.Errorf("uploaded size = %v, want 150x100", b)
	}
}

func TestDefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	now := time.Date(2024, 3, 9, 7, 5, 1, 0, time.UTC)
	got, err := DefaultPath(now)
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(home, "Pictures", "Fotos", "fotos-20240309-070501.png")
	if got != want {
		t.Errorf("DefaultPath = %q, want %q", got, want)
	}
}

func TestExpandTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got, _ := ExpandTilde("~/a/b.png"); got != filepath.Join(home, "a", "b.png") {
		t.Errorf("ExpandTilde(~/a/b.png) = %q", got)
	}
	for _, p := range []string{"/abs/x.png", "rel/x.png", "~user/x.png", "~"} {
		if got, _ := ExpandTilde(p); got != p {
			t.Errorf("ExpandTilde(%q) = %q, want unchanged", p, got)
		}
	}
}

func TestSave(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	img := testImage(5, 5)

	path, err := DefaultPath(time.Now())
	if err != nil {
		t.Fatal(err)
	}
	written, err := Save(path, img, false)
	if err != nil {
		t.Fatalf("Save(default path) error = %v", err)
	}
	if _, err := os.Stat(written); err != nil {
		t.Errorf("saved file missing: %v", err)
	}

	if _, err := Save("~/shots/x.tif", img, false); err != nil {
		t.Errorf("Save(~/...) error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, "shots", "x.tif")); err != nil {
		t.Errorf("tilde path not written: %v", err)
	}
}

func TestSaveHomeGuard(t *testing.T) {
	home := t.TempDir()
	outside := t.TempDir()
	t.Setenv("HOME", home)
	img := testImage(2, 2)

	target := filepath.Join(outside, "out.png")
	if _, err := Save(target, img, false); !errors.Is(err, ErrOutsideHome) {
		t.Fatalf("generated path outside home error = %v, want ErrOutsideHome", err)
	}
	if _, err := Save(filepath.Join(home, "..", filepath.Base(outside), "x.png"), img, false); !errors.Is(err, ErrOutsideHome) {
		t.Errorf("dot-dot escape error = %v, want ErrOutsideHome", err)
	}

	// A symlink inside home that points outside does not escape the guard.
	link := filepath.Join(home, "link")
	if err := os.Symlink(outside, link); err == nil {
		if _, err := Save(filepath.Join(link, "x.png"), img, false); !errors.Is(err, ErrOutsideHome) {
			t.Errorf("symlink escape error = %v, want ErrOutsideHome", err)
		}
	}

	// User-chosen paths skip the guard.
	if _, err := Save(target, img, true); err != nil {
		t.Errorf("user-chosen path error = %v", err)
	}
}

func TestSaveUnknownExtension(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	if _, err := Save("~/x.webp", testImage(1, 1), false); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("error = %v, want ErrUnknownFormat", err)
	}
}
