package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Options tunes encoding. A nil *Options uses the defaults.
type Options struct {
	// Quality is the JPEG quality, 1-100. Zero means jpeg.DefaultQuality.
	Quality int
}

func (o *Options) quality() int {
	if o == nil || o.Quality <= 0 {
		return jpeg.DefaultQuality
	}
	return min(o.Quality, 100)
}

// Encode writes img to w in the given format.
//
// JPEG and PDF have no use for transparency here: JPEG drops the alpha
// channel and keeps the straight color values; PDF embeds the image as a
// PNG with its alpha as a soft mask.
func Encode(w io.Writer, img image.Image, f Format, opts *Options) error {
	if img == nil {
		return ErrNilImage
	}
	var err error
	switch f {
	case PNG:
		err = png.Encode(w, img)
	case JPEG:
		err = jpeg.Encode(w, opaque(img), &jpeg.Options{Quality: opts.quality()})
	case BMP:
		err = bmp.Encode(w, img)
	case TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case PDF:
		err = WritePDF(w, img)
	default:
		return fmt.Errorf("%w: %v", ErrUnknownFormat, f)
	}
	if err != nil {
		return fmt.Errorf("export: encode %v: %w", f, err)
	}
	return nil
}

// EncodeBytes is Encode into a new byte slice.
func EncodeBytes(img image.Image, f Format, opts *Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, f, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeBase64PNG encodes img as PNG and returns it in standard base64.
func EncodeBase64PNG(img image.Image) (string, error) {
	data, err := EncodeBytes(img, PNG, nil)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// DataURL returns img as a "data:image/png;base64," URL.
func DataURL(img image.Image) (string, error) {
	b64, err := EncodeBase64PNG(img)
	if err != nil {
		return "", err
	}
	return "data:" + PNG.MIMEType() + ";base64," + b64, nil
}

// opaque copies img into an RGBA image whose pixels keep their straight
// color values with alpha forced to 255.
func opaque(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := nrgbaAt(img, x, y)
			out.Pix[i+0] = c.R
			out.Pix[i+1] = c.G
			out.Pix[i+2] = c.B
			out.Pix[i+3] = 0xff
			i += 4
		}
	}
	return out
}
