package export

import (
	"encoding/base64"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// Downscale shrinks img proportionally so that its longer side is at most
// maxDim pixels, using Catmull-Rom resampling. Images that already fit, and
// maxDim <= 0, return img unchanged. Each side is at least 1 pixel.
func Downscale(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return img
	}

	scale := float64(maxDim) / float64(max(w, h))
	nw := max(int(math.Round(float64(w)*scale)), 1)
	nh := max(int(math.Round(float64(h)*scale)), 1)

	dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// EncodeForUpload prepares a capture for a size-limited upload: it
// downscales to maxDim, encodes as JPEG at the given quality and returns
// the standard base64 of the JPEG bytes.
func EncodeForUpload(img image.Image, maxDim, quality int) (string, error) {
	if img == nil {
		return "", ErrNilImage
	}
	data, err := EncodeBytes(Downscale(img, maxDim), JPEG, &Options{Quality: quality})
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n.NRGBAAt(x, y)
	}
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}
