package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// WritePDF writes a PDF with one page per image. Each page is the size of
// its image at one point per pixel and the image fills it.
func WritePDF(w io.Writer, imgs ...image.Image) error {
	if len(imgs) == 0 {
		return ErrNilImage
	}

	first := imgs[0]
	if first == nil {
		return ErrNilImage
	}
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           pageSize(first),
	})
	p.SetCreator("annotate", true)
	p.SetAutoPageBreak(false, 0)

	for i, img := range imgs {
		if img == nil {
			return ErrNilImage
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return err
		}

		name := fmt.Sprintf("page%d", i)
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		p.RegisterImageOptionsReader(name, opts, &buf)

		size := pageSize(img)
		p.AddPageFormat("P", size)
		p.ImageOptions(name, 0, 0, size.Wd, size.Ht, false, opts, 0, "")
		if p.Err() {
			return p.Error()
		}
	}
	return p.Output(w)
}

// pageSize maps an image to a page in points, at least 1x1.
func pageSize(img image.Image) gofpdf.SizeType {
	b := img.Bounds()
	return gofpdf.SizeType{
		Wd: float64(max(b.Dx(), 1)),
		Ht: float64(max(b.Dy(), 1)),
	}
}
