package export

import (
	"fmt"
	"image"
	"io"
	"os"
)

// Decode reads a PNG, JPEG, BMP or TIFF image. The decoders are registered
// by the encoder imports in encode.go.
func Decode(r io.Reader) (image.Image, Format, error) {
	img, name, err := image.Decode(r)
	if err != nil {
		return nil, 0, fmt.Errorf("export: decode: %w", err)
	}
	f, err := ParseFormat(name)
	if err != nil {
		return nil, 0, err
	}
	return img, f, nil
}

// Load decodes the image file at path. A leading "~/" is expanded.
func Load(path string) (image.Image, Format, error) {
	path, err := ExpandTilde(path)
	if err != nil {
		return nil, 0, err
	}
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, 0, fmt.Errorf("export: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return Decode(f)
}
