package export

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is an output file format.
type Format int

// Supported formats.
const (
	PNG Format = iota
	JPEG
	BMP
	TIFF
	PDF
)

var formatNames = [...]string{
	PNG:  "png",
	JPEG: "jpeg",
	BMP:  "bmp",
	TIFF: "tiff",
	PDF:  "pdf",
}

var mimeTypes = [...]string{
	PNG:  "image/png",
	JPEG: "image/jpeg",
	BMP:  "image/bmp",
	TIFF: "image/tiff",
	PDF:  "application/pdf",
}

func (f Format) valid() bool {
	return f >= PNG && f <= PDF
}

// String returns the format name.
func (f Format) String() string {
	if !f.valid() {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// MIMEType returns the media type of the format.
func (f Format) MIMEType() string {
	if !f.valid() {
		return "application/octet-stream"
	}
	return mimeTypes[f]
}

// Extension returns the canonical file extension, with the leading dot.
func (f Format) Extension() string {
	switch f {
	case JPEG:
		return ".jpg"
	case TIFF:
		return ".tif"
	}
	return "." + f.String()
}

// ParseFormat parses a format name or extension, with or without a
// leading dot. Matching is case-insensitive.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	case "pdf":
		return PDF, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatFromPath picks the format from the file extension of path.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return 0, fmt.Errorf("%w: %q has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}
