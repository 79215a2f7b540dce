package export

import "errors"

var (
	// ErrUnknownFormat is returned for an unsupported format name or file
	// extension.
	ErrUnknownFormat = errors.New("export: unknown image format")

	// ErrOutsideHome is returned when an auto-generated save path resolves
	// outside the home directory.
	ErrOutsideHome = errors.New("export: path is outside the home directory")

	// ErrNoHome is returned when the home directory cannot be determined.
	ErrNoHome = errors.New("export: home directory unavailable")

	// ErrNilImage is returned when there is nothing to encode.
	ErrNilImage = errors.New("export: nil image")
)
