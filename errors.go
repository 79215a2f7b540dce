package annotate

import (
	"errors"
	"fmt"
)

// Sentinel errors for the annotate package.
var (
	// ErrInvalidColorSpec is matched by every color parsing failure.
	ErrInvalidColorSpec = errors.New("annotate: invalid color spec")

	// ErrNilImage is returned when a nil base image is composited.
	ErrNilImage = errors.New("annotate: nil image")

	// ErrImageTooLarge is returned when the base image exceeds the
	// compositor's pixel limit.
	ErrImageTooLarge = errors.New("annotate: image too large")

	// ErrBufferSize is returned when raw pixel data does not match the
	// stated dimensions.
	ErrBufferSize = errors.New("annotate: pixel buffer size mismatch")
)

// InvalidColorSpecError reports a color string that is neither
// "transparent", #RRGGBB nor #RRGGBBAA.
type InvalidColorSpecError struct {
	Spec string
}

func (e *InvalidColorSpecError) Error() string {
	return fmt.Sprintf("annotate: invalid color spec %q", e.Spec)
}

// Is makes errors.Is(err, ErrInvalidColorSpec) true.
func (e *InvalidColorSpecError) Is(target error) bool {
	return target == ErrInvalidColorSpec
}

// ImageTooLargeError carries the offending dimensions.
type ImageTooLargeError struct {
	Width, Height int
	Limit         int
}

func (e *ImageTooLargeError) Error() string {
	return fmt.Sprintf("annotate: image %dx%d exceeds %d pixels", e.Width, e.Height, e.Limit)
}

func (e *ImageTooLargeError) Unwrap() error { return ErrImageTooLarge }
