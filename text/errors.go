package text

import (
	"errors"
	"fmt"
)

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrInvalidSize is returned when a face is requested at a size that is
	// not a positive finite number.
	ErrInvalidSize = errors.New("text: invalid font size")
)

// FontError reports a font that could not be parsed by one of the backends.
type FontError struct {
	Backend string
	Err     error
}

func (e *FontError) Error() string {
	return fmt.Sprintf("text: failed to parse font (%s): %v", e.Backend, e.Err)
}

func (e *FontError) Unwrap() error { return e.Err }
