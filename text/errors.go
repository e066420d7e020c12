package text

import (
	"errors"
	"fmt"
)

// Sentinel errors for the text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrUnknownFamily is returned by Library.Resolve for an unregistered
	// family.
	ErrUnknownFamily = errors.New("text: unknown font family")

	// ErrNoFaces is returned by Engine.Layout when no face is given.
	ErrNoFaces = errors.New("text: no faces to lay out with")

	// ErrUnsupportedFace is returned by GoTextShaper for faces that were not
	// created from a Font.
	ErrUnsupportedFace = errors.New("text: face has no font data")
)

// ShapeError reports a failure to shape a piece of text with a face.
type ShapeError struct {
	Text string
	Face string
	Err  error
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("text: shaping %q with %s: %v", e.Text, e.Face, e.Err)
}

func (e *ShapeError) Unwrap() error { return e.Err }
