package label

import "errors"

var (
	// ErrLayerActive is returned when an operation requires every layer to
	// be ended but one is still started.
	ErrLayerActive = errors.New("label: layer still started")

	// ErrLayerNotStarted is returned when submitting to, or ending, a layer
	// that was not started.
	ErrLayerNotStarted = errors.New("label: layer not started")

	// ErrUnknownLayer is returned for a layer the scheduler has never seen.
	ErrUnknownLayer = errors.New("label: unknown layer")

	// ErrNoStyle is returned for requests without a text style.
	ErrNoStyle = errors.New("label: request has no style")
)
