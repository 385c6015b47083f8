package animation

import "errors"

// Sentinel kinds for animation errors.
var (
	ErrMisaligned = errors.New("points and colors are not index-aligned")
)
