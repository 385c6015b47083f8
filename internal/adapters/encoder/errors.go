package encoder

import "errors"

var (
	// ErrNoFrames is returned when encoding an animation with no frames.
	ErrNoFrames = errors.New("no frames to encode")
	// ErrEncode wraps failures while encoding or writing the output.
	ErrEncode = errors.New("encode animation")
)
