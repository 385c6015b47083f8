package preview

import "errors"

// Sentinel kinds for preview errors.
var (
	ErrServe   = errors.New("preview serve failed")
	ErrPublish = errors.New("publish frame")
	ErrNoFrame = errors.New("no frame rendered yet")
)
