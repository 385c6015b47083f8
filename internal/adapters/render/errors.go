package render

import "errors"

var (
	// ErrFont is returned when the annotation font cannot be loaded.
	ErrFont = errors.New("load font")
	// ErrRender is returned when a surface cannot be rasterised.
	ErrRender = errors.New("render surface")
)
