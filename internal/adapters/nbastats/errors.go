package nbastats

import "errors"

// Sentinel kinds for stats API errors.
var (
	ErrRequest       = errors.New("stats request failed")
	ErrStatus        = errors.New("stats api returned an error status")
	ErrMalformed     = errors.New("malformed stats response")
	ErrNoResultSet   = errors.New("result set not found")
	ErrMissingColumn = errors.New("result set column missing")
)
