package shot

import "errors"

// Sentinel kinds for shot errors.
var (
	ErrUnknownTeam = errors.New("unknown team")
)
