package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNoSource = errors.New("no shot source configured")
	ErrNoShots  = errors.New("no shots found")
)
