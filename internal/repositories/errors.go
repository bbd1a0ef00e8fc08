package repositories

import "errors"

var (
	ErrProfileNotFound   = errors.New("profile not found")
	ErrUnsupportedLookup = errors.New("unsupported lookup field")
)
