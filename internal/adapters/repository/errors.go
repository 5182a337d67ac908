package repository

import "errors"

// Sentinel kinds for dataset loading errors.
var (
	ErrLoad          = errors.New("load dataset failed")
	ErrMissingColumn = errors.New("missing required column")
	ErrMalformedRow  = errors.New("malformed row")
)
