package venue

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrMappingCycle = errors.New("venue mapping cycle")
	ErrEmptyVersion = errors.New("venue mapping version is empty")
	ErrLoadMapping  = errors.New("load venue mapping failed")
)
