package site

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrTemplate = errors.New("page template failed")
	ErrRender   = errors.New("page render failed")
)
