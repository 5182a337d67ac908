package chart

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrNoData = errors.New("no data to chart")
	ErrRender = errors.New("chart render failed")
)
