package service

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrStart            = errors.New("service start failed")
	ErrNotStarted       = errors.New("service not started")
	ErrUnknownSelection = errors.New("unknown selection kind")
)
