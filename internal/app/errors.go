package service

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrMatchNotFound = errors.New("match not found")
	ErrNotStarted    = errors.New("service not started")
)
