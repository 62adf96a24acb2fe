package extras

import "errors"

// Sentinel kinds for classification errors.
var (
	ErrNegativeRuns     = errors.New("runs must not be negative")
	ErrExtraCombination = errors.New("invalid extras combination")
)
