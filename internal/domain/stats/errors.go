package stats

import "errors"

// Sentinel kinds for aggregation errors.
var (
	ErrNotComplete = errors.New("match not complete")
)
