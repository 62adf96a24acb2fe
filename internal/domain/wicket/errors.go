package wicket

import "errors"

// Sentinel kinds for dismissal resolution errors.
var (
	ErrInvalidKind       = errors.New("invalid dismissal kind")
	ErrUnexpectedFielder = errors.New("fielder given for dismissal kind")
)
