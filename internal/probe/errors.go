package probe

import "errors"

// Sentinel kinds for probe failures.
var (
	ErrRequest        = errors.New("probe request failed")
	ErrUnhealthy      = errors.New("endpoint unhealthy")
	ErrUnexpectedBody = errors.New("unexpected response body")
)
