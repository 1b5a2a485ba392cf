package persistence

import "errors"

// ErrNotFound is returned when a source has no data for the request, for
// example a CSV path that does not exist.
var ErrNotFound = errors.New("persistence: not found")
