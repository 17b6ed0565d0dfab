package store

import "errors"

// ErrNotFound is returned when no run with the requested ID exists.
var ErrNotFound = errors.New("store: run not found")
