package repository

import "errors"

// ErrNotFound is returned by finder methods when no row matches.
var ErrNotFound = errors.New("not found")
