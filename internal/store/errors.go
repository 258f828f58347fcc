package store

import "errors"

var (
	// ErrNotFound marks an absent row. Callers distinguish "not cached"
	// from engine failures with errors.Is.
	ErrNotFound = errors.New("entity not found in local cache")
)
