package state

import "errors"

var (
	// ErrNotInitialized is returned when an entity store is used outside
	// its initialization scope: a zero value, or one whose constructor was
	// never run. Accessors fail with this named error instead of crashing.
	ErrNotInitialized = errors.New("entity store not initialized: construct it with New before use")

	// ErrStoreClosed is returned when an entity store is used after Close.
	ErrStoreClosed = errors.New("entity store is closed")

	// ErrNoAccount is returned by AccountStore.Account when no profile is
	// loaded (not authenticated, or the initial load failed).
	ErrNoAccount = errors.New("no account loaded")
)
