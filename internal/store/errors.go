package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the referenced record id is not in the store.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateID indicates an add supplied an id that is already stored.
	ErrDuplicateID = errors.New("record id already exists")
)

// FallbackError reports that the source could not be read and the store is
// serving its fixed seed records instead. It is a notice, not a failure.
type FallbackError struct {
	Store  string
	Source string
	Err    error
}

func (e *FallbackError) Error() string {
	return fmt.Sprintf("%s: %s unavailable, serving seed data: %v", e.Store, e.Source, e.Err)
}

func (e *FallbackError) Unwrap() error { return e.Err }

// RemoteWriteError reports a failed write to the backing source. The local
// store is left unchanged.
type RemoteWriteError struct {
	Op     string
	Store  string
	Source string
	Err    error
}

func (e *RemoteWriteError) Error() string {
	return fmt.Sprintf("%s %s via %s: %v", e.Op, e.Store, e.Source, e.Err)
}

func (e *RemoteWriteError) Unwrap() error { return e.Err }
