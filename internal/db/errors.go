package db

import "errors"

// ErrKeyNotFound is returned by PageStore.Get on a cache miss.
var ErrKeyNotFound = errors.New("db: key not found")

// Operation names carried by Error.
const (
	OpPing   = "PING"
	OpGet    = "GET"
	OpSet    = "SET"
	OpSelect = "SELECT"
)

// Error records which backend operation failed.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
