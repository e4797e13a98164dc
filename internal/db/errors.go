package db

import "fmt"

// Op identifies the failed store operation.
type Op string

const (
	OpConnect Op = "connect"
	OpSearch  Op = "search"
)

// Error wraps a backend failure with the operation that produced it.
type Error struct {
	Op  Op
	Err error
}

func (e *Error) Error() string { return fmt.Sprintf("db %s: %v", e.Op, e.Err) }

func (e *Error) Unwrap() error { return e.Err }
