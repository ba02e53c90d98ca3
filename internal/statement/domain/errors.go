package statement

import "errors"

// Sentinel errors shared by repositories and services.
var (
	ErrNotFound     = errors.New("statement: not found")
	ErrNilStatement = errors.New("statement: nil statement")
	ErrEmptyID      = errors.New("statement: empty id")
)
