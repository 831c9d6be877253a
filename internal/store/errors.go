package store

import "errors"

// ErrUnknownColumn is returned when a filter names a column the table does not have.
var ErrUnknownColumn = errors.New("store: unknown column")
