package repository

import "errors"

// ErrNotFound is returned when a record is absent or owned by another user.
var ErrNotFound = errors.New("record not found")
