package store

import "errors"

// ErrNotFound reports that the requested row does not exist.
var ErrNotFound = errors.New("not found")
