package ports

import "errors"

var (
	// ErrNotFound reports a miss on a named profile or history record.
	ErrNotFound = errors.New("not found")
	// ErrConflict reports a stale profile version on save.
	ErrConflict = errors.New("conflict")
)
