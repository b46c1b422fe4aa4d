package repo

import "errors"

var (
	// ErrNotFound means the targeted row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict means the row is still referenced by assets (FK violation)
	// or collides with an existing unique value.
	ErrConflict = errors.New("conflict")
)
