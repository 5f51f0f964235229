package usecase

import "errors"

var (
	// ErrNotFound means the requested document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the caller's role or ownership does not permit the
	// operation.
	ErrForbidden = errors.New("forbidden")
)
