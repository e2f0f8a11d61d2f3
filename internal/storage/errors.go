package storage

import "errors"

var (
	// ErrDuplicate is returned when attempting to create a resource that already exists.
	ErrDuplicate = errors.New("resource already exists")

	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = errors.New("resource not found")

	// ErrEmptyPatch is returned when an update contains no fields to change.
	ErrEmptyPatch = errors.New("no fields to update")
)
