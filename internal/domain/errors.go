package domain

import "errors"

var (
	// ErrNotFound is returned when no todo matches the requested id.
	ErrNotFound = errors.New("todo not found")

	// ErrTaskRequired is returned when a create or edit carries an empty task.
	ErrTaskRequired = errors.New("task is required")
)
