package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when a unique constraint is violated
	// (registration number, license number, email).
	ErrDuplicate = errors.New("entity already exists")
)
