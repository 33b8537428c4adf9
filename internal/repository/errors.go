package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an insert violates a uniqueness
	// constraint, e.g. a second assignment for the same
	// (trip, agent, customer) triple.
	ErrDuplicate = errors.New("entity already exists")
)
