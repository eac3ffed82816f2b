package domain

import "errors"

var (
	// ErrNotFound is returned when no record has the requested key.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned when an insert collides with an existing unique key.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrImmutableField is returned when a patch touches the id, the unique key or a credential.
	ErrImmutableField = errors.New("field cannot be updated")
	// ErrInvalidRecord is returned when a record or patch does not fit the entity's shape.
	ErrInvalidRecord = errors.New("invalid record")
	// ErrInvalidCredentials hides whether the key or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid admission number or password")
)
