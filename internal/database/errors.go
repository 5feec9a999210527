package database

import "errors"

var (
	// ErrNotFound indicates a requested record does not exist.
	ErrNotFound = errors.New("database: not found")
	// ErrUserExists is returned when registering while a user row is present.
	ErrUserExists = errors.New("database: user already exists")
)
