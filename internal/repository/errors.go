// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow higher layers such as handlers
// to distinguish failure scenarios and translate them into status codes:
// ErrNotFound becomes 404, ErrEmailExists 400.
package repository

import "errors"

// ErrNotFound is returned when a lookup by identifier matches no row, or
// matches only a soft-deleted one.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when an insert or update would violate the
// unique email constraint on the users table.
var ErrEmailExists = errors.New("email already exists")
