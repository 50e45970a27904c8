// Package repository implements storage access against MySQL. Sentinel
// errors defined here let handlers map failure scenarios to HTTP statuses
// without inspecting driver errors: ErrForbidden becomes 403, ErrConflict
// 409, and sql.ErrNoRows is passed through for 404s.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource owned by a different user.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation cannot proceed because of
// conflicting state, such as booking an outfit that is already rented out
// for the requested dates.
var ErrConflict = errors.New("conflict")

// ErrEmailExists is returned on registration when the email or username is
// already taken.
var ErrEmailExists = errors.New("email already exists")
