// Package repository contains data access logic separated from HTTP
// handlers. Sentinel errors defined here let handlers map failures to
// stable response categories without inspecting driver errors.
package repository

import "errors"

// ErrNotFound is returned when the requested entity id does not exist.
// Handlers translate it into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when a create or update collides with the
// unique email constraint. Handlers translate it into an HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrConflict is returned when a delete cannot proceed because dependent
// records exist, such as removing a user who still owns waste logs or
// rewards. Handlers translate it into an HTTP 409 response.
var ErrConflict = errors.New("conflict")
