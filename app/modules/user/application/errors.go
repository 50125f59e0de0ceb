package userservice

import (
	"errors"
	"strings"
)

// Domain errors for the user service. They are returned as failure results,
// never as the error return.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates the Discord ID is already registered.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrUnauthorizedRoleChange indicates a non-admin tried to grant ADMIN or EDITOR.
	ErrUnauthorizedRoleChange = errors.New("only ADMIN can change roles to ADMIN or EDITOR")
)

// ValidationError lists every problem found in a user input.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}
