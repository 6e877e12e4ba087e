package service

import (
	"errors"
	"fmt"
)

// Domain errors for auth and task flows. Handlers map them to HTTP statuses.
var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")

	ErrUsernameTaken = fmt.Errorf("%w: username already registered", ErrConflict)
	ErrEmailTaken    = fmt.Errorf("%w: email already registered", ErrConflict)

	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUnauthenticated    = errors.New("could not validate credentials")
	ErrForbidden          = errors.New("not authorized to access these tasks")
	ErrTaskNotFound       = errors.New("task not found")
)
