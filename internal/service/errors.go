package service

import (
	"errors"
	"fmt"
)

// Error kinds shared across services. Handlers never map these themselves;
// the error middleware translates them into HTTP statuses and a uniform
// JSON body.
var (
	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden means the caller is authenticated but does not own the
	// resource it is acting on.
	ErrForbidden = errors.New("not authorized to access this resource")

	// ErrUnauthenticated means no valid identity accompanied the request.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrInvalidCredentials covers failed logins without revealing whether
	// the account exists.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidInput marks request data that passed binding but failed a
	// domain check (unknown enum value, duplicate username, bad MIME type).
	ErrInvalidInput = errors.New("invalid input")
)

// ImageHostError wraps a failure talking to the image hosting service. The
// original cause is preserved for logging; deletion failures in particular
// must surface rather than being swallowed.
type ImageHostError struct {
	Op  string
	Err error
}

func (e *ImageHostError) Error() string {
	return fmt.Sprintf("image host: %s: %v", e.Op, e.Err)
}

func (e *ImageHostError) Unwrap() error {
	return e.Err
}
