package service

import "errors"

// Sentinel errors returned by the service layer. Handlers map these onto
// HTTP status codes; everything else is treated as an internal error.
var (
	// ErrValidation marks malformed or missing input on create/register.
	// Wrapped variants carry the specific precondition that failed.
	ErrValidation = errors.New("validation failed")

	// ErrRequestNotFound is returned when no leave request has the given id
	ErrRequestNotFound = errors.New("leave request not found")

	// ErrInvalidTransition is returned when a status change is attempted on
	// a request that is no longer pending
	ErrInvalidTransition = errors.New("leave request has already been processed")

	// ErrEmailTaken is returned when registering with an email that exists
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on a failed login
	ErrInvalidCredentials = errors.New("invalid credentials")
)
