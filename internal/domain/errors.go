package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, end date before start date,
// activity date outside its trip's range).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a uniqueness rule is violated, currently only
// duplicate account emails on registration.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrUnauthorized is returned when credentials do not match or a request
// carries a missing or invalid token.
// Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")
