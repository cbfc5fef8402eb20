package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource (driver, trip, loadsheet, profile) does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrUnauthorized is returned when driver identity verification fails
// (wrong phone suffix for the claimed driver number).
// Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden is returned when a verified driver attempts to act on a trip
// they are not assigned to (neither primary nor team driver).
// Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidTransition is returned when a trip is not in the source state a
// transition requires. The wrapped message names the current and required
// states so the edge can render an actionable error.
// Handlers should map this to HTTP 409.
var ErrInvalidTransition = errors.New("invalid state transition")

// ErrResourceUnavailable is returned when an equipment unit or driver cannot
// be claimed because it is not AVAILABLE. The wrapped message names the
// contended resource. Handlers should map this to HTTP 409.
var ErrResourceUnavailable = errors.New("resource unavailable")

// ErrConflict is returned when a loadsheet is already attached to a different
// trip, when a duplicate trip number is generated, or when a free-text
// linehaul name matches more than one profile.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing quantity, morale rating out of range).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrProfileNotFound is returned when a loadsheet's free-text linehaul name
// resolves to no linehaul profile. It wraps ErrNotFound so callers checking
// for the broader sentinel still match.
var ErrProfileNotFound = &profileNotFoundError{}

type profileNotFoundError struct{}

func (*profileNotFoundError) Error() string { return "linehaul profile not found" }
func (*profileNotFoundError) Unwrap() error { return ErrNotFound }
