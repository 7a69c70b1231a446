package domain

import "errors"

// Business-rule failures are returned as typed errors and translated to
// user-facing responses once, at the HTTP boundary.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrOverlap    = errors.New("room unavailable for the requested window")
	ErrForbidden  = errors.New("forbidden")
	ErrTooLate    = errors.New("cancellation window closed")
	ErrAuthFailed = errors.New("authentication failed")
	ErrConflict   = errors.New("conflict")
	ErrConfig     = errors.New("missing configuration")
)
