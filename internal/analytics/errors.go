package analytics

import "errors"

var (
	// ErrMissingUserID indicates a required user id was absent.
	ErrMissingUserID = errors.New("user id is required")
	// ErrInvalidRange indicates a non-positive day count was requested.
	ErrInvalidRange = errors.New("range must cover at least one day")
	// ErrInvalidInput indicates the provided daily record failed validation.
	ErrInvalidInput = errors.New("invalid input")
)
