package rewards

import "errors"

var (
	// ErrNotFound indicates no progress payload exists for the user yet.
	ErrNotFound = errors.New("progress not found")
	// ErrMissingUserID indicates a required user id was absent.
	ErrMissingUserID = errors.New("user id is required")
	// ErrNegativeXP indicates a negative XP amount was supplied.
	ErrNegativeXP = errors.New("xp amount must be non-negative")
	// ErrNegativeMinutes indicates a negative focus duration was supplied.
	ErrNegativeMinutes = errors.New("focus minutes must be non-negative")
)
