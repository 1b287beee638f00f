package validator

import "errors"

var (
	// ErrValidationFailed is matched by every ValidationErrors value.
	ErrValidationFailed = errors.New("validation failed")

	// ErrCheckUnavailable marks an async predicate that could not complete.
	// It is reported to the user as an ordinary invalid result.
	ErrCheckUnavailable = errors.New("validation check could not complete")
)
