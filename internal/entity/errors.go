package entity

import "errors"

// Domain errors
var (
	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrInvalidParameter = errors.New("invalid parameter")

	// Pipeline errors
	ErrMalformedOutput = errors.New("malformed model output")
	ErrGeneration      = errors.New("generation failed")
	ErrCritique        = errors.New("critique failed")
	ErrEmptyCompletion = errors.New("completion service returned empty content")

	// External services
	ErrServiceDisabled   = errors.New("external service disabled")
	ErrConfigUnavailable = errors.New("configuration store unavailable")
	ErrNoActiveConfig    = errors.New("no active configuration")
)
