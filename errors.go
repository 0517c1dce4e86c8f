package vera

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a question failed validation.
	ErrValidation = errors.New("validation error")

	// ErrUnexpectedStatus indicates the answer endpoint returned a non-2xx
	// HTTP status.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
)
