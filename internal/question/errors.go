package question

import "errors"

// Error kinds surfaced by Service. Anything else is an internal failure.
var (
	// ErrNotFound means a listing that treats emptiness as missing came back empty.
	ErrNotFound = errors.New("resource not found")
	// ErrUnprocessable means a well-formed request cannot be applied to the current data.
	ErrUnprocessable = errors.New("unprocessable entity")
)
