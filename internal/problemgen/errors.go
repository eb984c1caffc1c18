package problemgen

import "errors"

var (
	// ErrInvalidOperation is returned for an unsupported operation name.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrMalformedQuestion is returned when a generated question fails the
	// validator chain.
	ErrMalformedQuestion = errors.New("malformed question")
)
