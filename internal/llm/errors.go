package llm

import "errors"

var (
	// ErrUnavailable indicates the Gemini endpoint is unreachable.
	ErrUnavailable = errors.New("gemini api unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the model response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrRetryExhausted indicates all transport-level attempts failed.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")
)
