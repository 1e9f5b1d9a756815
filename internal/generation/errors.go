package generation

import "errors"

// Common errors returned by synthesizer implementations
var (
	// ErrEmptySourceText is returned when the source text is empty or
	// whitespace-only. It is raised before any network call is made.
	ErrEmptySourceText = errors.New("source text cannot be empty")

	// ErrRequestFailed is returned when the request to the language model
	// service fails at the transport level (connection, timeout, non-2xx).
	ErrRequestFailed = errors.New("language model request failed")

	// ErrInvalidResponse is returned when the response body is empty,
	// cannot be parsed, or does not conform to the synthesis schema.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrInvalidConfig is returned when a synthesizer is constructed with
	// invalid configuration.
	ErrInvalidConfig = errors.New("invalid synthesizer configuration")
)
