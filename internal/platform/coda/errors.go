package coda

import "errors"

// Error definitions for the coda package.
var (
	// ErrRequestFailed is returned when a request to the Coda API fails
	// at the transport level or comes back with a non-2xx status.
	ErrRequestFailed = errors.New("coda request failed")
)
