package domain

import "errors"

var (
	// ErrInvalidReference means the design URL could not be parsed.
	// Terminal, not retryable; callers map it to a 400.
	ErrInvalidReference = errors.New("invalid design URL format")

	// ErrInvalidFramework means the requested target framework is unknown.
	ErrInvalidFramework = errors.New("unsupported target framework")

	// ErrUpstreamFailure means a configured upstream call failed. Only the
	// code-generation step surfaces this; metadata and vision degrade silently.
	ErrUpstreamFailure = errors.New("upstream call failed")
)
