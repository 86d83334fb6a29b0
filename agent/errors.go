package agent

import "errors"

var (
	// ErrMissingAPIKey indicates the configured provider requires an API
	// key and neither the config nor the environment supplies one. Returned
	// by New before any request is made.
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrUnknownProvider indicates the config names a provider this
	// package does not implement.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrGeneration indicates a generation request failed: transport
	// error, non-200 response, or an unusable response body.
	ErrGeneration = errors.New("generation failed")
)
