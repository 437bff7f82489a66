package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing client credentials")

	// Credential lifecycle errors
	ErrCredentialLoad        = fmt.Errorf("failed to load stored credential")
	ErrTokenInvalid          = fmt.Errorf("access token invalid")
	ErrAuthorizationRequired = fmt.Errorf("user authorization required")
	ErrAuthorizationExchange = fmt.Errorf("authorization code exchange failed")

	// API and filesystem errors
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrRemoteRequest      = fmt.Errorf("remote API request failed")
	ErrPlaylistNotFound   = fmt.Errorf("playlist not found")
	ErrDirectory          = fmt.Errorf("output directory error")
	ErrTimeout            = fmt.Errorf("operation timed out")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
)
