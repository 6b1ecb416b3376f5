package domain

import "errors"

// Sentinel errors for provider and credential classification.
// Callers wrap these so the update loop and the process boundary can
// handle error categories uniformly without inspecting status codes.
//
//	return fmt.Errorf("failed to list domains: %w", domain.ErrUnauthorized)
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates the request was rejected due to
	// invalid, expired, or missing credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates the provider throttled the request.
	ErrRateLimited = errors.New("rate limited")

	// ErrServerError indicates the provider failed internally (HTTP 500).
	ErrServerError = errors.New("server error")

	// ErrUnexpectedStatus indicates a status code with no dedicated category.
	ErrUnexpectedStatus = errors.New("unexpected status")

	// ErrTransport indicates the request never produced a usable response:
	// connection failures, timeouts and undecodable bodies.
	ErrTransport = errors.New("transport error")

	// ErrInvalidCredential indicates the API key cannot be sent at all,
	// e.g. it is empty or contains characters illegal in a header value.
	ErrInvalidCredential = errors.New("invalid api key format")
)
