package domain

import (
	"fmt"

	"nathanbeddoewebdev/wanddns/internal/domain"
)

// Re-export shared sentinel errors so DNS callers do not need to import
// the cross-domain package directly.
var (
	ErrNotFound          = domain.ErrNotFound
	ErrUnauthorized      = domain.ErrUnauthorized
	ErrRateLimited       = domain.ErrRateLimited
	ErrServerError       = domain.ErrServerError
	ErrUnexpectedStatus  = domain.ErrUnexpectedStatus
	ErrTransport         = domain.ErrTransport
	ErrInvalidCredential = domain.ErrInvalidCredential
)

// APIError is a non-200 response from the provider API.
// Kind is one of the sentinels above, so errors.Is works on it.
type APIError struct {
	StatusCode int
	Message    string
	Kind       error
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%v (HTTP %d)", e.Kind, e.StatusCode)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Message)
}

func (e *APIError) Unwrap() error { return e.Kind }
