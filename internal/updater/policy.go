package updater

import (
	"context"
	"errors"

	"nathanbeddoewebdev/wanddns/internal/domain"
	"nathanbeddoewebdev/wanddns/internal/wanip"
)

// Category groups cycle-level failures for the retry decision.
type Category int

const (
	// CategoryOther covers failures with no dedicated category.
	CategoryOther Category = iota
	// CategoryCGNAT is a resolved address inside 100.64.0.0/10.
	CategoryCGNAT
	// CategoryEndpointList is an unreadable or malformed endpoint list.
	CategoryEndpointList
	// CategoryResolver covers lookups that failed or had no endpoints.
	CategoryResolver
	// CategoryCredential is a rejected or unusable API key.
	CategoryCredential
	// CategoryProvider covers rate limits, server errors, unexpected
	// statuses and transport failures.
	CategoryProvider
	// CategoryCanceled is context cancellation.
	CategoryCanceled
)

func (c Category) String() string {
	switch c {
	case CategoryCGNAT:
		return "cgnat"
	case CategoryEndpointList:
		return "endpoint-list"
	case CategoryResolver:
		return "resolver"
	case CategoryCredential:
		return "credential"
	case CategoryProvider:
		return "provider"
	case CategoryCanceled:
		return "canceled"
	}
	return "other"
}

// Action is what the loop does with a failed cycle.
type Action int

const (
	ActionFail Action = iota
	ActionRetry
)

type policyKey struct {
	category Category
	apply    bool
}

// policy is the single source of truth for retry-vs-fatal. Dry runs are
// one-shot diagnostics, so nothing is retried without apply. Entries that
// are absent fail.
var policy = map[policyKey]Action{
	{CategoryResolver, true}: ActionRetry,
	{CategoryProvider, true}: ActionRetry,
	{CategoryOther, true}:    ActionRetry,
}

// Classify maps a cycle error onto its Category.
func Classify(err error) Category {
	var (
		cgnatErr *wanip.CGNATError
		urlErr   *wanip.URLParseError
		queryErr *wanip.QueryError
	)
	switch {
	case errors.Is(err, context.Canceled):
		return CategoryCanceled
	case errors.As(err, &cgnatErr):
		return CategoryCGNAT
	case errors.As(err, &urlErr), errors.Is(err, wanip.ErrEndpointList):
		return CategoryEndpointList
	case errors.As(err, &queryErr), errors.Is(err, wanip.ErrNoEndpoints):
		return CategoryResolver
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrInvalidCredential):
		return CategoryCredential
	case errors.Is(err, domain.ErrRateLimited),
		errors.Is(err, domain.ErrServerError),
		errors.Is(err, domain.ErrUnexpectedStatus),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrTransport):
		return CategoryProvider
	}
	return CategoryOther
}

// Decide returns the action for err given the apply mode.
func Decide(err error, apply bool) Action {
	return policy[policyKey{Classify(err), apply}]
}
