package wanip

import (
	"errors"
	"fmt"
	"net/netip"
)

// ErrNoEndpoints is returned when the endpoint list is empty after loading.
var ErrNoEndpoints = errors.New("there are no WAN IP lookup endpoints configured")

// ErrEndpointList wraps I/O failures reading or creating the endpoint list.
var ErrEndpointList = errors.New("endpoint list unavailable")

// QueryError is returned when every configured endpoint failed.
// Last is the error from the final endpoint tried.
type QueryError struct {
	Last error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("WAN IP query failed: %v", e.Last)
}

func (e *QueryError) Unwrap() error { return e.Last }

// URLParseError reports a line in the endpoint list that is not a usable URL.
type URLParseError struct {
	Path  string
	Line  int
	Value string
	Err   error
}

func (e *URLParseError) Error() string {
	return fmt.Sprintf("%s:%d: invalid endpoint URL %q: %v", e.Path, e.Line, e.Value, e.Err)
}

func (e *URLParseError) Unwrap() error { return e.Err }

// CGNATError is returned when the resolved address lies in the shared
// address space (100.64.0.0/10). Such an address is not reachable from the
// internet, so retrying the lookup cannot produce a usable result.
type CGNATError struct {
	Addr netip.Addr
}

func (e *CGNATError) Error() string {
	return fmt.Sprintf("WAN IP %s is a carrier-grade NAT address (100.64.0.0/10) and cannot be used as a DNS target", e.Addr)
}
