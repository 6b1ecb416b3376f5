// Package wanip resolves the machine's public (WAN) address from an ordered,
// file-backed list of lookup endpoints.
package wanip

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/netip"
	"net/url"
	"strings"
	"time"

	"github.com/miekg/dns"
)

const httpLookupTimeout = 15 * time.Second

// Resolver queries the endpoints listed in a file, in order, and returns the
// first address that parses. The file is re-read on every call.
type Resolver struct {
	path       string
	httpClient *http.Client
	dnsClient  *dns.Client
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithHTTPClient replaces the HTTP client used for http(s) endpoints.
func WithHTTPClient(client *http.Client) Option {
	return func(r *Resolver) {
		if client != nil {
			r.httpClient = client
		}
	}
}

// NewResolver returns a Resolver reading endpoints from path.
func NewResolver(path string, opts ...Option) *Resolver {
	r := &Resolver{
		path:       path,
		httpClient: &http.Client{Timeout: httpLookupTimeout},
		dnsClient:  &dns.Client{Net: "udp", Timeout: dnsLookupTimeout},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Path returns the endpoint list file location.
func (r *Resolver) Path() string {
	return r.path
}

// Resolve returns the WAN address from the first endpoint that answers.
// A CGNAT address yields *CGNATError; callers must not retry it.
func (r *Resolver) Resolve(ctx context.Context) (Address, error) {
	endpoints, err := LoadEndpoints(r.path)
	if err != nil {
		return Address{}, err
	}
	if len(endpoints) == 0 {
		return Address{}, ErrNoEndpoints
	}

	var lastErr error
	for _, u := range endpoints {
		addr, err := r.lookup(ctx, u)
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", u.Redacted(), err)
			if ctx.Err() != nil {
				break
			}
			continue
		}

		if IsCGNAT(addr) {
			return Address{}, &CGNATError{Addr: addr}
		}
		return NewAddress(addr, u.Redacted()), nil
	}

	return Address{}, &QueryError{Last: lastErr}
}

func (r *Resolver) lookup(ctx context.Context, u *url.URL) (netip.Addr, error) {
	if u.Scheme == schemeDNS {
		return r.lookupDNS(ctx, u)
	}
	return r.lookupHTTP(ctx, u)
}

// lookupHTTP expects a 2xx response whose first body line is an IP address.
func (r *Resolver) lookupHTTP(ctx context.Context, u *url.URL) (netip.Addr, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return netip.Addr{}, fmt.Errorf("http request returned %s", resp.Status)
	}

	line, err := bufio.NewReader(io.LimitReader(resp.Body, 256)).ReadString('\n')
	if err != nil && err != io.EOF {
		return netip.Addr{}, fmt.Errorf("error reading response body: %w", err)
	}
	addr, err := netip.ParseAddr(strings.TrimSpace(line))
	if err != nil {
		return netip.Addr{}, fmt.Errorf("error parsing IP address from response body: %w", err)
	}
	return addr.Unmap(), nil
}
