package updater

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	dnsdomain "nathanbeddoewebdev/wanddns/internal/dns/domain"
	"nathanbeddoewebdev/wanddns/internal/wanip"
)

// EventKind identifies what an Event reports.
type EventKind int

const (
	EventCycleStarted EventKind = iota
	EventAddressResolved
	EventResult
	EventRetrying
	EventNextCycle
)

// Status is the outcome for one requested FQDN in a cycle.
type Status int

const (
	// StatusPlanned is a dry-run record that would be changed.
	StatusPlanned Status = iota
	// StatusUpToDate is a record already holding the WAN address.
	StatusUpToDate
	// StatusUpdated is a record successfully rewritten.
	StatusUpdated
	// StatusUpdateFailed is a record whose write failed.
	StatusUpdateFailed
	// StatusRecordMissing means the domain has no record of the WAN
	// address type with that name.
	StatusRecordMissing
	// StatusRecordsUnavailable means the domain's records could not be listed.
	StatusRecordsUnavailable
	// StatusUnknownDomain means no account domain is a suffix of the FQDN.
	StatusUnknownDomain
)

func (s Status) String() string {
	switch s {
	case StatusPlanned:
		return "planned"
	case StatusUpToDate:
		return "up-to-date"
	case StatusUpdated:
		return "updated"
	case StatusUpdateFailed:
		return "update-failed"
	case StatusRecordMissing:
		return "record-missing"
	case StatusRecordsUnavailable:
		return "records-unavailable"
	case StatusUnknownDomain:
		return "unknown-domain"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Result is the per-FQDN outcome of a cycle.
type Result struct {
	FQDN string

	// Domain is the matched account domain name; empty for StatusUnknownDomain.
	Domain string

	Status Status

	// Record is the targeted record as it was before any write.
	Record *dnsdomain.Record

	// Updated is the record returned by the provider after a write.
	Updated *dnsdomain.Record

	Err error
}

// Failed reports whether the result should be logged at error severity.
func (r Result) Failed() bool {
	switch r.Status {
	case StatusUpdateFailed, StatusRecordMissing, StatusRecordsUnavailable, StatusUnknownDomain:
		return true
	}
	return false
}

// Report is everything a completed cycle produced.
type Report struct {
	Address wanip.Address
	Results []Result
}

// Count returns the number of results with the given status.
func (r *Report) Count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}

// Event is a structured notification from the update loop. Message is the
// human-readable line; the other fields carry the same data for structured
// sinks.
type Event struct {
	Kind    EventKind
	Level   slog.Level
	Message string
	Apply   bool

	Address wanip.Address
	Result  *Result

	Err   error
	Delay time.Duration
	Next  time.Time
}

// Observer receives events from the update loop.
type Observer interface {
	Observe(ctx context.Context, e Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, e Event)

func (f ObserverFunc) Observe(ctx context.Context, e Event) { f(ctx, e) }

// Discard is an Observer that drops every event.
var Discard Observer = ObserverFunc(func(context.Context, Event) {})

// resultMessage renders a result the way it is reported to the user.
func resultMessage(r Result, addr wanip.Address, apply bool, providerName string) string {
	failPrefix := ""
	if apply {
		failPrefix = "✗ "
	}

	switch r.Status {
	case StatusPlanned:
		return fmt.Sprintf("%s -> %s (current: %s, TTL: %d)", r.FQDN, addr, r.Record.Data, r.Record.TTL)
	case StatusUpToDate:
		if apply {
			return fmt.Sprintf("✓ %s is up to date (%s, TTL: %d)", r.FQDN, r.Record.Data, r.Record.TTL)
		}
		return fmt.Sprintf("%s -> %s (current: %s, TTL: %d) (up to date)", r.FQDN, addr, r.Record.Data, r.Record.TTL)
	case StatusUpdated:
		return fmt.Sprintf("✓ %s -> %s (current: %s, TTL: %d)", r.FQDN, r.Updated.Data, r.Record.Data, r.Record.TTL)
	case StatusUpdateFailed:
		return fmt.Sprintf("✗ %s: %v", r.FQDN, r.Err)
	case StatusRecordMissing:
		return fmt.Sprintf("%s%s: Record does not exist, or is not of type %s", failPrefix, r.FQDN, addr.Type)
	case StatusRecordsUnavailable:
		return fmt.Sprintf("%s%s: %v", failPrefix, r.FQDN, r.Err)
	case StatusUnknownDomain:
		return fmt.Sprintf("%s%s: Domain does not exist on this %s account", failPrefix, r.FQDN, providerName)
	}
	return r.FQDN
}
