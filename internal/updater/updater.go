// Package updater runs the reconciliation loop that keeps address records
// pointed at the machine's WAN address.
//
// A cycle resolves the WAN address, lists the account's domains, matches the
// requested FQDNs to domains and records, and then either reports what it
// would change (dry run) or writes the changes (apply). Cycle-level failures
// are retried or returned according to the policy table in policy.go;
// per-record problems are reported and never fail the cycle.
package updater

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	dnsdomain "nathanbeddoewebdev/wanddns/internal/dns/domain"
	"nathanbeddoewebdev/wanddns/internal/retry"
	"nathanbeddoewebdev/wanddns/internal/wanip"

	"golang.org/x/sync/errgroup"
)

// DefaultRetryDelay is the wait before retrying a failed cycle in apply mode.
const DefaultRetryDelay = 10 * time.Second

// maxConcurrentListings caps in-flight record listings per cycle.
const maxConcurrentListings = 8

// Resolver produces the current WAN address.
type Resolver interface {
	Resolve(ctx context.Context) (wanip.Address, error)
}

// Options controls what the loop updates and how often.
type Options struct {
	// FQDNs are the record names to keep updated, in report order.
	FQDNs []string

	// Apply enables writes. Without it every cycle is a dry run and the
	// loop stops after one cycle.
	Apply bool

	// Interval is the wait between cycles in apply mode. Zero runs once.
	Interval time.Duration

	// RetryDelay is the wait before retrying a failed cycle. Zero means
	// DefaultRetryDelay.
	RetryDelay time.Duration
}

// Updater is the reconciliation loop.
type Updater struct {
	provider dnsdomain.Provider
	resolver Resolver
	observer Observer
	opts     Options
	now      func() time.Time
}

// New returns an Updater. A nil observer discards events.
func New(provider dnsdomain.Provider, resolver Resolver, observer Observer, opts Options) *Updater {
	if observer == nil {
		observer = Discard
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = DefaultRetryDelay
	}
	return &Updater{
		provider: provider,
		resolver: resolver,
		observer: observer,
		opts:     opts,
		now:      time.Now,
	}
}

// repeating reports whether the loop continues after a successful cycle.
func (u *Updater) repeating() bool {
	return u.opts.Apply && u.opts.Interval > 0
}

// Run executes cycles until the loop is done, a fatal error occurs, or ctx
// ends. Failed cycles are retried in full after RetryDelay when the policy
// allows it.
func (u *Updater) Run(ctx context.Context) error {
	cfg := retry.Constant(u.opts.RetryDelay)
	cfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		u.emit(ctx, Event{
			Kind:    EventRetrying,
			Level:   slog.LevelError,
			Message: fmt.Sprintf("Update failed: %v (retrying in %s)", err, delay),
			Err:     err,
			Delay:   delay,
		})
	}
	shouldRetry := func(err error) bool {
		return Decide(err, u.opts.Apply) == ActionRetry
	}

	for {
		err := retry.Do(ctx, cfg, shouldRetry, func() error {
			_, err := u.RunCycle(ctx)
			return err
		})
		if err != nil {
			return err
		}

		if !u.repeating() {
			return nil
		}

		next := u.now().Add(u.opts.Interval)
		u.emit(ctx, Event{
			Kind:    EventNextCycle,
			Level:   slog.LevelInfo,
			Message: "Next update: " + next.Format("2006-01-02 15:04:05 -07:00"),
			Next:    next,
		})
		if !retry.Sleep(ctx, u.opts.Interval) {
			return ctx.Err()
		}
	}
}

// RunCycle performs a single pass. The returned error is a cycle-level
// failure (resolver or domain listing); per-FQDN problems are in the report.
func (u *Updater) RunCycle(ctx context.Context) (*Report, error) {
	if u.opts.Apply {
		u.emit(ctx, Event{Kind: EventCycleStarted, Level: slog.LevelInfo, Message: "Starting records update..."})
	}

	addr, err := u.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	u.emit(ctx, Event{
		Kind:    EventAddressResolved,
		Level:   slog.LevelDebug,
		Message: fmt.Sprintf("WAN address: %s (%s)", addr, addr.Type),
		Address: addr,
	})

	domains, err := u.provider.ListDomains(ctx)
	if err != nil {
		return nil, err
	}

	plan := Match(u.opts.FQDNs, domains)
	listings := u.listRecords(ctx, plan.Groups)

	report := &Report{Address: addr}
	for i, group := range plan.Groups {
		for _, fqdn := range group.FQDNs {
			res := u.reconcile(ctx, group.Domain, fqdn, listings[i], addr)
			u.record(ctx, report, res)
		}
	}
	for _, fqdn := range plan.Unknown {
		u.record(ctx, report, Result{FQDN: fqdn, Status: StatusUnknownDomain})
	}

	return report, nil
}

type listing struct {
	records []dnsdomain.Record
	err     error
}

// listRecords fetches every group's records concurrently. A failure is kept
// with its group and does not cancel the other fetches.
func (u *Updater) listRecords(ctx context.Context, groups []Group) []listing {
	out := make([]listing, len(groups))

	var g errgroup.Group
	g.SetLimit(maxConcurrentListings)
	for i, group := range groups {
		g.Go(func() error {
			records, err := u.provider.ListRecords(ctx, group.Domain.Name)
			out[i] = listing{records: records, err: err}
			return nil
		})
	}
	_ = g.Wait()

	return out
}

func (u *Updater) reconcile(ctx context.Context, d dnsdomain.Domain, fqdn string, l listing, addr wanip.Address) Result {
	res := Result{FQDN: fqdn, Domain: d.Name}
	if l.err != nil {
		res.Status = StatusRecordsUnavailable
		res.Err = l.err
		return res
	}

	rec := FindRecord(l.records, d.Name, fqdn, addr.Type)
	if rec == nil {
		res.Status = StatusRecordMissing
		return res
	}
	current := *rec
	res.Record = &current

	switch {
	case sameAddress(current.Data, addr.Addr):
		res.Status = StatusUpToDate
	case !u.opts.Apply:
		res.Status = StatusPlanned
	default:
		updated, err := u.provider.UpdateRecord(ctx, d.Name, current.ID, dnsdomain.UpdateRecordOpts{
			Type: current.Type,
			Data: addr.String(),
		})
		if err != nil {
			res.Status = StatusUpdateFailed
			res.Err = err
			return res
		}
		if updated == nil {
			stored := current
			stored.Data = addr.String()
			updated = &stored
		}
		res.Status = StatusUpdated
		res.Updated = updated
	}
	return res
}

func (u *Updater) record(ctx context.Context, report *Report, res Result) {
	report.Results = append(report.Results, res)

	level := slog.LevelInfo
	if res.Failed() {
		level = slog.LevelError
	}
	u.emit(ctx, Event{
		Kind:    EventResult,
		Level:   level,
		Message: resultMessage(res, report.Address, u.opts.Apply, u.provider.GetDisplayName()),
		Apply:   u.opts.Apply,
		Address: report.Address,
		Result:  &res,
	})
}

func (u *Updater) emit(ctx context.Context, e Event) {
	e.Apply = u.opts.Apply
	u.observer.Observe(ctx, e)
}
