package domain

import "context"

// Provider is the interface the update loop uses to read and write records.
// Every call performs a single round trip; retrying is the caller's job.
type Provider interface {
	// GetDisplayName returns the human-readable provider name (e.g. "DigitalOcean").
	GetDisplayName() string

	// ListDomains returns the domains registered in the provider account.
	ListDomains(ctx context.Context) ([]Domain, error)

	// ListRecords returns all DNS records for the given domain.
	ListRecords(ctx context.Context, domain string) ([]Record, error)

	// UpdateRecord partially updates a record and returns the record as stored.
	UpdateRecord(ctx context.Context, domain string, id int, opts UpdateRecordOpts) (*Record, error)
}

// UpdateRecordOpts holds the fields sent when updating a record.
// Fields not listed here are left untouched server-side.
type UpdateRecordOpts struct {
	Type RecordType
	Data string
}
