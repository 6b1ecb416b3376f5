package domain

// RecordType represents a DNS record type.
type RecordType string

const (
	RecordTypeA    RecordType = "A"
	RecordTypeAAAA RecordType = "AAAA"
)

// ApexName is the relative record name the provider uses for the zone apex.
const ApexName = "@"

// Record represents a single DNS record in a domain.
type Record struct {
	// ID is the provider-assigned record identifier. It is stable across listings.
	ID int `json:"id"`

	// Type is the DNS record type (A, AAAA, CNAME, etc.).
	Type RecordType `json:"type"`

	// Name is the record name relative to its domain (e.g. "home" for
	// home.example.com, "@" for the apex).
	Name string `json:"name"`

	// Data is the record value. For A/AAAA records it is the IP address.
	Data string `json:"data"`

	// TTL is the time-to-live in seconds.
	TTL int `json:"ttl"`

	// Priority is set for MX and SRV records.
	Priority *int `json:"priority"`

	// Port is set for SRV records.
	Port *int `json:"port"`

	// Weight is set for SRV records.
	Weight *int `json:"weight"`

	// Flags is an unsigned integer between 0-255 used for CAA records.
	Flags *int `json:"flags"`

	// Tag is the CAA parameter tag ("issue", "issuewild" or "iodef").
	Tag *string `json:"tag"`
}

// Domain represents a domain (zone) registered in the provider account.
type Domain struct {
	// Name is the domain name (e.g. "example.com"). Display keeps the
	// provider's casing; matching is case-insensitive.
	Name string `json:"name"`

	// TTL is the default time-to-live for records in this domain.
	TTL *int `json:"ttl"`

	// ZoneFile is the complete zone file contents, when the provider returns it.
	ZoneFile *string `json:"zone_file"`
}
