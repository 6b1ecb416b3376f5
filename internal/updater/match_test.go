package updater

import (
	"net/netip"
	"testing"

	dnsdomain "nathanbeddoewebdev/wanddns/internal/dns/domain"

	"github.com/google/go-cmp/cmp"
)

func domains(names ...string) []dnsdomain.Domain {
	out := make([]dnsdomain.Domain, 0, len(names))
	for _, n := range names {
		out = append(out, dnsdomain.Domain{Name: n})
	}
	return out
}

func TestMatch_GroupsByDomainPreservingOrder(t *testing.T) {
	plan := Match(
		[]string{"home.example.com", "nas.other.org", "vpn.Example.com", "sub.unknown-domain.tld", "Example.COM", "x.nowhere.net"},
		domains("other.org", "example.com"),
	)

	want := Plan{
		Groups: []Group{
			{Domain: dnsdomain.Domain{Name: "example.com"}, FQDNs: []string{"home.example.com", "vpn.Example.com", "Example.COM"}},
			{Domain: dnsdomain.Domain{Name: "other.org"}, FQDNs: []string{"nas.other.org"}},
		},
		Unknown: []string{"sub.unknown-domain.tld", "x.nowhere.net"},
	}
	if diff := cmp.Diff(want, plan); diff != "" {
		t.Errorf("Match mismatch (-want +got):\n%s", diff)
	}
}

func TestMatch_LongestSuffixWins(t *testing.T) {
	tests := []struct {
		name    string
		fqdn    string
		domains []string
		want    string
	}{
		{"nested zone listed after parent", "a.lab.example.com", []string{"example.com", "lab.example.com"}, "lab.example.com"},
		{"nested zone listed before parent", "a.lab.example.com", []string{"lab.example.com", "example.com"}, "lab.example.com"},
		{"only parent matches", "a.dev.example.com", []string{"lab.example.com", "example.com"}, "example.com"},
		{"case-insensitive", "A.LAB.Example.Com", []string{"example.com", "Lab.Example.com"}, "Lab.Example.com"},
		{"trailing dot ignored", "home.example.com.", []string{"example.com"}, "example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := Match([]string{tt.fqdn}, domains(tt.domains...))
			if len(plan.Groups) != 1 {
				t.Fatalf("expected 1 group, got %+v", plan)
			}
			if got := plan.Groups[0].Domain.Name; got != tt.want {
				t.Errorf("domain = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMatch_EqualNamesResolveToFirst(t *testing.T) {
	ttl := 300
	account := []dnsdomain.Domain{{Name: "example.com", TTL: &ttl}, {Name: "EXAMPLE.com"}}

	plan := Match([]string{"home.example.com"}, account)
	if len(plan.Groups) != 1 || plan.Groups[0].Domain.TTL == nil {
		t.Errorf("expected first domain to win, got %+v", plan.Groups)
	}
}

func TestMatch_UnknownNeverGrouped(t *testing.T) {
	plan := Match([]string{"sub.unknown-domain.tld"}, domains("example.com"))

	if len(plan.Groups) != 0 {
		t.Errorf("expected no groups, got %+v", plan.Groups)
	}
	if diff := cmp.Diff([]string{"sub.unknown-domain.tld"}, plan.Unknown); diff != "" {
		t.Errorf("Unknown mismatch (-want +got):\n%s", diff)
	}
}

func TestMatch_NoDomains(t *testing.T) {
	plan := Match([]string{"a.example.com", "b.example.com"}, nil)
	if diff := cmp.Diff([]string{"a.example.com", "b.example.com"}, plan.Unknown); diff != "" {
		t.Errorf("Unknown mismatch (-want +got):\n%s", diff)
	}
}

func TestFindRecord(t *testing.T) {
	records := []dnsdomain.Record{
		{ID: 1, Type: "CNAME", Name: "home", Data: "elsewhere.example.net."},
		{ID: 2, Type: dnsdomain.RecordTypeAAAA, Name: "home", Data: "2001:db8::1"},
		{ID: 3, Type: dnsdomain.RecordTypeA, Name: "Home", Data: "198.51.100.1"},
		{ID: 4, Type: dnsdomain.RecordTypeA, Name: "home", Data: "198.51.100.2"},
		{ID: 5, Type: dnsdomain.RecordTypeA, Name: "@", Data: "198.51.100.3"},
		{ID: 6, Type: dnsdomain.RecordTypeA, Name: "www.home", Data: "198.51.100.4"},
	}

	tests := []struct {
		name       string
		fqdn       string
		recordType dnsdomain.RecordType
		wantID     int
	}{
		{"first matching A record", "home.example.com", dnsdomain.RecordTypeA, 3},
		{"case-insensitive fqdn", "HOME.EXAMPLE.COM", dnsdomain.RecordTypeA, 3},
		{"AAAA by family", "home.example.com", dnsdomain.RecordTypeAAAA, 2},
		{"apex", "example.com", dnsdomain.RecordTypeA, 5},
		{"multi-label name", "www.home.example.com", dnsdomain.RecordTypeA, 6},
		{"missing name", "nas.example.com", dnsdomain.RecordTypeA, 0},
		{"wrong type only", "www.home.example.com", dnsdomain.RecordTypeAAAA, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := FindRecord(records, "Example.com", tt.fqdn, tt.recordType)
			if tt.wantID == 0 {
				if rec != nil {
					t.Errorf("expected no record, got %+v", rec)
				}
				return
			}
			if rec == nil {
				t.Fatalf("expected record %d, got nil", tt.wantID)
			}
			if rec.ID != tt.wantID {
				t.Errorf("ID = %d, want %d", rec.ID, tt.wantID)
			}
		})
	}
}

func TestSameAddress(t *testing.T) {
	tests := []struct {
		data string
		addr string
		want bool
	}{
		{"198.51.100.1", "198.51.100.1", true},
		{"198.51.100.1", "198.51.100.99", false},
		{"2001:0db8:0:0:0:0:0:1", "2001:db8::1", true},
		{" 203.0.113.5 ", "203.0.113.5", true},
		{"not-an-ip", "203.0.113.5", false},
	}
	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			if got := sameAddress(tt.data, netip.MustParseAddr(tt.addr)); got != tt.want {
				t.Errorf("sameAddress(%q, %s) = %v, want %v", tt.data, tt.addr, got, tt.want)
			}
		})
	}
}
