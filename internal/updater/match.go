package updater

import (
	"net/netip"
	"strings"

	dnsdomain "nathanbeddoewebdev/wanddns/internal/dns/domain"
)

// Group is one account domain and the requested FQDNs that resolved to it,
// in request order.
type Group struct {
	Domain dnsdomain.Domain
	FQDNs  []string
}

// Plan is the per-cycle correlation of requested FQDNs to account domains.
type Plan struct {
	// Groups are ordered by the first request that matched each domain.
	Groups []Group

	// Unknown holds FQDNs matching no domain, in request order.
	Unknown []string
}

// Match assigns every requested FQDN to the account domain whose name is the
// longest case-insensitive suffix of it. Ties can only occur between equal
// names and resolve to the first such domain in account order.
func Match(fqdns []string, domains []dnsdomain.Domain) Plan {
	var plan Plan
	index := make(map[int]int) // domains index -> plan.Groups index

	for _, fqdn := range fqdns {
		name := normalizeName(fqdn)

		best := -1
		for i, d := range domains {
			dn := normalizeName(d.Name)
			if dn == "" || !strings.HasSuffix(name, dn) {
				continue
			}
			if best == -1 || len(dn) > len(normalizeName(domains[best].Name)) {
				best = i
			}
		}

		if best == -1 {
			plan.Unknown = append(plan.Unknown, fqdn)
			continue
		}

		g, ok := index[best]
		if !ok {
			g = len(plan.Groups)
			index[best] = g
			plan.Groups = append(plan.Groups, Group{Domain: domains[best]})
		}
		plan.Groups[g].FQDNs = append(plan.Groups[g].FQDNs, fqdn)
	}

	return plan
}

// FindRecord returns the first record of type recordType whose fully
// qualified name equals fqdn, or nil. The apex record "@" matches the
// domain name itself.
func FindRecord(records []dnsdomain.Record, domainName, fqdn string, recordType dnsdomain.RecordType) *dnsdomain.Record {
	want := normalizeName(fqdn)
	zone := normalizeName(domainName)

	for i := range records {
		rec := &records[i]
		if rec.Type != recordType {
			continue
		}
		if recordFQDN(rec.Name, zone) == want {
			return rec
		}
	}
	return nil
}

func recordFQDN(name, zone string) string {
	name = normalizeName(name)
	if name == dnsdomain.ApexName || name == "" {
		return zone
	}
	return name + "." + zone
}

// normalizeName lowercases and strips surrounding whitespace and a trailing dot.
func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSuffix(strings.TrimSpace(s), "."))
}

// sameAddress reports whether record data already holds addr. Both sides are
// compared as parsed addresses when possible so equivalent IPv6 spellings match.
func sameAddress(data string, addr netip.Addr) bool {
	if parsed, err := netip.ParseAddr(strings.TrimSpace(data)); err == nil {
		return parsed.Unmap() == addr.Unmap()
	}
	return data == addr.String()
}
