package wanip

import (
	"net/netip"

	dnsdomain "nathanbeddoewebdev/wanddns/internal/dns/domain"
)

var cgnatPrefix = netip.MustParsePrefix("100.64.0.0/10")

// Address is a resolved WAN address and the record type that carries it.
type Address struct {
	Addr netip.Addr

	// Type is A for IPv4 and AAAA for IPv6.
	Type dnsdomain.RecordType

	// Source is the endpoint that answered.
	Source string
}

// String returns the textual IP address.
func (a Address) String() string {
	return a.Addr.String()
}

// NewAddress classifies addr. IPv4-mapped IPv6 addresses are unmapped first.
func NewAddress(addr netip.Addr, source string) Address {
	addr = addr.Unmap()
	return Address{Addr: addr, Type: RecordType(addr), Source: source}
}

// RecordType returns the address record type for addr.
func RecordType(addr netip.Addr) dnsdomain.RecordType {
	if addr.Unmap().Is4() {
		return dnsdomain.RecordTypeA
	}
	return dnsdomain.RecordTypeAAAA
}

// IsCGNAT reports whether addr is inside 100.64.0.0/10.
func IsCGNAT(addr netip.Addr) bool {
	return cgnatPrefix.Contains(addr.Unmap())
}
