package wanip

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"net/url"
	"strings"
	"time"

	"github.com/miekg/dns"
)

// schemeDNS marks endpoints answered by a DNS query rather than HTTP, e.g.
//
//	dns://resolver1.opendns.com/myip.opendns.com?type=A
//	dns://ns1.google.com/o-o.myaddr.l.google.com?type=TXT
const schemeDNS = "dns"

const dnsLookupTimeout = 5 * time.Second

// lookupDNS asks the nameserver in u.Host for the name in u.Path and returns
// the first A/AAAA answer, or the first TXT string that parses as an address.
func (r *Resolver) lookupDNS(ctx context.Context, u *url.URL) (netip.Addr, error) {
	qtype, err := queryType(u.Query().Get("type"))
	if err != nil {
		return netip.Addr{}, err
	}

	server := u.Host
	if u.Port() == "" {
		server = net.JoinHostPort(u.Hostname(), "53")
	}
	name := dns.Fqdn(strings.TrimPrefix(u.Path, "/"))

	m := new(dns.Msg)
	m.SetQuestion(name, qtype)
	m.RecursionDesired = false

	ctx, cancel := context.WithTimeout(ctx, dnsLookupTimeout)
	defer cancel()

	resp, _, err := r.dnsClient.ExchangeContext(ctx, m, server)
	if err != nil {
		return netip.Addr{}, fmt.Errorf("dns query to %s failed: %w", server, err)
	}
	if resp.Rcode != dns.RcodeSuccess {
		return netip.Addr{}, fmt.Errorf("dns query to %s returned %s", server, dns.RcodeToString[resp.Rcode])
	}

	for _, rr := range resp.Answer {
		switch rr := rr.(type) {
		case *dns.A:
			if addr, ok := netip.AddrFromSlice(rr.A); ok {
				return addr.Unmap(), nil
			}
		case *dns.AAAA:
			if addr, ok := netip.AddrFromSlice(rr.AAAA); ok {
				return addr, nil
			}
		case *dns.TXT:
			for _, txt := range rr.Txt {
				if addr, err := netip.ParseAddr(strings.TrimSpace(txt)); err == nil {
					return addr, nil
				}
			}
		}
	}
	return netip.Addr{}, fmt.Errorf("dns query to %s for %s returned no address", server, name)
}

func queryType(s string) (uint16, error) {
	switch strings.ToUpper(s) {
	case "", "A":
		return dns.TypeA, nil
	case "AAAA":
		return dns.TypeAAAA, nil
	case "TXT":
		return dns.TypeTXT, nil
	}
	return 0, fmt.Errorf("unsupported dns query type %q", s)
}
