// Package clientip resolves the caller's address behind reverse proxies.
//
// Forwarding headers are set by whoever sends the request, so they are only
// read when the direct peer is a trusted proxy. X-Forwarded-For is walked
// from the right and the first hop that is not a trusted proxy wins.
package clientip

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// Resolver extracts client addresses for a fixed set of trusted proxies.
type Resolver struct {
	trusted []netip.Prefix
}

// NewResolver returns a Resolver trusting the given networks. Without any,
// only RemoteAddr is used.
func NewResolver(trusted ...netip.Prefix) *Resolver {
	return &Resolver{trusted: trusted}
}

// ParseTrusted parses CIDRs and bare addresses, e.g. "10.0.0.0/8" or
// "127.0.0.1".
func ParseTrusted(values []string) ([]netip.Prefix, error) {
	out := make([]netip.Prefix, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if strings.Contains(v, "/") {
			p, err := netip.ParsePrefix(v)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidProxy, v)
			}
			out = append(out, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidProxy, v)
		}
		addr = addr.Unmap()
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out, nil
}

// IP returns the client address for r, or "" when none parses.
func (res *Resolver) IP(r *http.Request) string {
	peer, ok := remoteAddr(r.RemoteAddr)
	if !ok {
		return ""
	}
	if !res.isTrusted(peer) {
		return peer.String()
	}

	hops := r.Header.Values("X-Forwarded-For")
	for i := len(hops) - 1; i >= 0; i-- {
		parts := strings.Split(hops[i], ",")
		for j := len(parts) - 1; j >= 0; j-- {
			addr, ok := parseAddr(parts[j])
			if !ok {
				// An unparsable hop was not written by a trusted proxy.
				return peer.String()
			}
			if !res.isTrusted(addr) {
				return addr.String()
			}
		}
	}

	if addr, ok := parseAddr(r.Header.Get("X-Real-IP")); ok {
		return addr.String()
	}
	return peer.String()
}

func (res *Resolver) isTrusted(addr netip.Addr) bool {
	for _, p := range res.trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

var direct = NewResolver()

// GetIP returns the peer address of r, ignoring forwarding headers.
func GetIP(r *http.Request) string {
	return direct.IP(r)
}

func remoteAddr(s string) (netip.Addr, bool) {
	host, _, err := net.SplitHostPort(s)
	if err != nil {
		host = s
	}
	return parseAddr(host)
}

func parseAddr(s string) (netip.Addr, bool) {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap().WithZone(""), true
}
