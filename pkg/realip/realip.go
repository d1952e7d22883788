// Package realip resolves the client address of a request.
//
// X-Forwarded-For is only believed when the direct peer is a trusted proxy
// (TRUSTED_PROXIES). The header is then read right to left and the first
// hop that is not itself a trusted proxy is the client. Without trusted
// proxies the peer address is used as is, so a client cannot pick its own
// rate-limit bucket by sending the header.
package realip

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
)

var (
	mu      sync.RWMutex
	trusted []netip.Prefix
)

// SetTrustedProxies replaces the trusted set. Entries are IPs or CIDRs.
func SetTrustedProxies(list []string) error {
	parsed := make([]netip.Prefix, 0, len(list))
	for _, raw := range list {
		s := strings.TrimSpace(raw)
		if s == "" {
			continue
		}
		if strings.Contains(s, "/") {
			p, err := netip.ParsePrefix(s)
			if err != nil {
				return fmt.Errorf("realip: trusted proxy %q: %w", s, err)
			}
			parsed = append(parsed, p.Masked())
			continue
		}
		a, err := netip.ParseAddr(s)
		if err != nil {
			return fmt.Errorf("realip: trusted proxy %q: %w", s, err)
		}
		a = a.Unmap()
		parsed = append(parsed, netip.PrefixFrom(a, a.BitLen()))
	}

	mu.Lock()
	trusted = parsed
	mu.Unlock()
	return nil
}

// FromRequest returns the client IP of r.
func FromRequest(r *http.Request) string {
	peer := host(r.RemoteAddr)
	if !isTrusted(peer) {
		return peer
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop != "" && !isTrusted(hop) {
			return hop
		}
	}
	if real := strings.TrimSpace(r.Header.Get("X-Real-Ip")); real != "" {
		return real
	}
	return peer
}

func host(remoteAddr string) string {
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return h
	}
	return remoteAddr
}

func isTrusted(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()

	mu.RLock()
	defer mu.RUnlock()
	for _, p := range trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
