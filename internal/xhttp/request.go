package xhttp

import (
	"net"
	"net/http"
	"net/netip"
	"slices"
	"strings"
)

// GetRequestIP returns the client address the request claims. The first
// X-Forwarded-For hop wins, then X-Real-IP, then the connection's peer.
// Ports are stripped. The headers are caller-controlled, so use ClientIP
// for anything that enforces limits.
func GetRequestIP(r *http.Request) string {
	if xff := r.Header.Get(XForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := stripPort(strings.TrimSpace(first)); ip != "" {
			return ip
		}
	}
	if ip := stripPort(strings.TrimSpace(r.Header.Get(XRealIP))); ip != "" {
		return ip
	}
	return stripPort(r.RemoteAddr)
}

func stripPort(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

// ClientIP returns the client address as seen through the trusted proxies.
// Forwarding headers are only honored when the peer is trusted; the
// X-Forwarded-For chain is then walked from the right and the first untrusted
// hop wins. With no trusted proxies the peer address is returned.
func ClientIP(r *http.Request, trusted []netip.Prefix) string {
	peer := stripPort(r.RemoteAddr)
	if !isTrusted(peer, trusted) {
		return peer
	}

	hops := strings.Split(r.Header.Get(XForwardedFor), ",")
	for _, hop := range slices.Backward(hops) {
		ip := stripPort(strings.TrimSpace(hop))
		if ip == "" {
			continue
		}
		if !isTrusted(ip, trusted) {
			return ip
		}
	}
	if ip := stripPort(strings.TrimSpace(r.Header.Get(XRealIP))); ip != "" {
		return ip
	}
	return peer
}

func isTrusted(ip string, trusted []netip.Prefix) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
