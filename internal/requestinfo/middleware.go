// internal/requestinfo/middleware.go
//
// HTTP middleware that enriches each request with *RequestInfo.
//
/*
Context
--------
This handler sits after request-id and access logging.  For every request
it:

  1. Parses the User-Agent header and Accept-Language list.
  2. Resolves the client IP.  Forwarding headers are honoured only when
     the direct peer is a configured trusted proxy; otherwise the peer
     address in `r.RemoteAddr` is the client.
  3. Performs a GeoLite2 lookup when a database is configured.
  4. Stores a `*RequestInfo` value in `request.Context` under an
     unexported key, so the relay service can describe where a
     submission came from without access to the request.

Notes
-----
  • The GeoLite2 database is optional.  Without it Geo carries only the IP.
  • X-Forwarded-For is read right to left, skipping trusted hops, so an
    entry prepended by the caller never wins over the proxy's own.
  • geoip2.Reader is safe for concurrent reads.
*/
package requestinfo

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/oschwald/geoip2-golang"

	"github.com/yanizio/feedback/internal/logger"
	"github.com/yanizio/feedback/internal/ua"
)

/*──────────────────────────── enricher ─────────────────────────────────────*/

// Enricher owns the optional GeoLite2 reader and the trusted proxy list.
type Enricher struct {
	geo     *geoip2.Reader
	proxies []*net.IPNet
}

// NewEnricher opens the GeoLite2-City database at dbPath.  An empty path
// disables geolocation.  trustedProxies are CIDRs or bare addresses whose
// forwarding headers are believed.
func NewEnricher(dbPath string, trustedProxies ...string) (*Enricher, error) {
	proxies, err := parseProxies(trustedProxies)
	if err != nil {
		return nil, err
	}
	if dbPath == "" {
		return &Enricher{proxies: proxies}, nil
	}
	r, err := geoip2.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("requestinfo: open GeoLite2 DB: %w", err)
	}
	return &Enricher{geo: r, proxies: proxies}, nil
}

func parseProxies(list []string) ([]*net.IPNet, error) {
	out := make([]*net.IPNet, 0, len(list))
	for _, p := range list {
		p = strings.TrimSpace(p)
		if !strings.Contains(p, "/") {
			ip := net.ParseIP(p)
			if ip == nil {
				return nil, fmt.Errorf("requestinfo: bad trusted proxy %q", p)
			}
			bits := 8 * net.IPv6len
			if ip4 := ip.To4(); ip4 != nil {
				ip, bits = ip4, 8*net.IPv4len
			}
			out = append(out, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, n, err := net.ParseCIDR(p)
		if err != nil {
			return nil, fmt.Errorf("requestinfo: bad trusted proxy %q: %w", p, err)
		}
		out = append(out, n)
	}
	return out, nil
}

// Close releases the GeoLite2 reader, if any.
func (e *Enricher) Close() error {
	if e.geo == nil {
		return nil
	}
	return e.geo.Close()
}

/*──────────────────────────── middleware ───────────────────────────────────*/

// Middleware wraps an http.Handler, attaches *RequestInfo, and forwards.
func (e *Enricher) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := &RequestInfo{
			UA:          ua.Parse(r.UserAgent()),
			Geo:         lookupGeo(e.geo, e.clientIP(r)),
			Path:        r.URL.Path,
			PrimaryLang: primaryLang(r.Header.Get("Accept-Language")),
			Timestamp:   time.Now().UTC(),
		}

		logger.FromContext(r.Context()).Debugw("request info",
			"ip", info.Geo.IP,
			"country", info.Geo.CountryISO,
			"city", info.Geo.City,
			"browser", info.UA.Browser,
			"device", info.UA.Device,
			"bot", info.UA.IsBot,
		)

		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), info)))
	})
}

/*──────────────────────────── client IP helper ─────────────────────────────*/

// clientIP returns the peer address unless the peer is a trusted proxy.
// Behind a trusted proxy it takes the right-most X-Forwarded-For entry that
// is not itself trusted, then X-Real-IP, then the peer.
func (e *Enricher) clientIP(r *http.Request) net.IP {
	var peer net.IP
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		peer = net.ParseIP(host)
	}
	if peer == nil || !e.trusted(peer) {
		return peer
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			ip := net.ParseIP(strings.TrimSpace(hops[i]))
			if ip != nil && !e.trusted(ip) {
				return ip
			}
		}
	}
	if ip := net.ParseIP(strings.TrimSpace(r.Header.Get("X-Real-Ip"))); ip != nil {
		return ip
	}
	return peer
}

func (e *Enricher) trusted(ip net.IP) bool {
	for _, n := range e.proxies {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}
