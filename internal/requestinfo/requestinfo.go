//
//  internal/requestinfo/requestinfo.go
//
//  Lightweight types and helpers that collect per-request metadata
//  (user-agent fingerprint, IP + geolocation, path, and timestamp).
//  These structs are inert.  They contain no pointers to database
//  handles or large buffers, so they are safe to log or JSON-encode.
//  Feedback notifications print them in their "submission origin" footer.
//
//  Dependencies
//  • internal/ua                       (UA parsing on avct/uasurfer)
//  • github.com/oschwald/geoip2-golang (MaxMind lookup)
//

package requestinfo

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/oschwald/geoip2-golang"

	"github.com/yanizio/feedback/internal/ua"
)

//
//  -----------------------------
//  Struct definitions
//  -----------------------------
//

// Geo holds IP-based geolocation hints.
// These are best-effort and may be empty if no DB is configured.
type Geo struct {
	IP         net.IP // Client address, forwarded only via trusted proxies
	CountryISO string // "US", "CA", "FR", ...
	City       string // "Chicago", "Paris", ...
}

// Location renders "City, CC", whichever parts are known.
func (g Geo) Location() string {
	switch {
	case g.City != "" && g.CountryISO != "":
		return g.City + ", " + g.CountryISO
	case g.CountryISO != "":
		return g.CountryISO
	}
	return g.City
}

// RequestInfo is stored in the request context by Enricher.Middleware.
type RequestInfo struct {
	UA          ua.Info
	Geo         Geo
	Path        string
	PrimaryLang string // first tag from Accept-Language ("en", "es", ...)
	Timestamp   time.Time
}

// Lines returns the human-readable origin lines used in notifications.
// Unknown attributes are omitted.
func (ri *RequestInfo) Lines() []string {
	if ri == nil {
		return nil
	}
	var out []string
	if ri.Geo.IP != nil {
		out = append(out, "IP address: "+ri.Geo.IP.String())
	}
	if loc := ri.Geo.Location(); loc != "" {
		out = append(out, "Location: "+loc)
	}
	if s := ri.UA.Summary(); s != "" {
		out = append(out, "Browser: "+s)
	}
	if ri.UA.IsBot {
		out = append(out, "Flagged as automated client")
	}
	if ri.PrimaryLang != "" {
		out = append(out, fmt.Sprintf("Language: %s", ri.PrimaryLang))
	}
	return out
}

//
//  -----------------------------
//  Public helper: FromContext
//  -----------------------------
//

type ctxKey struct{} // unexported, collision-proof

// NewContext returns a copy of ctx carrying info.
func NewContext(ctx context.Context, info *RequestInfo) context.Context {
	return context.WithValue(ctx, ctxKey{}, info)
}

// FromContext returns the pointer previously stored by the middleware.
// It returns nil if the middleware has not run.
func FromContext(ctx context.Context) *RequestInfo {
	v, _ := ctx.Value(ctxKey{}).(*RequestInfo)
	return v
}

//
//  -----------------------------
//  Internal helpers
//  -----------------------------
//

// primaryLang extracts the first language subtag before any ";q=" rule.
func primaryLang(al string) string {
	if al == "" {
		return ""
	}
	tag, _, _ := strings.Cut(al, ",")
	tag, _, _ = strings.Cut(strings.TrimSpace(tag), ";")
	return strings.ToLower(tag)
}

// lookupGeo returns best-effort Geo data.  A nil reader yields just the IP.
func lookupGeo(reader *geoip2.Reader, ip net.IP) Geo {
	if reader == nil || ip == nil {
		return Geo{IP: ip}
	}
	rec, err := reader.City(ip)
	if err != nil {
		return Geo{IP: ip}
	}
	return Geo{
		IP:         ip,
		CountryISO: rec.Country.IsoCode,
		City:       rec.City.Names["en"],
	}
}
