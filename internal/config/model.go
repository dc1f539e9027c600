// internal/config/model.go
//
// Typed configuration model for the feedback service.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from its overlay layers:
//
//   • optional `.env`                            – dotenv values,
//   • optional `conf/global.yaml`                – static file,
//   • bare legacy keys (`SMTP_HOST`, …)          – deployment compat,
//   • `FEEDBACK_`-prefixed environment overrides – highest precedence.
//
// Secret fields (`http.form_key`, `mail.password`, `mail.resend_api_key`)
// may hold a `vault:<mount/path>#<key>` reference.  The loader swaps
// references for the stored value before validation, so the model only
// ever carries plain strings once Load returns.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.

package config

import "time"

//
// HTTP section
//

// HTTP holds web-server tunables.  FormKey signs the HTML page's form
// tokens (base64url, 32+ bytes); empty means a random per-process key.
// TrustedProxies lists the CIDRs or addresses whose X-Forwarded-For and
// X-Real-IP headers are believed; empty means the peer is the client.
type HTTP struct {
	ListenAddr     string   `koanf:"listen_addr"     validate:"required,hostname_port"`
	ForceHTTPS     bool     `koanf:"force_https"`
	FormKey        string   `koanf:"form_key"`
	TrustedProxies []string `koanf:"trusted_proxies" validate:"dive,cidr|ip"`
}

//
// Log section
//

// Log configures the zap file logger.  An empty Dir means `<root>/logs`.
type Log struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
	Dir   string `koanf:"dir"`
	Tee   bool   `koanf:"tee"`
}

//
// Mail section
//

// Mail selects the outbound transport and the addresses a submission is
// relayed between.
//
// Port zero lets the SMTP transport pick 587, or 465 when Secure is set.
type Mail struct {
	Transport        string        `koanf:"transport"         validate:"oneof=smtp resend log"`
	Host             string        `koanf:"host"              validate:"required_if=Transport smtp"`
	Port             int           `koanf:"port"              validate:"gte=0,lte=65535"`
	Secure           bool          `koanf:"secure"`
	Username         string        `koanf:"username"`
	Password         string        `koanf:"password"`
	ResendAPIKey     string        `koanf:"resend_api_key"    validate:"required_if=Transport resend"`
	FromAddress      string        `koanf:"from_address"      validate:"required,email"`
	FromName         string        `koanf:"from_name"`
	OperatorAddress  string        `koanf:"operator_address"  validate:"required,email"`
	SendConfirmation bool          `koanf:"send_confirmation"`
	Timeout          time.Duration `koanf:"timeout"           validate:"gte=0"`
}

//
// GeoIP section
//

// GeoIP points at an optional MaxMind GeoLite2-City database.  Empty
// disables location lookups in notifications.
type GeoIP struct {
	CityDB string `koanf:"city_db"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime, never set in YAML or env.
type Paths struct {
	Root string // FEEDBACK_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads.
type Config struct {
	HTTP  HTTP  `koanf:"http"`
	Log   Log   `koanf:"log"`
	Mail  Mail  `koanf:"mail"`
	GeoIP GeoIP `koanf:"geoip"`
	Paths Paths `koanf:"-"`
}

// defaults fills zero values that have a documented default.
func (c *Config) defaults() {
	if c.HTTP.ListenAddr == "" {
		c.HTTP.ListenAddr = ":8080"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Mail.Transport == "" {
		c.Mail.Transport = "smtp"
	}
	if c.Mail.FromName == "" {
		c.Mail.FromName = "Garden Services Feedback"
	}
	if c.Mail.Timeout == 0 {
		c.Mail.Timeout = 10 * time.Second
	}
}
