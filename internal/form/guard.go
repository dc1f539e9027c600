// internal/form/guard.go
//
// Forms subsystem: stateless CSRF and fill-time guard.
//
// Context
//   The HTML page embeds a hidden `form_token` input generated at render
//   time.  On POST the server verifies the token before touching any field:
//
//      base64url( nonce | unixMicro | HMAC_SHA256(key, nonce+unixMicro) )
//
//   •  nonce – 16 random bytes.
//   •  unixMicro – issue time, 8 bytes, big-endian.
//   •  HMAC – proves the token came from this service.
//
//   The issue time doubles as a bot trap: a form posted less than MinFill
//   after render is refused, and so is one older than MaxAge.  No server
//   state is kept, so any replica can verify any token.
//
//------------------------------------------------------------------------------

package form

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

// TokenField is the hidden input name carrying the guard token.
const TokenField = "form_token"

const (
	tokenBytes = 16 + 8 + sha256.Size // nonce + ts + sig
	minKeySize = 32

	// DefaultMinFill is the fastest a human plausibly completes the form.
	DefaultMinFill = 2 * time.Second
	// DefaultMaxAge bounds how long a rendered form stays submittable.
	DefaultMaxAge = 2 * time.Hour
)

var (
	ErrTokenInvalid = errors.New("form: security token invalid")
	ErrTooFast      = errors.New("form: submitted too quickly")
	ErrExpired      = errors.New("form: token expired")
)

// Guard issues and verifies form tokens.  Safe for concurrent use.
type Guard struct {
	key       []byte
	ephemeral bool
	now       func() time.Time

	MinFill time.Duration
	MaxAge  time.Duration
}

// NewGuard decodes key (base64url, at least 32 bytes).  An empty key
// generates a random one; tokens then die with the process, which
// Ephemeral reports so the caller can warn.
func NewGuard(key string) (*Guard, error) {
	g := &Guard{now: time.Now, MinFill: DefaultMinFill, MaxAge: DefaultMaxAge}
	if key == "" {
		g.key = make([]byte, minKeySize)
		if _, err := rand.Read(g.key); err != nil {
			return nil, err
		}
		g.ephemeral = true
		return g, nil
	}
	b, err := base64.RawURLEncoding.DecodeString(key)
	if err != nil {
		return nil, fmt.Errorf("form guard key: %w", err)
	}
	if len(b) < minKeySize {
		return nil, fmt.Errorf("form guard key: %d bytes, need %d", len(b), minKeySize)
	}
	g.key = b
	return g, nil
}

// Ephemeral reports whether the key was generated at startup.
func (g *Guard) Ephemeral() bool { return g.ephemeral }

// Token creates a new token.  Call once per form render.
func (g *Guard) Token() (string, error) {
	nonce := make([]byte, 16)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	ts := make([]byte, 8)
	binary.BigEndian.PutUint64(ts, uint64(g.now().UnixMicro()))

	buf := make([]byte, 0, tokenBytes)
	buf = append(buf, nonce...)
	buf = append(buf, ts...)
	buf = append(buf, g.sign(nonce, ts)...)

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Verify checks the signature first, then the fill-time window.
func (g *Guard) Verify(tok string) error {
	raw, err := base64.RawURLEncoding.DecodeString(tok)
	if err != nil || len(raw) != tokenBytes {
		return ErrTokenInvalid
	}

	nonce, ts, sig := raw[:16], raw[16:24], raw[24:]
	if !hmac.Equal(sig, g.sign(nonce, ts)) {
		return ErrTokenInvalid
	}

	age := g.now().Sub(time.UnixMicro(int64(binary.BigEndian.Uint64(ts))))
	switch {
	case age < -time.Minute: // clock skew beyond tolerance
		return ErrTokenInvalid
	case age < g.MinFill:
		return ErrTooFast
	case age > g.MaxAge:
		return ErrExpired
	}
	return nil
}

func (g *Guard) sign(nonce, ts []byte) []byte {
	mac := hmac.New(sha256.New, g.key)
	mac.Write(nonce)
	mac.Write(ts)
	return mac.Sum(nil)
}

// GuardMessage returns the customer-facing text for a Verify error.
func GuardMessage(err error) string {
	switch {
	case errors.Is(err, ErrTooFast):
		return "Form submitted too quickly.  Please take a moment and try again."
	case errors.Is(err, ErrExpired):
		return "Form expired.  Please reload and submit again."
	default:
		return "Security token invalid.  Please refresh and try again."
	}
}
