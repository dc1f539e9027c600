// internal/mail/mail.go
//
// Feedback – outbound email.
//
// Context
//   The relay service composes messages; a Sender hands them to a transport.
//   Three transports share the Sender interface:
//     •  SMTP    – any SMTP relay, via github.com/wneessen/go-mail.
//     •  Resend  – the Resend HTTP API.
//     •  Log     – writes the message to the log and delivers nothing, for
//                   local development.
//   New picks one from Config.Transport.
//
// Notes
//   Each Send opens its own connection and honours ctx.  Nothing is pooled
//   or retried here.
//
//------------------------------------------------------------------------------

package mail

import (
	"context"
	"errors"
	"fmt"
	netmail "net/mail"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Transport names accepted by New.
const (
	TransportSMTP   = "smtp"
	TransportResend = "resend"
	TransportLog    = "log"
)

// ErrInvalidMessage is returned by Send when a message fails Validate.
var ErrInvalidMessage = errors.New("mail: invalid message")

// Sender delivers one message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
	Name() string
}

// Address is a display name plus mailbox.
type Address struct {
	Name  string
	Email string
}

// String formats the address for a From header, quoting the name as needed.
func (a Address) String() string {
	return (&netmail.Address{Name: a.Name, Address: a.Email}).String()
}

// Message is one outbound email.  HTML is optional; Text is always sent.
type Message struct {
	From    Address
	To      []string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

// Validate reports missing envelope fields.
func (m Message) Validate() error {
	var missing []string
	if m.From.Email == "" {
		missing = append(missing, "from")
	}
	if len(m.To) == 0 {
		missing = append(missing, "to")
	}
	if m.Subject == "" {
		missing = append(missing, "subject")
	}
	if m.Text == "" && m.HTML == "" {
		missing = append(missing, "body")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidMessage, strings.Join(missing, ", "))
	}
	return nil
}

// Config selects and configures a transport.
type Config struct {
	Transport    string
	Host         string
	Port         int
	Secure       bool // implicit TLS; otherwise STARTTLS when offered
	Username     string
	Password     string
	ResendAPIKey string
	Timeout      time.Duration
}

// New returns the Sender named by cfg.Transport.  log is used by the Log
// transport only.
func New(cfg Config, log *zap.SugaredLogger) (Sender, error) {
	switch cfg.Transport {
	case TransportSMTP, "":
		if cfg.Host == "" {
			return nil, errors.New("mail: smtp transport needs a host")
		}
		return NewSMTP(cfg), nil
	case TransportResend:
		if cfg.ResendAPIKey == "" {
			return nil, errors.New("mail: resend transport needs an API key")
		}
		return NewResend(cfg.ResendAPIKey), nil
	case TransportLog:
		return NewLog(log), nil
	}
	return nil, fmt.Errorf("mail: unknown transport %q", cfg.Transport)
}
