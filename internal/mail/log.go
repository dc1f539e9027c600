// internal/mail/log.go
//
// Log transport.
//
// Context
//   Development and CI runs have no SMTP relay.  Log writes the envelope and
//   body sizes to the structured log and returns nil so callers proceed as
//   if the message had been delivered.  Bodies are not logged: they carry
//   customer data.
//
//------------------------------------------------------------------------------

package mail

import (
	"context"

	"go.uber.org/zap"

	"github.com/yanizio/feedback/internal/logger"
)

// Log records messages instead of delivering them.
type Log struct {
	log *zap.SugaredLogger
}

// NewLog returns a Log sender.  A nil logger falls back to the request
// logger carried by ctx at send time.
func NewLog(log *zap.SugaredLogger) *Log {
	return &Log{log: log}
}

// Name implements Sender.
func (l *Log) Name() string { return TransportLog }

// Send implements Sender.
func (l *Log) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	log := l.log
	if log == nil {
		log = logger.FromContext(ctx)
	}
	log.Infow("mail (log transport)",
		"from", msg.From.String(),
		"to", msg.To,
		"reply_to", msg.ReplyTo,
		"subject", msg.Subject,
		"text_bytes", len(msg.Text),
		"html_bytes", len(msg.HTML),
	)
	return nil
}
