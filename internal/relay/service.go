// internal/relay/service.go
//
// Feedback relay: check, compose, send.
//
// Context
//   Service is the server side of a submission.  It re-checks the payload
//   (never trusting the client), emails the operator, and optionally thanks
//   the customer.  The HTTP handler and the server-rendered page both call
//   Submit; neither talks to a mail transport directly.
//
// Workflow
//   1.  feedback.Check: presence, field rules, vocabularies.
//   2.  Compose and send the notification.  Failure here fails the
//       submission with ErrDelivery.
//   3.  When confirmations are enabled, compose and send one to the
//       customer.  Failure here is logged and counted, and the submission
//       still succeeds: the operator already has the feedback.
//
// Notes
//   Sends are sequential and use the caller's context, so a disconnecting
//   client cancels an in-progress dial.  Nothing is retried.
//
//------------------------------------------------------------------------------

package relay

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yanizio/feedback/internal/feedback"
	"github.com/yanizio/feedback/internal/logger"
	"github.com/yanizio/feedback/internal/mail"
	"github.com/yanizio/feedback/internal/metrics"
)

// Customer-facing outcome messages.
const (
	SuccessMessage = "Feedback submitted successfully! Thank you for helping us improve our services."
	FailureMessage = "Failed to submit feedback. Please try again later or contact us directly."
)

// DefaultFromName labels the operator notification's sender.
const DefaultFromName = "Garden Services Feedback"

// ErrDelivery wraps every failure to hand the notification to the
// transport.
var ErrDelivery = errors.New("relay: mail delivery failed")

// Config addresses the relay's mail.
type Config struct {
	FromAddress      string
	FromName         string
	OperatorAddress  string
	SendConfirmation bool
}

// Service relays submissions to the operator inbox.
type Service struct {
	cfg    Config
	sender mail.Sender
	tmpl   *templates
	now    func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithClock overrides the timestamp source used in notifications.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New returns a Service sending through sender.
func New(cfg Config, sender mail.Sender, opts ...Option) (*Service, error) {
	if cfg.FromAddress == "" || cfg.OperatorAddress == "" {
		return nil, errors.New("relay: from and operator addresses are required")
	}
	if cfg.FromName == "" {
		cfg.FromName = DefaultFromName
	}
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("relay: templates: %w", err)
	}
	s := &Service{cfg: cfg, sender: sender, tmpl: tmpl, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Submit checks sub and relays it.  It returns SuccessMessage once the
// operator notification has been handed to the transport.  Errors wrap
// feedback.ErrMissingRequired, feedback.ErrInvalid, or ErrDelivery.
func (s *Service) Submit(ctx context.Context, sub feedback.Submission) (string, error) {
	log := logger.FromContext(ctx)

	if err := feedback.Check(sub); err != nil {
		metrics.Submissions.WithLabelValues(metrics.OutcomeRejected).Inc()
		log.Infow("feedback rejected", "error", err)
		return "", err
	}
	sub = sub.Normalize()
	l := s.newLetter(ctx, sub)

	note, err := s.composeNotification(l)
	if err == nil {
		err = s.send(ctx, metrics.KindNotification, note)
	}
	if err != nil {
		metrics.Submissions.WithLabelValues(metrics.OutcomeFailed).Inc()
		return "", fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	log.Infow("feedback relayed", "rating", l.Rating, "transport", s.sender.Name())

	if s.cfg.SendConfirmation {
		conf, err := s.composeConfirmation(l)
		if err == nil {
			err = s.send(ctx, metrics.KindConfirmation, conf)
		}
		if err != nil {
			log.Warnw("confirmation email failed", "error", err)
		}
	}

	metrics.Submissions.WithLabelValues(metrics.OutcomeSent).Inc()
	return SuccessMessage, nil
}

// send hands msg to the transport and records timing and failures.
func (s *Service) send(ctx context.Context, kind string, msg mail.Message) error {
	start := time.Now()
	err := s.sender.Send(ctx, msg)
	metrics.MailSendSeconds.WithLabelValues(s.sender.Name(), kind).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MailErrors.WithLabelValues(kind).Inc()
		return fmt.Errorf("send %s: %w", kind, err)
	}
	return nil
}
