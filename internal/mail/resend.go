// internal/mail/resend.go
//
// Resend HTTP API transport.

package mail

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// Resend sends through the Resend API.
type Resend struct {
	client *resend.Client
}

// NewResend returns a Resend sender authenticated with apiKey.
func NewResend(apiKey string) *Resend {
	return &Resend{client: resend.NewClient(apiKey)}
}

// Name implements Sender.
func (r *Resend) Name() string { return TransportResend }

// Send implements Sender.
func (r *Resend) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	sent, err := r.client.Emails.SendWithContext(ctx, resendRequest(msg))
	if err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	if sent == nil || sent.Id == "" {
		return fmt.Errorf("resend: empty response id")
	}
	return nil
}

func resendRequest(msg Message) *resend.SendEmailRequest {
	return &resend.SendEmailRequest{
		From:    msg.From.String(),
		To:      msg.To,
		ReplyTo: msg.ReplyTo,
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	}
}
