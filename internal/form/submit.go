// internal/form/submit.go
//
// Forms subsystem: submission gate.
//
// Context
//   Submit is the one call every presentation layer uses to hand a finished
//   form to a Submitter.  Invalid forms never reach the Submitter.  A
//   successful delivery resets the form immediately; a failed one keeps
//   every value so the customer can retry.
//
//------------------------------------------------------------------------------

package form

import (
	"context"
	"errors"

	"github.com/yanizio/feedback/internal/feedback"
)

// ErrInFlight is returned when Submit is called on a state that is already
// being submitted.
var ErrInFlight = errors.New("form: submission already in progress")

// Submitter delivers a validated submission and returns the confirmation
// text to show the customer.  The relay service and the HTTP client both
// satisfy it.
type Submitter interface {
	Submit(ctx context.Context, s feedback.Submission) (string, error)
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, s feedback.Submission) (string, error)

// Submit calls f(ctx, s).
func (f SubmitterFunc) Submit(ctx context.Context, s feedback.Submission) (string, error) {
	return f(ctx, s)
}

// Outcome describes what happened to one Submit call.
type Outcome struct {
	Focus   string // field to focus when validation failed
	Sent    bool   // true once the submitter accepted the form
	Message string // submitter's confirmation text
	Err     error  // submitter failure, nil otherwise
}

// Submit validates s and, when it is clean, hands the values to sub.
//
// Invalid form: the returned state carries every error and Outcome.Focus
// names the first one.  Delivery failure: the returned state keeps all
// values with Submitting cleared, and Outcome.Err is set.  Success: the
// returned state is New().
func Submit(ctx context.Context, s State, sub Submitter) (State, Outcome) {
	if s.Submitting {
		return s, Outcome{Err: ErrInFlight}
	}

	checked, ok := s.Validate()
	if !ok {
		return checked, Outcome{Focus: checked.FirstError()}
	}

	pending := checked
	pending.Submitting = true
	msg, err := sub.Submit(ctx, pending.Values)
	if err != nil {
		pending.Submitting = false
		return pending, Outcome{Err: err}
	}
	return New(), Outcome{Sent: true, Message: msg}
}
