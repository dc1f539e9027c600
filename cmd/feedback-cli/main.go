// cmd/feedback-cli/main.go
//
// Feedback service – interactive terminal client.
//
// Asks the feedback form question by question, shows each field's error
// live until it clears, then posts the form to a running service's
// /api/feedback endpoint.  A delivery failure keeps every answer and offers
// to retry.
//
//	feedback-cli -endpoint https://feedback.example.com
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"time"

	"github.com/yanizio/feedback/internal/client"
	"github.com/yanizio/feedback/internal/feedback"
	"github.com/yanizio/feedback/internal/form"
)

func main() {
	endpoint := flag.String("endpoint", client.DefaultBaseURL, "base URL of the feedback service")
	timeout := flag.Duration("timeout", client.DefaultTimeout, "HTTP timeout per submission")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sub := client.New(*endpoint, client.WithTimeout(*timeout))
	if err := run(ctx, surveyPrompter{}, sub, os.Stdout); err != nil {
		if errors.Is(err, ErrAborted) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// run collects one form and submits it, retrying delivery failures on
// request.
func run(ctx context.Context, p Prompter, sub form.Submitter, out io.Writer) error {
	d, err := form.Feedback()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s\n%s\n\n", d.Title, d.Intro)

	s, err := collect(p, d)
	if err != nil {
		return err
	}

	ok, err := p.Confirm(d.Submit+"?", true)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(out, "Cancelled; nothing was sent.")
		return nil
	}

	for {
		start := time.Now()
		next, res := form.Submit(ctx, s, sub)

		var verr *feedback.ValidationError
		switch {
		case res.Sent:
			fmt.Fprintln(out, res.Message)
			return nil

		case res.Focus != "":
			fmt.Fprintln(out, focusLine(next, res.Focus))
			return feedback.ErrInvalid

		case errors.Is(res.Err, feedback.ErrMissingRequired):
			fmt.Fprintln(out, feedback.RequiredFieldsMessage)
			return res.Err

		case errors.As(res.Err, &verr):
			fmt.Fprintln(out, feedback.InvalidMessage)
			names := make([]string, 0, len(verr.Fields))
			for n := range verr.Fields {
				names = append(names, n)
			}
			sort.Strings(names)
			for _, n := range names {
				fmt.Fprintf(out, "  %s: %s\n", n, verr.Fields[n])
			}
			return res.Err
		}

		fmt.Fprintf(out, "Sending failed after %s: %v\n", time.Since(start).Round(time.Millisecond), res.Err)
		retry, err := p.Confirm("Try again?", true)
		if err != nil {
			return err
		}
		if !retry {
			return res.Err
		}
		s = next
	}
}

// focusLine names the field the form stopped on and its rule message.
func focusLine(s form.State, field string) string {
	return field + ": " + s.Errors.Get(field)
}
