// cmd/feedback-cli/main_test.go

package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yanizio/feedback/internal/feedback"
	"github.com/yanizio/feedback/internal/form"
)

// scripted answers prompts in order and records validator rejections.
type scripted struct {
	inputs   []string // Input and Multiline answers, tried in order
	selects  []int
	multi    [][]int
	confirms []bool
	rejected []string
}

func (s *scripted) text(validate func(string) error) (string, error) {
	for len(s.inputs) > 0 {
		v := s.inputs[0]
		s.inputs = s.inputs[1:]
		if err := validate(v); err != nil {
			s.rejected = append(s.rejected, err.Error())
			continue
		}
		return v, nil
	}
	return "", errors.New("script ran out of text answers")
}

func (s *scripted) Input(_, _ string, validate func(string) error) (string, error) {
	return s.text(validate)
}

func (s *scripted) Multiline(_, _ string, validate func(string) error) (string, error) {
	return s.text(validate)
}

func (s *scripted) Select(string, []string) (int, error) {
	v := s.selects[0]
	s.selects = s.selects[1:]
	return v, nil
}

func (s *scripted) MultiSelect(string, []string) ([]int, error) {
	v := s.multi[0]
	s.multi = s.multi[1:]
	return v, nil
}

func (s *scripted) Confirm(string, bool) (bool, error) {
	v := s.confirms[0]
	s.confirms = s.confirms[1:]
	return v, nil
}

// happyScript answers every field of the embedded definition.
func happyScript() *scripted {
	return &scripted{
		inputs: []string{
			"J", "Jane Doe", // name: too short, then fine
			"jane@yahoo.com", "jane@gmail.com", // email: wrong domain, then fine
			"Short", "The crew was punctual and tidy.", // message
		},
		// rating (5 stars is first), serviceType (skip + index 1),
		// serviceSatisfaction (skip), wouldRecommend (first option).
		selects:  []int{0, 1, 0, 0},
		multi:    [][]int{{4, 2}},
		confirms: []bool{true},
	}
}

func TestRunHappyPath(t *testing.T) {
	var got feedback.Submission
	sub := form.SubmitterFunc(func(_ context.Context, s feedback.Submission) (string, error) {
		got = s
		return "Thanks!", nil
	})

	p := happyScript()
	var out bytes.Buffer
	if err := run(context.Background(), p, sub, &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	want := feedback.Submission{
		Name:           "Jane Doe",
		Email:          "jane@gmail.com",
		Rating:         "5",
		ServiceType:    feedback.ServiceTypes[0],
		WouldRecommend: feedback.RecommendLevels[0].Value,
		AreasToImprove: []string{feedback.ImprovementAreas[4], feedback.ImprovementAreas[2]},
		Message:        "The crew was punctual and tidy.",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("submission mismatch (-want +got):\n%s", diff)
	}

	wantRejected := []string{feedback.MsgNameTooShort, feedback.MsgEmailDomain, feedback.MsgMessageTooShort}
	if diff := cmp.Diff(wantRejected, p.rejected); diff != "" {
		t.Fatalf("live errors (-want +got):\n%s", diff)
	}
	if !strings.Contains(out.String(), "Thanks!") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestRunRetriesDeliveryFailure(t *testing.T) {
	calls := 0
	sub := form.SubmitterFunc(func(context.Context, feedback.Submission) (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("connection refused")
		}
		return "Thanks!", nil
	})

	p := happyScript()
	p.confirms = []bool{true, true}
	var out bytes.Buffer
	if err := run(context.Background(), p, sub, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if calls != 2 || !strings.Contains(out.String(), "Sending failed") {
		t.Fatalf("calls = %d, output = %q", calls, out.String())
	}
}

func TestRunCancelled(t *testing.T) {
	sub := form.SubmitterFunc(func(context.Context, feedback.Submission) (string, error) {
		t.Fatal("submitter called after cancel")
		return "", nil
	})
	p := happyScript()
	p.confirms = []bool{false}
	var out bytes.Buffer
	if err := run(context.Background(), p, sub, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "Cancelled") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestRunServerRejection(t *testing.T) {
	sub := form.SubmitterFunc(func(context.Context, feedback.Submission) (string, error) {
		return "", &feedback.ValidationError{Fields: map[string]string{"rating": "Rating must be between 1 and 5"}}
	})
	var out bytes.Buffer
	err := run(context.Background(), happyScript(), sub, &out)
	if !errors.Is(err, feedback.ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
	if !strings.Contains(out.String(), "rating: Rating must be between 1 and 5") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestFocusLineShowsRuleMessage(t *testing.T) {
	s, ok := form.New().Validate()
	if ok {
		t.Fatal("empty form should not validate")
	}
	if got, want := focusLine(s, s.FirstError()), "name: "+feedback.MsgNameRequired; got != want {
		t.Fatalf("focusLine = %q, want %q", got, want)
	}

	s = s.Change(feedback.FieldName, "Jane Doe")
	if got, want := focusLine(s, s.FirstError()), "email: "+feedback.MsgEmailRequired; got != want {
		t.Fatalf("focusLine = %q, want %q", got, want)
	}
}
