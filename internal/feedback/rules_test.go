// internal/feedback/rules_test.go
//
// Unit tests for the per-field rules and FieldErrors helpers.

package feedback

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidateName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", MsgNameRequired},
		{"   ", MsgNameRequired},
		{"A", MsgNameTooShort},
		{" A ", MsgNameTooShort},
		{"Jo", ""},
		{"Mary Ann", ""},
		{"O'Brien", MsgNameInvalid},
		{"R2D2", MsgNameInvalid},
		{"José", MsgNameInvalid},
		{strings.Repeat("a", 50), ""},
		{strings.Repeat("a", 51), MsgNameTooLong},
		{"  " + strings.Repeat("a", 50) + "  ", ""},
	}
	for _, c := range cases {
		if got := ValidateName(c.in); got != c.want {
			t.Errorf("ValidateName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestValidateEmailPrecedence(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", MsgEmailRequired},
		{"  ", MsgEmailRequired},
		{"not-an-email", MsgEmailInvalid},
		{"a@b", MsgEmailInvalid},
		{" user@gmail.com", MsgEmailInvalid},
		{"user@example.com", MsgEmailDomain},
		{"user@gmail.co", MsgEmailDomain},
		{"user@gmail.com", ""},
		{"User@GMAIL.COM", ""},
	}
	for _, c := range cases {
		if got := ValidateEmail(c.in); got != c.want {
			t.Errorf("ValidateEmail(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestValidateMessage(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", MsgMessageRequired},
		{"\n\t ", MsgMessageRequired},
		{"too short", MsgMessageTooShort},
		{"ten chars!", ""},
		{"   ten chars!   ", ""},
		{strings.Repeat("x", 1000), ""},
		{strings.Repeat("x", 1001), MsgMessageTooLong},
	}
	for _, c := range cases {
		if got := ValidateMessage(c.in); got != c.want {
			t.Errorf("ValidateMessage(len %d) = %q, want %q", len(c.in), got, c.want)
		}
	}
}

func TestRulesUseBrowserWhitespace(t *testing.T) {
	cases := []struct {
		rule     func(string) string
		in, want string
	}{
		{ValidateName, "Mary\u00a0Ann", ""},
		{ValidateName, "\u00a0Jo\u2003", ""},
		{ValidateName, "\ufeff\u00a0", MsgNameRequired},
		{ValidateName, "Jo\u200bAnn", MsgNameInvalid}, // zero-width space is not whitespace
		{ValidateEmail, "jane\u00a0doe@gmail.com", MsgEmailInvalid},
		{ValidateEmail, "\u3000", MsgEmailRequired},
		{ValidateMessage, "\u00a0ten chars!\u2028", ""},
	}
	for _, c := range cases {
		if got := c.rule(c.in); got != c.want {
			t.Errorf("rule(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestMessageLengthCountsUTF16Units(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{strings.Repeat("🌿", 5), ""},                       // 10 units
		{strings.Repeat("🌿", 4) + "a", MsgMessageTooShort}, // 9 units
		{strings.Repeat("🌿", 500), ""},
		{strings.Repeat("🌿", 501), MsgMessageTooLong},
		{strings.Repeat("é", 1000), ""},
	}
	for _, c := range cases {
		if got := ValidateMessage(c.in); got != c.want {
			t.Errorf("ValidateMessage(%d bytes) = %q, want %q", len(c.in), got, c.want)
		}
	}
}

func TestValidatorsArePure(t *testing.T) {
	cases := []struct {
		name string
		rule func(string) string
		in   string
	}{
		{"name ok", ValidateName, "Jane Doe"},
		{"name empty", ValidateName, " "},
		{"name short", ValidateName, "J"},
		{"name chars", ValidateName, "J4ne"},
		{"name long", ValidateName, strings.Repeat("a", 51)},
		{"email ok", ValidateEmail, "jane@gmail.com"},
		{"email empty", ValidateEmail, ""},
		{"email format", ValidateEmail, "jane@"},
		{"email domain", ValidateEmail, "jane@yahoo.com"},
		{"message ok", ValidateMessage, "Lovely tidy work."},
		{"message empty", ValidateMessage, "\t"},
		{"message short", ValidateMessage, "meh"},
		{"message long", ValidateMessage, strings.Repeat("x", 1001)},
	}
	for _, c := range cases {
		first, second := c.rule(c.in), c.rule(c.in)
		if first != second {
			t.Errorf("%s: first call %q, second call %q", c.name, first, second)
		}
	}

	s := Submission{Name: "J", Email: "jane@yahoo.com", Message: "meh"}
	if diff := cmp.Diff(ValidateFields(s), ValidateFields(s)); diff != "" {
		t.Fatalf("ValidateFields not repeatable (-first +second):\n%s", diff)
	}
}

func TestValidateFieldUnknown(t *testing.T) {
	if _, ok := ValidateField(FieldRating, "9"); ok {
		t.Fatal("rating must not carry a blocking rule")
	}
	if msg, ok := ValidateField(FieldName, "A"); !ok || msg != MsgNameTooShort {
		t.Fatalf("ValidateField(name) = %q, %v", msg, ok)
	}
}

func TestValidateFieldsIgnoresOptionalFields(t *testing.T) {
	s := Submission{
		Name:           "Jane Doe",
		Email:          "jane@gmail.com",
		Message:        "Great work on the hedges.",
		ServiceType:    "Bogus",
		AreasToImprove: []string{"Nope"},
	}
	if errs := ValidateFields(s); !errs.OK() {
		t.Fatalf("unexpected errors: %+v", errs)
	}
}

func TestFieldErrorsHelpers(t *testing.T) {
	var e FieldErrors
	if e.First() != "" || !e.OK() {
		t.Fatal("zero FieldErrors should be OK")
	}

	e = e.With(FieldMessage, "m").With(FieldEmail, "e").With("rating", "ignored")
	if got := e.First(); got != FieldEmail {
		t.Fatalf("First = %q, want email", got)
	}
	want := map[string]string{FieldEmail: "e", FieldMessage: "m"}
	if diff := cmp.Diff(want, e.Map()); diff != "" {
		t.Fatalf("Map mismatch (-want +got):\n%s", diff)
	}
	if e.With(FieldEmail, "").With(FieldMessage, "").OK() != true {
		t.Fatal("clearing every field should be OK")
	}
}

func TestStarBar(t *testing.T) {
	if got := StarBar(3); got != "★★★☆☆" {
		t.Fatalf("StarBar(3) = %q", got)
	}
	if got := StarBar(9); got != "★★★★★" {
		t.Fatalf("StarBar(9) = %q", got)
	}
}
