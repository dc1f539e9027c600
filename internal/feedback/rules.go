// internal/feedback/rules.go
//
// Feedback – per-field validation rules.
//
// Context
//   Only name, email, and message carry blocking rules.  Each rule returns
//   the first failing message in a fixed precedence order, or "" when the
//   value is acceptable.  The same functions back live validation in the
//   form state, the terminal client, and the server-side check, so a value
//   accepted by one layer is accepted by all of them.
//
// Notes
//   •  Lengths are UTF-16 code units of the trimmed value, the unit browser
//      inputs count in, so a character outside the BMP (most emoji) counts
//      as two.
//   •  "Whitespace" is the browser's set: ASCII blanks plus \v, the Unicode
//      space separators, U+2028/U+2029 and U+FEFF.  Trimming and both
//      patterns use it, so a name typed with a no-break space is accepted.
//   •  The email pattern is applied to the value as typed, so surrounding
//      blanks fail the format check.
//
//------------------------------------------------------------------------------

package feedback

import (
	"regexp"
	"strings"
	"unicode"
)

// Length limits.
const (
	MinNameLength    = 2
	MaxNameLength    = 50
	MinMessageLength = 10
	MaxMessageLength = 1000
)

// RequiredDomain is the only accepted email domain.
const RequiredDomain = "@gmail.com"

// space is the browser's whitespace class, for use inside [...].
const space = `\s\x0B\p{Zs}\x{2028}\x{2029}\x{FEFF}`

var (
	namePattern  = regexp.MustCompile(`^[A-Za-z` + space + `]+$`)
	emailPattern = regexp.MustCompile(`^[^` + space + `@]+@[^` + space + `@]+\.[^` + space + `@]+$`)
)

// Rule messages.
const (
	MsgNameRequired    = "Name is required"
	MsgNameTooShort    = "Name must be at least 2 characters long"
	MsgNameInvalid     = "Name can only contain letters and spaces"
	MsgNameTooLong     = "Name cannot exceed 50 characters"
	MsgEmailRequired   = "Email is required"
	MsgEmailInvalid    = "Please enter a valid email address"
	MsgEmailDomain     = "Only Gmail addresses are allowed (@gmail.com)"
	MsgMessageRequired = "Feedback message is required"
	MsgMessageTooShort = "Please provide at least 10 characters of feedback"
	MsgMessageTooLong  = "Feedback cannot exceed 1000 characters"
)

// ValidateName checks the customer's name.
func ValidateName(v string) string {
	t := trim(v)
	switch n := length(t); {
	case n == 0:
		return MsgNameRequired
	case n < MinNameLength:
		return MsgNameTooShort
	case !namePattern.MatchString(t):
		return MsgNameInvalid
	case n > MaxNameLength:
		return MsgNameTooLong
	}
	return ""
}

// ValidateEmail checks the reply address.
func ValidateEmail(v string) string {
	switch {
	case trim(v) == "":
		return MsgEmailRequired
	case !emailPattern.MatchString(v):
		return MsgEmailInvalid
	case !strings.HasSuffix(strings.ToLower(v), RequiredDomain):
		return MsgEmailDomain
	}
	return ""
}

// ValidateMessage checks the free-text feedback.
func ValidateMessage(v string) string {
	switch n := length(trim(v)); {
	case n == 0:
		return MsgMessageRequired
	case n < MinMessageLength:
		return MsgMessageTooShort
	case n > MaxMessageLength:
		return MsgMessageTooLong
	}
	return ""
}

// ValidateField runs the rule for field.  ok is false for fields without a
// blocking rule.
func ValidateField(field, value string) (msg string, ok bool) {
	switch field {
	case FieldName:
		return ValidateName(value), true
	case FieldEmail:
		return ValidateEmail(value), true
	case FieldMessage:
		return ValidateMessage(value), true
	}
	return "", false
}

// ValidateFields runs every blocking rule against s.
func ValidateFields(s Submission) FieldErrors {
	return FieldErrors{
		Name:    ValidateName(s.Name),
		Email:   ValidateEmail(s.Email),
		Message: ValidateMessage(s.Message),
	}
}

func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\u2028', '\u2029', '\uFEFF':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

func trim(v string) string { return strings.TrimFunc(v, isSpace) }

// length counts UTF-16 code units.
func length(v string) int {
	n := 0
	for _, r := range v {
		if r > 0xFFFF {
			n += 2
		} else {
			n++
		}
	}
	return n
}

/*──────────────────────────── FieldErrors ───────────────────────*/

// FieldErrors holds the current message for each blocking field.  An empty
// string means the field is valid.
type FieldErrors struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Message string `json:"message,omitempty"`
}

// OK reports whether no field carries an error.
func (e FieldErrors) OK() bool {
	return e.Name == "" && e.Email == "" && e.Message == ""
}

// Get returns the message for field.
func (e FieldErrors) Get(field string) string {
	switch field {
	case FieldName:
		return e.Name
	case FieldEmail:
		return e.Email
	case FieldMessage:
		return e.Message
	}
	return ""
}

// With returns a copy with field's message replaced.  Unknown fields are
// ignored.
func (e FieldErrors) With(field, msg string) FieldErrors {
	switch field {
	case FieldName:
		e.Name = msg
	case FieldEmail:
		e.Email = msg
	case FieldMessage:
		e.Message = msg
	}
	return e
}

// First returns the first field, in form order, that carries an error.
func (e FieldErrors) First() string {
	switch {
	case e.Name != "":
		return FieldName
	case e.Email != "":
		return FieldEmail
	case e.Message != "":
		return FieldMessage
	}
	return ""
}

// Map returns the non-empty messages keyed by field name.
func (e FieldErrors) Map() map[string]string {
	out := make(map[string]string, 3)
	for _, f := range []string{FieldName, FieldEmail, FieldMessage} {
		if msg := e.Get(f); msg != "" {
			out[f] = msg
		}
	}
	return out
}
