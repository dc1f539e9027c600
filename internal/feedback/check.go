// internal/feedback/check.go
//
// Feedback – server-side submission check.
//
// Context
//   The submission endpoint never trusts the client.  Check runs in two
//   stages.  First a presence check on the four required fields, whose
//   failure keeps the legacy single-message response.  Then the same
//   per-field rules the form applies, plus vocabulary and rating checks
//   expressed as go-playground/validator tags on Submission.
//
// Notes
//   •  wouldRecommend is required by the form but optional here, so older
//      clients that omit it are still accepted.  A present value must be in
//      the vocabulary.
//   •  Validation failures are user errors.  Callers tell them apart from
//      delivery failures with errors.Is / errors.As.
//
//------------------------------------------------------------------------------

package feedback

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Sentinel errors.
var (
	ErrMissingRequired = errors.New("feedback: missing required field")
	ErrInvalid         = errors.New("feedback: invalid submission")
)

// Response messages for rejected submissions.
const (
	RequiredFieldsMessage = "Required fields: Name, Email, Rating, and Message are required"
	InvalidMessage        = "Please correct the highlighted fields"
)

// ValidationError carries one message per offending field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("feedback: invalid fields: %s", strings.Join(keys, ", "))
}

// Is lets errors.Is(err, ErrInvalid) match any *ValidationError.
func (e *ValidationError) Is(target error) bool { return target == ErrInvalid }

// CheckPresence fails with ErrMissingRequired when name, email, rating, or
// message is empty after trimming.
func CheckPresence(s Submission) error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{FieldName, s.Name},
		{FieldEmail, s.Email},
		{FieldRating, string(s.Rating)},
		{FieldMessage, s.Message},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingRequired, strings.Join(missing, ", "))
	}
	return nil
}

// Check runs the presence check and then every field rule.  It returns nil,
// an error wrapping ErrMissingRequired, or a *ValidationError.
func Check(s Submission) error {
	if err := CheckPresence(s); err != nil {
		return err
	}

	fields := ValidateFields(s).Map()
	if err := structValidator.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("feedback: validate: %w", err)
		}
		for _, fe := range verrs {
			name, _, _ := strings.Cut(fe.Field(), "[")
			if _, seen := fields[name]; !seen {
				fields[name] = tagMessage(name, fe.Tag())
			}
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

/*──────────────────────────── validator ─────────────────────────*/

var structValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names so field errors line up with the wire contract.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	register := func(tag string, allowed []string) {
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return slices.Contains(allowed, fl.Field().String())
		}); err != nil {
			panic(err)
		}
	}
	register("service_type", ServiceTypes)
	register("satisfaction", SatisfactionLevels)
	register("recommend", recommendValues())
	register("improvement_area", ImprovementAreas)
	return v
}

func tagMessage(field, tag string) string {
	switch field {
	case FieldRating:
		return "Please select a rating between 1 and 5"
	case FieldServiceType:
		return "Please choose one of the listed services"
	case FieldSatisfaction:
		return "Please choose one of the listed satisfaction levels"
	case FieldRecommend:
		return "Please choose one of the listed recommendation answers"
	case FieldAreasToImprove:
		if tag == "unique" {
			return "Each improvement area may be selected only once"
		}
		return "Please choose improvement areas from the list"
	}
	return "Invalid value"
}
