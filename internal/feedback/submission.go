// internal/feedback/submission.go
//
// Feedback – submission model and vocabularies.
//
// Context
//   A Submission is the payload every presentation layer (HTML page,
//   terminal client, browser script) posts to the submission endpoint.  The
//   JSON keys are the fixed wire contract.  The vocabularies below are the
//   only accepted values for the optional choice fields, so the form
//   definition, the terminal client, and the server all read them from here.
//
// Notes
//   Rating travels as a string ("1"–"5").  Clients that send a bare JSON
//   number are accepted and normalised to the same string.
//
//------------------------------------------------------------------------------

package feedback

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Field names shared by the validator, the form state, and error maps.
const (
	FieldName           = "name"
	FieldEmail          = "email"
	FieldRating         = "rating"
	FieldServiceType    = "serviceType"
	FieldSatisfaction   = "serviceSatisfaction"
	FieldRecommend      = "wouldRecommend"
	FieldAreasToImprove = "areasToImprove"
	FieldMessage        = "message"
)

// Submission is one customer's feedback.
type Submission struct {
	Name                string   `json:"name"`
	Email               string   `json:"email"`
	Rating              Rating   `json:"rating" validate:"omitempty,oneof=1 2 3 4 5"`
	ServiceType         string   `json:"serviceType" validate:"omitempty,service_type"`
	ServiceSatisfaction string   `json:"serviceSatisfaction" validate:"omitempty,satisfaction"`
	WouldRecommend      string   `json:"wouldRecommend" validate:"omitempty,recommend"`
	AreasToImprove      []string `json:"areasToImprove" validate:"omitempty,unique,dive,improvement_area"`
	Message             string   `json:"message"`
}

// Normalize returns a copy with surrounding whitespace removed from the free
// text fields.  The areas slice is copied so the result shares nothing with s.
func (s Submission) Normalize() Submission {
	out := s
	out.Name = strings.TrimSpace(s.Name)
	out.Email = strings.TrimSpace(s.Email)
	out.Message = strings.TrimSpace(s.Message)
	out.AreasToImprove = slices.Clone(s.AreasToImprove)
	if out.AreasToImprove == nil {
		out.AreasToImprove = []string{}
	}
	return out
}

// IsField reports whether name is one of the Submission JSON keys.
func IsField(name string) bool {
	switch name {
	case FieldName, FieldEmail, FieldRating, FieldServiceType, FieldSatisfaction,
		FieldRecommend, FieldAreasToImprove, FieldMessage:
		return true
	}
	return false
}

/*──────────────────────────── rating ────────────────────────────*/

// Rating is the 1–5 star score.  The zero value means "not yet chosen".
type Rating string

// MaxStars is the top of the rating scale.
const MaxStars = 5

// Stars returns the numeric score, or 0 when the rating is unset or invalid.
func (r Rating) Stars() int {
	n, err := strconv.Atoi(strings.TrimSpace(string(r)))
	if err != nil || n < 1 || n > MaxStars {
		return 0
	}
	return n
}

// UnmarshalJSON accepts either "4" or 4.
func (r *Rating) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*r = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = Rating(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("rating: %w", err)
	}
	*r = Rating(n.String())
	return nil
}

/*──────────────────────────── vocabularies ───────────────────────*/

// Option is one choice in a vocabulary.  For most vocabularies Value and
// Label are the same string.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// ServiceTypes lists the services a customer can comment on.
var ServiceTypes = []string{
	"Lawn Maintenance",
	"Landscaping",
	"Garden Care",
	"Tree Services",
	"Irrigation Systems",
	"Seasonal Cleanup",
}

// SatisfactionLevels is ordered from best to worst.
var SatisfactionLevels = []string{
	"Very Satisfied",
	"Satisfied",
	"Neutral",
	"Unsatisfied",
	"Very Unsatisfied",
}

// RecommendLevels maps the wire value to its display label.
var RecommendLevels = []Option{
	{Value: "definitely", Label: "Definitely Yes"},
	{Value: "probably", Label: "Probably Yes"},
	{Value: "not-sure", Label: "Not Sure"},
	{Value: "probably-not", Label: "Probably Not"},
	{Value: "definitely-not", Label: "Definitely Not"},
}

// ImprovementAreas are the checkbox choices for "what could we do better".
var ImprovementAreas = []string{
	"Timeliness of Service",
	"Quality of Work",
	"Communication",
	"Cleanliness",
	"Pricing",
	"Expertise",
	"Follow-up",
	"Equipment Quality",
}

// Vocabulary names used by form definitions.
const (
	VocabRating       = "ratings"
	VocabServiceTypes = "service_types"
	VocabSatisfaction = "satisfaction_levels"
	VocabRecommend    = "recommend_levels"
	VocabImprovement  = "improvement_areas"
)

// Vocabulary returns the options for a named vocabulary.
func Vocabulary(name string) ([]Option, bool) {
	switch name {
	case VocabRating:
		opts := make([]Option, 0, MaxStars)
		for i := MaxStars; i >= 1; i-- {
			v := strconv.Itoa(i)
			opts = append(opts, Option{Value: v, Label: StarBar(i)})
		}
		return opts, true
	case VocabServiceTypes:
		return plain(ServiceTypes), true
	case VocabSatisfaction:
		return plain(SatisfactionLevels), true
	case VocabRecommend:
		return slices.Clone(RecommendLevels), true
	case VocabImprovement:
		return plain(ImprovementAreas), true
	}
	return nil, false
}

// RecommendLabel returns the display label for a wouldRecommend value, or
// the value itself when it is not in the vocabulary.
func RecommendLabel(v string) string {
	for _, o := range RecommendLevels {
		if o.Value == v {
			return o.Label
		}
	}
	return v
}

// StarBar renders n filled stars followed by the remaining empty ones.
func StarBar(n int) string {
	n = max(0, min(n, MaxStars))
	return strings.Repeat("★", n) + strings.Repeat("☆", MaxStars-n)
}

func plain(values []string) []Option {
	out := make([]Option, len(values))
	for i, v := range values {
		out[i] = Option{Value: v, Label: v}
	}
	return out
}

func recommendValues() []string {
	out := make([]string, len(RecommendLevels))
	for i, o := range RecommendLevels {
		out[i] = o.Value
	}
	return out
}
