// internal/form/state.go
//
// Forms subsystem: in-progress form state.
//
// Context
//   State is the value a presentation layer holds while a customer fills in
//   the feedback form.  Every method returns a new snapshot and leaves the
//   receiver untouched, so a caller can keep the previous snapshot around
//   (for undo, diffing, or re-rendering) without copying.
//
// Workflow
//   •  Change records one field edit.  A field's stale error is cleared, and
//      name, email, and message are re-validated on the spot.
//   •  Toggle adds or removes one improvement area.
//   •  Validate recomputes every blocking error and reports whether the form
//      may be submitted.
//   •  Submit (submit.go) gates delivery on Validate.
//
//------------------------------------------------------------------------------

package form

import (
	"slices"

	"github.com/yanizio/feedback/internal/feedback"
)

// State is an immutable snapshot of the form.
type State struct {
	Values     feedback.Submission
	Errors     feedback.FieldErrors
	Submitting bool
}

// New returns the empty state a fresh form session starts from.
func New() State {
	return State{Values: feedback.Submission{AreasToImprove: []string{}}}
}

// Change sets field to value.  Unknown fields and areasToImprove (use
// Toggle) leave the state unchanged.
func (s State) Change(field, value string) State {
	next := s.clone()
	switch field {
	case feedback.FieldName:
		next.Values.Name = value
	case feedback.FieldEmail:
		next.Values.Email = value
	case feedback.FieldMessage:
		next.Values.Message = value
	case feedback.FieldRating:
		next.Values.Rating = feedback.Rating(value)
	case feedback.FieldServiceType:
		next.Values.ServiceType = value
	case feedback.FieldSatisfaction:
		next.Values.ServiceSatisfaction = value
	case feedback.FieldRecommend:
		next.Values.WouldRecommend = value
	default:
		return s
	}

	if next.Errors.Get(field) != "" {
		next.Errors = next.Errors.With(field, "")
	}
	if msg, ok := feedback.ValidateField(field, value); ok {
		next.Errors = next.Errors.With(field, msg)
	}
	return next
}

// Toggle marks option as selected or not.  Selecting an option twice keeps
// a single entry; deselecting removes it.
func (s State) Toggle(option string, checked bool) State {
	next := s.clone()
	areas := next.Values.AreasToImprove
	switch {
	case checked && !slices.Contains(areas, option):
		areas = append(areas, option)
	case !checked:
		areas = slices.DeleteFunc(areas, func(a string) bool { return a == option })
	}
	next.Values.AreasToImprove = areas
	return next
}

// Validate recomputes the name, email, and message errors.  The boolean is
// true when none is set.  Optional fields never block submission.
func (s State) Validate() (State, bool) {
	next := s.clone()
	next.Errors = feedback.ValidateFields(next.Values)
	return next, next.Errors.OK()
}

// FirstError names the first field in form order that carries an error, or
// "" when the form is clean.  Presentation layers move focus there.
func (s State) FirstError() string {
	return s.Errors.First()
}

// Selected reports whether option is among the chosen improvement areas.
func (s State) Selected(option string) bool {
	return slices.Contains(s.Values.AreasToImprove, option)
}

func (s State) clone() State {
	next := s
	next.Values.AreasToImprove = slices.Clone(s.Values.AreasToImprove)
	if next.Values.AreasToImprove == nil {
		next.Values.AreasToImprove = []string{}
	}
	return next
}
