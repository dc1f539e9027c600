// internal/form/values.go
//
// Forms subsystem: posted HTML form values → State.

package form

import (
	"net/url"

	"github.com/yanizio/feedback/internal/feedback"
)

// FromValues replays a urlencoded form post onto a fresh State, field by
// field in definition order, exactly as if the customer had typed each
// value.  Fields missing from d are ignored.
func FromValues(d *Definition, posted url.Values) State {
	s := New()
	for _, f := range d.Fields {
		if f.Name == feedback.FieldAreasToImprove {
			for _, opt := range posted[f.Name] {
				s = s.Toggle(opt, true)
			}
			continue
		}
		if _, ok := posted[f.Name]; ok {
			s = s.Change(f.Name, posted.Get(f.Name))
		}
	}
	return s
}
