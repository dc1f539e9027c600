// internal/form/definition.go
//
// Forms subsystem: YAML definition loader.
//
// Context
//   The feedback page is declared in YAML: field order, labels,
//   placeholders, input kinds, and which vocabulary feeds each choice
//   field.  The definition ships embedded in the binary.  Choice options are
//   never listed in YAML; they are bound by vocabulary name to the feedback
//   package, so the page and the server can never disagree on the contract.
//
// Workflow
//   •  Structs mirror the YAML schema: Definition → FieldDef.
//   •  ParseDefinition decodes and validates one document.
//   •  LoadDefinition reads a named form from the embedded forms/ directory.
//   •  Feedback returns the parsed feedback form, loaded once.
//
//------------------------------------------------------------------------------

package form

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/yanizio/feedback/internal/feedback"
)

//go:embed forms/*.yaml
var formsFS embed.FS

// FeedbackID is the identifier of the customer-feedback form.
const FeedbackID = "feedback"

// Input kinds understood by the renderer.
const (
	KindText     = "text"
	KindEmail    = "email"
	KindTextarea = "textarea"
	KindSelect   = "select"
	KindRadio    = "radio"
	KindCheckbox = "checkbox"
	KindRating   = "rating"
)

// -----------------------------------------------------------------------------
// Data structures
// -----------------------------------------------------------------------------

// Definition is one form loaded from YAML.
type Definition struct {
	ID       string     `yaml:"id"`
	Title    string     `yaml:"title"`
	Intro    string     `yaml:"intro"`
	Submit   string     `yaml:"submit"`
	ThankYou string     `yaml:"thank_you"`
	Fields   []FieldDef `yaml:"fields"`
}

// FieldDef describes one input control.
type FieldDef struct {
	Name        string `yaml:"name"`        // Submission JSON key.  Required.
	Label       string `yaml:"label"`       // Required.
	Kind        string `yaml:"kind"`        // One of the Kind* constants.
	Placeholder string `yaml:"placeholder"` // Optional.
	Hint        string `yaml:"hint"`        // Help text under the control.
	Required    bool   `yaml:"required"`
	MaxLength   int    `yaml:"maxlength"`  // 0 means unset.
	Vocabulary  string `yaml:"vocabulary"` // Required for choice kinds.

	// Options is filled from Vocabulary at load time.
	Options []feedback.Option `yaml:"-"`
}

// Field returns the definition of name.
func (d *Definition) Field(name string) (FieldDef, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDef{}, false
}

// -----------------------------------------------------------------------------
// Loader API
// -----------------------------------------------------------------------------

var feedbackDef = sync.OnceValues(func() (*Definition, error) {
	return LoadDefinition(formsFS, FeedbackID)
})

// Feedback returns the embedded customer-feedback form.
func Feedback() (*Definition, error) {
	return feedbackDef()
}

// LoadDefinition reads forms/<id>.yaml from fsys.
func LoadDefinition(fsys fs.FS, id string) (*Definition, error) {
	p := path.Join("forms", id+".yaml")
	raw, err := fs.ReadFile(fsys, p)
	if err != nil {
		return nil, fmt.Errorf("read form %s: %w", p, err)
	}
	return ParseDefinition(raw)
}

// ParseDefinition decodes a YAML document, validates its structure, and
// binds vocabularies.
func ParseDefinition(raw []byte) (*Definition, error) {
	var d Definition
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("parse form YAML: %w", err)
	}
	if err := validateDefinition(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

// -----------------------------------------------------------------------------
// Validation helpers
// -----------------------------------------------------------------------------

func validateDefinition(d *Definition) error {
	if d.ID == "" {
		return fmt.Errorf("form definition: missing required 'id'")
	}
	if len(d.Fields) == 0 {
		return fmt.Errorf("form %s: no fields", d.ID)
	}

	seen := make(map[string]struct{}, len(d.Fields))
	for i := range d.Fields {
		f := &d.Fields[i]
		if err := validateField(d.ID, f); err != nil {
			return err
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("form %s: duplicate field name '%s'", d.ID, f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}

func validateField(formID string, f *FieldDef) error {
	switch {
	case f.Name == "":
		return fmt.Errorf("form %s: field missing 'name'", formID)
	case !feedback.IsField(f.Name):
		return fmt.Errorf("form %s: field '%s' is not a submission field", formID, f.Name)
	case f.Label == "":
		return fmt.Errorf("form %s: field '%s' missing 'label'", formID, f.Name)
	case f.MaxLength < 0:
		return fmt.Errorf("form %s: field '%s' maxlength cannot be negative", formID, f.Name)
	}

	switch f.Kind {
	case KindText, KindEmail, KindTextarea:
		if f.Vocabulary != "" {
			return fmt.Errorf("form %s: field '%s' is free text but names a vocabulary", formID, f.Name)
		}
	case KindSelect, KindRadio, KindCheckbox, KindRating:
		opts, ok := feedback.Vocabulary(f.Vocabulary)
		if !ok {
			return fmt.Errorf("form %s: field '%s' unknown vocabulary '%s'", formID, f.Name, f.Vocabulary)
		}
		f.Options = opts
	default:
		return fmt.Errorf("form %s: field '%s' unknown kind '%s'", formID, f.Name, f.Kind)
	}
	return nil
}
