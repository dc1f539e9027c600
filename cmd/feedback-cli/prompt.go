// cmd/feedback-cli/prompt.go
//
// Terminal prompts for the feedback form.
//
// Context
//   collect walks the form definition field by field.  Free-text answers
//   are checked live through form.State.Change: survey re-asks with the
//   field's current error until it clears.  Choice fields are picked from
//   the same vocabularies the HTML page renders.
//
//------------------------------------------------------------------------------

package main

import (
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/yanizio/feedback/internal/form"
)

// skipLabel is offered first on optional single-choice questions.
const skipLabel = "(skip)"

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("feedback-cli: aborted")

// Prompter abstracts the terminal so the flow can be tested without one.
type Prompter interface {
	Input(msg, help string, validate func(string) error) (string, error)
	Multiline(msg, help string, validate func(string) error) (string, error)
	Select(msg string, options []string) (int, error)
	MultiSelect(msg string, options []string) ([]int, error)
	Confirm(msg string, def bool) (bool, error)
}

/*──────────────────────────── survey driver ────────────────────────────────*/

type surveyPrompter struct{}

func (surveyPrompter) Input(msg, help string, validate func(string) error) (string, error) {
	var out string
	err := survey.AskOne(&survey.Input{Message: msg, Help: help}, &out, withValidator(validate))
	return out, translateSurveyErr(err)
}

func (surveyPrompter) Multiline(msg, help string, validate func(string) error) (string, error) {
	var out string
	err := survey.AskOne(&survey.Multiline{Message: msg, Help: help}, &out, withValidator(validate))
	return out, translateSurveyErr(err)
}

func (surveyPrompter) Select(msg string, options []string) (int, error) {
	var out int
	err := survey.AskOne(&survey.Select{Message: msg, Options: options}, &out)
	return out, translateSurveyErr(err)
}

func (surveyPrompter) MultiSelect(msg string, options []string) ([]int, error) {
	var out []int
	err := survey.AskOne(&survey.MultiSelect{Message: msg, Options: options}, &out)
	return out, translateSurveyErr(err)
}

func (surveyPrompter) Confirm(msg string, def bool) (bool, error) {
	var out bool
	err := survey.AskOne(&survey.Confirm{Message: msg, Default: def}, &out)
	return out, translateSurveyErr(err)
}

func withValidator(fn func(string) error) survey.AskOpt {
	return survey.WithValidator(func(ans interface{}) error {
		s, _ := ans.(string)
		return fn(s)
	})
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

/*──────────────────────────── form walk ────────────────────────────────────*/

// collect asks every field of d and returns the filled state.
func collect(p Prompter, d *form.Definition) (form.State, error) {
	s := form.New()

	for i := range d.Fields {
		f := &d.Fields[i]
		msg := f.Label
		if f.Required {
			msg += " *"
		}

		switch f.Kind {
		case form.KindText, form.KindEmail:
			v, err := p.Input(msg, f.Hint, live(s, f.Name))
			if err != nil {
				return s, err
			}
			s = s.Change(f.Name, v)

		case form.KindTextarea:
			v, err := p.Multiline(msg, f.Hint, live(s, f.Name))
			if err != nil {
				return s, err
			}
			s = s.Change(f.Name, v)

		case form.KindSelect, form.KindRadio, form.KindRating:
			labels := make([]string, 0, len(f.Options)+1)
			offset := 0
			if !f.Required {
				labels = append(labels, skipLabel)
				offset = 1
			}
			for _, o := range f.Options {
				labels = append(labels, o.Label)
			}
			idx, err := p.Select(msg, labels)
			if err != nil {
				return s, err
			}
			if idx >= offset && idx-offset < len(f.Options) {
				s = s.Change(f.Name, f.Options[idx-offset].Value)
			}

		case form.KindCheckbox:
			labels := make([]string, len(f.Options))
			for j, o := range f.Options {
				labels[j] = o.Label
			}
			picked, err := p.MultiSelect(msg, labels)
			if err != nil {
				return s, err
			}
			for _, j := range picked {
				if j >= 0 && j < len(f.Options) {
					s = s.Toggle(f.Options[j].Value, true)
				}
			}
		}
	}
	return s, nil
}

// live reports the error a value would leave on field, if any.
func live(s form.State, field string) func(string) error {
	return func(v string) error {
		if msg := s.Change(field, v).Errors.Get(field); msg != "" {
			return errors.New(msg)
		}
		return nil
	}
}
