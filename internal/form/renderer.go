// internal/form/renderer.go
//
// Forms subsystem: HTML renderer.
//
// Context
//   Given a Definition and the current State, RenderFields writes the
//   form's controls as plain HTML.  Values come from the state so a
//   re-rendered form keeps what the customer typed, and each field's error
//   span carries the state's current message.
//
// Style
//   Output HTML is deliberately plain, no framework classes.  Each control
//   gets id="fld-{name}" and is wrapped in <div class="form-field">.  The
//   first field in error is marked autofocus so the browser lands there.
//
//------------------------------------------------------------------------------

package form

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strconv"

	"github.com/yanizio/feedback/internal/feedback"
)

// RenderFields returns the markup for every field of d, filled from s.
// The caller embeds the result inside its own <form> element.
func RenderFields(d *Definition, s State) (template.HTML, error) {
	var buf bytes.Buffer
	buf.WriteString(`<div class="feedback-form">` + "\n")

	focus := s.FirstError()
	for i := range d.Fields {
		if err := writeField(&buf, &d.Fields[i], s, focus); err != nil {
			return "", err
		}
	}

	buf.WriteString(`</div>`)
	return template.HTML(buf.String()), nil
}

// writeField emits one control, its label, and its error span.
func writeField(buf *bytes.Buffer, f *FieldDef, s State, focus string) error {
	val := fieldValue(s.Values, f.Name)
	errMsg := s.Errors.Get(f.Name)

	class := "form-field"
	if errMsg != "" {
		class += " has-error"
	}
	buf.WriteString(`<div class="` + class + `">` + "\n")

	name := html.EscapeString(f.Name)
	idAttr := `id="fld-` + name + `"`
	nameAttr := `name="` + name + `"`

	label := html.EscapeString(f.Label)
	if f.Required {
		label += ` <span class="required">*</span>`
	}

	var extra string
	if f.Required {
		extra += ` required`
	}
	if f.MaxLength > 0 {
		extra += ` maxlength="` + strconv.Itoa(f.MaxLength) + `"`
	}
	if f.Placeholder != "" && f.Kind != KindSelect {
		extra += ` placeholder="` + html.EscapeString(f.Placeholder) + `"`
	}
	if errMsg != "" {
		extra += ` aria-invalid="true"`
	}
	if focus == f.Name {
		extra += ` autofocus`
	}

	switch f.Kind {
	case KindText, KindEmail:
		buf.WriteString(`<label for="fld-` + name + `">` + label + `</label>` + "\n")
		buf.WriteString(`<input ` + idAttr + ` ` + nameAttr + ` type="` + f.Kind + `"` + extra)
		if val != "" {
			buf.WriteString(` value="` + html.EscapeString(val) + `"`)
		}
		buf.WriteString(`>` + "\n")

	case KindTextarea:
		buf.WriteString(`<label for="fld-` + name + `">` + label + `</label>` + "\n")
		buf.WriteString(`<textarea ` + idAttr + ` ` + nameAttr + ` rows="5"` + extra + `>`)
		buf.WriteString(html.EscapeString(val))
		buf.WriteString(`</textarea>` + "\n")
		if f.MaxLength > 0 {
			buf.WriteString(fmt.Sprintf(`<small class="counter">%d/%d characters</small>`+"\n",
				len([]rune(val)), f.MaxLength))
		}

	case KindSelect:
		buf.WriteString(`<label for="fld-` + name + `">` + label + `</label>` + "\n")
		buf.WriteString(`<select ` + idAttr + ` ` + nameAttr + extra + `>` + "\n")
		buf.WriteString(`<option value="">` + html.EscapeString(f.Placeholder) + `</option>` + "\n")
		for _, opt := range f.Options {
			sel := ""
			if val == opt.Value {
				sel = ` selected`
			}
			buf.WriteString(`<option value="` + html.EscapeString(opt.Value) + `"` + sel + `>` +
				html.EscapeString(opt.Label) + `</option>` + "\n")
		}
		buf.WriteString(`</select>` + "\n")

	case KindRadio, KindRating:
		buf.WriteString(`<fieldset ` + idAttr + `>` + "\n")
		buf.WriteString(`<legend>` + label + `</legend>` + "\n")
		for i, opt := range f.Options {
			writeChoice(buf, "radio", f, i, opt, val == opt.Value)
		}
		buf.WriteString(`</fieldset>` + "\n")

	case KindCheckbox:
		buf.WriteString(`<fieldset ` + idAttr + `>` + "\n")
		buf.WriteString(`<legend>` + label + `</legend>` + "\n")
		for i, opt := range f.Options {
			writeChoice(buf, "checkbox", f, i, opt, s.Selected(opt.Value))
		}
		buf.WriteString(`</fieldset>` + "\n")

	default:
		return fmt.Errorf("writeField: unsupported kind %q in field %s", f.Kind, f.Name)
	}

	if f.Hint != "" {
		buf.WriteString(`<small class="hint">` + html.EscapeString(f.Hint) + `</small>` + "\n")
	}
	buf.WriteString(`<span class="error" aria-live="polite">` + html.EscapeString(errMsg) + `</span>` + "\n")
	buf.WriteString(`</div>` + "\n")
	return nil
}

// writeChoice emits one radio or checkbox input with its label.
func writeChoice(buf *bytes.Buffer, typ string, f *FieldDef, i int, opt feedback.Option, checked bool) {
	id := fmt.Sprintf("fld-%s-%d", f.Name, i)
	buf.WriteString(`<div class="choice">` + "\n")
	buf.WriteString(`<input id="` + id + `" name="` + html.EscapeString(f.Name) + `" type="` + typ +
		`" value="` + html.EscapeString(opt.Value) + `"`)
	if checked {
		buf.WriteString(` checked`)
	}
	if f.Required && typ == "radio" {
		buf.WriteString(` required`)
	}
	buf.WriteString(`>` + "\n")
	buf.WriteString(`<label for="` + id + `">` + html.EscapeString(opt.Label) + `</label>` + "\n")
	buf.WriteString(`</div>` + "\n")
}

// fieldValue returns the scalar value of name in v.  areasToImprove is
// handled by the checkbox branch.
func fieldValue(v feedback.Submission, name string) string {
	switch name {
	case feedback.FieldName:
		return v.Name
	case feedback.FieldEmail:
		return v.Email
	case feedback.FieldRating:
		return string(v.Rating)
	case feedback.FieldServiceType:
		return v.ServiceType
	case feedback.FieldSatisfaction:
		return v.ServiceSatisfaction
	case feedback.FieldRecommend:
		return v.WouldRecommend
	case feedback.FieldMessage:
		return v.Message
	}
	return ""
}
