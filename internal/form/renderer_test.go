// internal/form/renderer_test.go
//
// Tests for the embedded definition, the HTML renderer, and posted-value
// replay.

package form

import (
	"net/url"
	"strings"
	"testing"

	"github.com/yanizio/feedback/internal/feedback"
)

func TestFeedbackDefinition(t *testing.T) {
	d, err := Feedback()
	if err != nil {
		t.Fatalf("Feedback: %v", err)
	}
	if d.ID != FeedbackID || len(d.Fields) != 8 {
		t.Fatalf("definition = %s with %d fields", d.ID, len(d.Fields))
	}

	areas, ok := d.Field(feedback.FieldAreasToImprove)
	if !ok || len(areas.Options) != len(feedback.ImprovementAreas) {
		t.Fatalf("areas field = %+v", areas)
	}
	rating, _ := d.Field(feedback.FieldRating)
	if rating.Options[0].Label != "★★★★★" {
		t.Fatalf("rating options = %+v", rating.Options)
	}
}

func TestParseDefinitionRejects(t *testing.T) {
	cases := map[string]string{
		"no id":        "fields: [{name: name, label: N, kind: text}]",
		"no fields":    "id: x",
		"bad field":    "id: x\nfields: [{name: phone, label: P, kind: text}]",
		"dup field":    "id: x\nfields: [{name: name, label: A, kind: text}, {name: name, label: B, kind: text}]",
		"bad kind":     "id: x\nfields: [{name: name, label: N, kind: slider}]",
		"bad vocab":    "id: x\nfields: [{name: rating, label: R, kind: radio, vocabulary: nope}]",
		"text w/vocab": "id: x\nfields: [{name: name, label: N, kind: text, vocabulary: ratings}]",
	}
	for name, doc := range cases {
		if _, err := ParseDefinition([]byte(doc)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestRenderFieldsPrefillAndErrors(t *testing.T) {
	d, err := Feedback()
	if err != nil {
		t.Fatalf("Feedback: %v", err)
	}

	s := New().
		Change(feedback.FieldName, `<b>x</b>`).
		Change(feedback.FieldServiceType, "Landscaping").
		Toggle("Pricing", true)

	out, err := RenderFields(d, s)
	if err != nil {
		t.Fatalf("RenderFields: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		`value="&lt;b&gt;x&lt;/b&gt;"`,
		feedback.MsgNameInvalid,
		`<option value="Landscaping" selected>`,
		`value="Pricing" checked`,
		`id="fld-name" name="name" type="text" required maxlength="50"`,
		`autofocus`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(html, "<b>x</b>") {
		t.Error("value not escaped")
	}
}

func TestFromValues(t *testing.T) {
	d, _ := Feedback()
	posted := url.Values{
		"name":           {"Jane Doe"},
		"email":          {"jane@gmail.com"},
		"rating":         {"3"},
		"areasToImprove": {"Pricing", "Pricing", "Cleanliness"},
		"message":        {"short"},
		"ignored":        {"x"},
	}

	s := FromValues(d, posted)
	if s.Values.Rating != "3" || s.Values.Name != "Jane Doe" {
		t.Fatalf("values = %+v", s.Values)
	}
	if len(s.Values.AreasToImprove) != 2 {
		t.Fatalf("areas = %v", s.Values.AreasToImprove)
	}
	if s.Errors.Message != feedback.MsgMessageTooShort {
		t.Fatalf("message error = %q", s.Errors.Message)
	}
}
