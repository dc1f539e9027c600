// internal/view/view_test.go

package view

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
)

var testFS = fstest.MapFS{
	"layout.html": {Data: []byte(`{{define "layout"}}<main>{{template "content" .}}</main>{{end}}`)},
	"page.html":   {Data: []byte(`{{template "layout" .}}{{define "content"}}<p>{{.Name}} {{stars .Rating}}</p>{{end}}`)},
	"card.html":   {Data: []byte(`{{define "card"}}<b>{{recommend .}}</b>{{end}}`)},
}

func TestRender(t *testing.T) {
	e, err := New(testFS, "*.html")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rec := httptest.NewRecorder()
	err = e.Render(rec, http.StatusBadRequest, "page", map[string]any{"Name": "<Jane>", "Rating": 3})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<main><p>&lt;Jane&gt; ★★★☆☆</p></main>") {
		t.Fatalf("body = %s", body)
	}

	got, err := e.RenderToString("card", "definitely")
	if err != nil {
		t.Fatalf("RenderToString: %v", err)
	}
	if got != "<b>Definitely Yes</b>" {
		t.Fatalf("card = %s", got)
	}
}

func TestRenderUnknownTemplateWritesNothing(t *testing.T) {
	e, err := New(testFS, "*.html")
	if err != nil {
		t.Fatal(err)
	}
	rec := httptest.NewRecorder()
	if err := e.Render(rec, http.StatusOK, "missing", nil); err == nil {
		t.Fatal("expected error")
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("partial body written: %q", rec.Body.String())
	}
}

func TestDict(t *testing.T) {
	m := dict("a", 1, "b", "x", "dangling")
	if len(m) != 2 || m["a"] != 1 || m["b"] != "x" {
		t.Fatalf("dict = %v", m)
	}
}
