// internal/view/view.go
//
// Central view engine: template set parsing, func-map injection, and
// buffered rendering.
//
// Public helpers
// --------------
//   - Render         – write rendered HTML to an http.ResponseWriter.
//   - RenderToString – return template.HTML.
//
// Every template matching the given patterns is parsed into one set at
// construction, so sub-templates ({{ template "layout" . }}) resolve across
// files.  Sets are immutable after New and safe for concurrent use.
//
// execName() chooses the template to execute:
//   – If the set contains "<name>.html", we run that.
//   – Else we fall back to "<name>" (root template defined via {{ define }}).

package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/yanizio/feedback/internal/feedback"
)

// Engine renders one parsed template set.
type Engine struct {
	set *template.Template
}

// New parses every file in fsys matching patterns.
func New(fsys fs.FS, patterns ...string) (*Engine, error) {
	t, err := template.New("").Funcs(funcMap()).ParseFS(fsys, patterns...)
	if err != nil {
		return nil, fmt.Errorf("view: parse: %w", err)
	}
	return &Engine{set: t}, nil
}

// Render executes name into a buffer, then writes status and body.  A
// template error never leaves a half-written page on the wire.
func (e *Engine) Render(w http.ResponseWriter, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := e.set.ExecuteTemplate(&buf, execName(e.set, name), data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// RenderToString mirrors Render but returns the markup.
func (e *Engine) RenderToString(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := e.set.ExecuteTemplate(&buf, execName(e.set, name), data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

//
// func-map
//

func funcMap() template.FuncMap {
	return template.FuncMap{
		"dict":      dict,
		"stars":     feedback.StarBar,
		"recommend": feedback.RecommendLabel,
	}
}

//
// helpers
//

// execName picks the template name to execute.
func execName(t *template.Template, name string) string {
	if tmpl := t.Lookup(name + ".html"); tmpl != nil {
		return name + ".html"
	}
	return name
}

// dict builds a map in templates: {{ dict "k" 1 "k2" "v" }}.
func dict(kv ...any) map[string]any {
	m := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, _ := kv[i].(string)
		m[key] = kv[i+1]
	}
	return m
}
