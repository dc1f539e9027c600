// internal/head/builder.go
//
// Page <head> builder.
//
// A Builder is created per render.  The page handler records the title,
// named meta tags, and <link rel> entries; the layout prints them through
// Title, Metas, and Links.  Every attribute value is escaped here, so
// handlers pass plain strings and never hand-built markup.
//
// Meta tags are keyed by name and links by rel+href: a repeated key
// replaces the earlier value in place, keeping first-seen order.
package head

import (
	"html/template"
	"strings"
)

// attr is one name="value" pair of a head tag.
type attr struct{ name, value string }

// entry is a keyed tag waiting to be printed.
type entry struct {
	key   string
	attrs []attr
}

// Builder is not safe for concurrent use; each request owns its own.
type Builder struct {
	title string
	metas []entry
	links []entry
}

// New returns an empty Builder.
func New() *Builder { return &Builder{} }

// SetTitle overrides the page <title>.
func (b *Builder) SetTitle(t string) { b.title = t }

// Title returns the <title> tag, or "" when no title was set.
func (b *Builder) Title() template.HTML {
	if b.title == "" {
		return ""
	}
	return template.HTML("<title>" + template.HTMLEscapeString(b.title) + "</title>")
}

// MetaName records <meta name=… content=…>.
func (b *Builder) MetaName(name, content string) {
	b.metas = upsert(b.metas, entry{
		key:   name,
		attrs: []attr{{"name", name}, {"content", content}},
	})
}

// LinkRel records <link rel=… href=…>.
func (b *Builder) LinkRel(rel, href string) {
	b.links = upsert(b.links, entry{
		key:   rel + " " + href,
		attrs: []attr{{"rel", rel}, {"href", href}},
	})
}

// Metas renders the recorded meta tags, one per line.
func (b *Builder) Metas() template.HTML { return render("meta", b.metas) }

// Links renders the recorded link tags, one per line.
func (b *Builder) Links() template.HTML { return render("link", b.links) }

func upsert(list []entry, e entry) []entry {
	for i := range list {
		if list[i].key == e.key {
			list[i] = e
			return list
		}
	}
	return append(list, e)
}

func render(tag string, list []entry) template.HTML {
	var sb strings.Builder
	for i, e := range list {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("<" + tag)
		for _, a := range e.attrs {
			sb.WriteString(" " + a.name + `="` + template.HTMLEscapeString(a.value) + `"`)
		}
		sb.WriteByte('>')
	}
	return template.HTML(sb.String())
}
