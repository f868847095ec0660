// Package markdown renders model-generated markdown into HTML for the views.
package markdown

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var renderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// Render converts markdown to HTML. Raw HTML in the source is not passed
// through, so the result is safe to embed in a template.
func Render(source string) (template.HTML, error) {
	if source == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := renderer.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}

	// #nosec G203 -- goldmark escapes raw HTML unless html.WithUnsafe is set
	return template.HTML(buf.String()), nil
}

// MustRender is Render for templates: on failure the escaped source is returned.
func MustRender(source string) template.HTML {
	out, err := Render(source)
	if err != nil {
		return template.HTML(template.HTMLEscapeString(source)) // #nosec G203
	}
	return out
}
