package diagram

import (
	"bytes"
	"fmt"
	"html"
	"text/template"
)

// Fallback renders the placeholder image written when Kroki cannot render
// a diagram. The template receives {{.Reason}}: an HTTP status code or
// "unreachable".
type Fallback struct {
	tmpl *template.Template
}

// NewFallback parses an SVG template.
func NewFallback(source string) (*Fallback, error) {
	tmpl, err := template.New("fallback").Option("missingkey=error").Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFallbackRender, err)
	}
	return &Fallback{tmpl: tmpl}, nil
}

// Render fills the template for reason.
func (f *Fallback) Render(reason string) ([]byte, error) {
	var buf bytes.Buffer
	data := struct{ Reason string }{Reason: html.EscapeString(reason)}
	if err := f.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFallbackRender, err)
	}
	return buf.Bytes(), nil
}
