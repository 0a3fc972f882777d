package pipeline

import (
	"fmt"
	"strings"
)

// Kind identifies a diagram language and its rendering backend.
type Kind string

const (
	KindMermaid  Kind = "mmd"    // Mermaid, rendered through Kroki
	KindDiagrams Kind = "pydiag" // Python diagrams, rendered by a subprocess
)

// labels lists the fence info strings recognised for each kind.
var labels = map[Kind][]string{
	KindMermaid:  {"mermaid"},
	KindDiagrams: {"diagrams", "python diagrams"},
}

// Matches reports whether a normalized fence label selects this kind.
func (k Kind) Matches(label string) bool {
	for _, l := range labels[k] {
		if label == l {
			return true
		}
	}
	return false
}

// RenderTask is one diagram fence lifted out of the document.
type RenderTask struct {
	Kind        Kind
	Options     Options
	Body        string // Diagram source without the final newline
	Placeholder string // Marker standing in for the fence until substitution
	Replacement string // Markdown image reference, set after rendering
}

// Placeholder returns the marker used for the task at index.
func Placeholder(kind Kind, index int) string {
	return fmt.Sprintf("<!-- MARKER_%s_%d -->", kind, index)
}

// ImageRef returns the Markdown image syntax for a document-relative path.
func ImageRef(ref string) string {
	return "![](" + ref + ")"
}

// Options holds the key/value blob that may follow a fence label.
type Options map[string]any

// String returns the value for key as a trimmed string, or def when the
// key is missing or empty. Non-string values are formatted with fmt.
func (o Options) String(key, def string) string {
	v, ok := o[key]
	if !ok || v == nil {
		return def
	}
	s := strings.TrimSpace(fmt.Sprint(v))
	if s == "" {
		return def
	}
	return s
}
