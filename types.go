package md2deck

import (
	"github.com/alnah/go-md2deck/internal/pipeline"
)

// Diagram kinds, also used as hash salts.
const (
	KindMermaid  = string(pipeline.KindMermaid)
	KindDiagrams = string(pipeline.KindDiagrams)
)

// RenderedAsset describes one image produced for a diagram fence.
type RenderedAsset struct {
	Kind     string // KindMermaid or KindDiagrams
	Path     string // Location on disk
	Ref      string // Reference written into the document
	Fallback bool   // Placeholder image standing in for a failed render
}

// Result holds the outcome of preprocessing one document.
type Result struct {
	Markdown         string          // Marp-ready Markdown
	Assets           []RenderedAsset // In placeholder order
	FrontmatterAdded bool            // True when a default block was prepended
}

// Fallbacks counts the assets that are placeholder images.
func (r *Result) Fallbacks() int {
	n := 0
	for _, a := range r.Assets {
		if a.Fallback {
			n++
		}
	}
	return n
}

// FileResult extends Result with the files written by PreprocessFile.
type FileResult struct {
	Result
	Input   string   // Source Markdown path
	Outputs []string // <name>.marp.md then current.marp.md
}
