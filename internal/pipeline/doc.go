// Package pipeline implements the text stages of the Markdown-to-deck build.
//
// This package handles everything that touches the document text:
//   - Line ending normalization
//   - Diagram fence scanning and placeholder insertion (Scan)
//   - Fence option parsing (ParseOptions)
//   - Placeholder substitution after rendering (Substitute)
//   - Marp frontmatter detection and synthesis (EnsureFrontmatter)
//
// Rendering diagrams is handled separately by internal/diagram, and the
// root md2deck package ties both together. Nothing here performs I/O, so
// every stage is a pure function of its input.
package pipeline
