// Package md2deck prepares Markdown slide decks for Marp by rendering
// diagram code fences to images.
//
// # Quick Start
//
// Create a preprocessor and run it over a document:
//
//	pre, err := md2deck.NewPreprocessor(md2deck.WithOutDir("dist"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := pre.Preprocess(ctx, "# Slides\n\n```mermaid\ngraph TD\n  A-->B\n```\n")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Markdown) // ![](assets/mmd-a7e4fa0690.svg)
//
// PreprocessFile does the same for a file and writes <name>.marp.md and
// current.marp.md into the output directory.
//
// # Pipeline
//
// Preprocess runs these stages:
//
//  1. Line ending normalization
//  2. Fence scanning: mermaid fences first, then diagrams fences, each
//     replaced by an HTML comment placeholder
//  3. Concurrent rendering: mermaid through a Kroki server, Python
//     diagrams through a subprocess running the diagrams library
//  4. Placeholder substitution with image references
//  5. Marp frontmatter synthesis when the document has none
//
// Image names derive from a hash of the diagram kind, body and options, so
// unchanged diagrams keep their file names between builds.
//
// # Fences
//
// A fence is recognized by its info string:
//
//	```mermaid {format: png}
//	```diagrams {title: "Pipeline", format: svg}
//	```python diagrams
//
// The optional {...} blob is a YAML flow mapping; JSON objects work too.
// Malformed blobs are ignored.
//
// # Failures
//
// A Kroki error or an unreachable server does not fail the build: a
// placeholder SVG is written and Result.Fallbacks counts it. A failing
// diagrams subprocess fails the whole document and nothing is written.
//
// # Decks
//
// Deck wraps Marp CLI to turn the preprocessed Markdown into HTML and PDF.
// PDF can be produced by Marp itself or by printing Marp's HTML through
// headless Chrome (go-rod):
//
//	deck, err := md2deck.NewDeck(md2deck.DeckOptions{Engine: md2deck.EngineChrome})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer deck.Close()
//	err = deck.PDF(ctx, "dist/current.marp.md", "dist/current.pdf")
//
// # Error Handling
//
// Errors wrap sentinel values and can be checked with errors.Is:
//
//	if errors.Is(err, md2deck.ErrDiagramsFailed) {
//	    // Python diagram failed; see stderr for the traceback
//	}
package md2deck
