package md2deck

import (
	"errors"

	"github.com/alnah/go-md2deck/internal/diagram"
	"github.com/alnah/go-md2deck/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrNoInput       = errors.New("no input markdown file")
	ErrInputRead     = errors.New("failed to read input")
	ErrOutputWrite   = errors.New("failed to write output")
	ErrInvalidOutput = errors.New("invalid output name")

	// Rendering errors, shared with the diagram backends.
	ErrInvalidFormat  = diagram.ErrInvalidFormat
	ErrDiagramsFailed = diagram.ErrDiagramsFailed
	ErrPythonNotFound = diagram.ErrPythonNotFound
	ErrAssetWrite     = diagram.ErrAssetWrite

	// ErrUnresolvedPlaceholder indicates a diagram was not substituted back
	// into the document.
	ErrUnresolvedPlaceholder = pipeline.ErrUnresolvedPlaceholder

	// Deck stage errors.
	ErrMarpNotFound   = errors.New("marp CLI not found")
	ErrDeckRender     = errors.New("marp rendering failed")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")

	// Asset loading errors.
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
