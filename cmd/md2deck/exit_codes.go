package main

import (
	"context"
	"errors"
	"os"

	md2deck "github.com/alnah/go-md2deck"
	"github.com/alnah/go-md2deck/internal/config"
	"github.com/alnah/go-md2deck/internal/dateutil"
)

// Exit codes for md2deck CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Deck built
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitRender  = 4 // Python, Marp or browser failure
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Renderer and subprocess errors (exit 4)
	if errors.Is(err, md2deck.ErrDiagramsFailed) ||
		errors.Is(err, md2deck.ErrPythonNotFound) ||
		errors.Is(err, md2deck.ErrMarpNotFound) ||
		errors.Is(err, md2deck.ErrDeckRender) ||
		errors.Is(err, md2deck.ErrBrowserConnect) ||
		errors.Is(err, md2deck.ErrPageCreate) ||
		errors.Is(err, md2deck.ErrPageLoad) ||
		errors.Is(err, md2deck.ErrPDFGeneration) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ExitRender
	}

	// I/O errors (exit 3)
	if errors.Is(err, md2deck.ErrNoInput) ||
		errors.Is(err, md2deck.ErrInputRead) ||
		errors.Is(err, md2deck.ErrOutputWrite) ||
		errors.Is(err, md2deck.ErrAssetWrite) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, dateutil.ErrInvalidDateFormat) ||
		errors.Is(err, md2deck.ErrInvalidFormat) ||
		errors.Is(err, md2deck.ErrInvalidAssetPath) ||
		errors.Is(err, md2deck.ErrInvalidOutput) {
		return ExitUsage
	}

	return ExitGeneral
}
