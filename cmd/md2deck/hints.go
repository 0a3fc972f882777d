package main

import (
	"errors"
	"strings"

	md2deck "github.com/alnah/go-md2deck"
	"github.com/alnah/go-md2deck/internal/config"
	"github.com/alnah/go-md2deck/internal/hints"
)

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, md2deck.ErrNoInput):
		return hints.ForNoInput()
	case errors.Is(err, md2deck.ErrPythonNotFound):
		return hints.ForPython()
	case errors.Is(err, md2deck.ErrDiagramsFailed):
		if strings.Contains(err.Error(), "timed out") {
			return hints.ForTimeout()
		}
		return hints.ForDiagrams()
	case errors.Is(err, md2deck.ErrMarpNotFound):
		return hints.ForMarp()
	case errors.Is(err, md2deck.ErrDeckRender):
		if strings.Contains(err.Error(), "timed out") {
			return hints.ForTimeout()
		}
		return ""
	case errors.Is(err, md2deck.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, md2deck.ErrOutputWrite), errors.Is(err, md2deck.ErrAssetWrite):
		return hints.ForOutputDirectory()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(configSearchPaths(err))
	}
	return ""
}

// configSearchPaths extracts the "tried a, b" list from a not-found error.
func configSearchPaths(err error) []string {
	_, tried, ok := strings.Cut(err.Error(), "tried ")
	if !ok {
		return nil
	}
	return strings.Split(tried, ", ")
}
