package assets

import (
	"fmt"
	"strings"
)

// AssetLoader loads the helper files a build needs: the diagrams runner
// script and the fallback image template.
type AssetLoader interface {
	// LoadScript returns the Python script called name (no .py suffix),
	// or ErrScriptNotFound.
	LoadScript(name string) (string, error)

	// LoadTemplate returns the SVG template called name (no .svg suffix),
	// or ErrTemplateNotFound.
	LoadTemplate(name string) (string, error)
}

// ValidateAssetName rejects names that could leave the scripts/ or
// templates/ directory or change the file extension.
func ValidateAssetName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	case strings.ContainsAny(name, "/\\.\x00"):
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
