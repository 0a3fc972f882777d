package diagram

import "errors"

// Sentinel errors for diagram rendering.
var (
	ErrInvalidFormat   = errors.New("invalid output format")
	ErrDiagramsFailed  = errors.New("diagrams rendering failed")
	ErrPythonNotFound  = errors.New("python interpreter not found")
	ErrAssetWrite      = errors.New("failed to write diagram asset")
	ErrFallbackRender  = errors.New("fallback image rendering failed")
	ErrMissingAssetDir = errors.New("asset directory not configured")
)
