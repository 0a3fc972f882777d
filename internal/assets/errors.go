package assets

import "errors"

// Sentinel errors for asset loading.
var (
	ErrScriptNotFound   = errors.New("script not found")
	ErrTemplateNotFound = errors.New("template not found")

	// ErrInvalidAssetName rejects names with separators, dots or NUL bytes.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath means the custom asset directory is missing,
	// unreadable or not a directory.
	ErrInvalidBasePath = errors.New("invalid asset directory")

	ErrAssetRead     = errors.New("failed to read asset")
	ErrPathTraversal = errors.New("asset path escapes its directory")
)
