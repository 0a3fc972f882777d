// Package assets provides the helper scripts and templates used while
// rendering diagrams. Assets can be loaded from embedded files or custom
// filesystem paths.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (defaults)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in diagrams runner script and the
// fallback SVG template, embedded at compile time.
//
// FilesystemLoader allows users to provide custom assets from a directory,
// with path traversal protection and symlink resolution.
//
// AssetResolver is the loader used by the preprocessor. It tries the custom
// FilesystemLoader first, falling back to EmbeddedLoader if the asset is not
// found. This enables overriding one asset while keeping the other defaults.
//
// # Directory Structure
//
// Assets are organized by type:
//
//	{basePath}/
//	├── scripts/
//	│   └── {name}.py            # Python helper scripts (diagrams_runner.py)
//	└── templates/
//	    └── {name}.svg           # SVG templates (fallback.svg)
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
