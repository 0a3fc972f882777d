package assets

// DefaultRunnerName is the name of the built-in diagrams runner script.
const DefaultRunnerName = "diagrams_runner"

// DefaultFallbackName is the name of the built-in fallback SVG template.
const DefaultFallbackName = "fallback"

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadScript loads a Python script by name using the default embedded loader.
// The name should not include the .py extension or path components.
// Returns ErrScriptNotFound if the script does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadScript(name string) (string, error) {
	return defaultLoader.LoadScript(name)
}

// LoadTemplate loads an SVG template by name using the default embedded loader.
// Returns ErrTemplateNotFound if the template does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}
