package assets

import (
	"embed"
	"fmt"
)

// Built-in runner script and fallback image.
//
//go:embed scripts/*.py templates/*.svg
var embedded embed.FS

// EmbeddedLoader serves the assets compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadScript returns scripts/<name>.py.
func (e *EmbeddedLoader) LoadScript(name string) (string, error) {
	return readEmbedded("scripts", name, ".py", ErrScriptNotFound)
}

// LoadTemplate returns templates/<name>.svg.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return readEmbedded("templates", name, ".svg", ErrTemplateNotFound)
}

func readEmbedded(dir, name, ext string, notFound error) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	data, err := embedded.ReadFile(dir + "/" + name + ext)
	if err != nil {
		return "", fmt.Errorf("%w: %q", notFound, name)
	}
	return string(data), nil
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
