package assets

import (
	"errors"
)

// AssetResolver looks an asset up in a custom directory, then in the
// embedded copies. A custom directory may override just one asset.
type AssetResolver struct {
	layers []AssetLoader // custom first, embedded last
}

// NewAssetResolver creates an AssetResolver. An empty customBasePath means
// embedded assets only; a non-empty one must be a readable directory.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	r := &AssetResolver{}
	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.layers = append(r.layers, fsLoader)
	}
	r.layers = append(r.layers, NewEmbeddedLoader())
	return r, nil
}

// LoadScript returns the first script called name across the layers.
func (r *AssetResolver) LoadScript(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadScript(name) })
}

// LoadTemplate returns the first template called name across the layers.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadTemplate(name) })
}

// first walks the layers until one has the asset. Invalid names and read
// errors stop the walk: the embedded copy must not hide a broken override.
func (r *AssetResolver) first(load func(AssetLoader) (string, error)) (string, error) {
	var err error
	for _, l := range r.layers {
		var content string
		content, err = load(l)
		if err == nil {
			return content, nil
		}
		if !errors.Is(err, ErrScriptNotFound) && !errors.Is(err, ErrTemplateNotFound) {
			return "", err
		}
	}
	return "", err
}

// HasCustomLoader reports whether a custom directory is layered over the
// embedded assets.
func (r *AssetResolver) HasCustomLoader() bool {
	return len(r.layers) > 1
}

var _ AssetLoader = (*AssetResolver)(nil)
