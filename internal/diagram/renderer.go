package diagram

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alnah/go-md2deck/internal/fileutil"
	"github.com/alnah/go-md2deck/internal/pipeline"
)

// Renderer turns one diagram source into an image on disk.
type Renderer interface {
	Render(ctx context.Context, body string, opts pipeline.Options) (*Asset, error)
}

// Asset describes a rendered image.
type Asset struct {
	Path     string // Location on disk
	Ref      string // Path relative to the output document, forward slashes
	Fallback bool   // True when a placeholder image stands in for a failed render
}

var formatPattern = regexp.MustCompile(`^[a-z0-9]+$`)

// formatOption reads opts["format"], lower-cases it and checks that it is
// safe to use as a file extension.
func formatOption(opts pipeline.Options, def string) (string, error) {
	format := strings.ToLower(opts.String("format", def))
	if !formatPattern.MatchString(format) {
		return "", fmt.Errorf("%w: %q (letters and digits only)", ErrInvalidFormat, format)
	}
	return format, nil
}

// AssetDir owns the directory images are written to and computes their
// references relative to the output document's directory.
type AssetDir struct {
	dir    string
	docDir string
}

// NewAssetDir creates an AssetDir writing into dir, with refs relative to docDir.
func NewAssetDir(dir, docDir string) *AssetDir {
	return &AssetDir{dir: dir, docDir: docDir}
}

// Dir returns the assets directory.
func (d *AssetDir) Dir() string {
	return d.dir
}

// Path returns the location of name inside the assets directory.
func (d *AssetDir) Path(name string) string {
	return filepath.Join(d.dir, name)
}

// Write stores data under name and describes the result.
func (d *AssetDir) Write(name string, data []byte) (*Asset, error) {
	path := d.Path(name)
	if err := fileutil.WriteFile(path, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetWrite, err)
	}
	return d.Describe(path)
}

// Describe builds the Asset for a file already inside the directory.
func (d *AssetDir) Describe(path string) (*Asset, error) {
	ref, err := fileutil.RelSlash(d.docDir, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetWrite, err)
	}
	return &Asset{Path: path, Ref: ref}, nil
}
