package md2deck

import (
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-md2deck/internal/diagram"
	"github.com/alnah/go-md2deck/internal/pipeline"
)

// Defaults for a Preprocessor.
const (
	DefaultOutDir          = "dist"
	DefaultAssetsDirName   = "assets"
	DefaultKrokiURL        = diagram.DefaultKrokiURL
	DefaultKrokiTimeout    = diagram.DefaultKrokiTimeout
	DefaultDiagramsTimeout = diagram.DefaultDiagramsTimeout
)

// Option configures a Preprocessor.
type Option func(*Preprocessor)

// preprocessorConfig holds internal configuration for Preprocessor.
type preprocessorConfig struct {
	outDir          string
	assetsDir       string // empty = <outDir>/assets
	assetPath       string // custom runner/template directory
	krokiURL        string
	mermaidFormat   string // empty = svg
	krokiTimeout    time.Duration
	httpClient      *http.Client
	python          string // empty = DiscoverPython(".")
	runner          string // empty = embedded runner
	diagramsFormat  string // empty = png
	diagramsTimeout time.Duration
	workers         int
	frontmatter     pipeline.FrontmatterDefaults
	stdout          io.Writer
	stderr          io.Writer
	logger          *log.Logger
}

func defaultConfig() preprocessorConfig {
	return preprocessorConfig{
		outDir:          DefaultOutDir,
		krokiURL:        DefaultKrokiURL,
		krokiTimeout:    DefaultKrokiTimeout,
		diagramsTimeout: DefaultDiagramsTimeout,
		stdout:          os.Stdout,
		stderr:          os.Stderr,
		logger:          log.New(io.Discard),
	}
}

// WithOutDir sets the directory receiving the generated documents.
// Image references are written relative to it.
func WithOutDir(dir string) Option {
	return func(p *Preprocessor) {
		if dir != "" {
			p.cfg.outDir = dir
		}
	}
}

// WithAssetsDir sets the directory receiving rendered images.
// Defaults to <outDir>/assets.
func WithAssetsDir(dir string) Option {
	return func(p *Preprocessor) {
		p.cfg.assetsDir = dir
	}
}

// WithAssetPath sets a directory of custom assets (scripts/diagrams_runner.py,
// templates/fallback.svg) overriding the embedded ones.
func WithAssetPath(path string) Option {
	return func(p *Preprocessor) {
		p.cfg.assetPath = path
	}
}

// WithKrokiURL sets the Kroki server base URL.
func WithKrokiURL(url string) Option {
	return func(p *Preprocessor) {
		if url != "" {
			p.cfg.krokiURL = url
		}
	}
}

// WithFormats sets the image formats used by fences that do not set one.
// Empty values keep the defaults (svg for mermaid, png for diagrams).
func WithFormats(mermaid, diagrams string) Option {
	return func(p *Preprocessor) {
		p.cfg.mermaidFormat = mermaid
		p.cfg.diagramsFormat = diagrams
	}
}

// WithKrokiTimeout sets the per-request Kroki timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithKrokiTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2deck: WithKrokiTimeout duration must be positive")
	}
	return func(p *Preprocessor) {
		p.cfg.krokiTimeout = d
	}
}

// WithHTTPClient sets the client used for Kroki requests. Its own Timeout
// replaces WithKrokiTimeout.
func WithHTTPClient(c *http.Client) Option {
	return func(p *Preprocessor) {
		p.cfg.httpClient = c
	}
}

// WithPython sets the Python interpreter, bypassing discovery.
func WithPython(python string) Option {
	return func(p *Preprocessor) {
		p.cfg.python = python
	}
}

// WithRunner sets the path of the diagrams runner script, replacing the
// embedded one.
func WithRunner(path string) Option {
	return func(p *Preprocessor) {
		p.cfg.runner = path
	}
}

// WithDiagramsTimeout sets the per-diagram subprocess timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithDiagramsTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2deck: WithDiagramsTimeout duration must be positive")
	}
	return func(p *Preprocessor) {
		p.cfg.diagramsTimeout = d
	}
}

// WithWorkers sets how many diagrams render concurrently. Zero selects
// ResolveWorkers' automatic value.
func WithWorkers(n int) Option {
	return func(p *Preprocessor) {
		p.cfg.workers = n
	}
}

// WithFrontmatter sets the theme and footer added to synthesized
// frontmatter. A footer of "auto" or "auto:FORMAT" becomes the build date.
func WithFrontmatter(theme, footer string) Option {
	return func(p *Preprocessor) {
		p.cfg.frontmatter = pipeline.FrontmatterDefaults{Theme: theme, Footer: footer}
	}
}

// WithOutput sets where the diagrams subprocess output goes.
// Defaults to os.Stdout and os.Stderr.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(p *Preprocessor) {
		if stdout != nil {
			p.cfg.stdout = stdout
		}
		if stderr != nil {
			p.cfg.stderr = stderr
		}
	}
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(l *log.Logger) Option {
	return func(p *Preprocessor) {
		if l != nil {
			p.cfg.logger = l
		}
	}
}

// withRenderer replaces the backend for kind. Used by tests.
func withRenderer(kind pipeline.Kind, r diagram.Renderer) Option {
	return func(p *Preprocessor) {
		p.renderers[kind] = r
	}
}
