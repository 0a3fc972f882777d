package md2deck

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-md2deck/internal/assets"
	"github.com/alnah/go-md2deck/internal/diagram"
	"github.com/alnah/go-md2deck/internal/fileutil"
	"github.com/alnah/go-md2deck/internal/pipeline"
)

// Preprocessor turns annotated Markdown into Marp-ready Markdown by
// rendering diagram fences to images. Create with NewPreprocessor; a
// Preprocessor is safe for sequential reuse across documents.
type Preprocessor struct {
	cfg       preprocessorConfig
	loader    assets.AssetLoader
	assetDir  *diagram.AssetDir
	renderers map[pipeline.Kind]diagram.Renderer
	now       func() time.Time
}

// NewPreprocessor creates a Preprocessor with default configuration.
// Use options to customize behavior (e.g., WithOutDir, WithKrokiURL).
// Returns error if custom assets cannot be loaded.
func NewPreprocessor(opts ...Option) (*Preprocessor, error) {
	p := &Preprocessor{
		cfg:       defaultConfig(),
		renderers: make(map[pipeline.Kind]diagram.Renderer),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(p)
	}

	resolver, err := assets.NewAssetResolver(p.cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	p.loader = resolver
	if resolver.HasCustomLoader() {
		p.cfg.logger.Debug("using custom assets", "path", p.cfg.assetPath)
	}

	assetsDir := p.cfg.assetsDir
	if assetsDir == "" {
		assetsDir = filepath.Join(p.cfg.outDir, DefaultAssetsDirName)
	}
	p.assetDir = diagram.NewAssetDir(assetsDir, p.cfg.outDir)

	if _, ok := p.renderers[pipeline.KindMermaid]; !ok {
		kroki, err := p.newKroki()
		if err != nil {
			return nil, err
		}
		p.renderers[pipeline.KindMermaid] = kroki
	}

	return p, nil
}

func (p *Preprocessor) newKroki() (*diagram.Kroki, error) {
	tmpl, err := p.loader.LoadTemplate(assets.DefaultFallbackName)
	if err != nil {
		return nil, fmt.Errorf("loading fallback template: %w", err)
	}
	fallback, err := diagram.NewFallback(tmpl)
	if err != nil {
		return nil, err
	}
	return diagram.NewKroki(diagram.KrokiConfig{
		BaseURL:  p.cfg.krokiURL,
		Format:   p.cfg.mermaidFormat,
		Timeout:  p.cfg.krokiTimeout,
		Client:   p.cfg.httpClient,
		Assets:   p.assetDir,
		Fallback: fallback,
		Logger:   p.cfg.logger,
	})
}

// newDiagrams prepares the Python backend. The returned cleanup removes
// the temporary runner script, if one was written.
func (p *Preprocessor) newDiagrams() (diagram.Renderer, func(), error) {
	noop := func() {}

	python := p.cfg.python
	if python == "" {
		python = DiscoverPython(".")
	}

	runner, cleanup := p.cfg.runner, noop
	if runner == "" {
		script, err := p.loader.LoadScript(assets.DefaultRunnerName)
		if err != nil {
			return nil, noop, fmt.Errorf("loading diagrams runner: %w", err)
		}
		runner, cleanup, err = fileutil.WriteTempFile(script, "py")
		if err != nil {
			return nil, noop, fmt.Errorf("writing diagrams runner: %w", err)
		}
	}

	r, err := diagram.NewDiagrams(diagram.DiagramsConfig{
		Python:  python,
		Runner:  runner,
		Format:  p.cfg.diagramsFormat,
		Timeout: p.cfg.diagramsTimeout,
		Assets:  p.assetDir,
		Stdout:  p.cfg.stdout,
		Stderr:  p.cfg.stderr,
		Logger:  p.cfg.logger,
	})
	if err != nil {
		cleanup()
		return nil, noop, err
	}
	p.cfg.logger.Debug("diagrams backend ready", "python", python, "runner", runner)
	return r, cleanup, nil
}

// Preprocess renders every diagram fence in markdown and returns the
// finished document. Rendering happens concurrently; substitution starts
// only after every render has finished. The first fatal render error
// cancels the remaining renders and is returned.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (p *Preprocessor) Preprocess(ctx context.Context, markdown string) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := pipeline.NormalizeLineEndings(markdown)
	doc, tasks := pipeline.ScanAll(doc)
	p.cfg.logger.Debug("scanned document", "diagrams", len(tasks))

	renderers, cleanup, err := p.renderersFor(tasks)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	rendered, err := p.renderAll(ctx, tasks, renderers)
	if err != nil {
		return nil, err
	}

	doc, err = pipeline.Substitute(doc, tasks)
	if err != nil {
		return nil, err
	}

	doc, added, err := pipeline.EnsureFrontmatter(doc, p.cfg.frontmatter, p.now())
	if err != nil {
		return nil, err
	}
	if !added {
		if fm, _ := pipeline.ReadFrontmatter(doc); fm["marp"] == nil {
			p.cfg.logger.Warn("frontmatter has no marp key; Marp CLI renders it anyway")
		}
	}

	return &Result{Markdown: doc, Assets: rendered, FrontmatterAdded: added}, nil
}

// renderersFor returns the backends needed by tasks, creating the Python
// backend only when a diagrams fence is present.
func (p *Preprocessor) renderersFor(tasks []pipeline.RenderTask) (map[pipeline.Kind]diagram.Renderer, func(), error) {
	renderers := make(map[pipeline.Kind]diagram.Renderer, len(p.renderers)+1)
	for k, r := range p.renderers {
		renderers[k] = r
	}

	cleanup := func() {}
	if _, ok := renderers[pipeline.KindDiagrams]; ok || !hasKind(tasks, pipeline.KindDiagrams) {
		return renderers, cleanup, nil
	}

	r, cleanup, err := p.newDiagrams()
	if err != nil {
		return nil, nil, err
	}
	renderers[pipeline.KindDiagrams] = r
	return renderers, cleanup, nil
}

// renderAll renders tasks with bounded concurrency and fills in each
// task's Replacement.
func (p *Preprocessor) renderAll(ctx context.Context, tasks []pipeline.RenderTask, renderers map[pipeline.Kind]diagram.Renderer) ([]RenderedAsset, error) {
	if len(tasks) == 0 {
		return nil, nil
	}

	workers := ResolveWorkers(p.cfg.workers)
	results := make([]*diagram.Asset, len(tasks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, task := range tasks {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("internal error rendering %s diagram #%d: %v", task.Kind, i, r)
				}
			}()

			asset, err := renderers[task.Kind].Render(gctx, task.Body, task.Options)
			if err != nil {
				return fmt.Errorf("rendering %s diagram #%d: %w", task.Kind, i, err)
			}
			results[i] = asset
			p.cfg.logger.Debug("rendered diagram", "kind", task.Kind, "ref", asset.Ref, "fallback", asset.Fallback)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rendered := make([]RenderedAsset, len(tasks))
	for i := range tasks {
		tasks[i].Replacement = pipeline.ImageRef(results[i].Ref)
		rendered[i] = RenderedAsset{
			Kind:     string(tasks[i].Kind),
			Path:     results[i].Path,
			Ref:      results[i].Ref,
			Fallback: results[i].Fallback,
		}
	}
	return rendered, nil
}

func hasKind(tasks []pipeline.RenderTask, kind pipeline.Kind) bool {
	for _, t := range tasks {
		if t.Kind == kind {
			return true
		}
	}
	return false
}
