package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	flag "github.com/spf13/pflag"

	md2deck "github.com/alnah/go-md2deck"
	"github.com/alnah/go-md2deck/internal/config"
	"github.com/alnah/go-md2deck/internal/fileutil"
	"github.com/alnah/go-md2deck/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage         = errors.New("invalid usage")
	ErrConflictFlags = errors.New("--html-only and --pdf-only are mutually exclusive")
)

// defaultInputs are tried in order when no input is named anywhere.
var defaultInputs = []string{filepath.Join("src", "sample.md"), "sample.md"}

// deckNames are the files the deck stage produces, next to current.marp.md.
const (
	deckHTMLName = md2deck.CurrentName + ".html"
	deckPDFName  = md2deck.CurrentName + ".pdf"
)

// runBuild preprocesses one document and, when withDeck is set, renders
// it to HTML and PDF with Marp.
func runBuild(ctx context.Context, args []string, env *Environment, withDeck bool) error {
	name := "build"
	if !withDeck {
		name = "preprocess"
	}

	flags, positional, err := parseBuildFlags(name, args, env)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if flags.deck.htmlOnly && flags.deck.pdfOnly {
		return fmt.Errorf("%w: %w", ErrUsage, ErrConflictFlags)
	}

	logger := newLogger(env.Stderr, logLevel(flags.common))
	warnUnknownEnvVars(logger, env.Environ())

	envCfg := loadEnvConfig(env.Getenv)
	cfg, err := loadBuildConfig(flags, envCfg)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(envCfg.Input, flags.md, positional, cfg, fileutil.FileExists)
	if err != nil {
		return err
	}

	opts, err := preprocessorOptions(cfg, logger, env)
	if err != nil {
		return err
	}
	pre, err := md2deck.NewPreprocessor(opts...)
	if err != nil {
		return err
	}

	start := env.Now()
	logger.Debug("building deck", "input", inputPath, "workers", md2deck.ResolveWorkers(cfg.Workers))
	result, err := pre.PreprocessFile(ctx, inputPath)
	if err != nil {
		return err
	}

	if n := result.Fallbacks(); n > 0 {
		logger.Warn(fmt.Sprintf("%d mermaid diagram(s) replaced by a fallback image%s", n, hints.ForKrokiFallback(krokiURL(cfg))))
	}
	if !flags.common.quiet {
		for _, out := range result.Outputs {
			fmt.Fprintf(env.Stdout, "Created %s\n", out)
		}
	}

	if withDeck {
		if err := renderDeck(ctx, cfg, filepath.Dir(result.Outputs[len(result.Outputs)-1]), logger, env, flags.common.quiet); err != nil {
			return err
		}
	}

	logger.Info("done", "input", inputPath, "diagrams", len(result.Assets),
		"elapsed", env.Now().Sub(start).Round(time.Millisecond))
	return nil
}

// krokiURL returns the effective Kroki server.
func krokiURL(cfg *config.Config) string {
	if cfg.Kroki.URL != "" {
		return cfg.Kroki.URL
	}
	return md2deck.DefaultKrokiURL
}

// logLevel maps --quiet and --verbose to a log level.
func logLevel(f commonFlags) log.Level {
	switch {
	case f.quiet:
		return log.ErrorLevel
	case f.verbose:
		return log.DebugLevel
	default:
		return log.InfoLevel
	}
}

// loadBuildConfig loads the config file (flag > MD2DECK_CONFIG), overlays
// environment values and flags, and validates the result.
func loadBuildConfig(flags *buildFlags, envCfg *envConfig) (*config.Config, error) {
	cfg := config.DefaultConfig()

	configName := flags.common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}
	if configName != "" {
		loaded, err := config.LoadConfig(configName)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags applies CLI flags over config values. CLI wins when set.
func mergeFlags(flags *buildFlags, cfg *config.Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	set(&cfg.Output.Dir, flags.output.dir)
	set(&cfg.Output.AssetsDir, flags.output.assetsDir)
	set(&cfg.Kroki.URL, flags.renderer.krokiURL)
	set(&cfg.Diagrams.Python, flags.renderer.python)
	set(&cfg.Diagrams.Runner, flags.renderer.runner)
	set(&cfg.Assets.BasePath, flags.renderer.assetPath)
	set(&cfg.Deck.Marp, flags.deck.marp)
	set(&cfg.Deck.PDFEngine, flags.deck.pdfEngine)
	set(&cfg.Deck.Theme, flags.deck.theme)
	set(&cfg.Deck.ThemeSet, flags.deck.themeSet)
	set(&cfg.Deck.Timeout, flags.deck.timeout)
	set(&cfg.Frontmatter.Footer, flags.deck.footer)

	if flags.renderer.workers > 0 {
		cfg.Workers = flags.renderer.workers
	}
	if flags.deck.allowHTML {
		cfg.Deck.HTML = true
	}
	switch {
	case flags.deck.htmlOnly:
		cfg.Deck.Mode = config.ModeHTML
	case flags.deck.pdfOnly:
		cfg.Deck.Mode = config.ModePDF
	}
}

// resolveInputPath picks the document to build.
// Precedence: environment > --md > first positional > config input.default
// > src/sample.md > sample.md.
func resolveInputPath(envInput, flagInput string, positional []string, cfg *config.Config, exists func(string) bool) (string, error) {
	if envInput != "" {
		return envInput, nil
	}
	if flagInput != "" {
		return flagInput, nil
	}
	if len(positional) > 0 {
		return positional[0], nil
	}
	if cfg.Input.Default != "" {
		return cfg.Input.Default, nil
	}
	for _, p := range defaultInputs {
		if exists(p) {
			return p, nil
		}
	}
	return "", md2deck.ErrNoInput
}

// preprocessorOptions translates config into library options.
func preprocessorOptions(cfg *config.Config, logger *log.Logger, env *Environment) ([]md2deck.Option, error) {
	opts := []md2deck.Option{
		md2deck.WithOutDir(cfg.Output.Dir),
		md2deck.WithAssetsDir(cfg.Output.AssetsDir),
		md2deck.WithAssetPath(cfg.Assets.BasePath),
		md2deck.WithKrokiURL(cfg.Kroki.URL),
		md2deck.WithFormats(strings.ToLower(cfg.Kroki.Format), strings.ToLower(cfg.Diagrams.Format)),
		md2deck.WithPython(cfg.Diagrams.Python),
		md2deck.WithRunner(cfg.Diagrams.Runner),
		md2deck.WithWorkers(cfg.Workers),
		md2deck.WithFrontmatter(cfg.Frontmatter.Theme, cfg.Frontmatter.Footer),
		md2deck.WithOutput(env.Stdout, env.Stderr),
		md2deck.WithLogger(logger),
	}

	krokiTimeout, err := config.ParseDuration("kroki.timeout", cfg.Kroki.Timeout)
	if err != nil {
		return nil, err
	}
	if krokiTimeout > 0 {
		opts = append(opts, md2deck.WithKrokiTimeout(krokiTimeout))
	}

	diagramsTimeout, err := config.ParseDuration("diagrams.timeout", cfg.Diagrams.Timeout)
	if err != nil {
		return nil, err
	}
	if diagramsTimeout > 0 {
		opts = append(opts, md2deck.WithDiagramsTimeout(diagramsTimeout))
	}

	return opts, nil
}

// deckOptions translates config into Marp stage options.
func deckOptions(cfg *config.Config, logger *log.Logger, stdout, stderr io.Writer) (md2deck.DeckOptions, error) {
	timeout, err := config.ParseDuration("deck.timeout", cfg.Deck.Timeout)
	if err != nil {
		return md2deck.DeckOptions{}, err
	}
	return md2deck.DeckOptions{
		Marp:      cfg.Deck.Marp,
		AllowHTML: cfg.Deck.HTML,
		Theme:     cfg.Deck.Theme,
		ThemeSet:  cfg.Deck.ThemeSet,
		Engine:    strings.ToLower(cfg.Deck.PDFEngine),
		Timeout:   timeout,
		Stdout:    stdout,
		Stderr:    stderr,
		Logger:    logger,
	}, nil
}

// renderDeck runs Marp on current.marp.md in outDir according to deck.mode.
func renderDeck(ctx context.Context, cfg *config.Config, outDir string, logger *log.Logger, env *Environment, quiet bool) error {
	mode := strings.ToLower(cfg.Deck.Mode)
	if mode == "" {
		mode = config.ModeBoth
	}
	if mode == config.ModeNone {
		return nil
	}

	// Marp's progress lines go to stderr so stdout only lists created files.
	opts, err := deckOptions(cfg, logger, env.Stderr, env.Stderr)
	if err != nil {
		return err
	}
	deck, err := md2deck.NewDeck(opts)
	if err != nil {
		return err
	}
	defer func() { _ = deck.Close() }()

	input := filepath.Join(outDir, md2deck.CurrentName+md2deck.OutputSuffix)
	created := func(path string) {
		if !quiet {
			fmt.Fprintf(env.Stdout, "Created %s\n", path)
		}
	}

	if mode == config.ModeBoth || mode == config.ModeHTML {
		out := filepath.Join(outDir, deckHTMLName)
		if err := deck.HTML(ctx, input, out); err != nil {
			return err
		}
		created(out)
	}
	if mode == config.ModeBoth || mode == config.ModePDF {
		out := filepath.Join(outDir, deckPDFName)
		if err := deck.PDF(ctx, input, out); err != nil {
			return err
		}
		created(out)
	}
	return nil
}
