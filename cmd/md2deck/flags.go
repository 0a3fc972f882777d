package main

import (
	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// outputFlags holds output location flags.
type outputFlags struct {
	dir       string
	assetsDir string
}

// rendererFlags holds diagram backend flags.
type rendererFlags struct {
	krokiURL  string
	python    string
	runner    string
	assetPath string
	workers   int
}

// deckFlags holds Marp stage flags.
type deckFlags struct {
	marp      string
	pdfEngine string
	theme     string
	themeSet  string
	footer    string
	allowHTML bool
	htmlOnly  bool
	pdfOnly   bool
	timeout   string
}

// buildFlags holds all flags for the build and preprocess commands.
type buildFlags struct {
	common   commonFlags
	md       string
	output   outputFlags
	renderer rendererFlags
	deck     deckFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

// addOutputFlags adds output location flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.dir, "out-dir", "o", "", "output directory (default: dist)")
	fs.StringVar(&f.assetsDir, "assets-dir", "", "rendered images directory (default: <out-dir>/assets)")
}

// addRendererFlags adds diagram backend flags to a FlagSet.
func addRendererFlags(fs *flag.FlagSet, f *rendererFlags) {
	fs.StringVar(&f.krokiURL, "kroki-url", "", "Kroki server for mermaid (default: https://kroki.io)")
	fs.StringVar(&f.python, "python", "", "Python interpreter with the diagrams package")
	fs.StringVar(&f.runner, "runner", "", "custom diagrams runner script")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory (scripts/, templates/)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "concurrent diagram renders (0 = auto)")
}

// addDeckFlags adds Marp stage flags to a FlagSet.
func addDeckFlags(fs *flag.FlagSet, f *deckFlags) {
	fs.StringVar(&f.marp, "marp", "", "Marp CLI command (default: npx --yes @marp-team/marp-cli)")
	fs.StringVar(&f.pdfEngine, "pdf-engine", "", "PDF engine: marp, chrome")
	fs.StringVar(&f.theme, "theme", "", "Marp theme name")
	fs.StringVar(&f.themeSet, "theme-set", "", "theme CSS file or directory")
	fs.StringVar(&f.footer, "footer", "", "footer for generated frontmatter (\"auto\" = build date)")
	fs.BoolVar(&f.allowHTML, "allow-html", false, "allow raw HTML in slides")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "render HTML only, skip PDF")
	fs.BoolVar(&f.pdfOnly, "pdf-only", false, "render PDF only, skip HTML")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "Marp timeout per output (e.g., 90s, 5m)")
}

// newBuildFlagSet registers every build flag on a new FlagSet.
// Shared by parsing and completion generation.
func newBuildFlagSet(name string, f *buildFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	fs.StringVar(&f.md, "md", "", "input markdown file")
	addCommonFlags(fs, &f.common)
	addOutputFlags(fs, &f.output)
	addRendererFlags(fs, &f.renderer)
	addDeckFlags(fs, &f.deck)

	return fs
}

// parseBuildFlags parses build or preprocess flags and returns positional args.
func parseBuildFlags(name string, args []string, env *Environment) (*buildFlags, []string, error) {
	f := &buildFlags{}
	fs := newBuildFlagSet(name, f)
	fs.SetOutput(env.Stderr)
	fs.Usage = func() {
		if name == "preprocess" {
			printPreprocessUsage(env.Stderr)
		} else {
			printBuildUsage(env.Stderr)
		}
	}

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
