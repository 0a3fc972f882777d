package main

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	md2deck "github.com/alnah/go-md2deck"
	"github.com/alnah/go-md2deck/internal/config"
)

// envPrefix marks md2deck's own environment variables.
const envPrefix = "MD2DECK_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	// Input selection
	ConfigPath string // MD2DECK_CONFIG: config file name or path
	Input      string // MD2DECK_INPUT or npm_config_md: input document

	// Output
	OutDir    string // MD2DECK_OUT_DIR
	AssetsDir string // MD2DECK_ASSETS_DIR

	// Renderers
	KrokiURL string // MD2DECK_KROKI_URL or KROKI_URL
	Python   string // MD2DECK_PYTHON or PYTHON
	Marp     string // MD2DECK_MARP or MARP_CLI

	// Deck
	Mode      string // MD2DECK_MODE: both, html, pdf, none
	PDFEngine string // MD2DECK_PDF_ENGINE: marp, chrome
	Theme     string // MD2DECK_THEME: Marp --theme
	Footer    string // MD2DECK_FOOTER
	Timeout   string // MD2DECK_TIMEOUT: Marp timeout
	Workers   int    // MD2DECK_WORKERS
}

// knownEnvVars lists valid MD2DECK_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2DECK_CONFIG":     true,
	"MD2DECK_INPUT":      true,
	"MD2DECK_OUT_DIR":    true,
	"MD2DECK_ASSETS_DIR": true,
	"MD2DECK_KROKI_URL":  true,
	"MD2DECK_PYTHON":     true,
	"MD2DECK_MARP":       true,
	"MD2DECK_MODE":       true,
	"MD2DECK_PDF_ENGINE": true,
	"MD2DECK_THEME":      true,
	"MD2DECK_FOOTER":     true,
	"MD2DECK_TIMEOUT":    true,
	"MD2DECK_WORKERS":    true,
	"MD2DECK_CONTAINER":  true,
}

// firstEnv returns the value of the first set variable among names.
func firstEnv(getenv func(string) string, names ...string) string {
	for _, n := range names {
		if v := getenv(n); v != "" {
			return v
		}
	}
	return ""
}

// loadEnvConfig reads configuration from environment variables.
// md2deck's own names win over the generic ones (KROKI_URL, PYTHON, MARP_CLI).
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("MD2DECK_CONFIG"),
		Input:      firstEnv(getenv, "MD2DECK_INPUT", "npm_config_md"),
		OutDir:     getenv("MD2DECK_OUT_DIR"),
		AssetsDir:  getenv("MD2DECK_ASSETS_DIR"),
		KrokiURL:   firstEnv(getenv, "MD2DECK_KROKI_URL", "KROKI_URL"),
		Python:     firstEnv(getenv, "MD2DECK_PYTHON", md2deck.PythonEnvVar),
		Marp:       firstEnv(getenv, "MD2DECK_MARP", md2deck.MarpEnvVar),
		Mode:       getenv("MD2DECK_MODE"),
		PDFEngine:  getenv("MD2DECK_PDF_ENGINE"),
		Theme:      getenv("MD2DECK_THEME"),
		Footer:     getenv("MD2DECK_FOOTER"),
		Timeout:    getenv("MD2DECK_TIMEOUT"),
	}

	// npm passes `npm run build --md=x` as npm_config_md=x; a bare --md
	// arrives as "true".
	if cfg.Input == "true" {
		cfg.Input = ""
	}

	if workers := getenv("MD2DECK_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MD2DECK_* variables.
// Helps catch typos like MD2DECK_OUTDIR instead of MD2DECK_OUT_DIR.
func warnUnknownEnvVars(logger *log.Logger, environ []string) {
	for _, env := range environ {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				logger.Warn("unknown environment variable (typo?)", "name", name)
			}
		}
	}
}

// applyEnvConfig overlays environment values on the loaded config.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	set(&cfg.Output.Dir, env.OutDir)
	set(&cfg.Output.AssetsDir, env.AssetsDir)
	set(&cfg.Kroki.URL, env.KrokiURL)
	set(&cfg.Diagrams.Python, env.Python)
	set(&cfg.Deck.Marp, env.Marp)
	set(&cfg.Deck.Mode, env.Mode)
	set(&cfg.Deck.PDFEngine, env.PDFEngine)
	set(&cfg.Deck.Timeout, env.Timeout)
	set(&cfg.Deck.Theme, env.Theme)
	set(&cfg.Frontmatter.Footer, env.Footer)

	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
}
