package main

// Notes:
// - loadEnvConfig: we test with a map-backed getenv, never the real process
//   environment, so tests stay parallel.
// - warnUnknownEnvVars: we capture the logger output in a buffer.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-md2deck/internal/config"
)

func mapGetenv(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Variable names and fallbacks
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("all md2deck variables", func(t *testing.T) {
		t.Parallel()

		cfg := loadEnvConfig(mapGetenv(map[string]string{
			"MD2DECK_CONFIG":     "work",
			"MD2DECK_INPUT":      "talk.md",
			"MD2DECK_OUT_DIR":    "out",
			"MD2DECK_ASSETS_DIR": "img",
			"MD2DECK_KROKI_URL":  "http://k",
			"MD2DECK_PYTHON":     "py",
			"MD2DECK_MARP":       "marp",
			"MD2DECK_MODE":       "pdf",
			"MD2DECK_PDF_ENGINE": "chrome",
			"MD2DECK_THEME":      "gaia",
			"MD2DECK_FOOTER":     "auto",
			"MD2DECK_TIMEOUT":    "2m",
			"MD2DECK_WORKERS":    "3",
		}))

		want := envConfig{
			ConfigPath: "work", Input: "talk.md", OutDir: "out", AssetsDir: "img",
			KrokiURL: "http://k", Python: "py", Marp: "marp", Mode: "pdf",
			PDFEngine: "chrome", Theme: "gaia", Footer: "auto", Timeout: "2m", Workers: 3,
		}
		if *cfg != want {
			t.Errorf("loadEnvConfig() = %+v, want %+v", *cfg, want)
		}
	})

	t.Run("generic names", func(t *testing.T) {
		t.Parallel()

		cfg := loadEnvConfig(mapGetenv(map[string]string{
			"npm_config_md": "npm.md",
			"KROKI_URL":     "http://generic",
			"PYTHON":        "python3.12",
			"MARP_CLI":      "marp-cli",
		}))
		if cfg.Input != "npm.md" || cfg.KrokiURL != "http://generic" || cfg.Python != "python3.12" || cfg.Marp != "marp-cli" {
			t.Errorf("loadEnvConfig() = %+v", *cfg)
		}
	})

	t.Run("md2deck names win", func(t *testing.T) {
		t.Parallel()

		cfg := loadEnvConfig(mapGetenv(map[string]string{
			"MD2DECK_INPUT":     "own.md",
			"npm_config_md":     "npm.md",
			"MD2DECK_KROKI_URL": "http://own",
			"KROKI_URL":         "http://generic",
		}))
		if cfg.Input != "own.md" || cfg.KrokiURL != "http://own" {
			t.Errorf("loadEnvConfig() = %+v", *cfg)
		}
	})

	t.Run("bare npm flag ignored", func(t *testing.T) {
		t.Parallel()

		cfg := loadEnvConfig(mapGetenv(map[string]string{"npm_config_md": "true"}))
		if cfg.Input != "" {
			t.Errorf("Input = %q, want empty", cfg.Input)
		}
	})

	t.Run("invalid workers ignored", func(t *testing.T) {
		t.Parallel()

		for _, v := range []string{"abc", "0", "-2"} {
			cfg := loadEnvConfig(mapGetenv(map[string]string{"MD2DECK_WORKERS": v}))
			if cfg.Workers != 0 {
				t.Errorf("MD2DECK_WORKERS=%q: Workers = %d, want 0", v, cfg.Workers)
			}
		}
	})
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Env overrides config values when set
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Output:      config.OutputConfig{Dir: "cfg-out", AssetsDir: "cfg-img"},
		Kroki:       config.KrokiConfig{URL: "http://cfg"},
		Deck:        config.DeckConfig{Mode: config.ModeBoth, Theme: "default"},
		Frontmatter: config.FrontmatterConfig{Footer: "Team"},
		Workers:     2,
	}

	applyEnvConfig(&envConfig{OutDir: "env-out", Theme: "gaia", Mode: config.ModeHTML}, cfg)

	if cfg.Output.Dir != "env-out" {
		t.Errorf("Output.Dir = %q, want env-out", cfg.Output.Dir)
	}
	if cfg.Output.AssetsDir != "cfg-img" {
		t.Errorf("Output.AssetsDir = %q, want cfg-img (unset env keeps config)", cfg.Output.AssetsDir)
	}
	if cfg.Kroki.URL != "http://cfg" {
		t.Errorf("Kroki.URL = %q, want http://cfg", cfg.Kroki.URL)
	}
	if cfg.Deck.Theme != "gaia" || cfg.Deck.Mode != config.ModeHTML {
		t.Errorf("Deck = %+v", cfg.Deck)
	}
	if cfg.Frontmatter.Footer != "Team" || cfg.Workers != 2 {
		t.Errorf("cfg = %+v", cfg)
	}
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := log.New(&buf)

	warnUnknownEnvVars(logger, []string{
		"MD2DECK_OUT_DIR=dist",
		"MD2DECK_OUTDIR=dist",
		"MD2DECK_THEEM=gaia",
		"KROKI_URL=http://k",
		"PATH=/bin",
	})

	out := buf.String()
	for _, name := range []string{"MD2DECK_OUTDIR", "MD2DECK_THEEM"} {
		if !strings.Contains(out, name) {
			t.Errorf("output should warn about %s, got %q", name, out)
		}
	}
	for _, name := range []string{"MD2DECK_OUT_DIR", "KROKI_URL", "PATH"} {
		if strings.Contains(out, "name="+name+"\n") {
			t.Errorf("output should not warn about %s, got %q", name, out)
		}
	}
}
