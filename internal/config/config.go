// Package config loads and validates md2deck YAML configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/alnah/go-md2deck/internal/dateutil"
	"github.com/alnah/go-md2deck/internal/fileutil"
	"github.com/alnah/go-md2deck/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength     = 4096 // PATH_MAX on Linux
	MaxURLLength      = 2048 // Browser limit
	MaxCommandLength  = 1024 // "npx --yes @marp-team/marp-cli"
	MaxThemeLength    = 100  // Theme name declared by a CSS file
	MaxFooterLength   = 500  // Free-form footer text
	MaxDurationLength = 20   // "30s", "2m30s"
	MaxWorkers        = 64
)

// Deck output modes.
const (
	ModeBoth = "both"
	ModeHTML = "html"
	ModePDF  = "pdf"
	ModeNone = "none"
)

// PDF engines.
const (
	EngineMarp   = "marp"
	EngineChrome = "chrome"
)

var formatPattern = regexp.MustCompile(`^[a-z0-9]+$`)

// Config holds all configuration for a deck build.
type Config struct {
	Input       InputConfig       `yaml:"input"`
	Output      OutputConfig      `yaml:"output"`
	Kroki       KrokiConfig       `yaml:"kroki"`
	Diagrams    DiagramsConfig    `yaml:"diagrams"`
	Frontmatter FrontmatterConfig `yaml:"frontmatter"`
	Deck        DeckConfig        `yaml:"deck"`
	Assets      AssetsConfig      `yaml:"assets"`
	Workers     int               `yaml:"workers"` // 0 = auto
}

// InputConfig defines input source options.
type InputConfig struct {
	Default string `yaml:"default"` // Markdown file used when none is given
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	Dir       string `yaml:"dir"`       // Default "dist"
	AssetsDir string `yaml:"assetsDir"` // Default "<dir>/assets"
}

// KrokiConfig defines the Mermaid rendering service.
type KrokiConfig struct {
	URL     string `yaml:"url"`     // Default "https://kroki.io"
	Format  string `yaml:"format"`  // Default "svg"
	Timeout string `yaml:"timeout"` // Go duration, default "30s"
}

// DiagramsConfig defines the Python diagrams subprocess.
type DiagramsConfig struct {
	Python  string `yaml:"python"`  // Interpreter, empty = discovery
	Runner  string `yaml:"runner"`  // Runner script path, empty = embedded
	Format  string `yaml:"format"`  // Default "png"
	Timeout string `yaml:"timeout"` // Go duration, default "2m"
}

// FrontmatterConfig defines keys added to synthesized frontmatter.
type FrontmatterConfig struct {
	Theme  string `yaml:"theme"`
	Footer string `yaml:"footer"` // "auto" or "auto:FORMAT" inserts the build date
}

// DeckConfig defines the Marp stage.
type DeckConfig struct {
	Mode      string `yaml:"mode"`      // both, html, pdf, none (default: both)
	Marp      string `yaml:"marp"`      // Marp CLI command line
	PDFEngine string `yaml:"pdfEngine"` // marp or chrome (default: marp)
	HTML      bool   `yaml:"html"`      // Allow raw HTML in slides
	Theme     string `yaml:"theme"`
	ThemeSet  string `yaml:"themeSet"` // CSS file or directory
	Timeout   string `yaml:"timeout"`  // Go duration, default "5m"
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// Validate checks field lengths and enum values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"input.default", c.Input.Default, MaxPathLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"output.assetsDir", c.Output.AssetsDir, MaxPathLength},
		{"kroki.url", c.Kroki.URL, MaxURLLength},
		{"kroki.timeout", c.Kroki.Timeout, MaxDurationLength},
		{"diagrams.python", c.Diagrams.Python, MaxPathLength},
		{"diagrams.runner", c.Diagrams.Runner, MaxPathLength},
		{"diagrams.timeout", c.Diagrams.Timeout, MaxDurationLength},
		{"frontmatter.theme", c.Frontmatter.Theme, MaxThemeLength},
		{"frontmatter.footer", c.Frontmatter.Footer, MaxFooterLength},
		{"deck.marp", c.Deck.Marp, MaxCommandLength},
		{"deck.theme", c.Deck.Theme, MaxThemeLength},
		{"deck.themeSet", c.Deck.ThemeSet, MaxPathLength},
		{"deck.timeout", c.Deck.Timeout, MaxDurationLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	if c.Kroki.URL != "" && !strings.HasPrefix(c.Kroki.URL, "http://") && !strings.HasPrefix(c.Kroki.URL, "https://") {
		return fmt.Errorf("%w: kroki.url: %q must start with http:// or https://", ErrInvalidValue, c.Kroki.URL)
	}
	if err := validateFormat("kroki.format", c.Kroki.Format); err != nil {
		return err
	}
	if err := validateFormat("diagrams.format", c.Diagrams.Format); err != nil {
		return err
	}

	for field, value := range map[string]string{
		"kroki.timeout":    c.Kroki.Timeout,
		"diagrams.timeout": c.Diagrams.Timeout,
		"deck.timeout":     c.Deck.Timeout,
	} {
		if _, err := ParseDuration(field, value); err != nil {
			return err
		}
	}

	if strings.HasPrefix(strings.ToLower(c.Frontmatter.Footer), "auto") {
		if _, err := dateutil.Expand(c.Frontmatter.Footer, time.Now()); err != nil {
			return fmt.Errorf("frontmatter.footer: %w", err)
		}
	}

	switch strings.ToLower(c.Deck.Mode) {
	case "", ModeBoth, ModeHTML, ModePDF, ModeNone:
	default:
		return fmt.Errorf("%w: deck.mode: %q (must be both, html, pdf, or none)", ErrInvalidValue, c.Deck.Mode)
	}
	switch strings.ToLower(c.Deck.PDFEngine) {
	case "", EngineMarp, EngineChrome:
	default:
		return fmt.Errorf("%w: deck.pdfEngine: %q (must be marp or chrome)", ErrInvalidValue, c.Deck.PDFEngine)
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers: must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Workers)
	}

	return nil
}

// ParseDuration parses a Go duration string. An empty value yields zero,
// which callers treat as "use the default".
func ParseDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidValue, field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: %s: must not be negative", ErrInvalidValue, field)
	}
	return d, nil
}

// validateFormat rejects format values that are unsafe in file names.
func validateFormat(field, value string) error {
	if value == "" {
		return nil
	}
	if !formatPattern.MatchString(strings.ToLower(value)) {
		return fmt.Errorf("%w: %s: %q (letters and digits only)", ErrInvalidValue, field, value)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns an empty configuration; zero values select the
// built-in defaults downstream.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-md2deck/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-md2deck", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
