// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-md2deck/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser connection errors.
// Detects CI/Docker environment and suggests relevant environment variables.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForNoInput returns a hint listing the ways to name the input document.
func ForNoInput() string {
	return format("pass --md=src/deck.md, set MD2DECK_INPUT, or add src/sample.md")
}

// ForPython returns hints for a missing or failing Python interpreter.
func ForPython() string {
	return formatHints([]string{
		"set PYTHON or --python to the interpreter that has `diagrams` installed",
		"python3 -m venv .venv && .venv/bin/pip install diagrams",
	})
}

// ForDiagrams returns a hint for diagrams runner failures.
func ForDiagrams() string {
	return format("the diagrams package needs Graphviz (`dot`) on PATH; run `md2deck doctor`")
}

// ForKrokiFallback returns a hint attached to fallback image warnings.
func ForKrokiFallback(baseURL string) string {
	if strings.Contains(baseURL, "kroki.io") {
		return format("kroki.io may be rate limiting; run a local instance and set KROKI_URL")
	}
	return format("check that " + baseURL + " is reachable")
}

// ForMarp returns a hint for Marp CLI failures.
func ForMarp() string {
	return format("Marp CLI runs through npx; install Node.js 18+ or set MARP_CLI")
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for large decks, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-md2deck/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "go-md2deck") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
