package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-rod/rod/lib/launcher"

	md2deck "github.com/alnah/go-md2deck"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorTimeout bounds each external probe.
const doctorTimeout = 10 * time.Second

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Python   pythonInfo `json:"python"`
	Graphviz toolInfo   `json:"graphviz"`
	Marp     toolInfo   `json:"marp"`
	Kroki    krokiInfo  `json:"kroki"`
	Chrome   chromeInfo `json:"chrome"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// pythonInfo holds interpreter detection results.
type pythonInfo struct {
	Found    bool   `json:"found"`
	Path     string `json:"path,omitempty"`
	Version  string `json:"version,omitempty"`
	Diagrams bool   `json:"diagrams"`
}

// toolInfo holds detection results for a command on PATH.
type toolInfo struct {
	Command string `json:"command"`
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

// krokiInfo holds Kroki reachability results.
type krokiInfo struct {
	URL       string `json:"url"`
	Reachable bool   `json:"reachable"`
	Status    int    `json:"status,omitempty"`
}

// chromeInfo holds Chrome/Chromium detection results.
type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// doctorProbe holds the lookups doctor performs, replaceable in tests.
type doctorProbe struct {
	getenv   func(string) string
	lookPath func(string) (string, error)
	output   func(ctx context.Context, name string, args ...string) ([]byte, error)
	chrome   func() (string, bool)
	exists   func(string) bool
	client   *http.Client
	tempDir  string
}

// defaultProbe returns the production probe.
func defaultProbe(env *Environment) *doctorProbe {
	return &doctorProbe{
		getenv:   env.Getenv,
		lookPath: exec.LookPath,
		output: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			// #nosec G204 -- probing tools the user configured
			return exec.CommandContext(ctx, name, args...).CombinedOutput()
		},
		chrome: launcher.LookPath,
		exists: func(p string) bool {
			_, err := os.Stat(p)
			return err == nil
		},
		client:  &http.Client{Timeout: doctorTimeout},
		tempDir: os.TempDir(),
	}
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		switch arg {
		case "--json":
			jsonOutput = true
		case "-h", "--help":
			printDoctorUsage(env.Stdout)
			return ExitSuccess
		}
	}

	result := runDoctor(ctx, defaultProbe(env))

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context, p *doctorProbe) *doctorResult {
	envCfg := loadEnvConfig(p.getenv)
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  p.getenv("ROD_NO_SANDBOX"),
			BrowserBin: p.getenv("ROD_BROWSER_BIN"),
		},
	}

	checkPython(ctx, p, envCfg.Python, result)
	checkGraphviz(ctx, p, result)
	checkMarp(p, envCfg.Marp, result)
	checkKroki(ctx, p, envCfg.KrokiURL, result)
	checkChrome(ctx, p, result)
	checkEnvironment(p, result)
	checkSystem(p, result)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}

	return result
}

// probeVersion runs name with args and returns the first output line.
func probeVersion(ctx context.Context, p *doctorProbe, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, doctorTimeout)
	defer cancel()

	out, err := p.output(ctx, name, args...)
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return line, nil
}

// checkPython locates the interpreter and checks that diagrams imports.
func checkPython(ctx context.Context, p *doctorProbe, configured string, result *doctorResult) {
	python := configured
	if python == "" {
		python = md2deck.DiscoverPython(".")
	}

	path, err := p.lookPath(python)
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Python not found (%s); diagrams fences will fail. Set PYTHON or --python", python))
		return
	}
	result.Python.Found = true
	result.Python.Path = path

	if v, err := probeVersion(ctx, p, path, "--version"); err == nil {
		result.Python.Version = v
	}

	if _, err := probeVersion(ctx, p, path, "-c", "import diagrams"); err != nil {
		result.Warnings = append(result.Warnings,
			"Python package diagrams not importable. Run: pip install diagrams")
		return
	}
	result.Python.Diagrams = true
}

// checkGraphviz locates dot, which the diagrams package shells out to.
func checkGraphviz(ctx context.Context, p *doctorProbe, result *doctorResult) {
	result.Graphviz.Command = "dot"
	path, err := p.lookPath("dot")
	if err != nil {
		result.Warnings = append(result.Warnings,
			"Graphviz (dot) not found; diagrams fences will fail")
		return
	}
	result.Graphviz.Found = true
	result.Graphviz.Path = path

	// dot -V prints to stderr.
	if v, err := probeVersion(ctx, p, path, "-V"); err == nil {
		result.Graphviz.Version = v
	}
}

// checkMarp locates the program that starts the Marp command line.
// Running it is avoided: npx may download the package.
func checkMarp(p *doctorProbe, configured string, result *doctorResult) {
	command := configured
	if command == "" {
		command = md2deck.DefaultMarpCommand
	}
	result.Marp.Command = command

	fields := strings.Fields(command)
	if len(fields) == 0 {
		result.Errors = append(result.Errors, "Marp CLI command is empty")
		return
	}
	path, err := p.lookPath(fields[0])
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("%s not found; install Node.js 18+ or set MARP_CLI", fields[0]))
		return
	}
	result.Marp.Found = true
	result.Marp.Path = path
}

// checkKroki probes the Kroki health endpoint.
func checkKroki(ctx context.Context, p *doctorProbe, configured string, result *doctorResult) {
	base := configured
	if base == "" {
		base = md2deck.DefaultKrokiURL
	}
	result.Kroki.URL = base

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(base, "/")+"/health", nil)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid Kroki URL %q: %v", base, err))
		return
	}
	resp, err := p.client.Do(req)
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Kroki unreachable at %s; mermaid diagrams will use fallback images", base))
		return
	}
	_ = resp.Body.Close()

	result.Kroki.Status = resp.StatusCode
	if resp.StatusCode >= 500 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Kroki at %s answered %d", base, resp.StatusCode))
		return
	}
	result.Kroki.Reachable = true
}

// checkChrome detects Chrome/Chromium, needed only for --pdf-engine chrome.
func checkChrome(ctx context.Context, p *doctorProbe, result *doctorResult) {
	chromePath := result.Env.BrowserBin

	if chromePath == "" {
		// Use rod's launcher to locate Chrome
		var found bool
		chromePath, found = p.chrome()
		if !found {
			result.Warnings = append(result.Warnings,
				"Chrome/Chromium not found; --pdf-engine chrome will download one on first use")
			return
		}
	}

	if !p.exists(chromePath) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Chrome not found at %s", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath
	if v, err := probeVersion(ctx, p, chromePath, "--version"); err == nil {
		result.Chrome.Version = v
	}

	// Sandbox status: disabled if ROD_NO_SANDBOX=1
	result.Chrome.Sandbox = result.Env.NoSandbox != "1"
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(p *doctorProbe, result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer(p)

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if p.getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if result.Chrome.Found && (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer(p *doctorProbe) (bool, string) {
	if p.getenv("MD2DECK_CONTAINER") == "1" {
		return true, "MD2DECK_CONTAINER=1"
	}
	if p.exists("/.dockerenv") {
		return true, "/.dockerenv"
	}
	if v := p.getenv("container"); v != "" {
		return true, "container=" + v
	}
	if p.getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory used for the runner script.
func checkSystem(p *doctorProbe, result *doctorResult) {
	testFile := filepath.Join(p.tempDir, "md2deck-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", p.tempDir))
		return
	}
	_ = os.Remove(testFile)
	result.System.TempWritable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "md2deck doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Python")
	if r.Python.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Python.Path)
		if r.Python.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Python.Version)
		}
		if r.Python.Diagrams {
			fmt.Fprintln(w, "  [OK] diagrams: importable")
		} else {
			fmt.Fprintln(w, "  [WARN] diagrams: not installed")
		}
	} else {
		fmt.Fprintln(w, "  [WARN] Not found")
	}
	fmt.Fprintln(w)

	printTool(w, "Graphviz", r.Graphviz, "[WARN]")
	printTool(w, "Marp CLI", r.Marp, "[ERROR]")

	fmt.Fprintln(w, "Kroki")
	if r.Kroki.Reachable {
		fmt.Fprintf(w, "  [OK] %s (HTTP %d)\n", r.Kroki.URL, r.Kroki.Status)
	} else {
		fmt.Fprintf(w, "  [WARN] %s unreachable (fallback images)\n", r.Kroki.URL)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium (--pdf-engine chrome)")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	} else {
		fmt.Fprintln(w, "  [WARN] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to build")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

// printTool prints one PATH tool section.
func printTool(w io.Writer, title string, t toolInfo, missing string) {
	fmt.Fprintln(w, title)
	if t.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", t.Path)
		if t.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", t.Version)
		}
	} else {
		fmt.Fprintf(w, "  %s %s not found\n", missing, t.Command)
	}
	fmt.Fprintln(w)
}
