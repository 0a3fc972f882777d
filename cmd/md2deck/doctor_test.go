package main

// Notes:
// - runDoctor: we test with a fake doctorProbe so results do not depend on
//   the tools installed on the test machine.
// - runDoctorCmd: the JSON test uses the real probe but points Kroki at a
//   local server; only structure and exit-code consistency are asserted.
// - printDoctorResult: we test the status line and section markers.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake probe
// ---------------------------------------------------------------------------

// fakeProbe returns a probe where every tool is installed and Kroki answers
// with krokiStatus. Tests adjust fields to simulate failures.
func fakeProbe(t *testing.T, krokiStatus int, vars map[string]string) *doctorProbe {
	t.Helper()

	srv := newKroki(t, krokiStatus)
	if vars == nil {
		vars = map[string]string{}
	}
	if _, ok := vars["MD2DECK_KROKI_URL"]; !ok {
		vars["MD2DECK_KROKI_URL"] = srv.URL
	}
	if _, ok := vars["PYTHON"]; !ok {
		vars["PYTHON"] = "python3"
	}

	return &doctorProbe{
		getenv:   mapGetenv(vars),
		lookPath: func(name string) (string, error) { return "/usr/bin/" + filepath.Base(name), nil },
		output: func(_ context.Context, name string, args ...string) ([]byte, error) {
			switch {
			case len(args) > 0 && args[0] == "--version" && strings.Contains(name, "python"):
				return []byte("Python 3.12.1\n"), nil
			case len(args) > 0 && args[0] == "-V":
				return []byte("dot - graphviz version 12.0.0\n"), nil
			case len(args) > 0 && args[0] == "--version":
				return []byte("Chromium 130.0\n"), nil
			}
			return nil, nil
		},
		chrome:  func() (string, bool) { return "/opt/chrome", true },
		exists:  func(p string) bool { return p == "/opt/chrome" },
		client:  srv.Client(),
		tempDir: t.TempDir(),
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctor - Status and findings
// ---------------------------------------------------------------------------

func TestRunDoctor_AllReady(t *testing.T) {
	t.Parallel()

	result := runDoctor(context.Background(), fakeProbe(t, http.StatusOK, nil))

	if result.Status != statusReady {
		t.Fatalf("Status = %q, warnings %v, errors %v", result.Status, result.Warnings, result.Errors)
	}
	if !result.Python.Found || !result.Python.Diagrams || result.Python.Version != "Python 3.12.1" {
		t.Errorf("Python = %+v", result.Python)
	}
	if !result.Graphviz.Found || !strings.Contains(result.Graphviz.Version, "graphviz") {
		t.Errorf("Graphviz = %+v", result.Graphviz)
	}
	if !result.Marp.Found || result.Marp.Command != "npx --yes @marp-team/marp-cli" || result.Marp.Path != "/usr/bin/npx" {
		t.Errorf("Marp = %+v", result.Marp)
	}
	if !result.Kroki.Reachable || result.Kroki.Status != http.StatusOK {
		t.Errorf("Kroki = %+v", result.Kroki)
	}
	if !result.Chrome.Found || !result.Chrome.Sandbox || result.Chrome.Version != "Chromium 130.0" {
		t.Errorf("Chrome = %+v", result.Chrome)
	}
	if !result.System.TempWritable {
		t.Error("TempWritable should be true")
	}
}

func TestRunDoctor_Findings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		vars       map[string]string
		adjust     func(p *doctorProbe)
		wantStatus string
		wantText   string
	}{
		{
			name:   "marp launcher missing",
			status: http.StatusOK,
			adjust: func(p *doctorProbe) {
				p.lookPath = func(name string) (string, error) {
					if name == "npx" {
						return "", errors.New("not found")
					}
					return "/usr/bin/" + name, nil
				}
			},
			wantStatus: statusErrors,
			wantText:   "npx not found",
		},
		{
			name:       "custom marp command",
			status:     http.StatusOK,
			vars:       map[string]string{"MARP_CLI": "/opt/marp/bin/marp --no-stdin"},
			wantStatus: statusReady,
		},
		{
			name:       "kroki unhealthy",
			status:     http.StatusServiceUnavailable,
			wantStatus: statusWarnings,
			wantText:   "answered 503",
		},
		{
			name:       "kroki unreachable",
			status:     http.StatusOK,
			vars:       map[string]string{"MD2DECK_KROKI_URL": "http://127.0.0.1:1"},
			wantStatus: statusWarnings,
			wantText:   "Kroki unreachable",
		},
		{
			name:   "diagrams not importable",
			status: http.StatusOK,
			adjust: func(p *doctorProbe) {
				p.output = func(_ context.Context, _ string, args ...string) ([]byte, error) {
					if len(args) > 1 && args[0] == "-c" {
						return nil, errors.New("ModuleNotFoundError")
					}
					return []byte("ok\n"), nil
				}
			},
			wantStatus: statusWarnings,
			wantText:   "pip install diagrams",
		},
		{
			name:   "python missing",
			status: http.StatusOK,
			adjust: func(p *doctorProbe) {
				p.lookPath = func(name string) (string, error) {
					if strings.HasPrefix(name, "python") {
						return "", errors.New("not found")
					}
					return "/usr/bin/" + name, nil
				}
			},
			wantStatus: statusWarnings,
			wantText:   "Python not found",
		},
		{
			name:   "chrome missing",
			status: http.StatusOK,
			adjust: func(p *doctorProbe) {
				p.chrome = func() (string, bool) { return "", false }
			},
			wantStatus: statusWarnings,
			wantText:   "Chrome/Chromium not found",
		},
		{
			name:       "container without no-sandbox",
			status:     http.StatusOK,
			vars:       map[string]string{"MD2DECK_CONTAINER": "1"},
			wantStatus: statusWarnings,
			wantText:   "ROD_NO_SANDBOX",
		},
		{
			name:   "temp not writable",
			status: http.StatusOK,
			adjust: func(p *doctorProbe) {
				p.tempDir = filepath.Join(p.tempDir, "missing", "dir")
			},
			wantStatus: statusErrors,
			wantText:   "Temp directory not writable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := fakeProbe(t, tt.status, tt.vars)
			if tt.adjust != nil {
				tt.adjust(p)
			}
			result := runDoctor(context.Background(), p)

			if result.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q (warnings %v, errors %v)",
					result.Status, tt.wantStatus, result.Warnings, result.Errors)
			}
			if tt.wantText != "" {
				all := strings.Join(append(append([]string{}, result.Warnings...), result.Errors...), "\n")
				if !strings.Contains(all, tt.wantText) {
					t.Errorf("findings %q, want to contain %q", all, tt.wantText)
				}
			}
		})
	}
}

func TestIsContainer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		vars     map[string]string
		exists   bool
		want     bool
		wantHint string
	}{
		{"none", nil, false, false, ""},
		{"explicit", map[string]string{"MD2DECK_CONTAINER": "1"}, false, true, "MD2DECK_CONTAINER=1"},
		{"dockerenv", nil, true, true, "/.dockerenv"},
		{"podman", map[string]string{"container": "podman"}, false, true, "container=podman"},
		{"kubernetes", map[string]string{"KUBERNETES_SERVICE_HOST": "10.0.0.1"}, false, true, "KUBERNETES_SERVICE_HOST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := &doctorProbe{
				getenv: mapGetenv(tt.vars),
				exists: func(string) bool { return tt.exists },
			}
			got, hint := isContainer(p)
			if got != tt.want || hint != tt.wantHint {
				t.Errorf("isContainer() = (%v, %q), want (%v, %q)", got, hint, tt.want, tt.wantHint)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestPrintDoctorResult - Human-readable output
// ---------------------------------------------------------------------------

func TestPrintDoctorResult(t *testing.T) {
	t.Parallel()

	result := runDoctor(context.Background(), fakeProbe(t, http.StatusServiceUnavailable, nil))

	var buf bytes.Buffer
	printDoctorResult(&buf, result)
	out := buf.String()

	for _, want := range []string{
		"md2deck doctor",
		"[OK] diagrams: importable",
		"Marp CLI",
		"unreachable (fallback images)",
		"Warnings:",
		"Status: Ready with warnings",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd - Command entry point
// ---------------------------------------------------------------------------

func TestRunDoctorCmd_JSONOutput(t *testing.T) {
	t.Parallel()

	srv := newKroki(t, http.StatusOK)
	env, stdout, _ := testEnv(map[string]string{"MD2DECK_KROKI_URL": srv.URL, "PYTHON": "python3"})

	code := runDoctorCmd(context.Background(), []string{"--json"}, env)

	var result doctorResult
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout.String())
	}
	if result.Env.OS == "" || result.Env.Arch == "" {
		t.Error("JSON should contain platform")
	}
	if !result.Kroki.Reachable {
		t.Errorf("Kroki = %+v, want reachable", result.Kroki)
	}
	if result.Status == statusErrors && code != ExitGeneral {
		t.Errorf("exit code = %d for errors status", code)
	}
	if result.Status != statusErrors && code != ExitSuccess {
		t.Errorf("exit code = %d for %s status", code, result.Status)
	}
}

func TestRunDoctorCmd_Help(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv(nil)
	if code := runDoctorCmd(context.Background(), []string{"-h"}, env); code != ExitSuccess {
		t.Errorf("exit code = %d, want 0", code)
	}
	if !strings.Contains(stdout.String(), "Usage: md2deck doctor") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestCheckSystem_LeavesNoFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	result := &doctorResult{}
	checkSystem(&doctorProbe{tempDir: dir}, result)

	if !result.System.TempWritable {
		t.Fatal("TempWritable should be true")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("temp dir has %d leftover entries", len(entries))
	}
}
