//go:build !windows

package main

// Notes:
// - Marp is replaced by /bin/sh running a script that writes its arguments
//   to the -o target, so the deck stage runs without Node.js.
// - The chrome engine is not exercised here (needs a browser).

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeMarpCommand writes a Marp stand-in script and returns the command line.
func fakeMarpCommand(t *testing.T, body string) string {
	t.Helper()

	script := filepath.Join(t.TempDir(), "marp.sh")
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return "/bin/sh " + script
}

const echoMarp = `for a; do out="$a"; done
printf '%s\n' "$*" > "$out"
`

// ---------------------------------------------------------------------------
// TestRun_Build - Preprocess then Marp
// ---------------------------------------------------------------------------

func TestRun_Build(t *testing.T) {
	t.Parallel()

	srv := newKroki(t, http.StatusOK)

	tests := []struct {
		name      string
		extra     []string
		wantFiles []string
		noFiles   []string
	}{
		{"both outputs", nil, []string{deckHTMLName, deckPDFName}, nil},
		{"html only", []string{"--html-only"}, []string{deckHTMLName}, []string{deckPDFName}},
		{"pdf only", []string{"--pdf-only"}, []string{deckPDFName}, []string{deckHTMLName}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			input := writeDoc(t, dir, "talk.md")
			outDir := filepath.Join(dir, "dist")
			args := append([]string{
				"build", input, "-o", outDir, "--kroki-url", srv.URL,
				"--marp", fakeMarpCommand(t, echoMarp), "--theme", "gaia",
			}, tt.extra...)

			env, stdout, stderr := testEnv(nil)
			if code := run(args, env); code != ExitSuccess {
				t.Fatalf("run() = %d, stderr: %s", code, stderr.String())
			}

			for _, name := range tt.wantFiles {
				path := filepath.Join(outDir, name)
				data, err := os.ReadFile(path)
				if err != nil {
					t.Fatalf("ReadFile(%s) error = %v", name, err)
				}
				if !strings.Contains(string(data), "--theme gaia") {
					t.Errorf("marp args = %q, want --theme gaia", data)
				}
				if !strings.Contains(string(data), filepath.Join(outDir, "current.marp.md")) {
					t.Errorf("marp args = %q, want current.marp.md input", data)
				}
				if !strings.Contains(stdout.String(), "Created "+path) {
					t.Errorf("stdout = %q, want Created %s", stdout.String(), path)
				}
			}
			for _, name := range tt.noFiles {
				if _, err := os.Stat(filepath.Join(outDir, name)); !os.IsNotExist(err) {
					t.Errorf("%s should not exist", name)
				}
			}
		})
	}
}

func TestRun_Build_MarpFailure(t *testing.T) {
	t.Parallel()

	srv := newKroki(t, http.StatusOK)
	dir := t.TempDir()
	input := writeDoc(t, dir, "talk.md")

	marp := fakeMarpCommand(t, "echo 'theme not found' >&2\nexit 1\n")
	env, _, stderr := testEnv(nil)
	code := run([]string{"build", input, "-o", filepath.Join(dir, "dist"), "--kroki-url", srv.URL, "--marp", marp}, env)

	if code != ExitRender {
		t.Errorf("run() = %d, want %d", code, ExitRender)
	}
	if !strings.Contains(stderr.String(), "theme not found") {
		t.Errorf("stderr = %q, want Marp output", stderr.String())
	}
	// Preprocessed documents are kept even when Marp fails.
	if _, err := os.Stat(filepath.Join(dir, "dist", "current.marp.md")); err != nil {
		t.Errorf("current.marp.md missing: %v", err)
	}
}

func TestRun_Build_MarpMissing(t *testing.T) {
	t.Parallel()

	srv := newKroki(t, http.StatusOK)
	dir := t.TempDir()
	input := writeDoc(t, dir, "talk.md")

	env, _, stderr := testEnv(map[string]string{"MARP_CLI": filepath.Join(dir, "no-such-marp")})
	code := run([]string{"build", input, "-o", filepath.Join(dir, "dist"), "--kroki-url", srv.URL}, env)

	if code != ExitRender {
		t.Errorf("run() = %d, want %d", code, ExitRender)
	}
	if !strings.Contains(stderr.String(), "hint:") {
		t.Errorf("stderr = %q, want hint", stderr.String())
	}
}
