package main

// Notes:
// - runHelp: we test that each command prints its usage to stdout and that
//   an unknown command goes to stderr. Exact wording is not asserted.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRunHelp - Per-command help
// ---------------------------------------------------------------------------

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantStdout string
		wantStderr string
	}{
		{"main usage", nil, "Usage: md2deck [command]", ""},
		{"build", []string{"build"}, "Usage: md2deck build", ""},
		{"preprocess", []string{"preprocess"}, "Usage: md2deck preprocess", ""},
		{"doctor", []string{"doctor"}, "Usage: md2deck doctor", ""},
		{"completion", []string{"completion"}, "Usage: md2deck completion", ""},
		{"version", []string{"version"}, "Usage: md2deck version", ""},
		{"help", []string{"help"}, "Usage: md2deck help", ""},
		{"unknown", []string{"slides"}, "", "Unknown command: slides"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv(nil)
			runHelp(tt.args, env)

			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want to contain %q", stdout.String(), tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want to contain %q", stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestBuildUsage_ListsEveryFlag(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv(nil)
	runHelp([]string{"build"}, env)

	for _, f := range extractFlagsFromFlagSet(newBuildFlagSet("build", &buildFlags{})) {
		if !strings.Contains(stdout.String(), "--"+f.Long) {
			t.Errorf("build help does not mention --%s", f.Long)
		}
	}
}
