package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadScript(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		script       string
		wantErr      error
		wantContains string
	}{
		{name: "runner", script: DefaultRunnerName, wantContains: "DIAGRAMS_BODY"},
		{name: "nonexistent", script: "nonexistent", wantErr: ErrScriptNotFound},
		{name: "traversal", script: "../etc/passwd", wantErr: ErrInvalidAssetName},
		{name: "with extension", script: "diagrams_runner.py", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := LoadScript(tt.script)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadScript(%q) error = %v, want %v", tt.script, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadScript(%q) unexpected error: %v", tt.script, err)
			}
			if !strings.Contains(got, tt.wantContains) {
				t.Errorf("LoadScript(%q) missing %q", tt.script, tt.wantContains)
			}
		})
	}
}

func TestLoadTemplate(t *testing.T) {
	t.Parallel()

	got, err := LoadTemplate(DefaultFallbackName)
	if err != nil {
		t.Fatalf("LoadTemplate() error = %v", err)
	}
	for _, want := range []string{`width="960"`, `height="540"`, "{{.Reason}}", "#d00"} {
		if !strings.Contains(got, want) {
			t.Errorf("fallback template missing %q", want)
		}
	}

	if _, err := LoadTemplate("missing"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("LoadTemplate(missing) error = %v, want ErrTemplateNotFound", err)
	}
}
