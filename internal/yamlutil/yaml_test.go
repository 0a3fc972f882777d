package yamlutil_test

// Notes:
// - Marshal error branch: not tested because yaml.Marshal only fails with
//   unmarshalable types (channels, functions) which never reach this package.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-md2deck/internal/yamlutil"
)

type testConfig struct {
	Name    string `yaml:"name"`
	Count   int    `yaml:"count"`
	Enabled bool   `yaml:"enabled"`
}

// ---------------------------------------------------------------------------
// TestUnmarshal - Parses YAML into Go structs
// ---------------------------------------------------------------------------

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
	}{
		{
			name: "valid YAML",
			data: []byte("name: test\ncount: 42\nenabled: true"),
			dest: &testConfig{},
		},
		{
			name: "unknown fields ignored",
			data: []byte("name: test\nextra: value"),
			dest: &testConfig{},
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &testConfig{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("name: test"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
		{
			name:    "invalid YAML syntax",
			data:    []byte("name: [unclosed"),
			dest:    &testConfig{},
			wantErr: errors.New("yamlutil:"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.Unmarshal(tt.data, tt.dest)
			assertErr(t, err, tt.wantErr)
		})
	}
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Rejects unknown fields
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	t.Run("known fields decode", func(t *testing.T) {
		t.Parallel()

		var cfg testConfig
		if err := yamlutil.UnmarshalStrict([]byte("name: strict\ncount: 10"), &cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Name != "strict" || cfg.Count != 10 {
			t.Errorf("cfg = %+v, want name=strict count=10", cfg)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		t.Parallel()

		var cfg testConfig
		err := yamlutil.UnmarshalStrict([]byte("name: test\nunknown_field: value"), &cfg)
		if err == nil || !strings.HasPrefix(err.Error(), "yamlutil:") {
			t.Errorf("error = %v, want yamlutil-prefixed error", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestParseMapping - Relaxed mapping parsing for option blobs and frontmatter
// ---------------------------------------------------------------------------

func TestParseMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		want    map[string]string
		wantErr error
	}{
		{
			name: "bare keys and bare values",
			data: "{format: png, title: pipeline}",
			want: map[string]string{"format": "png", "title": "pipeline"},
		},
		{
			name: "JSON object",
			data: `{"format": "svg"}`,
			want: map[string]string{"format": "svg"},
		},
		{
			name: "bare keys with quoted values",
			data: `{format: "svg", title: 'two words'}`,
			want: map[string]string{"format": "svg", "title": "two words"},
		},
		{
			name: "block mapping",
			data: "marp: true\ntheme: gaia",
			want: map[string]string{"theme": "gaia"},
		},
		{
			name:    "sequence is not a mapping",
			data:    "[1, 2]",
			wantErr: yamlutil.ErrNotMapping,
		},
		{
			name:    "scalar is not a mapping",
			data:    "just text",
			wantErr: yamlutil.ErrNotMapping,
		},
		{
			name:    "comment only is not a mapping",
			data:    "# Title",
			wantErr: yamlutil.ErrNotMapping,
		},
		{
			name:    "empty flow mapping",
			data:    "{}",
			wantErr: yamlutil.ErrNotMapping,
		},
		{
			name:    "unclosed flow mapping",
			data:    "{format: png",
			wantErr: errors.New("yamlutil:"),
		},
		{
			name:    "empty input",
			data:    "",
			wantErr: yamlutil.ErrNilData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := yamlutil.ParseMapping([]byte(tt.data))
			if tt.wantErr != nil {
				assertErr(t, err, tt.wantErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for k, want := range tt.want {
				v, ok := got[k].(string)
				if !ok || v != want {
					t.Errorf("got[%q] = %#v, want %q", k, got[k], want)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestMarshal - Serializes Go structs to YAML
// ---------------------------------------------------------------------------

func TestMarshal(t *testing.T) {
	t.Parallel()

	data, err := yamlutil.Marshal(&testConfig{Name: "marshal", Count: 5, Enabled: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := string(data)
	for _, want := range []string{"name: marshal", "count: 5", "enabled: true"} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q, got: %s", want, s)
		}
	}
}

// ---------------------------------------------------------------------------
// TestInputSizeLimit - Verifies MaxInputSize enforcement
// ---------------------------------------------------------------------------

// Note: This test modifies the global MaxInputSize variable, so it cannot
// run in parallel with other tests to avoid data races.

func TestInputSizeLimit(t *testing.T) {
	originalMax := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = originalMax })

	yamlutil.MaxInputSize = 50
	data := []byte("name: " + strings.Repeat("x", 100))

	t.Run("Unmarshal", func(t *testing.T) {
		err := yamlutil.Unmarshal(data, &testConfig{})
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Errorf("errors.Is(err, ErrInputTooLarge) = false, got: %v", err)
		}
		if err != nil && !strings.Contains(err.Error(), "max 50") {
			t.Errorf("error should contain max size, got: %s", err)
		}
	})

	t.Run("ParseMapping", func(t *testing.T) {
		_, err := yamlutil.ParseMapping(data)
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Errorf("errors.Is(err, ErrInputTooLarge) = false, got: %v", err)
		}
	})
}

// assertErr checks err against want by errors.Is, falling back to substring match.
func assertErr(t *testing.T, err, want error) {
	t.Helper()

	if want == nil {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return
	}
	if err == nil {
		t.Fatalf("expected error containing %q, got nil", want)
	}
	if errors.Is(err, want) {
		return
	}
	if !strings.Contains(err.Error(), want.Error()) {
		t.Fatalf("error = %q, want containing %q", err, want)
	}
}
