package pipeline

import "testing"

func TestParseOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		blob string
		want map[string]string
	}{
		{name: "empty", blob: "", want: map[string]string{}},
		{name: "bare keys", blob: "{format: png, title: pipeline}", want: map[string]string{"format": "png", "title": "pipeline"}},
		{name: "json", blob: `{"format": "svg"}`, want: map[string]string{"format": "svg"}},
		{name: "numeric value", blob: "{scale: 2}", want: map[string]string{"scale": "2"}},
		{name: "unclosed", blob: "{format: png", want: map[string]string{}},
		{name: "sequence", blob: "[png]", want: map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ParseOptions(tt.blob)
			if got == nil {
				t.Fatal("ParseOptions() returned nil")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseOptions(%q) = %v, want %d keys", tt.blob, got, len(tt.want))
			}
			for k, v := range tt.want {
				if s := got.String(k, ""); s != v {
					t.Errorf("%s = %q, want %q", k, s, v)
				}
			}
		})
	}
}

func TestOptions_String(t *testing.T) {
	t.Parallel()

	opts := Options{"title": "  Build  ", "empty": "", "none": nil, "flag": true}

	tests := []struct {
		key  string
		want string
	}{
		{key: "title", want: "Build"},
		{key: "empty", want: "default"},
		{key: "none", want: "default"},
		{key: "missing", want: "default"},
		{key: "flag", want: "true"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()

			if got := opts.String(tt.key, "default"); got != tt.want {
				t.Errorf("String(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestSplitInfo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		info      string
		wantLabel string
		wantBlob  string
	}{
		{info: "mermaid", wantLabel: "mermaid"},
		{info: "mermaid {format: png}", wantLabel: "mermaid", wantBlob: "{format: png}"},
		{info: "mermaid{format: png}", wantLabel: "mermaid", wantBlob: "{format: png}"},
		{info: "python \t diagrams {title: a}", wantLabel: "python diagrams", wantBlob: "{title: a}"},
	}

	for _, tt := range tests {
		t.Run(tt.info, func(t *testing.T) {
			t.Parallel()

			label, blob := splitInfo(tt.info)
			if label != tt.wantLabel || blob != tt.wantBlob {
				t.Errorf("splitInfo(%q) = (%q, %q), want (%q, %q)", tt.info, label, blob, tt.wantLabel, tt.wantBlob)
			}
		})
	}
}
