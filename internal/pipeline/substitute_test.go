package pipeline

import (
	"errors"
	"testing"
)

func TestSubstitute(t *testing.T) {
	t.Parallel()

	t.Run("replaces each placeholder once", func(t *testing.T) {
		t.Parallel()

		doc := "a\n<!-- MARKER_mmd_0 -->\nb\n<!-- MARKER_pydiag_1 -->\n"
		tasks := []RenderTask{
			{Placeholder: Placeholder(KindMermaid, 0), Replacement: ImageRef("assets/mmd-1.svg")},
			{Placeholder: Placeholder(KindDiagrams, 1), Replacement: ImageRef("assets/diag-2.png")},
		}

		got, err := Substitute(doc, tasks)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := "a\n![](assets/mmd-1.svg)\nb\n![](assets/diag-2.png)\n"
		if got != want {
			t.Errorf("Substitute() = %q, want %q", got, want)
		}
	})

	t.Run("index prefix does not collide", func(t *testing.T) {
		t.Parallel()

		doc := Placeholder(KindMermaid, 10) + "\n" + Placeholder(KindMermaid, 1) + "\n"
		tasks := []RenderTask{
			{Placeholder: Placeholder(KindMermaid, 1), Replacement: "one"},
			{Placeholder: Placeholder(KindMermaid, 10), Replacement: "ten"},
		}

		got, err := Substitute(doc, tasks)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "ten\none\n" {
			t.Errorf("Substitute() = %q", got)
		}
	})

	tests := []struct {
		name  string
		doc   string
		tasks []RenderTask
	}{
		{
			name:  "missing replacement",
			doc:   "<!-- MARKER_mmd_0 -->",
			tasks: []RenderTask{{Placeholder: Placeholder(KindMermaid, 0)}},
		},
		{
			name:  "placeholder absent",
			doc:   "nothing here",
			tasks: []RenderTask{{Placeholder: Placeholder(KindMermaid, 0), Replacement: "x"}},
		},
		{
			name:  "placeholder duplicated",
			doc:   "<!-- MARKER_mmd_0 -->\n<!-- MARKER_mmd_0 -->",
			tasks: []RenderTask{{Placeholder: Placeholder(KindMermaid, 0), Replacement: "x"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Substitute(tt.doc, tt.tasks)
			if !errors.Is(err, ErrUnresolvedPlaceholder) {
				t.Errorf("Substitute() error = %v, want ErrUnresolvedPlaceholder", err)
			}
		})
	}
}

func TestNormalizeLineEndings(t *testing.T) {
	t.Parallel()

	got := NormalizeLineEndings("a\r\nb\rc\n")
	if got != "a\nb\nc\n" {
		t.Errorf("NormalizeLineEndings() = %q", got)
	}
}
