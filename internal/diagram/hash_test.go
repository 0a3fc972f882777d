package diagram

import "testing"

func TestHash(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		salt  string
		parts []string
		want  string
	}{
		{name: "mermaid", salt: "mmd", parts: []string{"graph TD\n  A-->B", "svg"}, want: "a7e4fa0690"},
		{name: "diagrams", salt: "pydiag", parts: []string{`EC2("web")`, "png", "diagram"}, want: "d6ef399108"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Hash(tt.salt, tt.parts...); got != tt.want {
				t.Errorf("Hash() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHash_Sensitivity(t *testing.T) {
	t.Parallel()

	base := Hash("mmd", "graph TD\n  A-->B", "svg")

	if again := Hash("mmd", "graph TD\n  A-->B", "svg"); again != base {
		t.Errorf("Hash not deterministic: %q vs %q", base, again)
	}
	if changed := Hash("mmd", "graph TD\n  A-->C", "svg"); changed == base {
		t.Error("one-character body change kept the same hash")
	}
	if changed := Hash("mmd", "graph TD\n  A-->B", "png"); changed == base {
		t.Error("format change kept the same hash")
	}
	if changed := Hash("pydiag", "graph TD\n  A-->B", "svg"); changed == base {
		t.Error("salt change kept the same hash")
	}
	if len(base) != hashLength {
		t.Errorf("len(Hash) = %d, want %d", len(base), hashLength)
	}
}

func TestFileName(t *testing.T) {
	t.Parallel()

	if got := FileName("mmd", "0123456789", "svg"); got != "mmd-0123456789.svg" {
		t.Errorf("FileName() = %q", got)
	}
}
