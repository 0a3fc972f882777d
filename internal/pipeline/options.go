package pipeline

import (
	"strings"

	"github.com/alnah/go-md2deck/internal/yamlutil"
)

// ParseOptions parses a brace-delimited option blob such as
// `{format: png, title: "Pipeline"}`. Keys may be bare; JSON objects work
// too. Any parse failure yields an empty, non-nil Options.
func ParseOptions(blob string) Options {
	blob = strings.TrimSpace(blob)
	if !strings.HasPrefix(blob, "{") || !strings.HasSuffix(blob, "}") {
		return Options{}
	}

	m, err := yamlutil.ParseMapping([]byte(blob))
	if err != nil {
		return Options{}
	}
	return Options(m)
}

// splitInfo separates a fence info string into its normalized label and
// option blob. The blob starts at the first '{'.
func splitInfo(info string) (label, blob string) {
	if i := strings.IndexByte(info, '{'); i >= 0 {
		label, blob = info[:i], info[i:]
	} else {
		label = info
	}
	return strings.Join(strings.Fields(label), " "), strings.TrimSpace(blob)
}
