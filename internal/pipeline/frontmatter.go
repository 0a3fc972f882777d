package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-md2deck/internal/dateutil"
	"github.com/alnah/go-md2deck/internal/yamlutil"
)

const frontmatterDelimiter = "---"

// FrontmatterDefaults holds the optional keys added to synthesized frontmatter.
type FrontmatterDefaults struct {
	Theme  string
	Footer string // literal text, or "auto"/"auto:FORMAT" for the build date
}

// frontmatter is the block prepended to documents that lack one.
type frontmatter struct {
	Marp     bool   `yaml:"marp"`
	Paginate bool   `yaml:"paginate"`
	Theme    string `yaml:"theme,omitempty"`
	Footer   string `yaml:"footer,omitempty"`
}

// ReadFrontmatter returns the YAML mapping that opens doc. The block must
// start on the first line, be closed by a "---" line, and parse as a
// non-empty mapping.
func ReadFrontmatter(doc string) (map[string]any, bool) {
	rest, ok := strings.CutPrefix(doc, frontmatterDelimiter+"\n")
	if !ok {
		return nil, false
	}

	idx := strings.Index(rest, "\n"+frontmatterDelimiter+"\n")
	if idx < 0 {
		if !strings.HasSuffix(rest, "\n"+frontmatterDelimiter) {
			return nil, false
		}
		idx = len(rest) - len(frontmatterDelimiter) - 1
	}
	block := rest[:idx]

	m, err := yamlutil.ParseMapping([]byte(block))
	if err != nil {
		return nil, false
	}
	return m, true
}

// EnsureFrontmatter returns doc unchanged when it opens with frontmatter.
// Otherwise it prepends a block enabling Marp and pagination, plus the
// optional defaults. The bool result reports whether a block was added.
func EnsureFrontmatter(doc string, defaults FrontmatterDefaults, now time.Time) (string, bool, error) {
	if _, ok := ReadFrontmatter(doc); ok {
		return doc, false, nil
	}

	footer, err := dateutil.Expand(defaults.Footer, now)
	if err != nil {
		return "", false, fmt.Errorf("frontmatter footer: %w", err)
	}

	data, err := yamlutil.Marshal(frontmatter{
		Marp:     true,
		Paginate: true,
		Theme:    defaults.Theme,
		Footer:   footer,
	})
	if err != nil {
		return "", false, fmt.Errorf("frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString(frontmatterDelimiter + "\n")
	b.Write(data)
	if len(data) > 0 && data[len(data)-1] != '\n' {
		b.WriteByte('\n')
	}
	b.WriteString(frontmatterDelimiter + "\n\n")
	b.WriteString(doc)
	return b.String(), true, nil
}
