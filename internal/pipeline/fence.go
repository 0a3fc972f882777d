package pipeline

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var closingFence = regexp.MustCompile("^ {0,3}(`{3,}|~{3,})[ \t]*$")

// fence is a closed, top-level fenced code block located in the source.
type fence struct {
	start int // first byte of the opening line
	end   int // byte after the closing line, newline included
	info  string
	body  string
}

// Scan replaces every closed top-level fence of the given kind with a fresh
// placeholder and appends one task per fence. Placeholder indexes continue
// from len(tasks), so successive passes never collide. The returned document
// is identical to doc when nothing matched.
func Scan(doc string, kind Kind, tasks []RenderTask) (string, []RenderTask) {
	var (
		b       strings.Builder
		last    int
		matched bool
	)

	for _, f := range findFences([]byte(doc)) {
		label, blob := splitInfo(f.info)
		if !kind.Matches(label) || strings.TrimSpace(f.body) == "" {
			continue
		}

		placeholder := Placeholder(kind, len(tasks))
		tasks = append(tasks, RenderTask{
			Kind:        kind,
			Options:     ParseOptions(blob),
			Body:        f.body,
			Placeholder: placeholder,
		})

		b.WriteString(doc[last:f.start])
		b.WriteString(placeholder)
		if doc[f.end-1] == '\n' {
			b.WriteByte('\n')
		}
		last = f.end
		matched = true
	}

	if !matched {
		return doc, tasks
	}
	b.WriteString(doc[last:])
	return b.String(), tasks
}

// ScanAll runs the Mermaid pass, then the diagrams pass.
func ScanAll(doc string) (string, []RenderTask) {
	doc, tasks := Scan(doc, KindMermaid, nil)
	return Scan(doc, KindDiagrams, tasks)
}

// findFences lists closed fenced code blocks that are direct children of
// the document, in source order. Fences inside block quotes or list items
// and fences running to end of input are skipped.
func findFences(src []byte) []fence {
	root := goldmark.New().Parser().Parse(text.NewReader(src))

	var fences []fence
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		block, ok := n.(*ast.FencedCodeBlock)
		if !ok || block.Info == nil {
			continue
		}
		if f, ok := locateFence(src, block); ok {
			fences = append(fences, f)
		}
	}
	return fences
}

// locateFence maps a parsed block back to its byte range, checking that a
// matching closing line follows the content.
func locateFence(src []byte, block *ast.FencedCodeBlock) (fence, bool) {
	info := block.Info.Segment
	start := lineStart(src, info.Start)
	openEnd := lineEnd(src, start)

	char, width := fenceMarker(src[start:openEnd])
	if width == 0 || openEnd >= len(src) {
		return fence{}, false
	}

	var body bytes.Buffer
	next := openEnd + 1
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		body.Write(seg.Value(src))
		next = seg.Stop
	}
	if next >= len(src) {
		return fence{}, false
	}

	closeEnd := lineEnd(src, next)
	m := closingFence.FindSubmatch(src[next:closeEnd])
	if m == nil || m[1][0] != char || len(m[1]) < width {
		return fence{}, false
	}
	if closeEnd < len(src) {
		closeEnd++
	}

	return fence{
		start: start,
		end:   closeEnd,
		info:  string(info.Value(src)),
		body:  strings.TrimSuffix(body.String(), "\n"),
	}, true
}

// fenceMarker returns the fence character and run length of an opening line.
func fenceMarker(line []byte) (byte, int) {
	i := 0
	for i < 3 && i < len(line) && line[i] == ' ' {
		i++
	}
	if i >= len(line) || (line[i] != '`' && line[i] != '~') {
		return 0, 0
	}
	char := line[i]
	n := 0
	for i+n < len(line) && line[i+n] == char {
		n++
	}
	if n < 3 {
		return 0, 0
	}
	return char, n
}

func lineStart(src []byte, pos int) int {
	return bytes.LastIndexByte(src[:pos], '\n') + 1
}

func lineEnd(src []byte, pos int) int {
	if i := bytes.IndexByte(src[pos:], '\n'); i >= 0 {
		return pos + i
	}
	return len(src)
}
