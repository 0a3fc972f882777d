// Package dateutil expands "auto" date values used in generated frontmatter.
//
//	auto              -> 2026-10-19
//	auto:DD/MM/YYYY   -> 19/10/2026
//	auto:long         -> October 19, 2026
//	auto:[Built] YYYY -> Built 2026
//
// Any value not starting with "auto" is returned unchanged.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length to prevent abuse.
const MaxDateFormatLength = 50

// DefaultDateFormat is used when "auto" is specified without a format.
const DefaultDateFormat = "YYYY-MM-DD"

// Presets provides named shortcuts for common date formats.
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// Layout converts a token format (YYYY, YY, MMMM, MMM, MM, M, DD, D) into a
// Go time layout. Text inside [brackets] is copied literally.
func Layout(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var b strings.Builder
	for i := 0; i < len(format); {
		c := format[i]
		if c == '[' {
			end := strings.IndexByte(format[i+1:], ']')
			if end < 0 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, i)
			}
			b.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}

		run := runLength(format[i:], c)
		switch {
		case c == 'Y' && run >= 4:
			b.WriteString("2006")
			i += 4
		case c == 'Y' && run >= 2:
			b.WriteString("06")
			i += 2
		case c == 'M' && run >= 4:
			b.WriteString("January")
			i += 4
		case c == 'M' && run == 3:
			b.WriteString("Jan")
			i += 3
		case c == 'M' && run == 2:
			b.WriteString("01")
			i += 2
		case c == 'M':
			b.WriteString("1")
			i++
		case c == 'D' && run >= 2:
			b.WriteString("02")
			i += 2
		case c == 'D':
			b.WriteString("2")
			i++
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String(), nil
}

// runLength counts how many times c repeats at the start of s.
func runLength(s string, c byte) int {
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	return n
}

// Expand resolves "auto" and "auto:FORMAT" against t.
func Expand(value string, t time.Time) (string, error) {
	lower := strings.ToLower(value)
	if !strings.HasPrefix(lower, "auto") {
		return value, nil
	}

	format := DefaultDateFormat
	switch {
	case lower == "auto":
	case strings.HasPrefix(lower, "auto:"):
		format = value[len("auto:"):]
		if preset, ok := Presets[strings.ToLower(format)]; ok {
			format = preset
		}
	default:
		return "", fmt.Errorf("%w: invalid auto syntax %q, use \"auto\" or \"auto:FORMAT\"", ErrInvalidDateFormat, value)
	}

	layout, err := Layout(format)
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}
