package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newLogger(&buf, log.WarnLevel)

	logger.Info("hidden")
	logger.Warn("shown", "name", "X")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info logged at warn level: %q", out)
	}
	if !strings.Contains(out, "md2deck") || !strings.Contains(out, "shown") || !strings.Contains(out, "name=X") {
		t.Errorf("output = %q", out)
	}
}
