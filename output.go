package md2deck

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2deck/internal/fileutil"
)

// Output naming.
const (
	OutputSuffix = ".marp.md"
	CurrentName  = "current"
)

// OutputName derives the output base name from an input path:
// "src/talk.md" -> "talk".
func OutputName(inputPath string) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// WriteOutputs writes content to <outDir>/<name>.marp.md and
// <outDir>/current.marp.md, creating outDir as needed. Both files are
// byte-identical; when name is "current" a single file is written.
// Returns the written paths.
func WriteOutputs(outDir, name, content string) ([]string, error) {
	if name == "" || strings.ContainsAny(name, "/\\\x00") || name == "." || name == ".." {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOutput, name)
	}

	names := []string{name}
	if name != CurrentName {
		names = append(names, CurrentName)
	}

	paths := make([]string, 0, len(names))
	for _, n := range names {
		path := filepath.Join(outDir, n+OutputSuffix)
		if err := fileutil.WriteFile(path, []byte(content)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOutputWrite, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// PreprocessFile reads inputPath, preprocesses it and writes the outputs
// into the Preprocessor's output directory. Nothing is written when
// reading or preprocessing fails.
func (p *Preprocessor) PreprocessFile(ctx context.Context, inputPath string) (*FileResult, error) {
	data, err := os.ReadFile(inputPath) // #nosec G304 -- input path is user-provided
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputRead, err)
	}

	result, err := p.Preprocess(ctx, string(data))
	if err != nil {
		return nil, err
	}

	outputs, err := WriteOutputs(p.cfg.outDir, OutputName(inputPath), result.Markdown)
	if err != nil {
		return nil, err
	}

	p.cfg.logger.Info("preprocessed", "input", inputPath, "diagrams", len(result.Assets), "fallbacks", result.Fallbacks())
	return &FileResult{Result: *result, Input: inputPath, Outputs: outputs}, nil
}

// OutDir returns the directory receiving generated documents.
func (p *Preprocessor) OutDir() string {
	return p.cfg.outDir
}
