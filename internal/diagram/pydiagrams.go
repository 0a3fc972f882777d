package diagram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-md2deck/internal/fileutil"
	"github.com/alnah/go-md2deck/internal/pipeline"
	"github.com/alnah/go-md2deck/internal/process"
)

// Python diagrams defaults.
const (
	DefaultDiagramsFormat  = "png"
	DefaultDiagramsTitle   = "diagram"
	DefaultDiagramsTimeout = 2 * time.Minute
)

// BodyEnvVar carries the diagram source to the runner script.
const BodyEnvVar = "DIAGRAMS_BODY"

// waitDelay bounds how long Wait blocks on output pipes after a kill.
const waitDelay = 5 * time.Second

// DiagramsConfig configures a Python diagrams renderer.
type DiagramsConfig struct {
	Python  string        // Interpreter command
	Runner  string        // Path to the runner script
	Format  string        // Used when a fence sets none, default DefaultDiagramsFormat
	Timeout time.Duration // Per diagram, default DefaultDiagramsTimeout
	Assets  *AssetDir
	Env     []string  // Base environment, nil = os.Environ()
	Stdout  io.Writer // Runner output, nil = discarded
	Stderr  io.Writer
	Logger  *log.Logger
}

// Diagrams renders Python `diagrams` snippets through a runner subprocess.
type Diagrams struct {
	python  string
	runner  string
	format  string
	timeout time.Duration
	assets  *AssetDir
	env     []string
	stdout  io.Writer
	stderr  io.Writer
	logger  *log.Logger
}

// NewDiagrams creates a Python diagrams renderer.
func NewDiagrams(cfg DiagramsConfig) (*Diagrams, error) {
	if cfg.Assets == nil {
		return nil, ErrMissingAssetDir
	}
	if cfg.Python == "" {
		return nil, ErrPythonNotFound
	}
	if cfg.Runner == "" {
		return nil, fmt.Errorf("%w: no runner script", ErrDiagramsFailed)
	}

	d := &Diagrams{
		python:  cfg.Python,
		runner:  cfg.Runner,
		format:  cfg.Format,
		timeout: cfg.Timeout,
		assets:  cfg.Assets,
		env:     cfg.Env,
		stdout:  cfg.Stdout,
		stderr:  cfg.Stderr,
		logger:  cfg.Logger,
	}
	if d.format == "" {
		d.format = DefaultDiagramsFormat
	}
	if d.timeout <= 0 {
		d.timeout = DefaultDiagramsTimeout
	}
	if d.env == nil {
		d.env = os.Environ()
	}
	if d.logger == nil {
		d.logger = log.New(io.Discard)
	}
	return d, nil
}

// Render runs the runner script with the body in DIAGRAMS_BODY. The script
// writes diag-<hash>.<format>; any failure, including a missing output
// file, returns ErrDiagramsFailed.
func (d *Diagrams) Render(ctx context.Context, body string, opts pipeline.Options) (*Asset, error) {
	format, err := formatOption(opts, d.format)
	if err != nil {
		return nil, err
	}
	title := opts.String("title", DefaultDiagramsTitle)
	hash := Hash(string(pipeline.KindDiagrams), body, format, title)

	base := d.assets.Path("diag-" + hash)
	output := base + "." + format

	if err := os.MkdirAll(d.assets.Dir(), fileutil.DirPerm); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetWrite, err)
	}

	runCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	// #nosec G204 -- interpreter and runner come from the user's own configuration
	cmd := exec.CommandContext(runCtx, d.python, d.runner,
		"--title", title,
		"--format", format,
		"--outfile", base,
	)
	process.Isolate(cmd)
	cmd.WaitDelay = waitDelay
	cmd.Env = append(slices.Clone(d.env), BodyEnvVar+"="+body)
	cmd.Stdout = d.stdout
	cmd.Stderr = d.stderr

	d.logger.Debug("running diagrams", "python", d.python, "title", title, "format", format)
	if err := cmd.Run(); err != nil {
		return nil, d.runError(ctx, runCtx, err)
	}

	if !fileutil.FileExists(output) {
		return nil, fmt.Errorf("%w: runner produced no %s", ErrDiagramsFailed, output)
	}
	return d.assets.Describe(output)
}

// runError classifies a failed run.
func (d *Diagrams) runError(parent, run context.Context, err error) error {
	switch {
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s: %v", ErrPythonNotFound, d.python, err)
	case parent.Err() != nil:
		return parent.Err()
	case errors.Is(run.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: timed out after %s", ErrDiagramsFailed, d.timeout)
	default:
		return fmt.Errorf("%w: %v", ErrDiagramsFailed, err)
	}
}

// Compile-time interface check.
var _ Renderer = (*Diagrams)(nil)
