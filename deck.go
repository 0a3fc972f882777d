package md2deck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-md2deck/internal/fileutil"
	"github.com/alnah/go-md2deck/internal/process"
)

// Deck stage defaults.
const (
	DefaultMarpCommand = "npx --yes @marp-team/marp-cli"
	DefaultDeckTimeout = 5 * time.Minute
	MarpEnvVar         = "MARP_CLI"
)

// PDF engines.
const (
	EngineMarp   = "marp"   // marp --pdf
	EngineChrome = "chrome" // marp HTML printed by headless Chrome
)

// DeckOptions configures the Marp stage.
type DeckOptions struct {
	Marp      string        // Command line, default DefaultMarpCommand
	AllowHTML bool          // Pass --html to Marp
	Theme     string        // --theme
	ThemeSet  string        // --theme-set
	Engine    string        // EngineMarp (default) or EngineChrome
	Timeout   time.Duration // Per Marp run, default DefaultDeckTimeout
	Stdout    io.Writer     // Marp output, nil = os.Stdout
	Stderr    io.Writer
	Logger    *log.Logger
}

// Deck turns Marp Markdown into HTML and PDF slide decks.
// Close releases the browser used by the chrome engine.
type Deck struct {
	opts DeckOptions
	argv []string
	pdf  pdfRenderer
}

// NewDeck creates a Deck. The Marp command line is split on whitespace.
func NewDeck(opts DeckOptions) (*Deck, error) {
	if opts.Marp == "" {
		opts.Marp = DefaultMarpCommand
	}
	argv := strings.Fields(opts.Marp)
	if len(argv) == 0 {
		return nil, fmt.Errorf("%w: empty command", ErrMarpNotFound)
	}

	switch opts.Engine {
	case "":
		opts.Engine = EngineMarp
	case EngineMarp, EngineChrome:
	default:
		return nil, fmt.Errorf("%w: unknown PDF engine %q", ErrPDFGeneration, opts.Engine)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultDeckTimeout
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	d := &Deck{opts: opts, argv: argv}
	if opts.Engine == EngineChrome {
		d.pdf = newRodRenderer(opts.Timeout)
	}
	return d, nil
}

// HTML renders input to an HTML deck at output.
func (d *Deck) HTML(ctx context.Context, input, output string) error {
	return d.marp(ctx, input, output)
}

// PDF renders input to a PDF deck at output.
func (d *Deck) PDF(ctx context.Context, input, output string) error {
	if d.opts.Engine != EngineChrome {
		return d.marp(ctx, input, output, "--pdf")
	}
	return d.printWithChrome(ctx, input, output)
}

// Close releases browser resources.
func (d *Deck) Close() error {
	if d.pdf != nil {
		return d.pdf.Close()
	}
	return nil
}

// printWithChrome renders HTML next to input, so relative image paths
// resolve, then prints it to output.
func (d *Deck) printWithChrome(ctx context.Context, input, output string) error {
	tmp, err := os.CreateTemp(filepath.Dir(input), ".md2deck-print-*.html")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	htmlPath := tmp.Name()
	_ = tmp.Close()
	defer func() { _ = os.Remove(htmlPath) }()

	if err := d.marp(ctx, input, htmlPath); err != nil {
		return err
	}

	absPath, err := filepath.Abs(htmlPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	pdf, err := d.pdf.RenderFromFile(ctx, absPath)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFile(output, pdf); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}
	return nil
}

// marpArgs builds the Marp argument list after the command itself.
func (d *Deck) marpArgs(input, output string, extra ...string) []string {
	args := append([]string{}, d.argv[1:]...)
	args = append(args, "--allow-local-files")
	if d.opts.AllowHTML {
		args = append(args, "--html")
	}
	if d.opts.ThemeSet != "" {
		args = append(args, "--theme-set", d.opts.ThemeSet)
	}
	if d.opts.Theme != "" {
		args = append(args, "--theme", d.opts.Theme)
	}
	args = append(args, extra...)
	return append(args, input, "-o", output)
}

func (d *Deck) marp(ctx context.Context, input, output string, extra ...string) error {
	if err := os.MkdirAll(filepath.Dir(output), fileutil.DirPerm); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}

	runCtx, cancel := context.WithTimeout(ctx, d.opts.Timeout)
	defer cancel()

	args := d.marpArgs(input, output, extra...)
	// #nosec G204 -- Marp command comes from the user's own configuration
	cmd := exec.CommandContext(runCtx, d.argv[0], args...)
	process.Isolate(cmd)
	cmd.WaitDelay = 5 * time.Second
	cmd.Stdout = d.opts.Stdout
	cmd.Stderr = d.opts.Stderr

	d.opts.Logger.Debug("running marp", "cmd", d.argv[0], "args", strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		switch {
		case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
			return fmt.Errorf("%w: %s: %v", ErrMarpNotFound, d.argv[0], err)
		case ctx.Err() != nil:
			return ctx.Err()
		case errors.Is(runCtx.Err(), context.DeadlineExceeded):
			return fmt.Errorf("%w: timed out after %s", ErrDeckRender, d.opts.Timeout)
		default:
			return fmt.Errorf("%w: %v", ErrDeckRender, err)
		}
	}
	return nil
}
