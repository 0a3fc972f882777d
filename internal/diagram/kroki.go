package diagram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-md2deck/internal/pipeline"
)

// Kroki defaults.
const (
	DefaultKrokiURL      = "https://kroki.io"
	DefaultKrokiTimeout  = 30 * time.Second
	DefaultMermaidFormat = "svg"
)

// maxResponseSize caps a Kroki response read into memory (32MB).
const maxResponseSize = 32 << 20

// KrokiConfig configures a Kroki renderer.
type KrokiConfig struct {
	BaseURL  string        // Default DefaultKrokiURL
	Format   string        // Used when a fence sets none, default DefaultMermaidFormat
	Timeout  time.Duration // Per request, default DefaultKrokiTimeout
	Client   *http.Client  // Overrides Timeout when set
	Assets   *AssetDir
	Fallback *Fallback
	Logger   *log.Logger
}

// Kroki renders Mermaid diagrams through a Kroki server.
type Kroki struct {
	baseURL  string
	format   string
	client   *http.Client
	assets   *AssetDir
	fallback *Fallback
	logger   *log.Logger
}

// NewKroki creates a Kroki renderer.
func NewKroki(cfg KrokiConfig) (*Kroki, error) {
	if cfg.Assets == nil {
		return nil, ErrMissingAssetDir
	}
	if cfg.Fallback == nil {
		return nil, fmt.Errorf("%w: no fallback template", ErrFallbackRender)
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultKrokiURL
	}

	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultKrokiTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	format := cfg.Format
	if format == "" {
		format = DefaultMermaidFormat
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Kroki{
		baseURL:  baseURL,
		format:   format,
		client:   client,
		assets:   cfg.Assets,
		fallback: cfg.Fallback,
		logger:   logger,
	}, nil
}

// Render posts body to {baseURL}/mermaid/{format} and writes the response
// to mmd-<hash>.<format>. A non-2xx status or a transport failure writes
// the fallback SVG to mmd-<hash>.svg instead and returns it with
// Fallback set. Cancellation of ctx is returned as an error.
func (k *Kroki) Render(ctx context.Context, body string, opts pipeline.Options) (*Asset, error) {
	format, err := formatOption(opts, k.format)
	if err != nil {
		return nil, err
	}
	hash := Hash(string(pipeline.KindMermaid), body, format)

	data, reason, err := k.fetch(ctx, format, body)
	if err != nil {
		return nil, err
	}
	if reason != "" {
		k.logger.Warn("mermaid rendering failed, using fallback image",
			"reason", reason, "server", k.baseURL, "hash", hash)
		return k.writeFallback(hash, reason)
	}

	asset, err := k.assets.Write(FileName("mmd", hash, format), data)
	if err != nil {
		return nil, err
	}
	k.logger.Debug("rendered mermaid", "file", asset.Ref, "bytes", len(data))
	return asset, nil
}

// fetch performs the request. A non-empty reason reports a service failure
// that calls for the fallback image.
func (k *Kroki) fetch(ctx context.Context, format, body string) (data []byte, reason string, err error) {
	endpoint := k.baseURL + "/mermaid/" + format
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(body))
	if err != nil {
		return nil, "", fmt.Errorf("building kroki request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := k.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, "", ctxErr
		}
		k.logger.Debug("kroki request failed", "url", endpoint, "err", err)
		return nil, "unreachable", nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))
		return nil, strconv.Itoa(resp.StatusCode), nil
	}

	data, err = io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, "", ctxErr
		}
		k.logger.Debug("kroki response truncated", "url", endpoint, "err", err)
		return nil, "unreachable", nil
	}
	return data, "", nil
}

func (k *Kroki) writeFallback(hash, reason string) (*Asset, error) {
	svg, err := k.fallback.Render(reason)
	if err != nil {
		return nil, err
	}
	asset, err := k.assets.Write(FileName("mmd", hash, "svg"), svg)
	if err != nil {
		return nil, err
	}
	asset.Fallback = true
	return asset, nil
}

// Compile-time interface check.
var _ Renderer = (*Kroki)(nil)
