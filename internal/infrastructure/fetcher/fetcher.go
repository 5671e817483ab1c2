package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"PinResolver/internal/config"
	"PinResolver/internal/domain"
	"PinResolver/internal/ports"
)

// Header values sent with every page request; pin pages serve reduced markup
// to clients that do not look like a desktop browser.
const (
	DefaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultAccept         = "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8"
	DefaultAcceptLanguage = "en-US,en;q=0.9"
)

// ErrTooManyRedirects is returned when a page redirects more than the configured limit.
var ErrTooManyRedirects = errors.New("too many redirects")

// PageFetcher downloads pin pages with browser-like headers.
type PageFetcher struct {
	client         *http.Client
	userAgent      string
	acceptLanguage string
	maxBytes       int64
	logger         *slog.Logger
}

var _ ports.PageFetcher = (*PageFetcher)(nil)

// NewPageFetcher wires an HTTP client. A nil client gets one built from cfg;
// a supplied client is copied and receives the redirect limit if it has none.
func NewPageFetcher(cfg config.FetcherConfig, client *http.Client, log *slog.Logger) *PageFetcher {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	c := *client
	if c.CheckRedirect == nil {
		c.CheckRedirect = LimitRedirects(cfg.MaxRedirects)
	}
	if c.Timeout == 0 {
		c.Timeout = cfg.Timeout
	}

	ua := cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	lang := cfg.AcceptLanguage
	if lang == "" {
		lang = DefaultAcceptLanguage
	}

	return &PageFetcher{
		client:         &c,
		userAgent:      ua,
		acceptLanguage: lang,
		maxBytes:       cfg.MaxBodyBytes,
		logger:         log,
	}
}

// DefaultMaxRedirects matches the net/http client default.
const DefaultMaxRedirects = 10

// LimitRedirects builds a CheckRedirect hook that stops after max hops.
// A non-positive max falls back to DefaultMaxRedirects.
func LimitRedirects(max int) func(*http.Request, []*http.Request) error {
	if max <= 0 {
		max = DefaultMaxRedirects
	}
	return func(_ *http.Request, via []*http.Request) error {
		if len(via) > max {
			return fmt.Errorf("%w: stopped after %d", ErrTooManyRedirects, max)
		}
		return nil
	}
}

// FetchHTML returns the page body as text. Bodies larger than the configured
// limit are truncated.
func (f *PageFetcher) FetchHTML(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", DefaultAccept)
	req.Header.Set("Accept-Language", f.acceptLanguage)

	started := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return "", &domain.UpstreamError{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", &domain.UpstreamError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	var body io.Reader = resp.Body
	if f.maxBytes > 0 {
		body = io.LimitReader(resp.Body, f.maxBytes)
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return "", &domain.UpstreamError{URL: pageURL, Err: fmt.Errorf("read body: %w", err)}
	}

	f.debug("page fetched", "url", resp.Request.URL.String(), "status", resp.StatusCode,
		"bytes", len(raw), "elapsed", time.Since(started))
	return string(raw), nil
}

func (f *PageFetcher) debug(msg string, args ...interface{}) {
	if f.logger != nil {
		f.logger.Debug(msg, args...)
	}
}
