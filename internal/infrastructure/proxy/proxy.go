package proxy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"PinResolver/internal/config"
	"PinResolver/internal/domain"
	"PinResolver/internal/ports"
)

const defaultContentType = "application/octet-stream"

// ErrAssetTooLarge reports an upstream body beyond the configured size cap.
var ErrAssetTooLarge = errors.New("asset exceeds size limit")

// AssetProxy re-fetches media URLs and hands the body back for streaming.
type AssetProxy struct {
	client   *http.Client
	maxBytes int64
	namer    Namer
	logger   *slog.Logger
}

var _ ports.AssetFetcher = (*AssetProxy)(nil)

// NewAssetProxy wires an HTTP client; a nil client gets one with cfg.Timeout.
func NewAssetProxy(cfg config.ProxyConfig, client *http.Client, namer Namer, log *slog.Logger) *AssetProxy {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &AssetProxy{client: client, maxBytes: cfg.MaxBodyBytes, namer: namer, logger: log}
}

// Download fetches req.URL without extra headers. Assets announced larger than
// the configured cap are refused; otherwise the body fails with
// ErrAssetTooLarge once it passes the cap. The caller must close it.
func (p *AssetProxy) Download(ctx context.Context, req domain.DownloadRequest) (*domain.Asset, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, &domain.UpstreamError{URL: req.URL, Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_ = resp.Body.Close()
		return nil, &domain.UpstreamError{URL: req.URL, StatusCode: resp.StatusCode}
	}

	if p.maxBytes > 0 && resp.ContentLength > p.maxBytes {
		_ = resp.Body.Close()
		return nil, &domain.UpstreamError{URL: req.URL, Err: ErrAssetTooLarge}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultContentType
	}
	kind := Classify(contentType)

	body := resp.Body
	if p.maxBytes > 0 {
		body = &cappedBody{ReadCloser: resp.Body, remaining: p.maxBytes}
	}

	asset := &domain.Asset{
		Body:          body,
		ContentType:   contentType,
		Filename:      p.namer.Filename(req.Title, req.Author, kind),
		Type:          kind,
		ContentLength: resp.ContentLength,
	}

	if p.logger != nil {
		p.logger.Debug("asset fetched", "url", req.URL, "content_type", contentType, "filename", asset.Filename)
	}
	return asset, nil
}

// Classify treats any content type mentioning "video" as video, everything else as image.
func Classify(contentType string) domain.MediaType {
	if strings.Contains(contentType, "video") {
		return domain.MediaVideo
	}
	return domain.MediaImage
}

// cappedBody passes through at most remaining bytes and errors if more follow.
type cappedBody struct {
	io.ReadCloser
	remaining int64
}

func (b *cappedBody) Read(buf []byte) (int, error) {
	if b.remaining <= 0 {
		var extra [1]byte
		n, err := b.ReadCloser.Read(extra[:])
		if n > 0 {
			return 0, ErrAssetTooLarge
		}
		return 0, err
	}
	if int64(len(buf)) > b.remaining {
		buf = buf[:b.remaining]
	}
	n, err := b.ReadCloser.Read(buf)
	b.remaining -= int64(n)
	return n, err
}
