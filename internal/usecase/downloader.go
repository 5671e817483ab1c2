package usecase

import (
	"context"
	"fmt"
	"strings"

	"PinResolver/internal/domain"
	"PinResolver/internal/ports"
)

// Messages returned to clients for rejected or failed downloads.
const (
	MsgMissingURL     = "Missing URL"
	MsgHostNotAllowed = "Downloads are only allowed from Pinterest media hosts"
	MsgDownloadError  = "Error downloading media"
)

// Downloader gates the asset proxy behind the download allow-list.
type Downloader struct {
	checker ports.URLChecker
	assets  ports.AssetFetcher
}

var _ ports.Downloader = (*Downloader)(nil)

// NewDownloader wires the host check and the proxy; a nil checker admits any URL.
func NewDownloader(checker ports.URLChecker, assets ports.AssetFetcher) *Downloader {
	return &Downloader{checker: checker, assets: assets}
}

// Download validates req and streams the asset back.
func (d *Downloader) Download(ctx context.Context, req domain.DownloadRequest) (*domain.Asset, error) {
	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		return nil, &domain.ValidationError{Reason: MsgMissingURL}
	}
	if d.checker != nil && !d.checker.Allowed(req.URL) {
		return nil, &domain.ValidationError{Reason: MsgHostNotAllowed}
	}

	asset, err := d.assets.Download(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("download asset: %w", err)
	}
	return asset, nil
}
