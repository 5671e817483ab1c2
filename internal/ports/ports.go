package ports

import (
	"context"

	"PinResolver/internal/domain"
)

// PageFetcher downloads the HTML of a public page.
type PageFetcher interface {
	FetchHTML(ctx context.Context, pageURL string) (string, error)
}

// Extractor derives metadata and media URLs from raw HTML. It stops between
// stages once ctx is done.
type Extractor interface {
	Extract(ctx context.Context, html string) (domain.Extraction, error)
}

// AssetFetcher re-fetches a media URL and names the result for download.
type AssetFetcher interface {
	Download(ctx context.Context, req domain.DownloadRequest) (*domain.Asset, error)
}

// URLChecker decides whether a URL may be fetched.
type URLChecker interface {
	Allowed(rawURL string) bool
}

// Resolver turns a page URL into a ResolveResult.
type Resolver interface {
	Resolve(ctx context.Context, pageURL string) (domain.ResolveResult, error)
}

// Downloader proxies an asset after checking its host.
type Downloader interface {
	Download(ctx context.Context, req domain.DownloadRequest) (*domain.Asset, error)
}
