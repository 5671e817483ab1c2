package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"PinResolver/internal/domain"
	"PinResolver/internal/ports"
)

// Messages returned to clients for rejected or empty resolves.
const (
	MsgURLRequired  = "URL is required"
	MsgInvalidURL   = "Please provide a valid public Pinterest URL"
	MsgNoMedia      = "Could not find a public video or image at this URL."
	MsgResolveError = "An error occurred while processing the request."
)

// ResolverDeps wires the driven adapters used by Resolver.
type ResolverDeps struct {
	Checker   ports.URLChecker
	Fetcher   ports.PageFetcher
	Extractor ports.Extractor
	Logger    *slog.Logger
}

// Resolver validates a pin URL, fetches the page and extracts its media.
type Resolver struct {
	checker   ports.URLChecker
	fetcher   ports.PageFetcher
	extractor ports.Extractor
	logger    *slog.Logger
}

var _ ports.Resolver = (*Resolver)(nil)

// NewResolver constructs the resolve use case.
func NewResolver(deps ResolverDeps) *Resolver {
	return &Resolver{
		checker:   deps.Checker,
		fetcher:   deps.Fetcher,
		extractor: deps.Extractor,
		logger:    deps.Logger,
	}
}

// Resolve returns the media found on pageURL. Errors match domain.ErrValidation,
// domain.ErrUpstream or domain.ErrNotFound.
func (r *Resolver) Resolve(ctx context.Context, pageURL string) (domain.ResolveResult, error) {
	pageURL = strings.TrimSpace(pageURL)
	if pageURL == "" {
		return domain.ResolveResult{}, &domain.ValidationError{Reason: MsgURLRequired}
	}
	if r.checker != nil && !r.checker.Allowed(pageURL) {
		return domain.ResolveResult{}, &domain.ValidationError{Reason: MsgInvalidURL}
	}

	html, err := r.fetcher.FetchHTML(ctx, pageURL)
	if err != nil {
		return domain.ResolveResult{}, fmt.Errorf("fetch page: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return domain.ResolveResult{}, fmt.Errorf("resolve %s: %w", pageURL, err)
	}

	extraction, err := r.extractor.Extract(ctx, html)
	if err != nil {
		return domain.ResolveResult{}, fmt.Errorf("extract page: %w", err)
	}

	if !extraction.HasMedia() {
		r.debug("no media located", "url", pageURL)
		return domain.ResolveResult{}, fmt.Errorf("%s: %w", pageURL, domain.ErrNotFound)
	}

	result := domain.NewResolveResult(extraction)
	r.debug("resolved", "url", pageURL, "type", result.Type)
	return result, nil
}

func (r *Resolver) debug(msg string, args ...interface{}) {
	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}
