package parser

import (
	"context"
	"log/slog"

	"PinResolver/internal/domain"
	"PinResolver/internal/ports"
)

// Engine runs the metadata, video and image extractors over one document.
// It holds no per-call state and is safe for concurrent use.
type Engine struct {
	logger *slog.Logger
}

var _ ports.Extractor = (*Engine)(nil)

// NewEngine wires an optional logger used for strategy tracing.
func NewEngine(log *slog.Logger) *Engine {
	e := &Engine{logger: log}
	e.debug("extraction strategies", "video", videoChain.Names(), "image", imageChain.Names())
	return e
}

// Extract parses html once and derives metadata plus the best media URLs.
// A cancelled ctx aborts between stages with ctx.Err().
func (e *Engine) Extract(ctx context.Context, html string) (domain.Extraction, error) {
	if err := ctx.Err(); err != nil {
		return domain.Extraction{}, err
	}
	p, err := newPage(html)
	if err != nil {
		return domain.Extraction{}, err
	}

	result := domain.Extraction{Metadata: metadataFromPage(p)}

	if err := ctx.Err(); err != nil {
		return domain.Extraction{}, err
	}
	if v, via, ok := videoChain.First(p); ok {
		result.VideoURL = v
		e.debug("video located", "strategy", via)
	}

	if err := ctx.Err(); err != nil {
		return domain.Extraction{}, err
	}
	if v, via, ok := imageFromPage(p); ok {
		result.ImageURL = v
		e.debug("image located", "strategy", via)
	}

	return result, nil
}

// ExtractMetadata derives title, author, description, hashtags and thumbnail.
func ExtractMetadata(html string) domain.Metadata {
	p, err := newPage(html)
	if err != nil {
		return domain.Metadata{Title: domain.DefaultTitle, Author: domain.UnknownAuthor}
	}
	return metadataFromPage(p)
}

// ExtractVideoURL returns the best video URL, or false when none was found.
func ExtractVideoURL(html string) (string, bool) {
	p, err := newPage(html)
	if err != nil {
		return "", false
	}
	v, _, ok := videoChain.First(p)
	return v, ok
}

// ExtractImageURL returns the best image URL, or false when none was found.
func ExtractImageURL(html string) (string, bool) {
	p, err := newPage(html)
	if err != nil {
		return "", false
	}
	v, _, ok := imageFromPage(p)
	return v, ok
}

func (e *Engine) debug(msg string, args ...interface{}) {
	if e.logger != nil {
		e.logger.Debug(msg, args...)
	}
}
