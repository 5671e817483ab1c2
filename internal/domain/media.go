package domain

import "io"

const (
	// DefaultTitle is reported when a page exposes no usable title.
	DefaultTitle = "Pinterest Content"
	// LegacyTitle is the fallback title older clients still send back on download.
	LegacyTitle = "Pinterest Video"
	// UnknownAuthor marks a pin whose author could not be determined.
	UnknownAuthor = "Pinterest User"
)

// MediaType tells the client which URL of a ResolveResult is the primary one.
type MediaType string

const (
	MediaVideo MediaType = "video"
	MediaImage MediaType = "image"
)

// Metadata is the descriptive part of a pin page.
type Metadata struct {
	Title       string
	Author      string
	Description string
	Style       string
	Thumbnail   string
}

// Extraction is everything the engine derived from a single HTML document.
// Empty VideoURL or ImageURL means the corresponding extractor found nothing.
type Extraction struct {
	Metadata
	VideoURL string
	ImageURL string
}

// HasMedia reports whether at least one media URL was located.
func (e Extraction) HasMedia() bool {
	return e.VideoURL != "" || e.ImageURL != ""
}

// ResolveRequest is the inbound body of the resolve endpoint.
type ResolveRequest struct {
	URL string `json:"url" validate:"required"`
}

// ResolveResult is returned to clients after a successful resolve.
type ResolveResult struct {
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	VideoURL    string    `json:"videoUrl,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Type        MediaType `json:"type"`
	Description string    `json:"description"`
	Style       string    `json:"style"`
}

// NewResolveResult builds the client view of an extraction. Video wins over image.
func NewResolveResult(ex Extraction) ResolveResult {
	kind := MediaImage
	if ex.VideoURL != "" {
		kind = MediaVideo
	}
	return ResolveResult{
		Title:       ex.Title,
		Author:      ex.Author,
		Thumbnail:   ex.Thumbnail,
		VideoURL:    ex.VideoURL,
		ImageURL:    ex.ImageURL,
		Type:        kind,
		Description: ex.Description,
		Style:       ex.Style,
	}
}

// PrimaryURL returns the URL a client should download.
func (r ResolveResult) PrimaryURL() string {
	if r.Type == MediaVideo {
		return r.VideoURL
	}
	return r.ImageURL
}

// DownloadRequest carries the query parameters of the download endpoint.
type DownloadRequest struct {
	URL    string `query:"url" validate:"required"`
	Title  string `query:"title"`
	Author string `query:"author"`
}

// Asset is a proxied media response. Callers must close Body.
type Asset struct {
	Body          io.ReadCloser
	ContentType   string
	Filename      string
	Type          MediaType
	ContentLength int64
}
