package proxy

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PinResolver/internal/config"
	"PinResolver/internal/domain"
)

var filenameExpr = regexp.MustCompile(`^jane_my_great_pin_(creative|inspiration|aesthetic|vibe|trend|design|art|media|content|classic)_[a-z0-9]{5}\.(mp4|jpg)$`)

func TestNamerPattern(t *testing.T) {
	t.Parallel()

	var n Namer
	for i := 0; i < 50; i++ {
		name := n.Filename("My Great Pin!!", "jane", domain.MediaVideo)
		assert.Regexp(t, filenameExpr, name)
		assert.NotContains(t, name, "__")
		assert.Equal(t, strings.ToLower(name), name)
	}
}

func TestNamerDeterministic(t *testing.T) {
	t.Parallel()

	n := Namer{IntN: func(int) int { return 0 }}

	assert.Equal(t, "creative_aaaaa", n.Name("", ""))
	assert.Equal(t, "creative_aaaaa", n.Name(domain.DefaultTitle, domain.UnknownAuthor))
	assert.Equal(t, "creative_aaaaa", n.Name(domain.LegacyTitle, ""))
	assert.Equal(t, "bob_a_very_long_title_th_creative_aaaaa", n.Name("A very long title that goes on", "Bob"))
	assert.Equal(t, "x_creative_aaaaa.jpg", n.Filename("!!x", "", domain.MediaImage))
	assert.Equal(t, "j_n_creative_aaaaa.mp4", n.Filename("", "j\"n", domain.MediaVideo))
}

func TestClassify(t *testing.T) {
	t.Parallel()

	assert.Equal(t, domain.MediaVideo, Classify("video/mp4"))
	assert.Equal(t, domain.MediaImage, Classify("image/jpeg"))
	assert.Equal(t, domain.MediaImage, Classify(defaultContentType))
	assert.Equal(t, "mp4", Extension(domain.MediaVideo))
	assert.Equal(t, "jpg", Extension(domain.MediaImage))
}

func TestDownload(t *testing.T) {
	t.Parallel()

	gotUA := make(chan string, 1)
	mux := http.NewServeMux()
	mux.HandleFunc("/v.mp4", func(w http.ResponseWriter, r *http.Request) {
		gotUA <- r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "video/mp4")
		_, _ = w.Write([]byte("video-bytes"))
	})
	mux.HandleFunc("/blob", func(w http.ResponseWriter, r *http.Request) {
		w.Header()["Content-Type"] = nil
		_, _ = w.Write([]byte{0x01, 0x02})
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	p := NewAssetProxy(config.ProxyConfig{Timeout: 5 * time.Second}, server.Client(), Namer{}, nil)

	asset, err := p.Download(context.Background(), domain.DownloadRequest{URL: server.URL + "/v.mp4", Title: "My Great Pin!!", Author: "jane"})
	require.NoError(t, err)
	defer asset.Body.Close()

	body, err := io.ReadAll(asset.Body)
	require.NoError(t, err)
	assert.Equal(t, "video-bytes", string(body))
	assert.Equal(t, "video/mp4", asset.ContentType)
	assert.Equal(t, domain.MediaVideo, asset.Type)
	assert.Regexp(t, filenameExpr, asset.Filename)
	assert.True(t, strings.HasSuffix(asset.Filename, ".mp4"))
	assert.Equal(t, "Go-http-client/1.1", <-gotUA)

	blob, err := p.Download(context.Background(), domain.DownloadRequest{URL: server.URL + "/blob"})
	require.NoError(t, err)
	defer blob.Body.Close()
	assert.Equal(t, defaultContentType, blob.ContentType)
	assert.Equal(t, domain.MediaImage, blob.Type)
	assert.True(t, strings.HasSuffix(blob.Filename, ".jpg"))

	_, err = p.Download(context.Background(), domain.DownloadRequest{URL: server.URL + "/missing"})
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestDownloadRefusesOversizedAssets(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/declared", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Header().Set("Content-Length", "64")
		_, _ = w.Write([]byte(strings.Repeat("x", 64)))
	})
	mux.HandleFunc("/chunked", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte(strings.Repeat("x", 32)))
		w.(http.Flusher).Flush()
		_, _ = w.Write([]byte(strings.Repeat("x", 32)))
	})
	mux.HandleFunc("/exact", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte(strings.Repeat("x", 16)))
		w.(http.Flusher).Flush()
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	p := NewAssetProxy(config.ProxyConfig{MaxBodyBytes: 16}, server.Client(), Namer{}, nil)

	_, err := p.Download(context.Background(), domain.DownloadRequest{URL: server.URL + "/declared"})
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.ErrorIs(t, err, ErrAssetTooLarge)

	chunked, err := p.Download(context.Background(), domain.DownloadRequest{URL: server.URL + "/chunked"})
	require.NoError(t, err)
	defer chunked.Body.Close()
	assert.Equal(t, int64(-1), chunked.ContentLength)
	_, err = io.ReadAll(chunked.Body)
	assert.ErrorIs(t, err, ErrAssetTooLarge)

	exact, err := p.Download(context.Background(), domain.DownloadRequest{URL: server.URL + "/exact"})
	require.NoError(t, err)
	defer exact.Body.Close()
	body, err := io.ReadAll(exact.Body)
	require.NoError(t, err)
	assert.Len(t, body, 16)
}
