package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PinResolver/internal/config"
	"PinResolver/internal/domain"
)

func testConfig() config.FetcherConfig {
	return config.FetcherConfig{Timeout: 5 * time.Second, MaxRedirects: 3, MaxBodyBytes: 1 << 20}
}

func TestFetchHTMLSendsBrowserHeaders(t *testing.T) {
	t.Parallel()

	seen := make(chan http.Header, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen <- r.Header.Clone()
		_, _ = w.Write([]byte("<html><title>ok</title></html>"))
	}))
	defer server.Close()

	f := NewPageFetcher(testConfig(), server.Client(), nil)
	html, err := f.FetchHTML(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "<html><title>ok</title></html>", html)
	got := <-seen
	assert.Equal(t, DefaultUserAgent, got.Get("User-Agent"))
	assert.Equal(t, DefaultAccept, got.Get("Accept"))
	assert.Equal(t, DefaultAcceptLanguage, got.Get("Accept-Language"))
}

func TestFetchHTMLFollowsRedirects(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/short", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/pin/1/", http.StatusFound)
	})
	mux.HandleFunc("/pin/1/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("pin page"))
	})
	mux.HandleFunc("/loop", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/loop", http.StatusFound)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	f := NewPageFetcher(testConfig(), server.Client(), nil)

	html, err := f.FetchHTML(context.Background(), server.URL+"/short")
	require.NoError(t, err)
	assert.Equal(t, "pin page", html)

	_, err = f.FetchHTML(context.Background(), server.URL+"/loop")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooManyRedirects)
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestFetchHTMLZeroRedirectLimitUsesDefault(t *testing.T) {
	t.Parallel()

	var hops atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hops.Add(1)
		http.Redirect(w, r, "/again", http.StatusFound)
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.MaxRedirects = 0
	f := NewPageFetcher(cfg, server.Client(), nil)

	_, err := f.FetchHTML(context.Background(), server.URL)
	assert.ErrorIs(t, err, ErrTooManyRedirects)
	assert.Equal(t, int32(DefaultMaxRedirects+1), hops.Load())
}

func TestFetchHTMLRejectsNonSuccess(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	f := NewPageFetcher(testConfig(), server.Client(), nil)
	_, err := f.FetchHTML(context.Background(), server.URL)
	require.Error(t, err)

	var upstream *domain.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusNotFound, upstream.StatusCode)
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestFetchHTMLTruncatesLargeBodies(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", 100)))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.MaxBodyBytes = 10
	f := NewPageFetcher(cfg, server.Client(), nil)

	html, err := f.FetchHTML(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Len(t, html, 10)
}

func TestFetchHTMLHonoursCancellation(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	f := NewPageFetcher(testConfig(), server.Client(), nil)
	_, err := f.FetchHTML(ctx, server.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
