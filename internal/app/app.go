package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"PinResolver/internal/config"
	"PinResolver/internal/infrastructure/fetcher"
	"PinResolver/internal/infrastructure/parser"
	"PinResolver/internal/infrastructure/proxy"
	"PinResolver/internal/logging"
	"PinResolver/internal/transport/mcptool"
	"PinResolver/internal/transport/rest"
	"PinResolver/internal/urlcheck"
	"PinResolver/internal/usecase"
)

// Version is reported to MCP clients.
var Version = "dev"

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg        config.Config
	logger     *slog.Logger
	resolver   *usecase.Resolver
	downloader *usecase.Downloader
	gateway    *rest.Gateway
}

// Option customises wiring, mostly for tests.
type Option func(*options)

type options struct {
	pageClient  *http.Client
	assetClient *http.Client
	namer       proxy.Namer
}

// WithHTTPClient routes page and asset fetches through client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.pageClient = client
		o.assetClient = client
	}
}

// WithNamer replaces the filename generator.
func WithNamer(n proxy.Namer) Option {
	return func(o *options) {
		o.namer = n
	}
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger, opts ...Option) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	resolveChecker, err := newResolveChecker(cfg.Hosts)
	if err != nil {
		return nil, err
	}
	downloadChecker, err := urlcheck.New(urlcheck.WithPatterns(cfg.Hosts.Download...))
	if err != nil {
		return nil, fmt.Errorf("download hosts: %w", err)
	}

	resolver := usecase.NewResolver(usecase.ResolverDeps{
		Checker:   resolveChecker,
		Fetcher:   fetcher.NewPageFetcher(cfg.Fetcher, o.pageClient, baseLogger.With("component", "fetcher")),
		Extractor: parser.NewEngine(baseLogger.With("component", "parser")),
		Logger:    baseLogger.With("component", "resolver"),
	})

	assets := proxy.NewAssetProxy(cfg.Proxy, o.assetClient, o.namer, baseLogger.With("component", "proxy"))
	downloader := usecase.NewDownloader(downloadChecker, assets)

	deps := rest.Deps{
		Resolver:   resolver,
		Downloader: downloader,
		Logger:     baseLogger.With("component", "http"),
	}
	if cfg.Server.EnableMCP {
		deps.MCP = mcptool.New(resolver, Version).HTTPHandler()
	}

	return &Application{
		cfg:        cfg,
		logger:     baseLogger,
		resolver:   resolver,
		downloader: downloader,
		gateway:    rest.NewGateway(cfg.Server, deps),
	}, nil
}

func newResolveChecker(hosts config.HostsConfig) (*urlcheck.Checker, error) {
	opts := []urlcheck.Option{
		urlcheck.WithScheme("https"),
		urlcheck.WithSubstrings(hosts.Resolve...),
	}
	if hosts.Strict {
		opts = append(opts, urlcheck.WithPatterns(hosts.ResolvePatterns...))
	}
	checker, err := urlcheck.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("resolve hosts: %w", err)
	}
	return checker, nil
}

// Resolver exposes the resolve use case for non-HTTP callers such as the CLI.
func (a *Application) Resolver() *usecase.Resolver {
	return a.resolver
}

// Downloader exposes the download use case for non-HTTP callers.
func (a *Application) Downloader() *usecase.Downloader {
	return a.downloader
}

// Handler returns the HTTP handler serving every route.
func (a *Application) Handler() http.Handler {
	return a.gateway.Handler()
}

// Run serves HTTP until ctx is cancelled.
func (a *Application) Run(ctx context.Context) error {
	a.logger.Info("starting", "address", a.cfg.Server.Address, "mcp", a.cfg.Server.EnableMCP,
		"static_dir", a.cfg.Server.StaticDir, "strict_hosts", a.cfg.Hosts.Strict)
	return a.gateway.Run(ctx)
}
