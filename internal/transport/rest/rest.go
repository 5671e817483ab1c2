package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"PinResolver/internal/config"
	"PinResolver/internal/ports"
)

type (
	controller interface {
		SetRoutes(*echo.Group)
	}

	// Deps are the use cases and optional surfaces exposed over HTTP.
	Deps struct {
		Resolver   ports.Resolver
		Downloader ports.Downloader
		MCP        http.Handler // mounted at /mcp when set
		Logger     *slog.Logger
	}

	// Gateway is a thin wrapper around the echo router. It owns the resolve and
	// download routes, their aliases under /api, and the optional SPA and MCP mounts.
	Gateway struct {
		config          config.ServerConfig
		ec              *echo.Echo
		logger          *slog.Logger
		mediaController controller
	}

	errorResponse struct {
		Error string `json:"error"`
	}

	requestValidator struct {
		validate *validator.Validate
	}
)

// routePrefixes lists the mount points of every API route; /api mirrors the
// root for clients routed through an API gateway.
var routePrefixes = []string{"", "/api"}

// NewGateway constructs the echo router and registers all routes.
func NewGateway(cfg config.ServerConfig, deps Deps) *Gateway {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ec := echo.New()
	ec.HideBanner = true
	ec.HidePort = true
	ec.Validator = &requestValidator{validate: validator.New()}
	ec.HTTPErrorHandler = errorHandler(logger)
	ec.OnAddRouteHandler = func(_ string, route echo.Route, _ echo.HandlerFunc, _ []echo.MiddlewareFunc) {
		logger.Debug("registered route", "method", route.Method, "path", route.Path)
	}

	ec.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	ec.Use(requestLogger(logger))
	ec.Use(middleware.Recover())
	if cfg.BodyLimit != "" {
		ec.Use(middleware.BodyLimit(cfg.BodyLimit))
	}
	if cfg.StaticDir != "" {
		ec.Use(middleware.StaticWithConfig(middleware.StaticConfig{
			Root:    cfg.StaticDir,
			HTML5:   true,
			Skipper: skipNonGet,
		}))
	}

	gateway := &Gateway{
		config:          cfg,
		ec:              ec,
		logger:          logger,
		mediaController: newMediaController(deps.Resolver, deps.Downloader, logger),
	}

	for _, prefix := range routePrefixes {
		gateway.mediaController.SetRoutes(ec.Group(prefix))
	}

	if deps.MCP != nil {
		mcpHandler := echo.WrapHandler(deps.MCP)
		ec.Any("/mcp", mcpHandler)
		ec.Any("/mcp/*", mcpHandler)
	}

	return gateway
}

// Handler exposes the router, mainly for tests.
func (gateway *Gateway) Handler() http.Handler {
	return gateway.ec
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (gateway *Gateway) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		gateway.logger.Info("http server listening", "address", gateway.config.Address)
		errCh <- gateway.ec.Start(gateway.config.Address)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("start http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), gateway.config.ShutdownTimeout)
	defer cancel()
	if err := gateway.ec.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

// skipNonGet keeps API 404s for POST requests from turning into index.html.
func skipNonGet(ec echo.Context) bool {
	method := ec.Request().Method
	return method != http.MethodGet && method != http.MethodHead
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// errorHandler renders every error as {"error": message}.
func errorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, ec echo.Context) {
		if ec.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := http.StatusText(code)
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			message = fmt.Sprint(he.Message)
		} else {
			logger.Error("unhandled error", "error", err, "path", ec.Request().URL.Path)
		}

		if ec.Request().Method == http.MethodHead {
			err = ec.NoContent(code)
		} else {
			err = ec.JSON(code, errorResponse{Error: message})
		}
		if err != nil {
			logger.Error("write error response", "error", err)
		}
	}
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(ec echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			}
			level := slog.LevelInfo
			if v.Error != nil {
				attrs = append(attrs, slog.String("error", v.Error.Error()))
				if v.Status >= http.StatusInternalServerError {
					level = slog.LevelWarn
				}
			}
			logger.LogAttrs(ec.Request().Context(), level, "request", attrs...)
			return nil
		},
	})
}
