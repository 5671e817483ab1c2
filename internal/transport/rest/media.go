package rest

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"PinResolver/internal/domain"
	"PinResolver/internal/ports"
	"PinResolver/internal/usecase"
)

type mediaController struct {
	resolver   ports.Resolver
	downloader ports.Downloader
	logger     *slog.Logger
}

func newMediaController(resolver ports.Resolver, downloader ports.Downloader, logger *slog.Logger) *mediaController {
	return &mediaController{resolver: resolver, downloader: downloader, logger: logger}
}

func (controller *mediaController) SetRoutes(eg *echo.Group) {
	eg.POST("/resolve", controller.resolve)
	eg.GET("/download", controller.download)
}

func (controller *mediaController) resolve(ec echo.Context) error {
	var req domain.ResolveRequest
	if err := ec.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, usecase.MsgURLRequired)
	}
	if err := ec.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, usecase.MsgURLRequired)
	}

	result, err := controller.resolver.Resolve(ec.Request().Context(), req.URL)
	switch {
	case err == nil:
		return ec.JSON(http.StatusOK, result)
	case errors.Is(err, domain.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, usecase.MsgNoMedia)
	default:
		controller.logger.Error("resolve failed", "url", req.URL, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, usecase.MsgResolveError)
	}
}

func (controller *mediaController) download(ec echo.Context) error {
	var req domain.DownloadRequest
	if err := ec.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, usecase.MsgMissingURL)
	}
	if err := ec.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, usecase.MsgMissingURL)
	}

	asset, err := controller.downloader.Download(ec.Request().Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		controller.logger.Error("download failed", "url", req.URL, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, usecase.MsgDownloadError)
	}
	defer asset.Body.Close()

	header := ec.Response().Header()
	header.Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", asset.Filename))
	if asset.ContentLength > 0 {
		header.Set(echo.HeaderContentLength, strconv.FormatInt(asset.ContentLength, 10))
	}
	if err := ec.Stream(http.StatusOK, asset.ContentType, asset.Body); err != nil {
		controller.logger.Error("download interrupted", "url", req.URL, "error", err)
		if ec.Response().Committed {
			// drop the connection so the client never sees a clean end of a partial file
			panic(http.ErrAbortHandler)
		}
		return err
	}
	return nil
}
