package echoapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/tutoria/core/listing"
)

const (
	headerExportTruncated = "X-Export-Truncated"
	headerTotalCount      = "X-Total-Count"
	headerExportRowCount  = "X-Export-Row-Count"
)

type listingApi struct {
	svc *listing.Service
}

// registerListingAPI mounts a list & an export endpoint per registered admin table.
func registerListingAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *listing.Service) {
	api := listingApi{svc: svc}

	ag := g.Group("/admin", jwt, staffMiddleware())
	for _, key := range svc.Registry().Keys() {
		ag.GET("/"+key, api.list(key))
		ag.GET("/"+key+"/export", api.export(key))
	}
}

// Handlers

func (api *listingApi) list(key string) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		caller, err := getContextCaller(ctx)
		if err != nil {
			return errors.Wrap(err, "getting context caller")
		}

		raw, err := bindListParams(ctx)
		if err != nil {
			return err
		}

		result, err := api.svc.List(ctx.Request().Context(), key, caller, raw)
		if err != nil {
			return errors.Wrapf(err, "listing %s", key)
		}
		return ctx.JSON(http.StatusOK, result)
	}
}

func (api *listingApi) export(key string) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		caller, err := getContextCaller(ctx)
		if err != nil {
			return errors.Wrap(err, "getting context caller")
		}
		format, err := bindExportFormat(ctx)
		if err != nil {
			return err
		}

		raw, err := bindListParams(ctx)
		if err != nil {
			return err
		}

		file, err := api.svc.Export(ctx.Request().Context(), key, caller, raw, format)
		if err != nil {
			return errors.Wrapf(err, "exporting %s", key)
		}

		h := ctx.Response().Header()
		h.Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Filename))
		h.Set(headerExportTruncated, strconv.FormatBool(file.Truncated))
		h.Set(headerTotalCount, strconv.Itoa(file.TotalCount))
		h.Set(headerExportRowCount, strconv.Itoa(file.RowCount))
		return ctx.Blob(http.StatusOK, file.ContentType, file.Content)
	}
}
