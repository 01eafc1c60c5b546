package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/trezcool/tutoria/core/listing"
)

const formatParam = "format"

// bindListParams reads the list parameters from the query string, as sent.
func bindListParams(ctx echo.Context) (listing.RawParams, error) {
	raw := listing.RawParams{}
	if err := ctx.Bind(&raw); err != nil {
		return listing.RawParams{}, err
	}
	return raw, nil
}

func bindExportFormat(ctx echo.Context) (listing.Format, error) {
	return listing.ParseFormat(ctx.QueryParam(formatParam))
}
