// Package handler holds the HTTP transport layer. Handlers translate
// requests into service calls and domain errors into status codes; no
// business rules live here.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/srgjo27/event_ticketing/internal/core/domain"
)

func pathInt64(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}

func mapDomainError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrSeatTaken):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrStateConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrOrderInfoMalformed):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
