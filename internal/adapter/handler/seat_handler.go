package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/srgjo27/event_ticketing/internal/core/services"
)

type SeatHandler struct {
	svc *services.HoldService
}

func NewSeatHandler(svc *services.HoldService) *SeatHandler {
	return &SeatHandler{svc: svc}
}

func (h *SeatHandler) Register(g *echo.Group) {
	g.GET("/events/:id/seats", h.ListSeats)
}

// ListSeats renders the seat map with availability derived from live ticket
// rows, cache-accelerated for on-sale bursts.
func (h *SeatHandler) ListSeats(c echo.Context) error {
	eventID, err := pathInt64(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	seats, err := h.svc.ListSeats(c.Request().Context(), eventID)
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, seats)
}
