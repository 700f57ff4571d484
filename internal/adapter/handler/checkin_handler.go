package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/srgjo27/event_ticketing/internal/core/services"
)

type CheckinHandler struct {
	svc *services.CheckinService
}

func NewCheckinHandler(svc *services.CheckinService) *CheckinHandler {
	return &CheckinHandler{svc: svc}
}

func (h *CheckinHandler) Register(g *echo.Group) {
	g.POST("/staff/checkin", h.CheckIn)
	g.POST("/staff/checkout", h.CheckOut)
}

type scanRequest struct {
	QRContent string `json:"qrContent"`
}

// CheckIn scans a batch at the entrance. The response is always the full
// per-ticket envelope; the status code reflects whether the whole batch went
// through.
func (h *CheckinHandler) CheckIn(c echo.Context) error {
	var req scanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result := h.svc.CheckInScan(c.Request().Context(), req.QRContent)

	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadRequest
	}

	return c.JSON(status, result)
}

func (h *CheckinHandler) CheckOut(c echo.Context) error {
	var req scanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result := h.svc.CheckOutScan(c.Request().Context(), req.QRContent)

	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadRequest
	}

	return c.JSON(status, result)
}
