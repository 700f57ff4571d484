package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/srgjo27/event_ticketing/internal/core/domain"
	"github.com/srgjo27/event_ticketing/internal/core/services"
)

type ReportHandler struct {
	svc *services.ReportService
}

func NewReportHandler(svc *services.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

func (h *ReportHandler) Register(g *echo.Group) {
	g.POST("/reports", h.File)
	g.GET("/staff/reports", h.List)
	g.POST("/staff/reports/:id/resolve", h.Resolve)
}

func (h *ReportHandler) File(c echo.Context) error {
	var req services.FileReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	id, err := h.svc.FileReport(c.Request().Context(), req)
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusCreated, map[string]int64{"report_id": id})
}

func (h *ReportHandler) List(c echo.Context) error {
	status := domain.ReportStatus(c.QueryParam("status"))

	items, err := h.svc.ListReports(c.Request().Context(), status)
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, items)
}

func (h *ReportHandler) Resolve(c echo.Context) error {
	reportID, err := pathInt64(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid report id")
	}

	var req services.ResolveReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	req.ReportID = reportID

	resp, err := h.svc.ResolveReport(c.Request().Context(), req)
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusOK, resp)
}
