package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pmbajaj/Lib-Management-System/internal/core/ports"
)

// ReportHandler serves the admin analytics endpoints.
type ReportHandler struct {
	reports ports.ReportService
}

func NewReportHandler(reports ports.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// AdminDashboard returns the headline numbers for the admin dashboard.
//
// @Summary      Admin dashboard summary
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.LibrarySummary
// @Router       /admin/dashboard [get]
func (h *ReportHandler) AdminDashboard(c echo.Context) error {
	summary, err := h.reports.Summary(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// Report returns the full analytics view: summary, most-borrowed titles and
// loans per month.
//
// @Summary      Library report
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.LibraryReport
// @Router       /admin/reports [get]
func (h *ReportHandler) Report(c echo.Context) error {
	report, err := h.reports.Report(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}
