package export

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"CampusPlanner/internal/identity"
	"CampusPlanner/pkg/apperr"
)

// ExportHandler handles HTTP requests for document generation.
type ExportHandler struct {
	service *ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(service *ExportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// SchedulePDF renders the schedule identified by :id as a PDF download.
func (h *ExportHandler) SchedulePDF(c echo.Context) error {
	actorType, actorID := identity.ActorFrom(c)
	data, err := h.service.ExportSchedulePDF(c.Request().Context(), actorType, actorID, c.Param("id"))
	if err != nil {
		return apperr.Respond(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="emploi_du_temps.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", data)
}

// CachedPDF serves a previously rendered schedule PDF by document id.
func (h *ExportHandler) CachedPDF(c echo.Context) error {
	doc, err := h.service.CachedPDF(c.Request().Context(), c.Param("id"))
	if err != nil {
		return apperr.Respond(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="emploi_du_temps.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", doc.PDFData)
}

// CycleReport generates the cycle+semester .xlsx report.
func (h *ExportHandler) CycleReport(c echo.Context) error {
	cycleID := c.QueryParam("cycleId")
	semesterID := c.QueryParam("semesterId")
	if cycleID == "" || semesterID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Cycle ID and Semester ID are required"})
	}

	actorType, actorID := identity.ActorFrom(c)
	buf, err := h.service.GenerateCycleReport(c.Request().Context(), actorType, actorID, cycleID, semesterID)
	if err != nil {
		return apperr.Respond(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="cycle_semester_data.xlsx"`)
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
