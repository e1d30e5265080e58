package activity

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// ActivityHandler handles HTTP requests for the audit log.
type ActivityHandler struct {
	service *ActivityService
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(service *ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// List returns the most recent audit entries, newest first. An optional
// limit query parameter caps the result size (default 100).
func (h *ActivityHandler) List(c echo.Context) error {
	limit := int64(100)
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid limit"})
		}
		limit = parsed
	}

	entries, err := h.service.List(c.Request().Context(), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "An internal error occurred"})
	}
	return c.JSON(http.StatusOK, entries)
}
