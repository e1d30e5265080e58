package schedule

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"CampusPlanner/internal/identity"
	"CampusPlanner/pkg/apperr"
)

// ScheduleHandler handles HTTP requests for schedule operations.
type ScheduleHandler struct {
	service *ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(service *ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

// List returns all schedules as resolved views. An optional cycleMaster
// query parameter filters by program track.
func (h *ScheduleHandler) List(c echo.Context) error {
	views, err := h.service.List(c.Request().Context(), c.QueryParam("cycleMaster"))
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, views)
}

// Get returns one schedule's resolved view.
func (h *ScheduleHandler) Get(c echo.Context) error {
	view, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// Create stores a new schedule and returns the resolved view so the client
// needs no second round trip.
func (h *ScheduleHandler) Create(c echo.Context) error {
	var req SubmitScheduleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	actorType, actorID := identity.ActorFrom(c)
	view, err := h.service.Create(c.Request().Context(), actorType, actorID, req)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, view)
}

// Update replaces a schedule's dailySchedules wholesale.
func (h *ScheduleHandler) Update(c echo.Context) error {
	var req SubmitScheduleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	actorType, actorID := identity.ActorFrom(c)
	view, err := h.service.Update(c.Request().Context(), actorType, actorID, c.Param("id"), req)
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// Delete removes a schedule.
func (h *ScheduleHandler) Delete(c echo.Context) error {
	actorType, actorID := identity.ActorFrom(c)
	if err := h.service.Delete(c.Request().Context(), actorType, actorID, c.Param("id")); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Schedule deleted successfully"})
}
