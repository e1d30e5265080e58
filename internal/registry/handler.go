package registry

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"CampusPlanner/internal/identity"
	"CampusPlanner/pkg/apperr"
)

// RegistryHandler handles HTTP requests for the reference entities.
type RegistryHandler struct {
	service *RegistryService
}

// NewRegistryHandler creates a new RegistryHandler.
func NewRegistryHandler(service *RegistryService) *RegistryHandler {
	return &RegistryHandler{service: service}
}

// CreateModuleRequest represents the request to create or update a module.
type CreateModuleRequest struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Code       string `json:"code"`
	CycleID    string `json:"cycleId"`
	SemesterID string `json:"semesterId"`
}

// CreateProfessorRequest represents the request to create a professor.
type CreateProfessorRequest struct {
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Email     string   `json:"email"`
	Telephone string   `json:"telephone"`
	Status    string   `json:"status"`
	ModuleIDs []string `json:"moduleIds"`
}

// CreateCycleMasterRequest represents the request to create a cycle master.
type CreateCycleMasterRequest struct {
	Title       string `json:"title"`
	Major       string `json:"major"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
}

// CreateSemesterRequest represents the request to create a semester.
type CreateSemesterRequest struct {
	Title     string    `json:"title"`
	CycleID   string    `json:"cycleId"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

func (h *RegistryHandler) ListModules(c echo.Context) error {
	modules, err := h.service.ListModules(c.Request().Context())
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, modules)
}

func (h *RegistryHandler) CreateModule(c echo.Context) error {
	var req CreateModuleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	cycleID, err := primitive.ObjectIDFromHex(req.CycleID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid cycle ID"})
	}
	semesterID, err := primitive.ObjectIDFromHex(req.SemesterID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid semester ID"})
	}

	actorType, actorID := identity.ActorFrom(c)
	module, err := h.service.CreateModule(c.Request().Context(), actorType, actorID, &Module{
		Title:    req.Title,
		Code:     req.Code,
		Cycle:    cycleID,
		Semester: semesterID,
	})
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, module)
}

func (h *RegistryHandler) UpdateModule(c echo.Context) error {
	var req CreateModuleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	id, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid module ID"})
	}
	cycleID, err := primitive.ObjectIDFromHex(req.CycleID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid cycle ID"})
	}
	semesterID, err := primitive.ObjectIDFromHex(req.SemesterID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid semester ID"})
	}

	actorType, actorID := identity.ActorFrom(c)
	module, err := h.service.UpdateModule(c.Request().Context(), actorType, actorID, &Module{
		ID:       id,
		Title:    req.Title,
		Code:     req.Code,
		Cycle:    cycleID,
		Semester: semesterID,
	})
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, module)
}

func (h *RegistryHandler) DeleteModule(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid module ID"})
	}

	actorType, actorID := identity.ActorFrom(c)
	if err := h.service.DeleteModule(c.Request().Context(), actorType, actorID, id); err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Module deleted successfully"})
}

func (h *RegistryHandler) ListProfessors(c echo.Context) error {
	professors, err := h.service.ListProfessors(c.Request().Context())
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, professors)
}

func (h *RegistryHandler) CreateProfessor(c echo.Context) error {
	var req CreateProfessorRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	moduleIDs := make([]primitive.ObjectID, 0, len(req.ModuleIDs))
	for _, raw := range req.ModuleIDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid module ID"})
		}
		moduleIDs = append(moduleIDs, id)
	}

	actorType, actorID := identity.ActorFrom(c)
	professor, err := h.service.CreateProfessor(c.Request().Context(), actorType, actorID, &Professor{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Telephone: req.Telephone,
		Status:    req.Status,
		Modules:   moduleIDs,
	})
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, professor)
}

func (h *RegistryHandler) ListCycleMasters(c echo.Context) error {
	cycles, err := h.service.ListCycleMasters(c.Request().Context())
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, cycles)
}

func (h *RegistryHandler) CreateCycleMaster(c echo.Context) error {
	var req CreateCycleMasterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	actorType, actorID := identity.ActorFrom(c)
	cycle, err := h.service.CreateCycleMaster(c.Request().Context(), actorType, actorID, &CycleMaster{
		Title:       req.Title,
		Major:       req.Major,
		Description: req.Description,
		Duration:    req.Duration,
	})
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, cycle)
}

func (h *RegistryHandler) ListSemesters(c echo.Context) error {
	semesters, err := h.service.ListSemesters(c.Request().Context())
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusOK, semesters)
}

func (h *RegistryHandler) CreateSemester(c echo.Context) error {
	var req CreateSemesterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	cycleID, err := primitive.ObjectIDFromHex(req.CycleID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid cycle ID"})
	}

	actorType, actorID := identity.ActorFrom(c)
	semester, err := h.service.CreateSemester(c.Request().Context(), actorType, actorID, &Semester{
		Title:     req.Title,
		Cycle:     cycleID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		return apperr.Respond(c, err)
	}
	return c.JSON(http.StatusCreated, semester)
}
