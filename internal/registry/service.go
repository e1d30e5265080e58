package registry

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"CampusPlanner/internal/activity"
	"CampusPlanner/pkg/apperr"
)

// Directory abstracts the reference lookups the schedule subsystem needs.
type Directory interface {
	FindModuleByID(ctx context.Context, id primitive.ObjectID) (*Module, error)
	FindModulesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*Module, error)
	FindModulesByPair(ctx context.Context, cycle, semester primitive.ObjectID) ([]*Module, error)
	ListModules(ctx context.Context) ([]*ModuleView, error)
	CreateModule(ctx context.Context, module *Module) error
	UpdateModule(ctx context.Context, module *Module) (bool, error)
	DeleteModule(ctx context.Context, id primitive.ObjectID) (bool, error)
	CountSchedulesReferencingModule(ctx context.Context, id primitive.ObjectID) (int64, error)
	FindProfessorByID(ctx context.Context, id primitive.ObjectID) (*Professor, error)
	FindProfessorsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*Professor, error)
	ListProfessors(ctx context.Context) ([]*Professor, error)
	CreateProfessor(ctx context.Context, professor *Professor) error
	FindCycleMasterByID(ctx context.Context, id primitive.ObjectID) (*CycleMaster, error)
	ListCycleMasters(ctx context.Context) ([]*CycleMaster, error)
	CreateCycleMaster(ctx context.Context, cycle *CycleMaster) error
	FindSemesterByID(ctx context.Context, id primitive.ObjectID) (*Semester, error)
	ListSemesters(ctx context.Context) ([]*Semester, error)
	CreateSemester(ctx context.Context, semester *Semester) error
	FindStudentsByPair(ctx context.Context, cycle, semester primitive.ObjectID) ([]*Student, error)
}

// RegistryService exposes the reference entities to the HTTP layer and
// enforces the module delete guard.
type RegistryService struct {
	repo     Directory
	activity activity.Recorder
	logger   *zap.Logger
}

// NewRegistryService creates a new RegistryService.
func NewRegistryService(repo *RegistryRepository, recorder *activity.ActivityService, logger *zap.Logger) *RegistryService {
	return &RegistryService{repo: repo, activity: recorder, logger: logger}
}

func (s *RegistryService) ListModules(ctx context.Context) ([]*ModuleView, error) {
	return s.repo.ListModules(ctx)
}

func (s *RegistryService) CreateModule(ctx context.Context, actorType, actorID string, module *Module) (*Module, error) {
	if module.Title == "" || module.Code == "" {
		return nil, apperr.NewValidation("", "All fields are required")
	}
	if module.Cycle.IsZero() || module.Semester.IsZero() {
		return nil, apperr.NewValidation("", "All fields are required")
	}
	module.ID = primitive.NewObjectID()
	if err := s.repo.CreateModule(ctx, module); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, actorType, actorID, "create_module", fmt.Sprintf("Created module %s (%s)", module.Title, module.Code))
	return module, nil
}

func (s *RegistryService) UpdateModule(ctx context.Context, actorType, actorID string, module *Module) (*Module, error) {
	if module.Title == "" || module.Code == "" || module.Cycle.IsZero() || module.Semester.IsZero() {
		return nil, apperr.NewValidation("", "All fields are required")
	}
	matched, err := s.repo.UpdateModule(ctx, module)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, apperr.NewNotFound("Module")
	}
	s.activity.Record(ctx, actorType, actorID, "update_module", fmt.Sprintf("Updated module %s (%s)", module.Title, module.Code))
	return module, nil
}

// DeleteModule removes a module unless a schedule session still references
// it, in which case the delete fails with a conflict.
func (s *RegistryService) DeleteModule(ctx context.Context, actorType, actorID string, id primitive.ObjectID) error {
	count, err := s.repo.CountSchedulesReferencingModule(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.NewConflict("Cannot delete module as it is being used in one or more schedules", map[string]string{
			"module": id.Hex(),
		})
	}
	deleted, err := s.repo.DeleteModule(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NewNotFound("Module")
	}
	s.activity.Record(ctx, actorType, actorID, "delete_module", fmt.Sprintf("Deleted module %s", id.Hex()))
	return nil
}

func (s *RegistryService) ListProfessors(ctx context.Context) ([]*Professor, error) {
	return s.repo.ListProfessors(ctx)
}

func (s *RegistryService) CreateProfessor(ctx context.Context, actorType, actorID string, professor *Professor) (*Professor, error) {
	if professor.FirstName == "" || professor.LastName == "" || professor.Email == "" {
		return nil, apperr.NewValidation("", "First name, last name and email are required")
	}
	if professor.Status != "permanent" && professor.Status != "vacataire" {
		return nil, apperr.NewValidation("status", "Status must be permanent or vacataire")
	}
	if professor.Modules == nil {
		professor.Modules = []primitive.ObjectID{}
	}
	professor.ID = primitive.NewObjectID()
	if err := s.repo.CreateProfessor(ctx, professor); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, actorType, actorID, "create_professor", fmt.Sprintf("Created professor %s %s", professor.FirstName, professor.LastName))
	return professor, nil
}

func (s *RegistryService) ListCycleMasters(ctx context.Context) ([]*CycleMaster, error) {
	return s.repo.ListCycleMasters(ctx)
}

func (s *RegistryService) CreateCycleMaster(ctx context.Context, actorType, actorID string, cycle *CycleMaster) (*CycleMaster, error) {
	if cycle.Title == "" || cycle.Major == "" {
		return nil, apperr.NewValidation("", "Title and major are required")
	}
	cycle.ID = primitive.NewObjectID()
	if err := s.repo.CreateCycleMaster(ctx, cycle); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, actorType, actorID, "create_cycle_master", fmt.Sprintf("Created cycle master %s", cycle.Title))
	return cycle, nil
}

func (s *RegistryService) ListSemesters(ctx context.Context) ([]*Semester, error) {
	return s.repo.ListSemesters(ctx)
}

func (s *RegistryService) CreateSemester(ctx context.Context, actorType, actorID string, semester *Semester) (*Semester, error) {
	if semester.Title == "" || semester.Cycle.IsZero() {
		return nil, apperr.NewValidation("", "Title and cycle are required")
	}
	cycle, err := s.repo.FindCycleMasterByID(ctx, semester.Cycle)
	if err != nil {
		return nil, err
	}
	if cycle == nil {
		return nil, apperr.NewNotFound("Cycle master")
	}
	semester.ID = primitive.NewObjectID()
	if err := s.repo.CreateSemester(ctx, semester); err != nil {
		return nil, err
	}
	s.activity.Record(ctx, actorType, actorID, "create_semester", fmt.Sprintf("Created semester %s", semester.Title))
	return semester, nil
}
