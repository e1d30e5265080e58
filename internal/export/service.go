package export

import (
	"bytes"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"CampusPlanner/internal/activity"
	"CampusPlanner/internal/registry"
	"CampusPlanner/internal/schedule"
	"CampusPlanner/pkg/apperr"
)

// ScheduleSource is the slice of the schedule store the exporter reads from
// and caches rendered documents into.
type ScheduleSource interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*schedule.Schedule, error)
	SavePDF(ctx context.Context, scheduleID primitive.ObjectID, data []byte) (primitive.ObjectID, error)
	FindPDFByID(ctx context.Context, id primitive.ObjectID) (*schedule.PDFDocument, error)
}

// ReportSource is the slice of the registry the cycle+semester report is
// aggregated from.
type ReportSource interface {
	FindCycleMasterByID(ctx context.Context, id primitive.ObjectID) (*registry.CycleMaster, error)
	FindSemesterByID(ctx context.Context, id primitive.ObjectID) (*registry.Semester, error)
	FindModulesByPair(ctx context.Context, cycle, semester primitive.ObjectID) ([]*registry.Module, error)
	FindStudentsByPair(ctx context.Context, cycle, semester primitive.ObjectID) ([]*registry.Student, error)
	ListProfessors(ctx context.Context) ([]*registry.Professor, error)
}

// ExportService turns resolved schedules and registry aggregations into
// downloadable documents.
type ExportService struct {
	schedules ScheduleSource
	resolver  *schedule.Resolver
	registry  ReportSource
	activity  activity.Recorder
	logger    *zap.Logger
}

// NewExportService creates a new ExportService.
func NewExportService(
	schedules *schedule.ScheduleRepository,
	resolver *schedule.Resolver,
	registryRepo *registry.RegistryRepository,
	recorder *activity.ActivityService,
	logger *zap.Logger,
) *ExportService {
	return &ExportService{
		schedules: schedules,
		resolver:  resolver,
		registry:  registryRepo,
		activity:  recorder,
		logger:    logger,
	}
}

// ExportSchedulePDF resolves a schedule and renders it as a PDF. The
// rendered bytes are cached so the dashboard's download button can serve
// them without re-rendering; a cache failure only loses the cache, not the
// download.
func (s *ExportService) ExportSchedulePDF(ctx context.Context, actorType, actorID, id string) ([]byte, error) {
	scheduleID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.NewValidation("id", "Invalid schedule id")
	}
	stored, err := s.schedules.FindByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, apperr.NewNotFound("Schedule")
	}

	view, err := s.resolver.Resolve(ctx, stored)
	if err != nil {
		return nil, err
	}
	data, err := RenderSchedulePDF(view)
	if err != nil {
		s.logger.Error("failed to render schedule PDF", zap.String("schedule", id), zap.Error(err))
		return nil, err
	}

	if _, err := s.schedules.SavePDF(ctx, scheduleID, data); err != nil {
		s.logger.Warn("failed to cache schedule PDF", zap.String("schedule", id), zap.Error(err))
	}

	s.activity.Record(ctx, actorType, actorID, "export_schedule_pdf",
		fmt.Sprintf("Exported schedule %s as PDF", id))
	return data, nil
}

// CachedPDF serves a previously rendered schedule PDF by document id.
func (s *ExportService) CachedPDF(ctx context.Context, id string) (*schedule.PDFDocument, error) {
	docID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.NewValidation("id", "Invalid document id")
	}
	doc, err := s.schedules.FindPDFByID(ctx, docID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, apperr.NewNotFound("PDF")
	}
	return doc, nil
}

// GenerateCycleReport aggregates a cycle+semester pair's modules, students
// and professors into an .xlsx workbook.
func (s *ExportService) GenerateCycleReport(ctx context.Context, actorType, actorID, cycleID, semesterID string) (*bytes.Buffer, error) {
	cycleOID, err := primitive.ObjectIDFromHex(cycleID)
	if err != nil {
		return nil, apperr.NewValidation("cycleId", "Invalid cycle id")
	}
	semesterOID, err := primitive.ObjectIDFromHex(semesterID)
	if err != nil {
		return nil, apperr.NewValidation("semesterId", "Invalid semester id")
	}

	cycle, err := s.registry.FindCycleMasterByID(ctx, cycleOID)
	if err != nil {
		return nil, err
	}
	semester, err := s.registry.FindSemesterByID(ctx, semesterOID)
	if err != nil {
		return nil, err
	}
	if cycle == nil || semester == nil {
		return nil, apperr.NewNotFound("Cycle or semester")
	}

	modules, err := s.registry.FindModulesByPair(ctx, cycleOID, semesterOID)
	if err != nil {
		return nil, err
	}
	students, err := s.registry.FindStudentsByPair(ctx, cycleOID, semesterOID)
	if err != nil {
		return nil, err
	}
	professors, err := s.teachingProfessors(ctx, modules)
	if err != nil {
		return nil, err
	}

	buf, err := BuildCycleReport(&CycleReport{
		Cycle:      cycle,
		Semester:   semester,
		Modules:    modules,
		Students:   students,
		Professors: professors,
	})
	if err != nil {
		s.logger.Error("failed to build cycle report", zap.String("cycle", cycleID), zap.Error(err))
		return nil, err
	}

	s.activity.Record(ctx, actorType, actorID, "generate_cycle_report",
		fmt.Sprintf("Generated report for cycle %s semester %s", cycleID, semesterID))
	return buf, nil
}

// teachingProfessors filters all professors down to those assigned to at
// least one of the given modules.
func (s *ExportService) teachingProfessors(ctx context.Context, modules []*registry.Module) ([]*registry.Professor, error) {
	professors, err := s.registry.ListProfessors(ctx)
	if err != nil {
		return nil, err
	}
	moduleIDs := make(map[primitive.ObjectID]bool, len(modules))
	for _, module := range modules {
		moduleIDs[module.ID] = true
	}
	teaching := make([]*registry.Professor, 0, len(professors))
	for _, professor := range professors {
		for _, id := range professor.Modules {
			if moduleIDs[id] {
				teaching = append(teaching, professor)
				break
			}
		}
	}
	return teaching, nil
}
