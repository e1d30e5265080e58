package export

import (
	"bytes"
	"context"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"CampusPlanner/internal/registry"
	"CampusPlanner/internal/schedule"
	"CampusPlanner/pkg/apperr"
)

type mockScheduleSource struct {
	schedules map[primitive.ObjectID]*schedule.Schedule
	pdfs      map[primitive.ObjectID]*schedule.PDFDocument
	saveErr   error
}

func newMockScheduleSource() *mockScheduleSource {
	return &mockScheduleSource{
		schedules: make(map[primitive.ObjectID]*schedule.Schedule),
		pdfs:      make(map[primitive.ObjectID]*schedule.PDFDocument),
	}
}

func (m *mockScheduleSource) FindByID(_ context.Context, id primitive.ObjectID) (*schedule.Schedule, error) {
	return m.schedules[id], nil
}

func (m *mockScheduleSource) SavePDF(_ context.Context, scheduleID primitive.ObjectID, data []byte) (primitive.ObjectID, error) {
	if m.saveErr != nil {
		return primitive.NilObjectID, m.saveErr
	}
	doc := &schedule.PDFDocument{ID: primitive.NewObjectID(), Schedule: scheduleID, PDFData: data}
	m.pdfs[doc.ID] = doc
	return doc.ID, nil
}

func (m *mockScheduleSource) FindPDFByID(_ context.Context, id primitive.ObjectID) (*schedule.PDFDocument, error) {
	return m.pdfs[id], nil
}

type mockReportSource struct {
	cycles     map[primitive.ObjectID]*registry.CycleMaster
	semesters  map[primitive.ObjectID]*registry.Semester
	modules    []*registry.Module
	students   []*registry.Student
	professors []*registry.Professor
}

func newMockReportSource() *mockReportSource {
	return &mockReportSource{
		cycles:    make(map[primitive.ObjectID]*registry.CycleMaster),
		semesters: make(map[primitive.ObjectID]*registry.Semester),
	}
}

func (m *mockReportSource) FindCycleMasterByID(_ context.Context, id primitive.ObjectID) (*registry.CycleMaster, error) {
	return m.cycles[id], nil
}

func (m *mockReportSource) FindSemesterByID(_ context.Context, id primitive.ObjectID) (*registry.Semester, error) {
	return m.semesters[id], nil
}

func (m *mockReportSource) FindModulesByPair(_ context.Context, _, _ primitive.ObjectID) ([]*registry.Module, error) {
	return m.modules, nil
}

func (m *mockReportSource) FindStudentsByPair(_ context.Context, _, _ primitive.ObjectID) ([]*registry.Student, error) {
	return m.students, nil
}

func (m *mockReportSource) ListProfessors(_ context.Context) ([]*registry.Professor, error) {
	return m.professors, nil
}

// mockLookup backs the resolver; only the cycle and semester titles matter
// for export tests.
type mockLookup struct {
	cycles    map[primitive.ObjectID]*registry.CycleMaster
	semesters map[primitive.ObjectID]*registry.Semester
}

func newMockLookup() *mockLookup {
	return &mockLookup{
		cycles:    make(map[primitive.ObjectID]*registry.CycleMaster),
		semesters: make(map[primitive.ObjectID]*registry.Semester),
	}
}

func (m *mockLookup) FindCycleMasterByID(_ context.Context, id primitive.ObjectID) (*registry.CycleMaster, error) {
	return m.cycles[id], nil
}

func (m *mockLookup) FindSemesterByID(_ context.Context, id primitive.ObjectID) (*registry.Semester, error) {
	return m.semesters[id], nil
}

func (m *mockLookup) FindModulesByIDs(_ context.Context, _ []primitive.ObjectID) ([]*registry.Module, error) {
	return nil, nil
}

func (m *mockLookup) FindProfessorsByIDs(_ context.Context, _ []primitive.ObjectID) ([]*registry.Professor, error) {
	return nil, nil
}

type mockRecorder struct {
	actions []string
}

func (m *mockRecorder) Record(_ context.Context, _, _, action, _ string) {
	m.actions = append(m.actions, action)
}

func setupTestExportService() (*ExportService, *mockScheduleSource, *mockReportSource, *mockRecorder) {
	schedules := newMockScheduleSource()
	reports := newMockReportSource()
	recorder := &mockRecorder{}
	svc := &ExportService{
		schedules: schedules,
		resolver:  schedule.NewResolver(newMockLookup()),
		registry:  reports,
		activity:  recorder,
		logger:    zap.NewNop(),
	}
	return svc, schedules, reports, recorder
}

func TestExportSchedulePDF(t *testing.T) {
	svc, schedules, _, recorder := setupTestExportService()
	stored := &schedule.Schedule{
		ID:          primitive.NewObjectID(),
		CycleMaster: primitive.NewObjectID(),
		Semester:    primitive.NewObjectID(),
		DailySchedules: []schedule.DailySchedule{
			{Day: "Monday", Sessions: []schedule.Session{{TimeSlot: "08:30-10:00", Place: "A101"}}},
		},
	}
	schedules.schedules[stored.ID] = stored

	data, err := svc.ExportSchedulePDF(context.Background(), "admin", "u1", stored.ID.Hex())
	if err != nil {
		t.Fatalf("export should succeed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output is not a PDF document")
	}
	if len(schedules.pdfs) != 1 {
		t.Errorf("rendered PDF should be cached, got %d documents", len(schedules.pdfs))
	}
	if len(recorder.actions) != 1 || recorder.actions[0] != "export_schedule_pdf" {
		t.Errorf("expected an export_schedule_pdf audit entry, got %v", recorder.actions)
	}
}

func TestExportSchedulePDF_NotFoundBeforeRender(t *testing.T) {
	svc, _, _, _ := setupTestExportService()

	_, err := svc.ExportSchedulePDF(context.Background(), "admin", "u1", primitive.NewObjectID().Hex())
	if !apperr.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestExportSchedulePDF_CacheFailureStillServes(t *testing.T) {
	svc, schedules, _, _ := setupTestExportService()
	schedules.saveErr = context.DeadlineExceeded
	stored := &schedule.Schedule{ID: primitive.NewObjectID()}
	schedules.schedules[stored.ID] = stored

	data, err := svc.ExportSchedulePDF(context.Background(), "admin", "u1", stored.ID.Hex())
	if err != nil {
		t.Fatalf("a cache failure must not fail the download: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output is not a PDF document")
	}
}

func TestCachedPDF_NotFound(t *testing.T) {
	svc, _, _, _ := setupTestExportService()

	_, err := svc.CachedPDF(context.Background(), primitive.NewObjectID().Hex())
	if !apperr.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestGenerateCycleReport_RequiresExistingPair(t *testing.T) {
	svc, _, reports, _ := setupTestExportService()
	cycle := &registry.CycleMaster{ID: primitive.NewObjectID(), Title: "Master Informatique"}
	reports.cycles[cycle.ID] = cycle

	// The semester is unknown, so the report must not be generated.
	_, err := svc.GenerateCycleReport(context.Background(), "admin", "u1",
		cycle.ID.Hex(), primitive.NewObjectID().Hex())
	if !apperr.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestGenerateCycleReport_Workbook(t *testing.T) {
	svc, _, reports, _ := setupTestExportService()
	cycle := &registry.CycleMaster{ID: primitive.NewObjectID(), Title: "Master Informatique", Major: "Informatique"}
	semester := &registry.Semester{ID: primitive.NewObjectID(), Title: "S1", Cycle: cycle.ID}
	reports.cycles[cycle.ID] = cycle
	reports.semesters[semester.ID] = semester

	module := &registry.Module{ID: primitive.NewObjectID(), Title: "Réseaux", Code: "INF301", Cycle: cycle.ID, Semester: semester.ID}
	reports.modules = []*registry.Module{module}
	reports.students = []*registry.Student{
		{FirstName: "Sara", LastName: "El Amrani", StudentNumber: "20250042"},
	}
	reports.professors = []*registry.Professor{
		{FirstName: "Karim", LastName: "Bennani", Status: "permanent", Modules: []primitive.ObjectID{module.ID}},
		{FirstName: "Nora", LastName: "Haddad", Status: "vacataire"}, // teaches nothing in this pair
	}

	buf, err := svc.GenerateCycleReport(context.Background(), "admin", "u1", cycle.ID.Hex(), semester.ID.Hex())
	if err != nil {
		t.Fatalf("report should succeed: %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("output is not a readable workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	want := []string{"Info", "Modules", "Students", "Professors"}
	if len(sheets) != len(want) {
		t.Fatalf("expected sheets %v, got %v", want, sheets)
	}
	for i, name := range want {
		if sheets[i] != name {
			t.Errorf("sheet %d: expected %s, got %s", i, name, sheets[i])
		}
	}

	title, err := f.GetCellValue("Modules", "A2")
	if err != nil || title != "Réseaux" {
		t.Errorf("expected module title in Modules!A2, got %q (%v)", title, err)
	}

	// Only professors teaching a module of the pair appear.
	rows, err := f.GetRows("Professors")
	if err != nil {
		t.Fatalf("cannot read Professors sheet: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("expected header plus one professor, got %d rows", len(rows))
	}
}
