package schedule

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"CampusPlanner/internal/registry"
)

// duplicateKeyErr mimics the server error the unique (cycleMaster, semester)
// index raises on a colliding insert or update.
func duplicateKeyErr() error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error"}}}
}

type mockStore struct {
	schedules map[primitive.ObjectID]*Schedule
	insertErr error
	updateErr error
}

func newMockStore() *mockStore {
	return &mockStore{schedules: make(map[primitive.ObjectID]*Schedule)}
}

func (m *mockStore) pairTaken(cycleMaster, semester, except primitive.ObjectID) *Schedule {
	for _, s := range m.schedules {
		if s.CycleMaster == cycleMaster && s.Semester == semester && s.ID != except {
			return s
		}
	}
	return nil
}

func (m *mockStore) Insert(_ context.Context, schedule *Schedule) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	if m.pairTaken(schedule.CycleMaster, schedule.Semester, schedule.ID) != nil {
		return duplicateKeyErr()
	}
	m.schedules[schedule.ID] = schedule
	return nil
}

func (m *mockStore) FindByID(_ context.Context, id primitive.ObjectID) (*Schedule, error) {
	return m.schedules[id], nil
}

func (m *mockStore) FindByPair(_ context.Context, cycleMaster, semester primitive.ObjectID) (*Schedule, error) {
	return m.pairTaken(cycleMaster, semester, primitive.NilObjectID), nil
}

func (m *mockStore) FindAll(_ context.Context) ([]*Schedule, error) {
	all := make([]*Schedule, 0, len(m.schedules))
	for _, s := range m.schedules {
		all = append(all, s)
	}
	return all, nil
}

func (m *mockStore) FindByCycleMaster(_ context.Context, cycleMaster primitive.ObjectID) ([]*Schedule, error) {
	var matched []*Schedule
	for _, s := range m.schedules {
		if s.CycleMaster == cycleMaster {
			matched = append(matched, s)
		}
	}
	return matched, nil
}

func (m *mockStore) Update(_ context.Context, schedule *Schedule) (bool, error) {
	if m.updateErr != nil {
		return false, m.updateErr
	}
	existing, ok := m.schedules[schedule.ID]
	if !ok {
		return false, nil
	}
	if m.pairTaken(schedule.CycleMaster, schedule.Semester, schedule.ID) != nil {
		return false, duplicateKeyErr()
	}
	existing.CycleMaster = schedule.CycleMaster
	existing.Semester = schedule.Semester
	existing.DailySchedules = schedule.DailySchedules
	return true, nil
}

func (m *mockStore) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	if _, ok := m.schedules[id]; !ok {
		return false, nil
	}
	delete(m.schedules, id)
	return true, nil
}

type mockLookup struct {
	cycles     map[primitive.ObjectID]*registry.CycleMaster
	semesters  map[primitive.ObjectID]*registry.Semester
	modules    map[primitive.ObjectID]*registry.Module
	professors map[primitive.ObjectID]*registry.Professor
}

func newMockLookup() *mockLookup {
	return &mockLookup{
		cycles:     make(map[primitive.ObjectID]*registry.CycleMaster),
		semesters:  make(map[primitive.ObjectID]*registry.Semester),
		modules:    make(map[primitive.ObjectID]*registry.Module),
		professors: make(map[primitive.ObjectID]*registry.Professor),
	}
}

func (m *mockLookup) FindCycleMasterByID(_ context.Context, id primitive.ObjectID) (*registry.CycleMaster, error) {
	return m.cycles[id], nil
}

func (m *mockLookup) FindSemesterByID(_ context.Context, id primitive.ObjectID) (*registry.Semester, error) {
	return m.semesters[id], nil
}

func (m *mockLookup) FindModulesByIDs(_ context.Context, ids []primitive.ObjectID) ([]*registry.Module, error) {
	var found []*registry.Module
	for _, id := range ids {
		if module, ok := m.modules[id]; ok {
			found = append(found, module)
		}
	}
	return found, nil
}

func (m *mockLookup) FindProfessorsByIDs(_ context.Context, ids []primitive.ObjectID) ([]*registry.Professor, error) {
	var found []*registry.Professor
	for _, id := range ids {
		if professor, ok := m.professors[id]; ok {
			found = append(found, professor)
		}
	}
	return found, nil
}

type recordedAction struct {
	actorType string
	actorID   string
	action    string
	details   string
}

type mockRecorder struct {
	actions []recordedAction
}

func (m *mockRecorder) Record(_ context.Context, actorType, actorID, action, details string) {
	m.actions = append(m.actions, recordedAction{actorType, actorID, action, details})
}
