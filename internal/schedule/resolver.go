package schedule

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"CampusPlanner/internal/registry"
)

// Lookup is the slice of the reference registry the resolver joins against.
type Lookup interface {
	FindCycleMasterByID(ctx context.Context, id primitive.ObjectID) (*registry.CycleMaster, error)
	FindSemesterByID(ctx context.Context, id primitive.ObjectID) (*registry.Semester, error)
	FindModulesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*registry.Module, error)
	FindProfessorsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*registry.Professor, error)
}

// Resolver expands a stored schedule's identifier graph into the
// display-ready view. Resolution works like a LEFT JOIN: a reference that no
// longer exists (or was never set) comes out as a placeholder with empty
// display fields, never as an error.
type Resolver struct {
	registry Lookup
}

// NewResolver creates a new Resolver over the given registry.
func NewResolver(registry Lookup) *Resolver {
	return &Resolver{registry: registry}
}

// Resolve denormalizes one schedule.
func (r *Resolver) Resolve(ctx context.Context, schedule *Schedule) (*ResolvedSchedule, error) {
	moduleIDs, professorIDs := collectSessionRefs(schedule)

	modules, err := r.registry.FindModulesByIDs(ctx, moduleIDs)
	if err != nil {
		return nil, err
	}
	professors, err := r.registry.FindProfessorsByIDs(ctx, professorIDs)
	if err != nil {
		return nil, err
	}

	moduleByID := make(map[primitive.ObjectID]*registry.Module, len(modules))
	for _, m := range modules {
		moduleByID[m.ID] = m
	}
	professorByID := make(map[primitive.ObjectID]*registry.Professor, len(professors))
	for _, p := range professors {
		professorByID[p.ID] = p
	}

	view := &ResolvedSchedule{
		ID:             schedule.ID.Hex(),
		CycleMaster:    schedule.CycleMaster.Hex(),
		Semester:       schedule.Semester.Hex(),
		SchedulePDF:    schedule.SchedulePDF,
		CreatedAt:      schedule.CreatedAt,
		UpdatedAt:      schedule.UpdatedAt,
		DailySchedules: make([]ResolvedDailySchedule, 0, len(schedule.DailySchedules)),
	}

	cycle, err := r.registry.FindCycleMasterByID(ctx, schedule.CycleMaster)
	if err != nil {
		return nil, err
	}
	if cycle != nil {
		view.CycleMasterTitle = cycle.Title
	}
	semester, err := r.registry.FindSemesterByID(ctx, schedule.Semester)
	if err != nil {
		return nil, err
	}
	if semester != nil {
		view.SemesterTitle = semester.Title
	}

	for _, daily := range schedule.DailySchedules {
		resolved := ResolvedDailySchedule{
			Day:      daily.Day,
			Sessions: make([]ResolvedSession, 0, len(daily.Sessions)),
		}
		for _, session := range daily.Sessions {
			resolved.Sessions = append(resolved.Sessions, ResolvedSession{
				Module:    resolveModule(session.Module, moduleByID),
				Professor: resolveProfessor(session.Professor, professorByID),
				TimeSlot:  session.TimeSlot,
				Place:     session.Place,
			})
		}
		view.DailySchedules = append(view.DailySchedules, resolved)
	}

	return view, nil
}

// ResolveAll denormalizes a list of schedules, preserving order.
func (r *Resolver) ResolveAll(ctx context.Context, schedules []*Schedule) ([]*ResolvedSchedule, error) {
	views := make([]*ResolvedSchedule, 0, len(schedules))
	for _, schedule := range schedules {
		view, err := r.Resolve(ctx, schedule)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func collectSessionRefs(schedule *Schedule) (moduleIDs, professorIDs []primitive.ObjectID) {
	seenModules := make(map[primitive.ObjectID]bool)
	seenProfessors := make(map[primitive.ObjectID]bool)
	for _, daily := range schedule.DailySchedules {
		for _, session := range daily.Sessions {
			if !session.Module.IsZero() && !seenModules[session.Module] {
				seenModules[session.Module] = true
				moduleIDs = append(moduleIDs, session.Module)
			}
			if !session.Professor.IsZero() && !seenProfessors[session.Professor] {
				seenProfessors[session.Professor] = true
				professorIDs = append(professorIDs, session.Professor)
			}
		}
	}
	return moduleIDs, professorIDs
}

func resolveModule(id primitive.ObjectID, byID map[primitive.ObjectID]*registry.Module) ResolvedModule {
	if id.IsZero() {
		return ResolvedModule{}
	}
	module, ok := byID[id]
	if !ok {
		// Dangling reference: keep the id for diagnostics, leave the
		// display fields empty.
		return ResolvedModule{ID: id.Hex()}
	}
	return ResolvedModule{ID: module.ID.Hex(), Title: module.Title, Code: module.Code}
}

func resolveProfessor(id primitive.ObjectID, byID map[primitive.ObjectID]*registry.Professor) ResolvedProfessor {
	if id.IsZero() {
		return ResolvedProfessor{}
	}
	professor, ok := byID[id]
	if !ok {
		return ResolvedProfessor{ID: id.Hex()}
	}
	return ResolvedProfessor{ID: professor.ID.Hex(), FirstName: professor.FirstName, LastName: professor.LastName}
}
