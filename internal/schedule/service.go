package schedule

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"CampusPlanner/internal/activity"
	"CampusPlanner/pkg/apperr"
)

// Store abstracts persistence for schedule aggregates.
type Store interface {
	Insert(ctx context.Context, schedule *Schedule) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Schedule, error)
	FindByPair(ctx context.Context, cycleMaster, semester primitive.ObjectID) (*Schedule, error)
	FindAll(ctx context.Context) ([]*Schedule, error)
	FindByCycleMaster(ctx context.Context, cycleMaster primitive.ObjectID) ([]*Schedule, error)
	Update(ctx context.Context, schedule *Schedule) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

// SubmitScheduleRequest is the body of schedule create and update calls. The
// entire dailySchedules array replaces whatever was stored before; there are
// no partial merge semantics.
type SubmitScheduleRequest struct {
	CycleMaster    string               `json:"cycleMaster"`
	Semester       string               `json:"semester"`
	DailySchedules []DailyScheduleInput `json:"dailySchedules"`
}

// ScheduleService coordinates the store, the resolver and the audit log for
// all schedule operations.
type ScheduleService struct {
	store    Store
	resolver *Resolver
	activity activity.Recorder
	logger   *zap.Logger
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService(repo *ScheduleRepository, resolver *Resolver, recorder *activity.ActivityService, logger *zap.Logger) *ScheduleService {
	return &ScheduleService{store: repo, resolver: resolver, activity: recorder, logger: logger}
}

func parsePair(req SubmitScheduleRequest) (cycleMaster, semester primitive.ObjectID, err error) {
	if req.CycleMaster == "" || req.Semester == "" || req.DailySchedules == nil {
		return primitive.NilObjectID, primitive.NilObjectID, apperr.NewValidation("", "Missing required fields")
	}
	cycleMaster, err = primitive.ObjectIDFromHex(req.CycleMaster)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, apperr.NewValidation("cycleMaster", "Invalid cycle master id")
	}
	semester, err = primitive.ObjectIDFromHex(req.Semester)
	if err != nil {
		return primitive.NilObjectID, primitive.NilObjectID, apperr.NewValidation("semester", "Invalid semester id")
	}
	return cycleMaster, semester, nil
}

// pairConflict builds the conflict error for a duplicate (cycleMaster,
// semester) pair, including the colliding record's identifiers so the client
// can offer editing the existing schedule instead.
func (s *ScheduleService) pairConflict(ctx context.Context, cycleMaster, semester primitive.ObjectID) error {
	details := map[string]string{
		"cycleMaster": cycleMaster.Hex(),
		"semester":    semester.Hex(),
	}
	existing, err := s.store.FindByPair(ctx, cycleMaster, semester)
	if err == nil && existing != nil {
		details["existingSchedule"] = existing.ID.Hex()
	}
	return apperr.NewConflict("A schedule already exists for this cycle master and semester combination.", details)
}

// Create validates and stores a new schedule and returns its resolved view.
// The unique index on (cycleMaster, semester) is the uniqueness authority; a
// duplicate-key error from the insert is reported as the conflict.
func (s *ScheduleService) Create(ctx context.Context, actorType, actorID string, req SubmitScheduleRequest) (*ResolvedSchedule, error) {
	cycleMaster, semester, err := parsePair(req)
	if err != nil {
		return nil, err
	}
	days, err := NormalizeDailySchedules(req.DailySchedules)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	schedule := &Schedule{
		ID:             primitive.NewObjectID(),
		CycleMaster:    cycleMaster,
		Semester:       semester,
		DailySchedules: days,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.Insert(ctx, schedule); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, s.pairConflict(ctx, cycleMaster, semester)
		}
		s.logger.Error("failed to insert schedule", zap.Error(err))
		return nil, err
	}

	s.activity.Record(ctx, actorType, actorID, "create_schedule",
		fmt.Sprintf("Created schedule for cycle %s semester %s", cycleMaster.Hex(), semester.Hex()))
	return s.resolver.Resolve(ctx, schedule)
}

// Update replaces a schedule's pair and dailySchedules and returns the
// resolved view. Moving the schedule onto a pair another schedule already
// occupies is a conflict; updating in place is not.
func (s *ScheduleService) Update(ctx context.Context, actorType, actorID string, id string, req SubmitScheduleRequest) (*ResolvedSchedule, error) {
	scheduleID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.NewValidation("id", "Invalid schedule id")
	}
	cycleMaster, semester, err := parsePair(req)
	if err != nil {
		return nil, err
	}
	days, err := NormalizeDailySchedules(req.DailySchedules)
	if err != nil {
		return nil, err
	}

	schedule := &Schedule{
		ID:             scheduleID,
		CycleMaster:    cycleMaster,
		Semester:       semester,
		DailySchedules: days,
	}
	matched, err := s.store.Update(ctx, schedule)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, s.pairConflict(ctx, cycleMaster, semester)
		}
		s.logger.Error("failed to update schedule", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if !matched {
		return nil, apperr.NewNotFound("Schedule")
	}

	stored, err := s.store.FindByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, apperr.NewNotFound("Schedule")
	}

	s.activity.Record(ctx, actorType, actorID, "update_schedule",
		fmt.Sprintf("Updated schedule %s", id))
	return s.resolver.Resolve(ctx, stored)
}

// Delete removes a schedule. Modules and professors it referenced are
// untouched.
func (s *ScheduleService) Delete(ctx context.Context, actorType, actorID string, id string) error {
	scheduleID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.NewValidation("id", "Invalid schedule id")
	}
	deleted, err := s.store.Delete(ctx, scheduleID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.NewNotFound("Schedule")
	}
	s.activity.Record(ctx, actorType, actorID, "delete_schedule",
		fmt.Sprintf("Deleted schedule %s", id))
	return nil
}

// Get returns one schedule's resolved view.
func (s *ScheduleService) Get(ctx context.Context, id string) (*ResolvedSchedule, error) {
	scheduleID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.NewValidation("id", "Invalid schedule id")
	}
	schedule, err := s.store.FindByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, apperr.NewNotFound("Schedule")
	}
	return s.resolver.Resolve(ctx, schedule)
}

// List returns all schedules as resolved views, optionally filtered by cycle
// master.
func (s *ScheduleService) List(ctx context.Context, cycleMaster string) ([]*ResolvedSchedule, error) {
	var (
		schedules []*Schedule
		err       error
	)
	if cycleMaster != "" {
		cycleID, parseErr := primitive.ObjectIDFromHex(cycleMaster)
		if parseErr != nil {
			return nil, apperr.NewValidation("cycleMaster", "Invalid cycle master id")
		}
		schedules, err = s.store.FindByCycleMaster(ctx, cycleID)
	} else {
		schedules, err = s.store.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	return s.resolver.ResolveAll(ctx, schedules)
}
