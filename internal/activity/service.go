package activity

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// EntryStore abstracts persistence for audit entries.
type EntryStore interface {
	InsertEntry(ctx context.Context, entry *Entry) error
	ListEntries(ctx context.Context, limit int64) ([]*Entry, error)
}

// Recorder is the fire-and-forget audit sink consumed by the other services.
type Recorder interface {
	Record(ctx context.Context, actorType, actorID, action, details string)
}

// ActivityService records and lists audit entries. Recording never fails the
// calling operation: storage errors are logged and swallowed.
type ActivityService struct {
	store  EntryStore
	logger *zap.Logger
}

// NewActivityService creates a new ActivityService.
func NewActivityService(repo *ActivityRepository, logger *zap.Logger) *ActivityService {
	return &ActivityService{store: repo, logger: logger}
}

func (s *ActivityService) Record(ctx context.Context, actorType, actorID, action, details string) {
	entry := &Entry{
		UserType:  actorType,
		User:      actorID,
		Action:    action,
		Details:   details,
		Timestamp: time.Now(),
	}
	if err := s.store.InsertEntry(ctx, entry); err != nil {
		s.logger.Warn("failed to record activity",
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

func (s *ActivityService) List(ctx context.Context, limit int64) ([]*Entry, error) {
	return s.store.ListEntries(ctx, limit)
}
