package activity

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

type mockEntryStore struct {
	entries   []*Entry
	insertErr error
}

func (m *mockEntryStore) InsertEntry(_ context.Context, entry *Entry) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockEntryStore) ListEntries(_ context.Context, limit int64) ([]*Entry, error) {
	if limit > 0 && int64(len(m.entries)) > limit {
		return m.entries[:limit], nil
	}
	return m.entries, nil
}

func TestRecordStoresEntry(t *testing.T) {
	store := &mockEntryStore{}
	svc := &ActivityService{store: store, logger: zap.NewNop()}

	svc.Record(context.Background(), "admin", "u1", "create_schedule", "Created schedule")

	if len(store.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(store.entries))
	}
	entry := store.entries[0]
	if entry.UserType != "admin" || entry.User != "u1" || entry.Action != "create_schedule" {
		t.Errorf("entry fields wrong: %+v", entry)
	}
	if entry.Timestamp.IsZero() {
		t.Error("entry should be timestamped")
	}
}

func TestRecordSwallowsStorageErrors(t *testing.T) {
	store := &mockEntryStore{insertErr: errors.New("mongo down")}
	svc := &ActivityService{store: store, logger: zap.NewNop()}

	// Must not panic or propagate; auditing never fails the caller.
	svc.Record(context.Background(), "admin", "u1", "create_schedule", "Created schedule")
}

func TestListHonorsLimit(t *testing.T) {
	store := &mockEntryStore{}
	svc := &ActivityService{store: store, logger: zap.NewNop()}
	for i := 0; i < 5; i++ {
		svc.Record(context.Background(), "admin", "u1", "create_module", "x")
	}

	entries, err := svc.List(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("expected 3 entries, got %d", len(entries))
	}
}
