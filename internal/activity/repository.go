package activity

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ActivityRepository handles DB operations for the audit log.
type ActivityRepository struct {
	logsCollection *mongo.Collection
}

// NewActivityRepository creates a new repository for audit entries.
func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{logsCollection: db.Collection("logs")}
}

func (r *ActivityRepository) InsertEntry(ctx context.Context, entry *Entry) error {
	_, err := r.logsCollection.InsertOne(ctx, entry)
	return err
}

// ListEntries returns the most recent entries, newest first.
func (r *ActivityRepository) ListEntries(ctx context.Context, limit int64) ([]*Entry, error) {
	opts := options.Find().SetSort(bson.M{"timestamp": -1})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cursor, err := r.logsCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var entries []*Entry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
