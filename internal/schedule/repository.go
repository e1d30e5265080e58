package schedule

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ScheduleRepository handles DB operations for schedule aggregates and their
// cached PDF documents.
type ScheduleRepository struct {
	schedulesCollection *mongo.Collection
	pdfsCollection      *mongo.Collection
}

// NewScheduleRepository creates a new repository for schedule operations.
func NewScheduleRepository(db *mongo.Database) *ScheduleRepository {
	return &ScheduleRepository{
		schedulesCollection: db.Collection("schedules"),
		pdfsCollection:      db.Collection("schedule_pdfs"),
	}
}

// EnsureIndexes creates the unique compound index on (cycleMaster, semester).
// The index is what enforces the one-schedule-per-pair invariant; a
// concurrent duplicate insert surfaces as a duplicate-key error instead of
// slipping past an application-level check.
func (r *ScheduleRepository) EnsureIndexes(ctx context.Context) error {
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "cycleMaster", Value: 1}, {Key: "semester", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, err := r.schedulesCollection.Indexes().CreateOne(ctx, indexModel)
	return err
}

func (r *ScheduleRepository) Insert(ctx context.Context, schedule *Schedule) error {
	_, err := r.schedulesCollection.InsertOne(ctx, schedule)
	return err
}

func (r *ScheduleRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*Schedule, error) {
	var schedule Schedule
	err := r.schedulesCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&schedule)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}

// FindByPair returns the schedule for a (cycleMaster, semester) pair, used to
// report colliding identifiers after a duplicate-key insert.
func (r *ScheduleRepository) FindByPair(ctx context.Context, cycleMaster, semester primitive.ObjectID) (*Schedule, error) {
	var schedule Schedule
	err := r.schedulesCollection.FindOne(ctx, bson.M{"cycleMaster": cycleMaster, "semester": semester}).Decode(&schedule)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &schedule, nil
}

func (r *ScheduleRepository) FindAll(ctx context.Context) ([]*Schedule, error) {
	cursor, err := r.schedulesCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var schedules []*Schedule
	if err := cursor.All(ctx, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *ScheduleRepository) FindByCycleMaster(ctx context.Context, cycleMaster primitive.ObjectID) ([]*Schedule, error) {
	cursor, err := r.schedulesCollection.Find(ctx, bson.M{"cycleMaster": cycleMaster})
	if err != nil {
		return nil, err
	}
	var schedules []*Schedule
	if err := cursor.All(ctx, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

// Update replaces the schedule's pair and dailySchedules wholesale and stamps
// updatedAt. Returns false when the id matched nothing.
func (r *ScheduleRepository) Update(ctx context.Context, schedule *Schedule) (bool, error) {
	update := bson.M{"$set": bson.M{
		"cycleMaster":    schedule.CycleMaster,
		"semester":       schedule.Semester,
		"dailySchedules": schedule.DailySchedules,
		"updatedAt":      time.Now(),
	}}
	res, err := r.schedulesCollection.UpdateOne(ctx, bson.M{"_id": schedule.ID}, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *ScheduleRepository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.schedulesCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// PDFDocument is a rendered schedule PDF cached for download.
type PDFDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Schedule  primitive.ObjectID `bson:"schedule"`
	PDFData   []byte             `bson:"pdfData"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// SavePDF stores rendered PDF bytes for a schedule, replacing any previous
// document, and records the download path on the schedule itself.
func (r *ScheduleRepository) SavePDF(ctx context.Context, scheduleID primitive.ObjectID, data []byte) (primitive.ObjectID, error) {
	if _, err := r.pdfsCollection.DeleteMany(ctx, bson.M{"schedule": scheduleID}); err != nil {
		return primitive.NilObjectID, err
	}
	doc := PDFDocument{
		ID:        primitive.NewObjectID(),
		Schedule:  scheduleID,
		PDFData:   data,
		CreatedAt: time.Now(),
	}
	if _, err := r.pdfsCollection.InsertOne(ctx, doc); err != nil {
		return primitive.NilObjectID, err
	}
	_, err := r.schedulesCollection.UpdateOne(ctx,
		bson.M{"_id": scheduleID},
		bson.M{"$set": bson.M{"schedule_pdf": "/api/pdf/" + doc.ID.Hex()}},
	)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return doc.ID, nil
}

func (r *ScheduleRepository) FindPDFByID(ctx context.Context, id primitive.ObjectID) (*PDFDocument, error) {
	var doc PDFDocument
	err := r.pdfsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}
