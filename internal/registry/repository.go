package registry

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// RegistryRepository handles DB operations for the reference entities the
// schedule subsystem joins against: modules, professors, cycle masters,
// semesters and students.
type RegistryRepository struct {
	modulesCollection      *mongo.Collection
	professorsCollection   *mongo.Collection
	cycleMastersCollection *mongo.Collection
	semestersCollection    *mongo.Collection
	studentsCollection     *mongo.Collection
	schedulesCollection    *mongo.Collection
}

// NewRegistryRepository creates a new repository for reference lookups.
func NewRegistryRepository(db *mongo.Database) *RegistryRepository {
	return &RegistryRepository{
		modulesCollection:      db.Collection("modules"),
		professorsCollection:   db.Collection("professors"),
		cycleMastersCollection: db.Collection("cycle_masters"),
		semestersCollection:    db.Collection("semesters"),
		studentsCollection:     db.Collection("students"),
		schedulesCollection:    db.Collection("schedules"),
	}
}

// Module operations
func (r *RegistryRepository) FindModuleByID(ctx context.Context, id primitive.ObjectID) (*Module, error) {
	var module Module
	err := r.modulesCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&module)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &module, nil
}

func (r *RegistryRepository) FindModulesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*Module, error) {
	if len(ids) == 0 {
		return []*Module{}, nil
	}
	cursor, err := r.modulesCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var modules []*Module
	if err := cursor.All(ctx, &modules); err != nil {
		return nil, err
	}
	return modules, nil
}

// ListModules returns all modules with their cycle and semester titles
// populated via $lookup, the shape the dashboard consumes.
func (r *RegistryRepository) ListModules(ctx context.Context) ([]*ModuleView, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         "cycle_masters",
			"localField":   "cycle",
			"foreignField": "_id",
			"as":           "cycleInfo",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "semesters",
			"localField":   "semester",
			"foreignField": "_id",
			"as":           "semesterInfo",
		}}},
		{{Key: "$project", Value: bson.M{
			"title":        1,
			"code":         1,
			"cycle":        1,
			"semester":     1,
			"cycleName":    bson.M{"$arrayElemAt": bson.A{"$cycleInfo.title", 0}},
			"semesterName": bson.M{"$arrayElemAt": bson.A{"$semesterInfo.title", 0}},
		}}},
	}
	cursor, err := r.modulesCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var views []*ModuleView
	if err := cursor.All(ctx, &views); err != nil {
		return nil, err
	}
	return views, nil
}

func (r *RegistryRepository) FindModulesByPair(ctx context.Context, cycle, semester primitive.ObjectID) ([]*Module, error) {
	cursor, err := r.modulesCollection.Find(ctx, bson.M{"cycle": cycle, "semester": semester})
	if err != nil {
		return nil, err
	}
	var modules []*Module
	if err := cursor.All(ctx, &modules); err != nil {
		return nil, err
	}
	return modules, nil
}

func (r *RegistryRepository) CreateModule(ctx context.Context, module *Module) error {
	module.CreatedAt = time.Now()
	_, err := r.modulesCollection.InsertOne(ctx, module)
	return err
}

func (r *RegistryRepository) UpdateModule(ctx context.Context, module *Module) (bool, error) {
	update := bson.M{"$set": bson.M{
		"title":     module.Title,
		"code":      module.Code,
		"cycle":     module.Cycle,
		"semester":  module.Semester,
		"updatedAt": time.Now(),
	}}
	res, err := r.modulesCollection.UpdateOne(ctx, bson.M{"_id": module.ID}, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *RegistryRepository) DeleteModule(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.modulesCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// CountSchedulesReferencingModule reports how many schedules hold a session
// that references the given module. Used by the delete guard.
func (r *RegistryRepository) CountSchedulesReferencingModule(ctx context.Context, id primitive.ObjectID) (int64, error) {
	return r.schedulesCollection.CountDocuments(ctx, bson.M{"dailySchedules.sessions.module": id})
}

// Professor operations
func (r *RegistryRepository) FindProfessorByID(ctx context.Context, id primitive.ObjectID) (*Professor, error) {
	var professor Professor
	err := r.professorsCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&professor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &professor, nil
}

func (r *RegistryRepository) FindProfessorsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*Professor, error) {
	if len(ids) == 0 {
		return []*Professor{}, nil
	}
	cursor, err := r.professorsCollection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var professors []*Professor
	if err := cursor.All(ctx, &professors); err != nil {
		return nil, err
	}
	return professors, nil
}

func (r *RegistryRepository) ListProfessors(ctx context.Context) ([]*Professor, error) {
	cursor, err := r.professorsCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var professors []*Professor
	if err := cursor.All(ctx, &professors); err != nil {
		return nil, err
	}
	return professors, nil
}

func (r *RegistryRepository) CreateProfessor(ctx context.Context, professor *Professor) error {
	_, err := r.professorsCollection.InsertOne(ctx, professor)
	return err
}

// CycleMaster operations
func (r *RegistryRepository) FindCycleMasterByID(ctx context.Context, id primitive.ObjectID) (*CycleMaster, error) {
	var cycle CycleMaster
	err := r.cycleMastersCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&cycle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &cycle, nil
}

func (r *RegistryRepository) ListCycleMasters(ctx context.Context) ([]*CycleMaster, error) {
	cursor, err := r.cycleMastersCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var cycles []*CycleMaster
	if err := cursor.All(ctx, &cycles); err != nil {
		return nil, err
	}
	return cycles, nil
}

func (r *RegistryRepository) CreateCycleMaster(ctx context.Context, cycle *CycleMaster) error {
	_, err := r.cycleMastersCollection.InsertOne(ctx, cycle)
	return err
}

// Semester operations
func (r *RegistryRepository) FindSemesterByID(ctx context.Context, id primitive.ObjectID) (*Semester, error) {
	var semester Semester
	err := r.semestersCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&semester)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &semester, nil
}

func (r *RegistryRepository) ListSemesters(ctx context.Context) ([]*Semester, error) {
	cursor, err := r.semestersCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var semesters []*Semester
	if err := cursor.All(ctx, &semesters); err != nil {
		return nil, err
	}
	return semesters, nil
}

func (r *RegistryRepository) CreateSemester(ctx context.Context, semester *Semester) error {
	_, err := r.semestersCollection.InsertOne(ctx, semester)
	return err
}

// Student operations
func (r *RegistryRepository) FindStudentsByPair(ctx context.Context, cycle, semester primitive.ObjectID) ([]*Student, error) {
	cursor, err := r.studentsCollection.Find(ctx, bson.M{"cycle": cycle, "currentSemester": semester})
	if err != nil {
		return nil, err
	}
	var students []*Student
	if err := cursor.All(ctx, &students); err != nil {
		return nil, err
	}
	return students, nil
}
