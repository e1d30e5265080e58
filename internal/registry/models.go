package registry

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CycleMaster represents a top-level academic program track.
type CycleMaster struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Major       string             `bson:"major" json:"major"`
	Description string             `bson:"description" json:"description"`
	Duration    int                `bson:"duration" json:"duration"` // program length in years
}

// Semester is a time-bounded term belonging to one cycle master.
type Semester struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title     string             `bson:"title" json:"title"`
	Cycle     primitive.ObjectID `bson:"cycle" json:"cycle"`
	StartDate time.Time          `bson:"startDate" json:"startDate"`
	EndDate   time.Time          `bson:"endDate" json:"endDate"`
}

// Module is a taught course unit scoped to one cycle+semester pair.
type Module struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title     string             `bson:"title" json:"title"`
	Code      string             `bson:"code" json:"code"`
	Cycle     primitive.ObjectID `bson:"cycle" json:"cycle"`
	Semester  primitive.ObjectID `bson:"semester" json:"semester"`
	CreatedAt time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// ModuleView is a module with its cycle and semester titles populated.
type ModuleView struct {
	ID           primitive.ObjectID `bson:"_id" json:"_id"`
	Title        string             `bson:"title" json:"title"`
	Code         string             `bson:"code" json:"code"`
	Cycle        primitive.ObjectID `bson:"cycle" json:"cycle"`
	Semester     primitive.ObjectID `bson:"semester" json:"semester"`
	CycleName    string             `bson:"cycleName" json:"cycleName"`
	SemesterName string             `bson:"semesterName" json:"semesterName"`
}

// Professor represents a teaching staff member. Modules holds the ids of the
// modules the professor is assigned to teach; the schedule builder filters
// its module choices against this set.
type Professor struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	FirstName string               `bson:"firstName" json:"firstName"`
	LastName  string               `bson:"lastName" json:"lastName"`
	Email     string               `bson:"email" json:"email"`
	Telephone string               `bson:"telephone" json:"telephone"`
	Status    string               `bson:"status" json:"status"` // permanent or vacataire
	Modules   []primitive.ObjectID `bson:"modules" json:"modules"`
}

// Student represents an enrolled student, scoped to a cycle and its current
// semester. Consumed by the cycle+semester report export.
type Student struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FirstName       string             `bson:"firstName" json:"firstName"`
	LastName        string             `bson:"lastName" json:"lastName"`
	StudentNumber   string             `bson:"studentNumber" json:"studentNumber"`
	Email           string             `bson:"email" json:"email"`
	Promo           string             `bson:"promo" json:"promo"`
	Cycle           primitive.ObjectID `bson:"cycle" json:"cycle"`
	CurrentSemester primitive.ObjectID `bson:"currentSemester" json:"currentSemester"`
}
