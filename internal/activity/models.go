package activity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Entry is one audit record. UserType distinguishes administrators,
// professors and system actors; User holds the actor's identifier.
type Entry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserType  string             `bson:"userType" json:"userType"`
	User      string             `bson:"user" json:"user"`
	Action    string             `bson:"action" json:"action"`
	Details   string             `bson:"details" json:"details"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}
