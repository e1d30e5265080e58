package schedule

import (
	"bytes"
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"CampusPlanner/pkg/apperr"
)

// TimeSlot is one of the five fixed daily teaching slots.
type TimeSlot struct {
	ID    string `json:"id"`
	Time  string `json:"time"`
	Label string `json:"label"`
}

// TimeSlots are the fixed slot definitions every day is divided into.
var TimeSlots = []TimeSlot{
	{ID: "1", Time: "08:30-10:00", Label: "8h30 - 10h00"},
	{ID: "2", Time: "10:15-11:45", Label: "10h15 - 11h45"},
	{ID: "3", Time: "14:00-15:30", Label: "14h00 - 15h30"},
	{ID: "4", Time: "15:45-17:15", Label: "15h45 - 17h15"},
	{ID: "5", Time: "17:30-19:00", Label: "17h30 - 19h00"},
}

// MaxSessionsPerDay bounds a day's session list to the number of fixed slots.
var MaxSessionsPerDay = len(TimeSlots)

// DaysOfWeek is the canonical Monday-first day order every schedule carries.
var DaysOfWeek = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Session is a single teaching slot binding a module, a professor, a time
// slot and a room. A zero Module or Professor id marks an in-progress
// placeholder saved during editing.
type Session struct {
	Module    primitive.ObjectID `bson:"module" json:"module"`
	Professor primitive.ObjectID `bson:"professor" json:"professor"`
	TimeSlot  string             `bson:"timeSlot" json:"timeSlot"`
	Place     string             `bson:"place" json:"place"`
}

// DailySchedule holds the sessions of one weekday.
type DailySchedule struct {
	Day      string    `bson:"day" json:"day"`
	Sessions []Session `bson:"sessions" json:"sessions"`
}

// Schedule is the weekly timetable for one (cycle master, semester) pair.
// DailySchedules always holds exactly one entry per day of the week.
type Schedule struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	CycleMaster    primitive.ObjectID `bson:"cycleMaster" json:"cycleMaster"`
	Semester       primitive.ObjectID `bson:"semester" json:"semester"`
	DailySchedules []DailySchedule    `bson:"dailySchedules" json:"dailySchedules"`
	SchedulePDF    string             `bson:"schedule_pdf,omitempty" json:"schedule_pdf,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt      time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// ResolvedModule is a module reference expanded to its display fields. An
// unresolvable or unset reference keeps empty display fields; consumers never
// see a bare identifier where a title was expected.
type ResolvedModule struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
	Code  string `json:"code"`
}

// ResolvedProfessor is a professor reference expanded to its display fields.
type ResolvedProfessor struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// ResolvedSession is a session with both references expanded.
type ResolvedSession struct {
	Module    ResolvedModule    `json:"module"`
	Professor ResolvedProfessor `json:"professor"`
	TimeSlot  string            `json:"timeSlot"`
	Place     string            `json:"place"`
}

// ResolvedDailySchedule holds the resolved sessions of one weekday.
type ResolvedDailySchedule struct {
	Day      string            `json:"day"`
	Sessions []ResolvedSession `json:"sessions"`
}

// ResolvedSchedule is the display-ready view all read paths consume.
type ResolvedSchedule struct {
	ID               string                  `json:"_id"`
	CycleMaster      string                  `json:"cycleMaster"`
	CycleMasterTitle string                  `json:"cycleMasterTitle"`
	Semester         string                  `json:"semester"`
	SemesterTitle    string                  `json:"semesterTitle"`
	DailySchedules   []ResolvedDailySchedule `json:"dailySchedules"`
	SchedulePDF      string                  `json:"schedule_pdf,omitempty"`
	CreatedAt        time.Time               `json:"createdAt,omitempty"`
	UpdatedAt        time.Time               `json:"updatedAt,omitempty"`
}

// SessionInput is the submitted shape of a session. Module and Professor
// accept either a bare hex id string or an embedded object carrying an _id
// field; both normalize to a canonical ObjectID at the store boundary.
type SessionInput struct {
	Module    json.RawMessage `json:"module"`
	Professor json.RawMessage `json:"professor"`
	TimeSlot  string          `json:"timeSlot"`
	Place     string          `json:"place"`
}

// DailyScheduleInput is the submitted shape of one day.
type DailyScheduleInput struct {
	Day      string         `json:"day"`
	Sessions []SessionInput `json:"sessions"`
}

// normalizeRef turns a submitted module/professor reference into a canonical
// ObjectID. Accepted shapes: absent, null, "" (all unset), a hex id string,
// or an object with an _id field.
func normalizeRef(field string, raw json.RawMessage) (primitive.ObjectID, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return primitive.NilObjectID, nil
	}

	if trimmed[0] == '"' {
		var hex string
		if err := json.Unmarshal(trimmed, &hex); err != nil {
			return primitive.NilObjectID, apperr.NewValidation(field, "Invalid reference")
		}
		if hex == "" {
			return primitive.NilObjectID, nil
		}
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return primitive.NilObjectID, apperr.NewValidation(field, "Invalid reference id")
		}
		return id, nil
	}

	var embedded struct {
		ID string `json:"_id"`
	}
	if err := json.Unmarshal(trimmed, &embedded); err != nil {
		return primitive.NilObjectID, apperr.NewValidation(field, "Invalid reference")
	}
	if embedded.ID == "" {
		return primitive.NilObjectID, nil
	}
	id, err := primitive.ObjectIDFromHex(embedded.ID)
	if err != nil {
		return primitive.NilObjectID, apperr.NewValidation(field, "Invalid reference id")
	}
	return id, nil
}

// NormalizeDailySchedules converts submitted days into the canonical 7-day
// schedule: every day of the week present once, Monday first, references
// normalized. Days absent from the input come out empty. Within each day no
// two sessions may share a non-empty time slot.
func NormalizeDailySchedules(inputs []DailyScheduleInput) ([]DailySchedule, error) {
	byDay := make(map[string][]SessionInput, len(inputs))
	for _, daily := range inputs {
		if _, known := byDay[daily.Day]; known {
			return nil, apperr.NewValidation("dailySchedules", "Duplicate day "+daily.Day)
		}
		valid := false
		for _, day := range DaysOfWeek {
			if day == daily.Day {
				valid = true
				break
			}
		}
		if !valid {
			return nil, apperr.NewValidation("dailySchedules", "Unknown day "+daily.Day)
		}
		byDay[daily.Day] = daily.Sessions
	}

	normalized := make([]DailySchedule, 0, len(DaysOfWeek))
	for _, day := range DaysOfWeek {
		inputs := byDay[day]
		if len(inputs) > MaxSessionsPerDay {
			return nil, apperr.NewValidation("dailySchedules", "A day cannot hold more than 5 sessions")
		}
		sessions := make([]Session, 0, len(inputs))
		taken := make(map[string]bool, len(inputs))
		for _, in := range inputs {
			if in.TimeSlot != "" {
				if taken[in.TimeSlot] {
					return nil, apperr.NewValidation("dailySchedules", "Time slot "+in.TimeSlot+" is used twice on "+day)
				}
				taken[in.TimeSlot] = true
			}
			moduleID, err := normalizeRef("module", in.Module)
			if err != nil {
				return nil, err
			}
			professorID, err := normalizeRef("professor", in.Professor)
			if err != nil {
				return nil, err
			}
			sessions = append(sessions, Session{
				Module:    moduleID,
				Professor: professorID,
				TimeSlot:  in.TimeSlot,
				Place:     in.Place,
			})
		}
		normalized = append(normalized, DailySchedule{Day: day, Sessions: sessions})
	}
	return normalized, nil
}
