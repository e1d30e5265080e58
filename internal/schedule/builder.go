package schedule

import (
	"CampusPlanner/internal/registry"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DayStatus summarizes the editing state of one day in a draft.
type DayStatus string

const (
	DayEmpty      DayStatus = "empty"
	DayComplete   DayStatus = "complete"
	DayIncomplete DayStatus = "incomplete"
)

// Editable session fields accepted by UpdateSession.
const (
	FieldModule    = "module"
	FieldProfessor = "professor"
	FieldTimeSlot  = "timeSlot"
	FieldPlace     = "place"
)

// DraftSession is one in-progress session. Fields are plain strings because
// the draft holds whatever the user has picked so far, including nothing.
type DraftSession struct {
	Module    string `json:"module"`
	Professor string `json:"professor"`
	TimeSlot  string `json:"timeSlot"`
	Place     string `json:"place"`
}

// DraftDay holds the in-progress sessions of one weekday.
type DraftDay struct {
	Day      string         `json:"day"`
	Sessions []DraftSession `json:"sessions"`
}

// Draft is an in-memory schedule under construction. All operations are pure
// state transforms; nothing touches storage until the draft is submitted.
type Draft struct {
	CycleMaster    string     `json:"cycleMaster"`
	Semester       string     `json:"semester"`
	DailySchedules []DraftDay `json:"dailySchedules"`
}

// NewDraft creates an empty draft with all seven days present.
func NewDraft() *Draft {
	days := make([]DraftDay, 0, len(DaysOfWeek))
	for _, day := range DaysOfWeek {
		days = append(days, DraftDay{Day: day, Sessions: []DraftSession{}})
	}
	return &Draft{DailySchedules: days}
}

// SelectCycleMaster sets the draft's cycle master. Existing sessions are
// untouched.
func (d *Draft) SelectCycleMaster(id string) {
	d.CycleMaster = id
}

// SelectSemester sets the draft's semester. Existing sessions are untouched.
func (d *Draft) SelectSemester(id string) {
	d.Semester = id
}

func (d *Draft) dayIndex(day string) int {
	for i := range d.DailySchedules {
		if d.DailySchedules[i].Day == day {
			return i
		}
	}
	return -1
}

// AddSession appends an empty session to the named day. Returns false without
// modifying the draft once the day already holds one session per fixed time
// slot, or when the day is unknown.
func (d *Draft) AddSession(day string) bool {
	i := d.dayIndex(day)
	if i < 0 {
		return false
	}
	if len(d.DailySchedules[i].Sessions) >= MaxSessionsPerDay {
		return false
	}
	d.DailySchedules[i].Sessions = append(d.DailySchedules[i].Sessions, DraftSession{})
	return true
}

// RemoveSession removes the session at index from the named day. Other days
// are unaffected.
func (d *Draft) RemoveSession(day string, index int) bool {
	i := d.dayIndex(day)
	if i < 0 || index < 0 || index >= len(d.DailySchedules[i].Sessions) {
		return false
	}
	sessions := d.DailySchedules[i].Sessions
	d.DailySchedules[i].Sessions = append(sessions[:index], sessions[index+1:]...)
	return true
}

// UpdateSession sets one field of one session. Selecting a professor resets
// the session's module, because the module choices are re-filtered to the new
// professor's assigned module set.
func (d *Draft) UpdateSession(day string, index int, field, value string) bool {
	i := d.dayIndex(day)
	if i < 0 || index < 0 || index >= len(d.DailySchedules[i].Sessions) {
		return false
	}
	session := &d.DailySchedules[i].Sessions[index]
	switch field {
	case FieldModule:
		session.Module = value
	case FieldProfessor:
		session.Professor = value
		session.Module = ""
	case FieldTimeSlot:
		session.TimeSlot = value
	case FieldPlace:
		session.Place = value
	default:
		return false
	}
	return true
}

// IsTimeSlotAvailable reports whether no session of the named day uses the
// given time slot yet. The UI disables taken slots before submission.
func (d *Draft) IsTimeSlotAvailable(day, timeSlot string) bool {
	i := d.dayIndex(day)
	if i < 0 {
		return true
	}
	for _, session := range d.DailySchedules[i].Sessions {
		if session.TimeSlot == timeSlot {
			return false
		}
	}
	return true
}

// DayStatus reports whether the named day is empty, complete (every session
// fully specified) or incomplete.
func (d *Draft) DayStatus(day string) DayStatus {
	i := d.dayIndex(day)
	if i < 0 || len(d.DailySchedules[i].Sessions) == 0 {
		return DayEmpty
	}
	for _, session := range d.DailySchedules[i].Sessions {
		if session.Module == "" || session.Professor == "" || session.TimeSlot == "" || session.Place == "" {
			return DayIncomplete
		}
	}
	return DayComplete
}

// AvailableModules returns the modules a session may pick once the given
// professor is selected: the subset of all modules in the professor's
// assigned set. A professor with no assigned modules falls back to the full
// list so the form never dead-ends.
func AvailableModules(all []*registry.Module, professor *registry.Professor) []*registry.Module {
	if professor == nil || len(professor.Modules) == 0 {
		return all
	}
	assigned := make(map[primitive.ObjectID]bool, len(professor.Modules))
	for _, id := range professor.Modules {
		assigned[id] = true
	}
	filtered := make([]*registry.Module, 0, len(all))
	for _, module := range all {
		if assigned[module.ID] {
			filtered = append(filtered, module)
		}
	}
	return filtered
}

// ToInputs converts a draft's days into the submission shape the store
// normalizes. Draft ids stay strings; normalization validates them.
func (d *Draft) ToInputs() []DailyScheduleInput {
	inputs := make([]DailyScheduleInput, 0, len(d.DailySchedules))
	for _, day := range d.DailySchedules {
		sessions := make([]SessionInput, 0, len(day.Sessions))
		for _, s := range day.Sessions {
			sessions = append(sessions, SessionInput{
				Module:    quoteRef(s.Module),
				Professor: quoteRef(s.Professor),
				TimeSlot:  s.TimeSlot,
				Place:     s.Place,
			})
		}
		inputs = append(inputs, DailyScheduleInput{Day: day.Day, Sessions: sessions})
	}
	return inputs
}

func quoteRef(id string) []byte {
	if id == "" {
		return []byte("null")
	}
	return []byte(`"` + id + `"`)
}
