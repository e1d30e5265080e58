package export

import (
	"bytes"
	"testing"

	"CampusPlanner/internal/schedule"
)

func TestDayRowFrenchLocale(t *testing.T) {
	daily := schedule.ResolvedDailySchedule{
		Day: "Monday",
		Sessions: []schedule.ResolvedSession{
			{
				Module:    schedule.ResolvedModule{Code: "INF301"},
				Professor: schedule.ResolvedProfessor{FirstName: "Karim", LastName: "Bennani"},
				TimeSlot:  "08:30-10:00",
				Place:     "A101",
			},
			{
				TimeSlot: "10:15-11:45",
				Place:    "B204",
			},
		},
	}

	row := dayRow(daily)
	if row[0] != "Lundi" {
		t.Errorf("expected Lundi, got %s", row[0])
	}
	if row[1] != "INF301\nN/A" {
		t.Errorf("unexpected module column: %q", row[1])
	}
	if row[2] != "Pr K. BENNANI\nN/A" {
		t.Errorf("unexpected professor column: %q", row[2])
	}
	if row[3] != "08:30-10:00\n10:15-11:45" {
		t.Errorf("unexpected slot column: %q", row[3])
	}
}

func TestProfessorDisplay(t *testing.T) {
	got := professorDisplay(schedule.ResolvedProfessor{FirstName: "Élise", LastName: "Moreau"})
	if got != "Pr É. MOREAU" {
		t.Errorf("expected Pr É. MOREAU, got %s", got)
	}
	if got := professorDisplay(schedule.ResolvedProfessor{}); got != "N/A" {
		t.Errorf("placeholder professor should display N/A, got %s", got)
	}
}

func TestRenderSchedulePDFFullWeek(t *testing.T) {
	view := &schedule.ResolvedSchedule{
		CycleMasterTitle: "Master Informatique",
		SemesterTitle:    "S1",
	}
	for _, day := range schedule.DaysOfWeek {
		sessions := make([]schedule.ResolvedSession, 0, len(schedule.TimeSlots))
		for _, slot := range schedule.TimeSlots {
			sessions = append(sessions, schedule.ResolvedSession{
				Module:    schedule.ResolvedModule{Code: "INF301"},
				Professor: schedule.ResolvedProfessor{FirstName: "Karim", LastName: "Bennani"},
				TimeSlot:  slot.Time,
				Place:     "A101",
			})
		}
		view.DailySchedules = append(view.DailySchedules, schedule.ResolvedDailySchedule{Day: day, Sessions: sessions})
	}

	data, err := RenderSchedulePDF(view)
	if err != nil {
		t.Fatalf("render should succeed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output is not a PDF document")
	}
}
