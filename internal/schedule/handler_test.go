package schedule

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func setupTestHandler() *ScheduleHandler {
	svc := &ScheduleService{
		store:    newMockStore(),
		resolver: NewResolver(newMockLookup()),
		activity: &mockRecorder{},
		logger:   zap.NewNop(),
	}
	return NewScheduleHandler(svc)
}

func postSchedule(t *testing.T, h *ScheduleHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/schedules", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h.Create(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func scheduleBody(cycleMaster, semester string) string {
	return `{"cycleMaster":"` + cycleMaster + `","semester":"` + semester + `","dailySchedules":[{"day":"Monday","sessions":[{"module":"` +
		primitive.NewObjectID().Hex() + `","timeSlot":"08:30-10:00","place":"A101"}]}]}`
}

func TestScheduleHandler_Create_Created(t *testing.T) {
	h := setupTestHandler()

	rec := postSchedule(t, h, scheduleBody(primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex()))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var view ResolvedSchedule
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(view.DailySchedules) != 7 {
		t.Errorf("expected 7 days in the response, got %d", len(view.DailySchedules))
	}
}

func TestScheduleHandler_Create_MissingFields(t *testing.T) {
	h := setupTestHandler()

	rec := postSchedule(t, h, `{"cycleMaster":"` + primitive.NewObjectID().Hex() + `"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body["error"] != "Missing required fields" {
		t.Errorf("unexpected error message: %q", body["error"])
	}
}

func TestScheduleHandler_Create_DuplicatePairConflict(t *testing.T) {
	h := setupTestHandler()
	cycleMaster := primitive.NewObjectID().Hex()
	semester := primitive.NewObjectID().Hex()

	if rec := postSchedule(t, h, scheduleBody(cycleMaster, semester)); rec.Code != http.StatusCreated {
		t.Fatalf("first create should succeed, got %d", rec.Code)
	}
	rec := postSchedule(t, h, scheduleBody(cycleMaster, semester))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body["cycleMaster"] != cycleMaster || body["semester"] != semester {
		t.Errorf("conflict body should carry the colliding pair: %+v", body)
	}
	if _, ok := body["existingSchedule"]; !ok {
		t.Errorf("conflict body should name the existing schedule: %+v", body)
	}
}

func TestScheduleHandler_Get_NotFound(t *testing.T) {
	h := setupTestHandler()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/schedules/"+primitive.NewObjectID().Hex(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(primitive.NewObjectID().Hex())

	if err := h.Get(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}
