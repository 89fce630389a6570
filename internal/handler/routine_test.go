package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/routineboard/routineboard/internal/engine"
	"github.com/routineboard/routineboard/internal/model"
	"github.com/routineboard/routineboard/internal/notify"
	"github.com/routineboard/routineboard/internal/service"
	"github.com/routineboard/routineboard/internal/store"
)

func testService() *service.RoutineService {
	st := store.New()
	st.SetCatalog(
		[]model.Program{
			{ID: "p-cse", ProgramCode: "15 CSE"},
			{ID: "p-bba", ProgramCode: "11 BBA"},
		},
		[]model.ClassRoom{
			{ID: "cr-fsit", RoomID: "FSIT_301", Building: "FSIT", Room: "301", RoomOwner: "15 CSE", SharedWith: []string{"11 BBA"}},
		},
		[]model.CourseLoad{{ID: "cl-cse101", CourseCode: "CSE101"}},
	)

	counter := 0
	eng := &engine.Engine{
		Now: func() time.Time { return time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC) },
		NewID: func() string {
			counter++
			return fmt.Sprintf("id-%d", counter)
		},
		ConflictPolicy: engine.AllowDirectOverlap,
	}
	return service.NewRoutineService(st, eng, notify.NewSink(st, zap.NewNop()), nil, 0, zap.NewNop())
}

func postJSON(h echo.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestSubmitAssignmentCreatesRequest(t *testing.T) {
	h := NewRoutineHandler(testService())

	rec := postJSON(h.SubmitAssignment, "/v1/routine/assignments", `{
		"day": "Saturday",
		"room_id": "cr-fsit",
		"slot_type": "Theory",
		"start_time": "08:30",
		"end_time": "10:00",
		"program_id": "p-bba",
		"course_load_id": "cl-cse101",
		"booking_end_date": "2025-06-01"
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var effect engine.Effect
	if err := json.Unmarshal(rec.Body.Bytes(), &effect); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if effect.RequestCreated == nil || effect.RequestCreated.Status != model.RequestStatusPending {
		t.Fatalf("expected pending request in effect, got %s", rec.Body.String())
	}
	if effect.Notification == nil || effect.Notification.RecipientProgramID != "p-cse" {
		t.Fatalf("expected owner notification in effect, got %s", rec.Body.String())
	}
}

func TestSubmitAssignmentValidation(t *testing.T) {
	h := NewRoutineHandler(testService())

	cases := []struct {
		name string
		body string
		want int
	}{
		{"invalid day", `{"day":"Funday","room_id":"cr-fsit","slot_type":"Theory","start_time":"08:30","end_time":"10:00","program_id":"p-cse","course_load_id":"cl-cse101"}`, http.StatusBadRequest},
		{"missing times", `{"day":"Saturday","room_id":"cr-fsit","program_id":"p-cse","course_load_id":"cl-cse101"}`, http.StatusBadRequest},
		{"bad date format", `{"day":"Saturday","room_id":"cr-fsit","slot_type":"Theory","start_time":"08:30","end_time":"10:00","program_id":"p-cse","course_load_id":"cl-cse101","booking_end_date":"01-06-2025"}`, http.StatusBadRequest},
		{"unknown program", `{"day":"Saturday","room_id":"cr-fsit","slot_type":"Theory","start_time":"08:30","end_time":"10:00","program_id":"p-ghost","course_load_id":"cl-cse101"}`, http.StatusBadRequest},
		{"unknown room", `{"day":"Saturday","room_id":"cr-ghost","slot_type":"Theory","start_time":"08:30","end_time":"10:00","program_id":"p-cse","course_load_id":"cl-cse101"}`, http.StatusNotFound},
		{"past booking date", `{"day":"Saturday","room_id":"cr-fsit","slot_type":"Theory","start_time":"08:30","end_time":"10:00","program_id":"p-cse","course_load_id":"cl-cse101","booking_end_date":"2024-01-01"}`, http.StatusBadRequest},
		{"shared without date", `{"day":"Saturday","room_id":"cr-fsit","slot_type":"Theory","start_time":"08:30","end_time":"10:00","program_id":"p-bba","course_load_id":"cl-cse101"}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(h.SubmitAssignment, "/v1/routine/assignments", tc.body)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestListEntriesReturnsEmptyArray(t *testing.T) {
	h := NewRoutineHandler(testService())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/routine/entries", nil)
	rec := httptest.NewRecorder()
	if err := h.ListEntries(e.NewContext(req, rec)); err != nil {
		t.Fatalf("ListEntries() error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("expected empty JSON array, got %q", got)
	}
}
