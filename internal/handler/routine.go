package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/routineboard/routineboard/internal/engine"
	"github.com/routineboard/routineboard/internal/model"
	"github.com/routineboard/routineboard/internal/service"
)

// RoutineHandler exposes assignment intents and ledger reads.
type RoutineHandler struct {
	svc *service.RoutineService
}

func NewRoutineHandler(svc *service.RoutineService) *RoutineHandler {
	return &RoutineHandler{svc: svc}
}

type assignmentBody struct {
	Day            string `json:"day"`
	RoomID         string `json:"room_id"`
	SlotType       string `json:"slot_type"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	ProgramID      string `json:"program_id"`
	CourseLoadID   string `json:"course_load_id"`
	BookingEndDate string `json:"booking_end_date"` // YYYY-MM-DD, empty for none
}

// SubmitAssignment handles POST /v1/routine/assignments. An empty
// course_load_id clears the cell for the acting program.
func (h *RoutineHandler) SubmitAssignment(c echo.Context) error {
	var body assignmentBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	day := model.DayOfWeek(body.Day)
	if !day.IsValid() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid day"})
	}
	if body.StartTime == "" || body.EndTime == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_time and end_time are required"})
	}

	var bookingEnd time.Time
	if body.BookingEndDate != "" {
		parsed, err := time.Parse("2006-01-02", body.BookingEndDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking_end_date, want YYYY-MM-DD"})
		}
		bookingEnd = parsed
	}

	effect, err := h.svc.SubmitAssignmentIntent(c.Request().Context(), engine.Intent{
		Day:    day,
		RoomID: body.RoomID,
		Slot: model.TimeSlot{
			SlotType:  body.SlotType,
			StartTime: body.StartTime,
			EndTime:   body.EndTime,
		},
		ActingProgramID: body.ProgramID,
		CourseLoadID:    body.CourseLoadID,
		BookingEndDate:  bookingEnd,
	})
	if err != nil {
		return arbitrationError(c, err)
	}
	return c.JSON(http.StatusOK, effect)
}

// ListEntries handles GET /v1/routine/entries. An optional program_id
// query narrows the ledger to one program.
func (h *RoutineHandler) ListEntries(c echo.Context) error {
	entries := h.svc.Entries(c.QueryParam("program_id"))
	if entries == nil {
		entries = []model.RoutineEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}
