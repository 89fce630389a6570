package engine

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/routineboard/routineboard/internal/model"
)

var (
	testNow    = time.Date(2025, 5, 15, 12, 0, 0, 0, time.UTC)
	futureDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	laterDate  = time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	pastDate   = time.Date(2025, 5, 14, 0, 0, 0, 0, time.UTC)
)

func testEngine() *Engine {
	counter := 0
	return &Engine{
		Now: func() time.Time { return testNow },
		NewID: func() string {
			counter++
			return fmt.Sprintf("id-%d", counter)
		},
		ConflictPolicy: AllowDirectOverlap,
	}
}

func testSnapshot() *Snapshot {
	return &Snapshot{
		Programs: []model.Program{
			{ID: "p-cse", ProgramCode: "15 CSE"},
			{ID: "p-bba", ProgramCode: "11 BBA"},
			{ID: "p-eng", ProgramCode: "10 ENG"},
		},
		ClassRooms: []model.ClassRoom{
			{ID: "cr-fsit", RoomID: "FSIT_301", Building: "FSIT", Room: "301", RoomOwner: "15 CSE", SharedWith: []string{"11 BBA"}},
			{ID: "cr-open", RoomID: "AB1_201", Building: "AB-1", Room: "201", RoomOwner: ""},
		},
		CourseLoads: []model.CourseLoad{
			{ID: "cl-cse101", CourseCode: "CSE101"},
			{ID: "cl-cse215", CourseCode: "CSE215"},
			{ID: "cl-bba110", CourseCode: "BBA110"},
		},
	}
}

func theorySlot() model.TimeSlot {
	return model.TimeSlot{SlotType: "Theory", StartTime: "08:30", EndTime: "10:00"}
}

func intentFor(programID, roomID, courseLoadID string, bookingEnd time.Time) Intent {
	return Intent{
		Day:             model.Saturday,
		RoomID:          roomID,
		Slot:            theorySlot(),
		ActingProgramID: programID,
		CourseLoadID:    courseLoadID,
		BookingEndDate:  bookingEnd,
	}
}

func TestClearEmptyCellIsNoOp(t *testing.T) {
	g := testEngine()
	snap := testSnapshot()

	out, err := g.SubmitIntent(snap, intentFor("p-cse", "cr-fsit", "", time.Time{}))
	if err != nil {
		t.Fatalf("SubmitIntent() error: %v", err)
	}
	if !out.Effect.IsNoOp() {
		t.Fatalf("expected no-op effect, got %+v", out.Effect)
	}
	if out.Notification != nil {
		t.Fatalf("expected no notification, got %+v", out.Notification)
	}
	if len(out.Entries) != 0 || len(out.Requests) != 0 {
		t.Fatalf("expected unchanged empty state, got %d entries %d requests", len(out.Entries), len(out.Requests))
	}
}

func TestOwnerAssignThenReassignUpdatesInPlace(t *testing.T) {
	g := testEngine()
	snap := testSnapshot()

	out, err := g.SubmitIntent(snap, intentFor("p-cse", "cr-fsit", "cl-cse101", time.Time{}))
	if err != nil {
		t.Fatalf("SubmitIntent() error: %v", err)
	}
	if out.Effect.EntryCreated == nil {
		t.Fatalf("expected entry created, got %+v", out.Effect)
	}
	firstID := out.Effect.EntryCreated.ID

	snap.Entries = out.Entries
	out, err = g.SubmitIntent(snap, intentFor("p-cse", "cr-fsit", "cl-cse215", time.Time{}))
	if err != nil {
		t.Fatalf("SubmitIntent() error: %v", err)
	}
	if out.Effect.EntryUpdated == nil {
		t.Fatalf("expected entry updated, got %+v", out.Effect)
	}
	if len(out.Entries) != 1 {
		t.Fatalf("expected exactly one entry, got %d", len(out.Entries))
	}
	if out.Entries[0].CourseLoadID != "cl-cse215" {
		t.Fatalf("expected course cl-cse215, got %s", out.Entries[0].CourseLoadID)
	}
	if out.Entries[0].ID != firstID {
		t.Fatalf("expected update to keep id %s, got %s", firstID, out.Entries[0].ID)
	}
	if out.Notification != nil {
		t.Fatalf("owner writes must not notify, got %+v", out.Notification)
	}
}

func TestSharedFirstAssignCreatesPendingRequest(t *testing.T) {
	g := testEngine()
	snap := testSnapshot()

	out, err := g.SubmitIntent(snap, intentFor("p-bba", "cr-fsit", "cl-cse101", futureDate))
	if err != nil {
		t.Fatalf("SubmitIntent() error: %v", err)
	}
	created := out.Effect.RequestCreated
	if created == nil {
		t.Fatalf("expected request created, got %+v", out.Effect)
	}
	if created.Status != model.RequestStatusPending {
		t.Fatalf("expected pending status, got %s", created.Status)
	}
	if created.RoomOwnerProgramCode != "15 CSE" {
		t.Fatalf("expected owner 15 CSE, got %s", created.RoomOwnerProgramCode)
	}
	if !created.BookingEndDate.Equal(futureDate) {
		t.Fatalf("expected booking end %v, got %v", futureDate, created.BookingEndDate)
	}
	if len(out.Entries) != 0 {
		t.Fatalf("ledger must be untouched, got %d entries", len(out.Entries))
	}
	if out.Notification == nil || out.Notification.Recipient != "15 CSE" {
		t.Fatalf("expected notification to owner, got %+v", out.Notification)
	}
}

func TestSharedFirstAssignRequiresDate(t *testing.T) {
	g := testEngine()
	snap := testSnapshot()

	_, err := g.SubmitIntent(snap, intentFor("p-bba", "cr-fsit", "cl-cse101", time.Time{}))
	if !errors.Is(err, ErrMissingRequiredDate) {
		t.Fatalf("expected ErrMissingRequiredDate, got %v", err)
	}
}

func TestPastBookingDateRejectedBeforeMutation(t *testing.T) {
	g := testEngine()
	for _, programID := range []string{"p-cse", "p-bba"} {
		snap := testSnapshot()
		_, err := g.SubmitIntent(snap, intentFor(programID, "cr-fsit", "cl-cse101", pastDate))
		if !errors.Is(err, ErrPastBookingDate) {
			t.Fatalf("program %s: expected ErrPastBookingDate, got %v", programID, err)
		}
	}
}

func TestBookingDateTodayIsAccepted(t *testing.T) {
	g := testEngine()
	snap := testSnapshot()

	today := model.DateOnly(testNow)
	out, err := g.SubmitIntent(snap, intentFor("p-bba", "cr-fsit", "cl-cse101", today))
	if err != nil {
		t.Fatalf("SubmitIntent() error: %v", err)
	}
	if out.Effect.RequestCreated == nil {
		t.Fatalf("expected request created, got %+v", out.Effect)
	}
}

func TestPendingRequestUpdatedInPlace(t *testing.T) {
	g := testEngine()
	snap := testSnapshot()
	earlier := testNow.Add(-time.Hour)
	snap.Requests = []model.AssignmentRequest{{
		ID:                    "req-1",
		RequestingProgramID:   "p-bba",
		RoomOwnerProgramCode:  "15 CSE",
		SlotDetails:           model.NewSlotKey(model.Saturday, "cr-fsit", theorySlot()),
		RequestedCourseLoadID: "cl-cse101",
		BookingEndDate:        futureDate,
		Status:                model.RequestStatusPending,
		RequestDate:           earlier,
	}}

	out, err := g.SubmitIntent(snap, intentFor("p-bba", "cr-fsit", "cl-cse215", laterDate))
	if err != nil {
		t.Fatalf("SubmitIntent() error: %v", err)
	}
	updated := out.Effect.RequestUpdated
	if updated == nil || updated.ID != "req-1" {
		t.Fatalf("expected req-1 updated, got %+v", out.Effect)
	}
	if updated.RequestedCourseLoadID != "cl-cse215" || !updated.BookingEndDate.Equal(laterDate) {
		t.Fatalf("update not applied: %+v", updated)
	}
	if !updated.RequestDate.Equal(testNow) {
		t.Fatalf("expected refreshed request date, got %v", updated.RequestDate)
	}
	if len(out.Requests) != 1 {
		t.Fatalf("expected one request, got %d", len(out.Requests))
	}
	if out.Notification == nil || out.Notification.RelatedRequestID != "req-1" {
		t.Fatalf("expected owner notification for req-1, got %+v", out.Notification)
	}
}

func TestDateChangeOnApprovedEntrySpawnsRequest(t *testing.T) {
	g := testEngine()
	snap := testSnapshot()
	snap.Entries = []model.RoutineEntry{{
		ID:             "re-1",
		Day:            model.Saturday,
		RoomID:         "cr-fsit",
		StartTime:      "08:30",
		EndTime:        "10:00",
		SlotType:       "Theory",
		CourseLoadID:   "cl-cse101",
		ProgramID:      "p-bba",
		BookingEndDate: futureDate,
	}}

	out, err := g.SubmitIntent(snap, intentFor("p-bba", "cr-fsit", "cl-cse101", laterDate))
	if err != nil {
		t.Fatalf("SubmitIntent() error: %v", err)
	}
	created := out.Effect.RequestCreated
	if created == nil {
		t.Fatalf("expected new request, got %+v", out.Effect)
	}
	if !created.BookingEndDate.Equal(laterDate) {
		t.Fatalf("expected request to carry %v, got %v", laterDate, created.BookingEndDate)
	}
	if len(out.Entries) != 1 || out.Entries[0] != snap.Entries[0] {
		t.Fatalf("existing entry must stay untouched, got %+v", out.Entries)
	}
}

func TestCourseChangeSameDateUpdatesEntryDirectly(t *testing.T) {
	g := testEngine()
	snap := testSnapshot()
	snap.Entries = []model.RoutineEntry{{
		ID:             "re-1",
		Day:            model.Saturday,
		RoomID:         "cr-fsit",
		StartTime:      "08:30",
		EndTime:        "10:00",
		SlotType:       "Theory",
		CourseLoadID:   "cl-cse101",
		ProgramID:      "p-bba",
		BookingEndDate: futureDate,
	}}

	out, err := g.SubmitIntent(snap, intentFor("p-bba", "cr-fsit", "cl-cse215", futureDate))
	if err != nil {
		t.Fatalf("SubmitIntent() error: %v", err)
	}
	if out.Effect.EntryUpdated == nil {
		t.Fatalf("expected direct entry update, got %+v", out.Effect)
	}
	if out.Effect.RequestCreated != nil {
		t.Fatalf("course change must not open a request")
	}
	if out.Entries[0].CourseLoadID != "cl-cse215" {
		t.Fatalf("expected updated course, got %s", out.Entries[0].CourseLoadID)
	}
	if out.Notification == nil || out.Notification.Recipient != "15 CSE" {
		t.Fatalf("owner must be informed, got %+v", out.Notification)
	}
}

func TestClearSharedEntryNotifiesOwner(t *testing.T) {
	g := testEngine()
	snap := testSnapshot()
	snap.Entries = []model.RoutineEntry{{
		ID:           "re-1",
		Day:          model.Saturday,
		RoomID:       "cr-fsit",
		StartTime:    "08:30",
		EndTime:      "10:00",
		SlotType:     "Theory",
		CourseLoadID: "cl-cse101",
		ProgramID:    "p-bba",
	}}

	out, err := g.SubmitIntent(snap, intentFor("p-bba", "cr-fsit", "", time.Time{}))
	if err != nil {
		t.Fatalf("SubmitIntent() error: %v", err)
	}
	if out.Effect.EntryDeleted == nil || out.Effect.EntryDeleted.ID != "re-1" {
		t.Fatalf("expected re-1 deleted, got %+v", out.Effect)
	}
	if len(out.Entries) != 0 {
		t.Fatalf("expected empty ledger, got %d entries", len(out.Entries))
	}
	if out.Notification == nil || out.Notification.Recipient != "15 CSE" {
		t.Fatalf("expected owner notification, got %+v", out.Notification)
	}
}

func TestClearCancelsPendingRequest(t *testing.T) {
	g := testEngine()
	snap := testSnapshot()
	snap.Requests = []model.AssignmentRequest{{
		ID:                    "req-1",
		RequestingProgramID:   "p-bba",
		RoomOwnerProgramCode:  "15 CSE",
		SlotDetails:           model.NewSlotKey(model.Saturday, "cr-fsit", theorySlot()),
		RequestedCourseLoadID: "cl-cse101",
		BookingEndDate:        futureDate,
		Status:                model.RequestStatusPending,
		RequestDate:           testNow,
	}}

	out, err := g.SubmitIntent(snap, intentFor("p-bba", "cr-fsit", "", time.Time{}))
	if err != nil {
		t.Fatalf("SubmitIntent() error: %v", err)
	}
	if out.Effect.RequestDeleted == nil || out.Effect.RequestDeleted.ID != "req-1" {
		t.Fatalf("expected req-1 cancelled, got %+v", out.Effect)
	}
	if len(out.Requests) != 0 {
		t.Fatalf("expected empty queue, got %d requests", len(out.Requests))
	}
	if out.Notification == nil || out.Notification.RelatedRequestID != "req-1" {
		t.Fatalf("expected owner notification for req-1, got %+v", out.Notification)
	}
}

func TestUnknownProgramAndRoom(t *testing.T) {
	g := testEngine()
	snap := testSnapshot()

	_, err := g.SubmitIntent(snap, intentFor("", "cr-fsit", "cl-cse101", futureDate))
	if !errors.Is(err, ErrNoProgramSelected) {
		t.Fatalf("expected ErrNoProgramSelected, got %v", err)
	}
	_, err = g.SubmitIntent(snap, intentFor("p-ghost", "cr-fsit", "cl-cse101", futureDate))
	if !errors.Is(err, ErrNoProgramSelected) {
		t.Fatalf("expected ErrNoProgramSelected for unknown program, got %v", err)
	}
	_, err = g.SubmitIntent(snap, intentFor("p-cse", "cr-ghost", "cl-cse101", futureDate))
	if !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}

// Two programs may both occupy an unowned room's cell: direct writes
// skip cross-program checks under the default policy.
func TestUnownedRoomAllowsOverlap(t *testing.T) {
	g := testEngine()
	snap := testSnapshot()

	out, err := g.SubmitIntent(snap, intentFor("p-bba", "cr-open", "cl-bba110", time.Time{}))
	if err != nil {
		t.Fatalf("SubmitIntent() error: %v", err)
	}
	snap.Entries = out.Entries

	out, err = g.SubmitIntent(snap, intentFor("p-eng", "cr-open", "cl-cse101", time.Time{}))
	if err != nil {
		t.Fatalf("SubmitIntent() error: %v", err)
	}
	if len(out.Entries) != 2 {
		t.Fatalf("expected both programs to hold the cell, got %d entries", len(out.Entries))
	}
	if out.Notification != nil {
		t.Fatalf("unowned writes must not notify, got %+v", out.Notification)
	}
}

func TestStrictConflictPolicyBlocksDirectWrite(t *testing.T) {
	g := testEngine()
	g.ConflictPolicy = func(snap *Snapshot, key model.SlotKey, acting model.Program) error {
		if e := snap.EntryAt(key); e != nil && e.ProgramID != acting.ID {
			return fmt.Errorf("%w: held by %s", ErrConflict, e.ProgramID)
		}
		return nil
	}
	snap := testSnapshot()
	snap.Entries = []model.RoutineEntry{{
		ID: "re-1", Day: model.Saturday, RoomID: "cr-open",
		StartTime: "08:30", EndTime: "10:00", SlotType: "Theory",
		CourseLoadID: "cl-bba110", ProgramID: "p-bba",
	}}

	_, err := g.SubmitIntent(snap, intentFor("p-eng", "cr-open", "cl-cse101", time.Time{}))
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict under strict policy, got %v", err)
	}
}
