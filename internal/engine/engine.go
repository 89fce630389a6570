// Package engine implements the booking arbitration core: given a
// snapshot of the catalog, ledger, and queue plus one intent or
// resolution decision, it computes the replacement state and the
// notification to emit. It performs no I/O and never mutates its input.
package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/routineboard/routineboard/internal/model"
)

// ConflictPolicy decides whether a direct write (owner or unowned room)
// may proceed when the cell situation calls for judgement. The shipped
// policy allows direct writes without looking at other programs'
// entries: cross-program exclusivity is enforced at approval time only.
// That asymmetry is a deliberate policy point, so it lives behind this
// hook instead of inside the classifier.
type ConflictPolicy func(snap *Snapshot, key model.SlotKey, acting model.Program) error

// AllowDirectOverlap is the default policy: direct writes never fail on
// another program's occupancy.
func AllowDirectOverlap(*Snapshot, model.SlotKey, model.Program) error { return nil }

// Engine arbitrates assignment intents and request resolutions.
// Now and NewID are injectable for deterministic tests.
type Engine struct {
	Now            func() time.Time
	NewID          func() string
	ConflictPolicy ConflictPolicy
}

// New returns an engine with wall-clock time, uuid ids, and the default
// conflict policy.
func New() *Engine {
	return &Engine{
		Now:            time.Now,
		NewID:          uuid.NewString,
		ConflictPolicy: AllowDirectOverlap,
	}
}

// Intent is one caller-requested change to a cell: assign a course
// section, or clear whatever the acting program has there.
type Intent struct {
	Day             model.DayOfWeek
	RoomID          string
	Slot            model.TimeSlot
	ActingProgramID string
	// CourseLoadID empty means clear: delete the program's own entry or
	// cancel its pending request for the cell.
	CourseLoadID string
	// BookingEndDate zero means no date supplied.
	BookingEndDate time.Time
}

// SubmitIntent classifies the room's authority model for the acting
// program and executes the intent. All validation happens before any
// state is computed; on error the snapshot is untouched and no outcome
// is returned.
func (g *Engine) SubmitIntent(snap *Snapshot, intent Intent) (*Outcome, error) {
	acting := snap.ProgramByID(intent.ActingProgramID)
	if intent.ActingProgramID == "" || acting == nil {
		return nil, fmt.Errorf("%w: acting program %q", ErrNoProgramSelected, intent.ActingProgramID)
	}
	room := snap.RoomByID(intent.RoomID)
	if room == nil {
		return nil, fmt.Errorf("%w: %q", ErrRoomNotFound, intent.RoomID)
	}

	key := model.NewSlotKey(intent.Day, intent.RoomID, intent.Slot)
	authority := room.AuthorityFor(acting.ProgramCode)
	ownEntry := snap.EntryFor(key, acting.ID)
	ownRequest := snap.PendingRequestFor(key, acting.ID)

	if intent.CourseLoadID == "" {
		return g.clearCell(snap, room, authority, acting, key, ownEntry, ownRequest), nil
	}

	if !intent.BookingEndDate.IsZero() &&
		model.DateOnly(intent.BookingEndDate).Before(model.DateOnly(g.Now())) {
		return nil, fmt.Errorf("%w: %s", ErrPastBookingDate, intent.BookingEndDate.Format("2006-01-02"))
	}

	switch authority.Kind {
	case model.AuthorityShared:
		return g.assignShared(snap, room, authority, acting, key, intent, ownEntry, ownRequest)
	default:
		// Owner and unowned rooms write directly: the acting program
		// either is the authority or no authority exists.
		return g.assignDirect(snap, acting, key, intent, ownEntry)
	}
}

// clearCell removes the program's own entry, or failing that cancels its
// pending request. Exactly one collection changes, or nothing does.
func (g *Engine) clearCell(
	snap *Snapshot,
	room *model.ClassRoom,
	authority model.RoomAuthority,
	acting *model.Program,
	key model.SlotKey,
	ownEntry *model.RoutineEntry,
	ownRequest *model.AssignmentRequest,
) *Outcome {
	out := &Outcome{
		Entries:  copyEntries(snap.Entries),
		Requests: copyRequests(snap.Requests),
	}

	switch {
	case ownEntry != nil:
		deleted := *ownEntry
		out.Entries = withoutEntry(out.Entries, deleted.ID)
		out.Effect.EntryDeleted = &deleted
		if authority.Kind == model.AuthorityShared {
			course := snap.CourseCode(deleted.CourseLoadID)
			out.Notification = &NotificationDraft{
				Recipient: authority.Owner,
				Message: fmt.Sprintf("Assignment for %s by %s in %s (%s, %s) has been cleared.",
					course, acting.ProgramCode, room.RoomText(), key.Day, key.TimeText()),
				Severity:    model.SeverityInfo,
				SlotContext: slotContext(room, key, course),
			}
		}
	case ownRequest != nil:
		cancelled := *ownRequest
		out.Requests = withoutRequest(out.Requests, cancelled.ID)
		out.Effect.RequestDeleted = &cancelled
		if authority.Kind == model.AuthorityShared {
			course := snap.CourseCode(cancelled.RequestedCourseLoadID)
			out.Notification = &NotificationDraft{
				Recipient: authority.Owner,
				Message: fmt.Sprintf("Request from %s for %s in %s (%s, %s) has been cancelled.",
					acting.ProgramCode, course, room.RoomText(), key.Day, key.TimeText()),
				Severity:         model.SeverityInfo,
				RelatedRequestID: cancelled.ID,
				SlotContext:      slotContext(room, key, course),
			}
		}
	}
	return out
}

// assignDirect upserts the program's own entry for the cell.
func (g *Engine) assignDirect(
	snap *Snapshot,
	acting *model.Program,
	key model.SlotKey,
	intent Intent,
	ownEntry *model.RoutineEntry,
) (*Outcome, error) {
	out := &Outcome{
		Entries:  copyEntries(snap.Entries),
		Requests: copyRequests(snap.Requests),
	}

	if ownEntry != nil {
		updated := *ownEntry
		updated.CourseLoadID = intent.CourseLoadID
		updated.BookingEndDate = intent.BookingEndDate
		out.Entries = withEntry(out.Entries, updated)
		out.Effect.EntryUpdated = &updated
		return out, nil
	}

	if err := g.ConflictPolicy(snap, key, *acting); err != nil {
		return nil, err
	}

	created := model.RoutineEntry{
		ID:             g.NewID(),
		Day:            key.Day,
		RoomID:         key.RoomID,
		StartTime:      key.StartTime,
		EndTime:        key.EndTime,
		SlotType:       key.SlotType,
		CourseLoadID:   intent.CourseLoadID,
		ProgramID:      acting.ID,
		BookingEndDate: intent.BookingEndDate,
	}
	out.Entries = withEntry(out.Entries, created)
	out.Effect.EntryCreated = &created
	return out, nil
}

// assignShared routes a non-owner's assign through the request queue,
// except for a pure course change on an already approved entry, which
// the owner only gets informed about.
func (g *Engine) assignShared(
	snap *Snapshot,
	room *model.ClassRoom,
	authority model.RoomAuthority,
	acting *model.Program,
	key model.SlotKey,
	intent Intent,
	ownEntry *model.RoutineEntry,
	ownRequest *model.AssignmentRequest,
) (*Outcome, error) {
	out := &Outcome{
		Entries:  copyEntries(snap.Entries),
		Requests: copyRequests(snap.Requests),
	}
	course := snap.CourseCode(intent.CourseLoadID)

	switch {
	case ownRequest != nil:
		// Update the pending request in place.
		if intent.BookingEndDate.IsZero() {
			return nil, fmt.Errorf("%w: pending request update", ErrMissingRequiredDate)
		}
		updated := *ownRequest
		updated.RequestedCourseLoadID = intent.CourseLoadID
		updated.BookingEndDate = intent.BookingEndDate
		updated.RequestDate = g.Now()
		out.Requests = withRequest(out.Requests, updated)
		out.Effect.RequestUpdated = &updated
		out.Notification = &NotificationDraft{
			Recipient: authority.Owner,
			Message: fmt.Sprintf("Pending request from %s for %s (%s, %s) has been updated. New course: %s, end date: %s.",
				acting.ProgramCode, room.RoomText(), key.Day, key.TimeText(), course, formatDate(updated.BookingEndDate)),
			Severity:         model.SeverityInfo,
			RelatedRequestID: updated.ID,
			SlotContext:      slotContext(room, key, course),
		}

	case ownEntry != nil && !model.SameDate(ownEntry.BookingEndDate, intent.BookingEndDate):
		// Changing the booking window of an approved shared entry needs
		// the owner's approval again. The existing entry stays live.
		if intent.BookingEndDate.IsZero() {
			return nil, fmt.Errorf("%w: booking date change request", ErrMissingRequiredDate)
		}
		created := g.newRequest(authority.Owner, acting.ID, key, intent)
		out.Requests = withRequest(out.Requests, created)
		out.Effect.RequestCreated = &created
		out.Notification = &NotificationDraft{
			Recipient: authority.Owner,
			Message: fmt.Sprintf("%s requested a booking date change for %s in %s (%s, %s) to end on %s.",
				acting.ProgramCode, course, room.RoomText(), key.Day, key.TimeText(), formatDate(created.BookingEndDate)),
			Severity:         model.SeverityInfo,
			RelatedRequestID: created.ID,
			SlotContext:      slotContext(room, key, course),
		}

	case ownEntry != nil:
		// Same booking window: a course change on an approved shared
		// entry is applied directly, the owner is only informed.
		updated := *ownEntry
		updated.CourseLoadID = intent.CourseLoadID
		out.Entries = withEntry(out.Entries, updated)
		out.Effect.EntryUpdated = &updated
		out.Notification = &NotificationDraft{
			Recipient: authority.Owner,
			Message: fmt.Sprintf("Shared assignment for %s in %s (%s, %s) has been updated. New course: %s.",
				acting.ProgramCode, room.RoomText(), key.Day, key.TimeText(), course),
			Severity:    model.SeverityInfo,
			SlotContext: slotContext(room, key, course),
		}

	default:
		// First contact with the cell: open a new negotiation.
		if intent.BookingEndDate.IsZero() {
			return nil, fmt.Errorf("%w: new shared room request", ErrMissingRequiredDate)
		}
		created := g.newRequest(authority.Owner, acting.ID, key, intent)
		out.Requests = withRequest(out.Requests, created)
		out.Effect.RequestCreated = &created
		out.Notification = &NotificationDraft{
			Recipient: authority.Owner,
			Message: fmt.Sprintf("New request from %s for %s in %s (%s, %s). Book until: %s.",
				acting.ProgramCode, course, room.RoomText(), key.Day, key.TimeText(), formatDate(created.BookingEndDate)),
			Severity:         model.SeverityInfo,
			RelatedRequestID: created.ID,
			SlotContext:      slotContext(room, key, course),
		}
	}
	return out, nil
}

func (g *Engine) newRequest(ownerCode, programID string, key model.SlotKey, intent Intent) model.AssignmentRequest {
	return model.AssignmentRequest{
		ID:                    g.NewID(),
		RequestingProgramID:   programID,
		RoomOwnerProgramCode:  ownerCode,
		SlotDetails:           key,
		RequestedCourseLoadID: intent.CourseLoadID,
		BookingEndDate:        intent.BookingEndDate,
		Status:                model.RequestStatusPending,
		RequestDate:           g.Now(),
	}
}

func slotContext(room *model.ClassRoom, key model.SlotKey, courseCode string) *model.SlotContext {
	roomText := "N/A"
	if room != nil {
		roomText = room.RoomText()
	}
	return &model.SlotContext{
		Day:        key.Day,
		RoomText:   roomText,
		TimeText:   key.TimeText(),
		CourseCode: courseCode,
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("Jan 2, 2006")
}
