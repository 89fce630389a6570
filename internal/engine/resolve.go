package engine

import (
	"fmt"

	"github.com/routineboard/routineboard/internal/model"
)

// Decision is a room owner's verdict on one pending request.
type Decision struct {
	RequestID       string
	ActingProgramID string
	Approve         bool
	Reason          string // optional, rejections only
}

// Resolve validates ownership of the request and applies the decision.
// Requests move pending -> approved|rejected exactly once; both end
// states are terminal.
func (g *Engine) Resolve(snap *Snapshot, decision Decision) (*Outcome, error) {
	acting := snap.ProgramByID(decision.ActingProgramID)
	if decision.ActingProgramID == "" || acting == nil {
		return nil, fmt.Errorf("%w: acting program %q", ErrNoProgramSelected, decision.ActingProgramID)
	}
	request := snap.RequestByID(decision.RequestID)
	if request == nil {
		return nil, fmt.Errorf("%w: %q", ErrRequestNotFound, decision.RequestID)
	}
	if !request.IsPending() || request.RoomOwnerProgramCode != acting.ProgramCode {
		return nil, fmt.Errorf("%w: request %s is %s, owner %q", ErrNotAuthorized,
			request.ID, request.Status, request.RoomOwnerProgramCode)
	}

	if decision.Approve {
		return g.approve(snap, *request)
	}
	return g.reject(snap, *request, decision.Reason), nil
}

// approve commits the request into the ledger. A stale entry of the
// requesting program at the same cell is superseded; an entry of any
// other program blocks the approval.
func (g *Engine) approve(snap *Snapshot, request model.AssignmentRequest) (*Outcome, error) {
	out := &Outcome{
		Entries:  copyEntries(snap.Entries),
		Requests: copyRequests(snap.Requests),
	}

	if conflicting := snap.EntryAt(request.SlotDetails); conflicting != nil {
		if conflicting.ProgramID != request.RequestingProgramID {
			holder := conflicting.ProgramID
			if p := snap.ProgramByID(conflicting.ProgramID); p != nil {
				holder = p.ProgramCode
			}
			return nil, fmt.Errorf("%w: held by %s", ErrConflict, holder)
		}
		superseded := *conflicting
		out.Entries = withoutEntry(out.Entries, superseded.ID)
		out.Effect.EntryDeleted = &superseded
	}

	created := model.RoutineEntry{
		ID:             g.NewID(),
		Day:            request.SlotDetails.Day,
		RoomID:         request.SlotDetails.RoomID,
		StartTime:      request.SlotDetails.StartTime,
		EndTime:        request.SlotDetails.EndTime,
		SlotType:       request.SlotDetails.SlotType,
		CourseLoadID:   request.RequestedCourseLoadID,
		ProgramID:      request.RequestingProgramID,
		BookingEndDate: request.BookingEndDate,
	}
	out.Entries = withEntry(out.Entries, created)
	out.Effect.EntryCreated = &created

	resolved := request
	resolved.Status = model.RequestStatusApproved
	resolved.ResolutionDate = g.Now()
	out.Requests = withRequest(out.Requests, resolved)
	out.Effect.RequestResolved = &resolved

	course := snap.CourseCode(request.RequestedCourseLoadID)
	room := snap.RoomByID(request.SlotDetails.RoomID)
	out.Notification = &NotificationDraft{
		Recipient: request.RequestingProgramID,
		Message: fmt.Sprintf("Your request for %s in %s (%s, %s) has been approved.",
			course, roomText(room), request.SlotDetails.Day, request.SlotDetails.TimeText()),
		Severity:         model.SeveritySuccess,
		RelatedRequestID: request.ID,
		SlotContext:      slotContext(room, request.SlotDetails, course),
	}
	return out, nil
}

// reject marks the request rejected and tells the requester why.
func (g *Engine) reject(snap *Snapshot, request model.AssignmentRequest, reason string) *Outcome {
	out := &Outcome{
		Entries:  copyEntries(snap.Entries),
		Requests: copyRequests(snap.Requests),
	}

	resolved := request
	resolved.Status = model.RequestStatusRejected
	resolved.ResolutionDate = g.Now()
	resolved.RejectionReason = reason
	out.Requests = withRequest(out.Requests, resolved)
	out.Effect.RequestResolved = &resolved

	course := snap.CourseCode(request.RequestedCourseLoadID)
	room := snap.RoomByID(request.SlotDetails.RoomID)
	message := fmt.Sprintf("Your request for %s in %s (%s, %s) has been rejected.",
		course, roomText(room), request.SlotDetails.Day, request.SlotDetails.TimeText())
	if reason != "" {
		message += " Reason: " + reason
	}
	out.Notification = &NotificationDraft{
		Recipient:        request.RequestingProgramID,
		Message:          message,
		Severity:         model.SeverityError,
		RelatedRequestID: request.ID,
		SlotContext:      slotContext(room, request.SlotDetails, course),
	}
	return out
}

func roomText(room *model.ClassRoom) string {
	if room == nil {
		return "N/A"
	}
	return room.RoomText()
}
