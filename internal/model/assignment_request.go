package model

import "time"

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// AssignmentRequest is one negotiation over a shared room's cell.
// Lifecycle: created pending, optionally updated in place while pending,
// then resolved by the room owner. Approved and rejected are terminal.
type AssignmentRequest struct {
	ID                    string        `json:"id"`
	RequestingProgramID   string        `json:"requesting_program_id"`
	RoomOwnerProgramCode  string        `json:"room_owner_program_code"`
	SlotDetails           SlotKey       `json:"slot_details"`
	RequestedCourseLoadID string        `json:"requested_course_load_id"`
	BookingEndDate        time.Time     `json:"booking_end_date"` // required for requests
	Status                RequestStatus `json:"status"`
	RequestDate           time.Time     `json:"request_date"`
	ResolutionDate        time.Time     `json:"resolution_date,omitempty"`
	RejectionReason       string        `json:"rejection_reason,omitempty"`
}

// IsPending reports whether the request is still awaiting resolution.
func (r *AssignmentRequest) IsPending() bool {
	return r.Status == RequestStatusPending
}

// IsApproved reports whether the owner approved the request.
func (r *AssignmentRequest) IsApproved() bool {
	return r.Status == RequestStatusApproved
}

// IsRejected reports whether the owner rejected the request.
func (r *AssignmentRequest) IsRejected() bool {
	return r.Status == RequestStatusRejected
}
