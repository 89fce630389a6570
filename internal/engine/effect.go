package engine

import "github.com/routineboard/routineboard/internal/model"

// Effect reports exactly which ledger and queue records one call
// created, updated, or deleted, and which notification it emitted.
// At most one slot of each pair is set, except approval, which may both
// delete a superseded entry and create its replacement.
type Effect struct {
	EntryCreated    *model.RoutineEntry      `json:"entry_created,omitempty"`
	EntryUpdated    *model.RoutineEntry      `json:"entry_updated,omitempty"`
	EntryDeleted    *model.RoutineEntry      `json:"entry_deleted,omitempty"`
	RequestCreated  *model.AssignmentRequest `json:"request_created,omitempty"`
	RequestUpdated  *model.AssignmentRequest `json:"request_updated,omitempty"`
	RequestDeleted  *model.AssignmentRequest `json:"request_deleted,omitempty"`
	RequestResolved *model.AssignmentRequest `json:"request_resolved,omitempty"`

	// Notification is filled in by the caller once the sink has resolved
	// the recipient and appended the record.
	Notification *model.Notification `json:"notification,omitempty"`
}

// IsNoOp reports whether the call changed nothing.
func (e *Effect) IsNoOp() bool {
	return e.EntryCreated == nil && e.EntryUpdated == nil && e.EntryDeleted == nil &&
		e.RequestCreated == nil && e.RequestUpdated == nil && e.RequestDeleted == nil &&
		e.RequestResolved == nil
}

// NotificationDraft is the engine's instruction to notify a program.
// Recipient is a program code or id; the sink resolves it.
type NotificationDraft struct {
	Recipient        string
	Message          string
	Severity         model.NotificationSeverity
	RelatedRequestID string
	SlotContext      *model.SlotContext
}

// Outcome is the result of one successful arbitration call: the
// replacement ledger and queue, the diff, and at most one notification
// to emit.
type Outcome struct {
	Entries      []model.RoutineEntry
	Requests     []model.AssignmentRequest
	Effect       Effect
	Notification *NotificationDraft
}
