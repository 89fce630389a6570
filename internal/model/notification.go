package model

import "time"

type NotificationSeverity string

const (
	SeveritySuccess NotificationSeverity = "success" // approvals
	SeverityError   NotificationSeverity = "error"   // rejections
	SeverityInfo    NotificationSeverity = "info"    // everything else
)

// SlotContext is the display context attached to a notification so the
// recipient can place it without extra lookups.
type SlotContext struct {
	Day        DayOfWeek `json:"day"`
	RoomText   string    `json:"room_text"`
	TimeText   string    `json:"time_text"`
	CourseCode string    `json:"course_code"`
}

// Notification is one message delivered to a program about a mutation it
// did not perform itself.
type Notification struct {
	ID                 string               `json:"id"`
	RecipientProgramID string               `json:"recipient_program_id"`
	Message            string               `json:"message"`
	Severity           NotificationSeverity `json:"severity"`
	Timestamp          time.Time            `json:"timestamp"`
	IsRead             bool                 `json:"is_read"`
	RelatedRequestID   string               `json:"related_request_id,omitempty"`
	SlotContext        *SlotContext         `json:"slot_context,omitempty"`
}
