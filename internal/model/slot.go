package model

import (
	"fmt"
	"time"
)

type DayOfWeek string

const (
	Saturday  DayOfWeek = "Saturday"
	Sunday    DayOfWeek = "Sunday"
	Monday    DayOfWeek = "Monday"
	Tuesday   DayOfWeek = "Tuesday"
	Wednesday DayOfWeek = "Wednesday"
	Thursday  DayOfWeek = "Thursday"
	Friday    DayOfWeek = "Friday"
)

// DaysOfWeek lists the academic week in display order (week starts Saturday).
var DaysOfWeek = []DayOfWeek{Saturday, Sunday, Monday, Tuesday, Wednesday, Thursday, Friday}

// IsValid reports whether d is one of the seven known days.
func (d DayOfWeek) IsValid() bool {
	for _, day := range DaysOfWeek {
		if d == day {
			return true
		}
	}
	return false
}

// TimeSlot is one bookable interval of a program's day grid.
type TimeSlot struct {
	ID        string `json:"id"`
	SlotType  string `json:"slot_type"` // "Theory", "Lab"
	SlotName  string `json:"slot_name"`
	StartTime string `json:"start_time"` // HH:mm, e.g. "08:30"
	EndTime   string `json:"end_time"`
}

// SlotKey identifies one bookable room-time cell. It is a value type with
// structural equality; every ledger and queue lookup goes through it.
type SlotKey struct {
	Day       DayOfWeek `json:"day"`
	RoomID    string    `json:"room_id"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	SlotType  string    `json:"slot_type"`
}

// NewSlotKey builds the key for a slot of a given room on a given day.
func NewSlotKey(day DayOfWeek, roomID string, slot TimeSlot) SlotKey {
	return SlotKey{
		Day:       day,
		RoomID:    roomID,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		SlotType:  slot.SlotType,
	}
}

// TimeText renders the interval in AM/PM form, e.g. "08:30 AM - 10:00 AM".
func (k SlotKey) TimeText() string {
	return fmt.Sprintf("%s - %s", FormatAMPM(k.StartTime), FormatAMPM(k.EndTime))
}

// FormatAMPM converts an HH:mm wall-clock string to hh:mm AM/PM.
// Unparseable input is returned unchanged.
func FormatAMPM(hhmm string) string {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return hhmm
	}
	return t.Format("03:04 PM")
}

// DateOnly truncates t to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDate compares two timestamps on their calendar date only.
// Two zero times are the same date; a zero and a non-zero time are not.
func SameDate(a, b time.Time) bool {
	if a.IsZero() || b.IsZero() {
		return a.IsZero() == b.IsZero()
	}
	return DateOnly(a).Equal(DateOnly(b))
}
