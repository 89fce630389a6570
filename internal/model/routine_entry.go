package model

import "time"

// RoutineEntry is one committed occupancy of a room-time cell by a
// program's course section. The set of entries is the ledger.
type RoutineEntry struct {
	ID           string    `json:"id"`
	Day          DayOfWeek `json:"day"`
	RoomID       string    `json:"room_id"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	SlotType     string    `json:"slot_type"`
	CourseLoadID string    `json:"course_load_id"`
	ProgramID    string    `json:"program_id"`
	// BookingEndDate is advisory. Nothing expires an entry when the date
	// passes; it exists so owners can see how long a shared booking was
	// meant to run.
	BookingEndDate time.Time `json:"booking_end_date,omitempty"`
}

// Key returns the cell identity of the entry.
func (e *RoutineEntry) Key() SlotKey {
	return SlotKey{
		Day:       e.Day,
		RoomID:    e.RoomID,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		SlotType:  e.SlotType,
	}
}
