package model

// Program is a department that places course sections into the routine.
// Programs are read-only input to the arbitration engine.
type Program struct {
	ID           string     `json:"id"`
	PID          string     `json:"pid"`
	Faculty      string     `json:"faculty"`
	ProgramCode  string     `json:"program_code"` // e.g. "15 CSE"
	ProgramName  string     `json:"program_name"`
	ProgramType  string     `json:"program_type"`  // "Undergraduate", "Graduate"
	SemesterType string     `json:"semester_type"` // "Tri-Semester", "Bi-Semester"
	TimeSlots    []TimeSlot `json:"time_slots,omitempty"`
}
