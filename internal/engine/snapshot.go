package engine

import "github.com/routineboard/routineboard/internal/model"

// Snapshot is the engine's consistent view of the world for one call:
// the read-only entity catalog plus the current ledger and queue. The
// engine never mutates a snapshot; outcomes carry replacement slices.
type Snapshot struct {
	Programs    []model.Program
	ClassRooms  []model.ClassRoom
	CourseLoads []model.CourseLoad
	Entries     []model.RoutineEntry
	Requests    []model.AssignmentRequest
}

// ProgramByID looks a program up by its stable id.
func (s *Snapshot) ProgramByID(id string) *model.Program {
	for i := range s.Programs {
		if s.Programs[i].ID == id {
			return &s.Programs[i]
		}
	}
	return nil
}

// ProgramByCode looks a program up by its program code, e.g. "15 CSE".
func (s *Snapshot) ProgramByCode(code string) *model.Program {
	for i := range s.Programs {
		if s.Programs[i].ProgramCode == code {
			return &s.Programs[i]
		}
	}
	return nil
}

// RoomByID looks a classroom up by its stable id.
func (s *Snapshot) RoomByID(id string) *model.ClassRoom {
	for i := range s.ClassRooms {
		if s.ClassRooms[i].ID == id {
			return &s.ClassRooms[i]
		}
	}
	return nil
}

// CourseLoadByID looks a course section up by id.
func (s *Snapshot) CourseLoadByID(id string) *model.CourseLoad {
	for i := range s.CourseLoads {
		if s.CourseLoads[i].ID == id {
			return &s.CourseLoads[i]
		}
	}
	return nil
}

// CourseCode returns the display code for a course load, "N/A" when the
// load is unknown. Used for notification text only.
func (s *Snapshot) CourseCode(courseLoadID string) string {
	if cl := s.CourseLoadByID(courseLoadID); cl != nil {
		return cl.CourseCode
	}
	return "N/A"
}

// EntryAt finds the ledger entry occupying a cell regardless of program.
func (s *Snapshot) EntryAt(key model.SlotKey) *model.RoutineEntry {
	for i := range s.Entries {
		if s.Entries[i].Key() == key {
			return &s.Entries[i]
		}
	}
	return nil
}

// EntryFor finds the acting program's own ledger entry for a cell.
func (s *Snapshot) EntryFor(key model.SlotKey, programID string) *model.RoutineEntry {
	for i := range s.Entries {
		if s.Entries[i].ProgramID == programID && s.Entries[i].Key() == key {
			return &s.Entries[i]
		}
	}
	return nil
}

// PendingRequestFor finds the acting program's pending request for a
// cell. At most one exists per (program, cell).
func (s *Snapshot) PendingRequestFor(key model.SlotKey, programID string) *model.AssignmentRequest {
	for i := range s.Requests {
		r := &s.Requests[i]
		if r.RequestingProgramID == programID && r.IsPending() && r.SlotDetails == key {
			return r
		}
	}
	return nil
}

// RequestByID looks a request up by id.
func (s *Snapshot) RequestByID(id string) *model.AssignmentRequest {
	for i := range s.Requests {
		if s.Requests[i].ID == id {
			return &s.Requests[i]
		}
	}
	return nil
}

// copyEntries clones the ledger so outcomes never alias snapshot state.
func copyEntries(entries []model.RoutineEntry) []model.RoutineEntry {
	out := make([]model.RoutineEntry, len(entries))
	copy(out, entries)
	return out
}

func copyRequests(requests []model.AssignmentRequest) []model.AssignmentRequest {
	out := make([]model.AssignmentRequest, len(requests))
	copy(out, requests)
	return out
}

// withoutEntry returns the ledger minus the entry with the given id.
func withoutEntry(entries []model.RoutineEntry, id string) []model.RoutineEntry {
	out := make([]model.RoutineEntry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

// withEntry returns the ledger with the entry upserted by id.
func withEntry(entries []model.RoutineEntry, entry model.RoutineEntry) []model.RoutineEntry {
	out := copyEntries(entries)
	for i := range out {
		if out[i].ID == entry.ID {
			out[i] = entry
			return out
		}
	}
	return append(out, entry)
}

// withoutRequest returns the queue minus the request with the given id.
func withoutRequest(requests []model.AssignmentRequest, id string) []model.AssignmentRequest {
	out := make([]model.AssignmentRequest, 0, len(requests))
	for _, r := range requests {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}

// withRequest returns the queue with the request upserted by id.
func withRequest(requests []model.AssignmentRequest, request model.AssignmentRequest) []model.AssignmentRequest {
	out := copyRequests(requests)
	for i := range out {
		if out[i].ID == request.ID {
			out[i] = request
			return out
		}
	}
	return append(out, request)
}
