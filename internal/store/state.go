// Package store holds the in-memory state the arbitration engine works
// over: the read-only entity catalog, the ledger, the queue, and the
// notification list. Mutations replace whole collections so every call
// observes a consistent snapshot of all previously completed calls.
package store

import (
	"sync"

	"github.com/routineboard/routineboard/internal/engine"
	"github.com/routineboard/routineboard/internal/model"
)

type Store struct {
	mu            sync.RWMutex
	programs      []model.Program
	classRooms    []model.ClassRoom
	courseLoads   []model.CourseLoad
	entries       []model.RoutineEntry
	requests      []model.AssignmentRequest
	notifications []model.Notification
}

func New() *Store {
	return &Store{}
}

// SetCatalog loads the read-only entity catalog. The engine never
// mutates these; they change only through a full reload.
func (s *Store) SetCatalog(programs []model.Program, classRooms []model.ClassRoom, courseLoads []model.CourseLoad) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.programs = cloneSlice(programs)
	s.classRooms = cloneSlice(classRooms)
	s.courseLoads = cloneSlice(courseLoads)
}

// SetState loads ledger, queue, and notifications, typically from the
// durable snapshot at boot.
func (s *Store) SetState(entries []model.RoutineEntry, requests []model.AssignmentRequest, notifications []model.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = cloneSlice(entries)
	s.requests = cloneSlice(requests)
	s.notifications = cloneSlice(notifications)
}

// Snapshot returns a copy of catalog, ledger, and queue for one
// arbitration call. The copy never aliases store state.
func (s *Store) Snapshot() engine.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return engine.Snapshot{
		Programs:    cloneSlice(s.programs),
		ClassRooms:  cloneSlice(s.classRooms),
		CourseLoads: cloneSlice(s.courseLoads),
		Entries:     cloneSlice(s.entries),
		Requests:    cloneSlice(s.requests),
	}
}

// Replace commits an arbitration outcome by swapping in the replacement
// ledger and queue.
func (s *Store) Replace(entries []model.RoutineEntry, requests []model.AssignmentRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
	s.requests = requests
}

// FindProgram resolves a program by code or id, in that order.
func (s *Store) FindProgram(codeOrID string) *model.Program {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.programs {
		if s.programs[i].ProgramCode == codeOrID || s.programs[i].ID == codeOrID {
			p := s.programs[i]
			return &p
		}
	}
	return nil
}

// Programs returns a copy of the program catalog.
func (s *Store) Programs() []model.Program {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.programs)
}

// ClassRooms returns a copy of the classroom catalog.
func (s *Store) ClassRooms() []model.ClassRoom {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.classRooms)
}

// CourseLoads returns a copy of the course load catalog.
func (s *Store) CourseLoads() []model.CourseLoad {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.courseLoads)
}

// Entries returns a copy of the ledger.
func (s *Store) Entries() []model.RoutineEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.entries)
}

// Requests returns a copy of the queue.
func (s *Store) Requests() []model.AssignmentRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.requests)
}

// Notifications returns a copy of all notifications, newest first.
func (s *Store) Notifications() []model.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.notifications)
}

// NotificationsFor returns the notifications addressed to one program,
// newest first.
func (s *Store) NotificationsFor(programID string) []model.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Notification
	for _, n := range s.notifications {
		if n.RecipientProgramID == programID {
			out = append(out, n)
		}
	}
	return out
}

// AppendNotification prepends a notification so newest come first.
func (s *Store) AppendNotification(n model.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append([]model.Notification{n}, s.notifications...)
}

// MarkNotificationRead flags one notification as read. Returns false if
// the id is unknown.
func (s *Store) MarkNotificationRead(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].IsRead = true
			return true
		}
	}
	return false
}

// MarkAllNotificationsRead flags every notification of a program as
// read and reports how many changed.
func (s *Store) MarkAllNotificationsRead(programID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := 0
	for i := range s.notifications {
		if s.notifications[i].RecipientProgramID == programID && !s.notifications[i].IsRead {
			s.notifications[i].IsRead = true
			changed++
		}
	}
	return changed
}

// DeleteNotification removes one notification. Returns false if the id
// is unknown.
func (s *Store) DeleteNotification(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
			return true
		}
	}
	return false
}

// ClearNotifications removes every notification of a program and
// reports how many were dropped.
func (s *Store) ClearNotifications(programID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.notifications[:0:0]
	dropped := 0
	for _, n := range s.notifications {
		if n.RecipientProgramID == programID {
			dropped++
			continue
		}
		kept = append(kept, n)
	}
	s.notifications = kept
	return dropped
}

func cloneSlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
