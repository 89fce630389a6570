// Package service orchestrates the arbitration engine over the shared
// store: it serializes calls, commits outcomes, emits notifications,
// and schedules debounced persistence.
package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/routineboard/routineboard/internal/engine"
	"github.com/routineboard/routineboard/internal/model"
	"github.com/routineboard/routineboard/internal/persist"
	"github.com/routineboard/routineboard/internal/store"
)

// Persister writes whole collections to durable storage. Implementations
// are best-effort; the service only logs their failures.
type Persister interface {
	SaveEntries(ctx context.Context, entries []model.RoutineEntry) error
	SaveRequests(ctx context.Context, requests []model.AssignmentRequest) error
	SaveNotifications(ctx context.Context, notifications []model.Notification) error
}

// Notifier emits one notification draft. A nil return means the draft
// was dropped (unknown recipient).
type Notifier interface {
	Emit(ctx context.Context, draft engine.NotificationDraft) *model.Notification
}

const flushTimeout = 5 * time.Second

// RoutineService is the single entry point for routine mutations.
// Every intent or resolution runs to completion under one mutex before
// the next is accepted, which is the whole concurrency model: the
// engine itself is pure.
type RoutineService struct {
	mu        sync.Mutex
	store     *store.Store
	engine    *engine.Engine
	notifier  Notifier
	persister Persister
	flusher   *persist.Debouncer
	logger    *zap.Logger
}

func NewRoutineService(
	st *store.Store,
	eng *engine.Engine,
	notifier Notifier,
	persister Persister,
	debounce time.Duration,
	logger *zap.Logger,
) *RoutineService {
	s := &RoutineService{
		store:     st,
		engine:    eng,
		notifier:  notifier,
		persister: persister,
		logger:    logger,
	}
	if persister != nil {
		s.flusher = persist.NewDebouncer(debounce, s.flush, logger)
	}
	return s
}

// SubmitAssignmentIntent arbitrates one cell intent and commits the
// outcome. The returned effect reports every record the call touched.
func (s *RoutineService) SubmitAssignmentIntent(ctx context.Context, intent engine.Intent) (*engine.Effect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.store.Snapshot()
	out, err := s.engine.SubmitIntent(&snap, intent)
	if err != nil {
		s.logger.Debug("assignment intent refused",
			zap.String("program_id", intent.ActingProgramID),
			zap.String("room_id", intent.RoomID),
			zap.Error(err))
		return nil, err
	}

	effect := s.commit(ctx, out)
	s.logger.Info("assignment intent applied",
		zap.String("program_id", intent.ActingProgramID),
		zap.String("room_id", intent.RoomID),
		zap.String("day", string(intent.Day)),
		zap.Bool("cleared", intent.CourseLoadID == ""))
	return effect, nil
}

// ResolveRequest applies an owner's approve/reject decision.
func (s *RoutineService) ResolveRequest(ctx context.Context, decision engine.Decision) (*engine.Effect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.store.Snapshot()
	out, err := s.engine.Resolve(&snap, decision)
	if err != nil {
		s.logger.Debug("request resolution refused",
			zap.String("request_id", decision.RequestID),
			zap.String("program_id", decision.ActingProgramID),
			zap.Error(err))
		return nil, err
	}

	effect := s.commit(ctx, out)
	s.logger.Info("request resolved",
		zap.String("request_id", decision.RequestID),
		zap.String("program_id", decision.ActingProgramID),
		zap.Bool("approved", decision.Approve))
	return effect, nil
}

// commit swaps in the outcome's collections, emits its notification,
// and schedules a durable flush.
func (s *RoutineService) commit(ctx context.Context, out *engine.Outcome) *engine.Effect {
	s.store.Replace(out.Entries, out.Requests)
	effect := out.Effect
	if out.Notification != nil && s.notifier != nil {
		effect.Notification = s.notifier.Emit(ctx, *out.Notification)
	}
	s.scheduleFlush()
	return &effect
}

func (s *RoutineService) scheduleFlush() {
	if s.flusher != nil {
		s.flusher.Trigger()
	}
}

// flush pushes the current collections to the persister.
func (s *RoutineService) flush() error {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	if err := s.persister.SaveEntries(ctx, s.store.Entries()); err != nil {
		return err
	}
	if err := s.persister.SaveRequests(ctx, s.store.Requests()); err != nil {
		return err
	}
	return s.persister.SaveNotifications(ctx, s.store.Notifications())
}

// Close flushes any pending durable write. Called on shutdown.
func (s *RoutineService) Close() {
	if s.flusher != nil {
		s.flusher.Flush()
	}
}

// Entries returns the ledger, optionally filtered to one program.
func (s *RoutineService) Entries(programID string) []model.RoutineEntry {
	entries := s.store.Entries()
	if programID == "" {
		return entries
	}
	out := entries[:0:0]
	for _, e := range entries {
		if e.ProgramID == programID {
			out = append(out, e)
		}
	}
	return out
}

// RequestsForOwner returns the requests addressed to a room owner's
// program code, pending first is left to the caller.
func (s *RoutineService) RequestsForOwner(ownerCode string) []model.AssignmentRequest {
	requests := s.store.Requests()
	out := requests[:0:0]
	for _, r := range requests {
		if r.RoomOwnerProgramCode == ownerCode {
			out = append(out, r)
		}
	}
	return out
}

// RequestsForProgram returns the requests a program has made.
func (s *RoutineService) RequestsForProgram(programID string) []model.AssignmentRequest {
	requests := s.store.Requests()
	out := requests[:0:0]
	for _, r := range requests {
		if r.RequestingProgramID == programID {
			out = append(out, r)
		}
	}
	return out
}

// Notifications returns a program's notifications, newest first.
func (s *RoutineService) Notifications(programID string) []model.Notification {
	return s.store.NotificationsFor(programID)
}

// MarkNotificationRead flags one notification as read.
func (s *RoutineService) MarkNotificationRead(id string) bool {
	ok := s.store.MarkNotificationRead(id)
	if ok {
		s.scheduleFlush()
	}
	return ok
}

// MarkAllNotificationsRead flags a program's notifications as read.
func (s *RoutineService) MarkAllNotificationsRead(programID string) int {
	changed := s.store.MarkAllNotificationsRead(programID)
	if changed > 0 {
		s.scheduleFlush()
	}
	return changed
}

// DeleteNotification removes one notification.
func (s *RoutineService) DeleteNotification(id string) bool {
	ok := s.store.DeleteNotification(id)
	if ok {
		s.scheduleFlush()
	}
	return ok
}

// ClearNotifications removes all of a program's notifications.
func (s *RoutineService) ClearNotifications(programID string) int {
	dropped := s.store.ClearNotifications(programID)
	if dropped > 0 {
		s.scheduleFlush()
	}
	return dropped
}
