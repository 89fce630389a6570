// Package notify turns the engine's notification drafts into stored
// Notification records and fans them out to optional side channels.
// Emission is best-effort: it never fails the mutation that caused it.
package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/routineboard/routineboard/internal/engine"
	"github.com/routineboard/routineboard/internal/model"
	"github.com/routineboard/routineboard/internal/store"
)

// Forwarder pushes a stored notification to an external channel.
type Forwarder interface {
	Forward(ctx context.Context, n model.Notification, recipient model.Program) error
}

// Sink resolves draft recipients and appends unread, timestamped
// notifications to the store.
type Sink struct {
	store      *store.Store
	logger     *zap.Logger
	forwarders []Forwarder

	newID func() string
	now   func() time.Time
}

func NewSink(st *store.Store, logger *zap.Logger, forwarders ...Forwarder) *Sink {
	return &Sink{
		store:      st,
		logger:     logger,
		forwarders: forwarders,
		newID:      uuid.NewString,
		now:        time.Now,
	}
}

// Emit resolves the draft's recipient (program code or id), stores the
// notification, and forwards it. An unresolvable recipient is logged
// and dropped; the caller is never failed.
func (s *Sink) Emit(ctx context.Context, draft engine.NotificationDraft) *model.Notification {
	recipient := s.store.FindProgram(draft.Recipient)
	if recipient == nil {
		s.logger.Warn("notification recipient not found, dropping",
			zap.String("recipient", draft.Recipient),
			zap.String("message", draft.Message))
		return nil
	}

	n := model.Notification{
		ID:                 s.newID(),
		RecipientProgramID: recipient.ID,
		Message:            draft.Message,
		Severity:           draft.Severity,
		Timestamp:          s.now(),
		IsRead:             false,
		RelatedRequestID:   draft.RelatedRequestID,
		SlotContext:        draft.SlotContext,
	}
	s.store.AppendNotification(n)

	for _, f := range s.forwarders {
		if err := f.Forward(ctx, n, *recipient); err != nil {
			s.logger.Warn("notification forward failed",
				zap.String("notification_id", n.ID),
				zap.Error(err))
		}
	}
	return &n
}
