package repository

import (
	"context"

	"github.com/routineboard/routineboard/internal/model"
)

// Persister bundles the replace-style repositories behind the service's
// Persister interface.
type Persister struct {
	routine       *RoutineRepository
	requests      *RequestRepository
	notifications *NotificationRepository
}

func NewPersister(routine *RoutineRepository, requests *RequestRepository, notifications *NotificationRepository) *Persister {
	return &Persister{routine: routine, requests: requests, notifications: notifications}
}

func (p *Persister) SaveEntries(ctx context.Context, entries []model.RoutineEntry) error {
	return p.routine.ReplaceAll(ctx, entries)
}

func (p *Persister) SaveRequests(ctx context.Context, requests []model.AssignmentRequest) error {
	return p.requests.ReplaceAll(ctx, requests)
}

func (p *Persister) SaveNotifications(ctx context.Context, notifications []model.Notification) error {
	return p.notifications.ReplaceAll(ctx, notifications)
}
