package notify

import (
	"context"

	"github.com/campusflow/event-approval/internal/domain/entity"
)

// NotificationStore persists notification rows for the in-app inbox
type NotificationStore interface {
	Create(ctx context.Context, n *entity.Notification) error
}

// StoreSink records notifications in the notification repository
type StoreSink struct {
	store NotificationStore
}

// NewStoreSink creates a repository-backed notification sink
func NewStoreSink(store NotificationStore) *StoreSink {
	return &StoreSink{store: store}
}

// Notify persists the notification row
func (s *StoreSink) Notify(ctx context.Context, n *entity.Notification) error {
	return s.store.Create(ctx, n)
}
