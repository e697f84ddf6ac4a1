package contract

import (
	"context"

	"moviematch-be/internal/model"

	"github.com/google/uuid"
)

// NotificationRepository works on the model directly; notifications are a
// write-mostly history table with no domain behavior worth an entity split.
type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
	ListByUser(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*model.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}
