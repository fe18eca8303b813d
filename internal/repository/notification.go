package repository

import (
	"context"

	"qaportal/internal/model"
)

// NotificationRepository defines persistence for in-app notifications.
type NotificationRepository interface {
	// Create inserts a notification addressed to one user.
	Create(ctx context.Context, n *model.Notification) error

	// ListByUser returns a user's notifications, newest first.
	ListByUser(ctx context.Context, userID string, pq PageQuery) (*PageResult[model.Notification], error)

	// CountUnread returns the number of unread notifications for a user.
	CountUnread(ctx context.Context, userID string) (int, error)

	// MarkRead flags a single notification read. The userID guard keeps a
	// recipient from acknowledging someone else's notification.
	MarkRead(ctx context.Context, id, userID string) error

	// MarkAllRead flags every unread notification for the user.
	MarkAllRead(ctx context.Context, userID string) error
}

// ActivityLogRepository is the append-only audit sink.
type ActivityLogRepository interface {
	Record(ctx context.Context, entry *model.ActivityEntry) error
	List(ctx context.Context, pq PageQuery) (*PageResult[model.ActivityEntry], error)
}
