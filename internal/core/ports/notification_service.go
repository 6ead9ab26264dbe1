package ports

import (
	"context"

	"github.com/pmbajaj/Lib-Management-System/internal/core/domain"
)

// NotificationInput is a notification queued for delivery.
type NotificationInput struct {
	UserID  string
	Type    domain.NotificationType
	Title   string
	Message string
}

// ListNotificationsResult is one page of a user's notifications.
type ListNotificationsResult struct {
	Items  []*domain.Notification
	Total  int64
	Unread int64
	Page   int
	Limit  int
}

// NotificationDispatcher enqueues notifications for asynchronous delivery
// with per-recipient ordering.
type NotificationDispatcher interface {
	Enqueue(in NotificationInput)
	EnqueueBatch(ins []NotificationInput)
}

// NotificationService defines notification use-cases. Deliver is invoked by
// the dispatcher workers; the remaining operations serve the HTTP surface.
type NotificationService interface {
	// Deliver persists one notification for its recipient.
	Deliver(ctx context.Context, in NotificationInput) error
	ListMine(ctx context.Context, userID string, page, limit int) (*ListNotificationsResult, error)
	// MarkRead flags the notification as read; only the recipient may do so.
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	// Delete removes the notification; only the recipient may do so.
	Delete(ctx context.Context, userID, id string) error
}
