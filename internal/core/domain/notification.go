package domain

import (
	"errors"
	"time"
)

// NotificationType classifies a notification for rendering and filtering.
type NotificationType string

const (
	NotifyDueDate       NotificationType = "due_date"
	NotifyOverdue       NotificationType = "overdue"
	NotifyReturn        NotificationType = "return_confirmation"
	NotifyBookAvailable NotificationType = "book_available"
	NotifySystem        NotificationType = "system"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Notification is a message addressed to one identity.
type Notification struct {
	ID        string           `json:"id" bson:"_id,omitempty"`
	UserID    string           `json:"user_id" bson:"user_id"`
	Type      NotificationType `json:"type" bson:"type"`
	Title     string           `json:"title" bson:"title"`
	Message   string           `json:"message" bson:"message"`
	Read      bool             `json:"read" bson:"read"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
}
