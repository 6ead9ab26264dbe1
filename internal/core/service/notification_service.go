package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/pmbajaj/Lib-Management-System/internal/core/domain"
	"github.com/pmbajaj/Lib-Management-System/internal/core/ports"
)

// NotificationService persists and serves per-user notifications. Deliver is
// called by the dispatcher workers, everything else by the HTTP handlers.
type NotificationService struct {
	repo ports.NotificationRepository
	log  zerolog.Logger
}

func NewNotificationService(repo ports.NotificationRepository, log zerolog.Logger) *NotificationService {
	return &NotificationService{repo: repo, log: log}
}

func (s *NotificationService) Deliver(ctx context.Context, in ports.NotificationInput) error {
	_, err := s.repo.Insert(ctx, &domain.Notification{
		UserID:    in.UserID,
		Type:      in.Type,
		Title:     in.Title,
		Message:   in.Message,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	s.log.Debug().Str("user_id", in.UserID).Str("type", string(in.Type)).Msg("notification delivered")
	return nil
}

func (s *NotificationService) ListMine(ctx context.Context, userID string, page, limit int) (*ports.ListNotificationsResult, error) {
	page, limit = clampPage(page, limit)

	items, total, unread, err := s.repo.ListByUser(ctx, userID, page, limit)
	if err != nil {
		return nil, err
	}

	return &ports.ListNotificationsResult{
		Items:  items,
		Total:  total,
		Unread: unread,
		Page:   page,
		Limit:  limit,
	}, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if n.UserID != userID {
		return domain.ErrForbidden
	}
	return s.repo.MarkRead(ctx, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *NotificationService) Delete(ctx context.Context, userID, id string) error {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if n.UserID != userID {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}
