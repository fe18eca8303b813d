package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"qaportal/internal/model"
	"qaportal/internal/repository"
)

// Notifier is the narrow interface the document lifecycle uses to address a
// message to one user. Calls are made best-effort by the lifecycle: a failed
// notification is logged, never escalated.
type Notifier interface {
	Notify(ctx context.Context, userID, title, message, kind string, relatedDocumentID *string) error
}

// NotificationListResult is the service-level DTO for a user's notifications.
type NotificationListResult struct {
	Items []model.Notification `json:"data"`
	Total int                  `json:"total"`
}

// NotificationService covers creating notifications and the recipient-side
// read-acknowledgement operations.
type NotificationService interface {
	Notifier

	// ListForUser returns the user's notifications, newest first.
	ListForUser(ctx context.Context, userID string, limit, offset int) (*NotificationListResult, error)

	// CountUnread returns the user's unread notification count.
	CountUnread(ctx context.Context, userID string) (int, error)

	// MarkRead flags one of the user's notifications read.
	MarkRead(ctx context.Context, id, userID string) error

	// MarkAllRead flags all of the user's notifications read.
	MarkAllRead(ctx context.Context, userID string) error
}

type notificationService struct {
	repo repository.NotificationRepository
}

// NewNotificationService constructs a NotificationService.
func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) Notify(ctx context.Context, userID, title, message, kind string, relatedDocumentID *string) error {
	if userID == "" {
		return ErrIDRequired
	}
	if kind == "" {
		kind = "info"
	}
	n := &model.Notification{
		ID:                uuid.New().String(),
		UserID:            userID,
		Title:             title,
		Message:           message,
		Kind:              kind,
		RelatedDocumentID: relatedDocumentID,
		IsRead:            false,
		CreatedAt:         time.Now().UTC(),
	}
	return s.repo.Create(ctx, n)
}

func (s *notificationService) ListForUser(ctx context.Context, userID string, limit, offset int) (*NotificationListResult, error) {
	if userID == "" {
		return nil, ErrIDRequired
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	res, err := s.repo.ListByUser(ctx, userID, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &NotificationListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *notificationService) CountUnread(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, ErrIDRequired
	}
	return s.repo.CountUnread(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, id, userID string) error {
	if id == "" || userID == "" {
		return ErrIDRequired
	}
	if err := s.repo.MarkRead(ctx, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrIDRequired
	}
	return s.repo.MarkAllRead(ctx, userID)
}
