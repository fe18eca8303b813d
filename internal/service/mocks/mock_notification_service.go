package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"qaportal/internal/service"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, userID, title, message, kind string, relatedDocumentID *string) error {
	args := m.Called(ctx, userID, title, message, kind, relatedDocumentID)
	return args.Error(0)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Notify(ctx context.Context, userID, title, message, kind string, relatedDocumentID *string) error {
	args := m.Called(ctx, userID, title, message, kind, relatedDocumentID)
	return args.Error(0)
}

func (m *MockNotificationService) ListForUser(ctx context.Context, userID string, limit, offset int) (*service.NotificationListResult, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.NotificationListResult), args.Error(1)
}

func (m *MockNotificationService) CountUnread(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
