package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"qaportal/internal/model"
	"qaportal/internal/repository"
)

// ActivityListResult is the service-level DTO for the audit trail.
type ActivityListResult struct {
	Items []model.ActivityEntry `json:"data"`
	Total int                   `json:"total"`
}

// ActivityService is the fire-and-forget audit sink plus its read side.
// Record never returns an error: a failed write is logged and dropped so
// auditing can never break the operation being audited.
type ActivityService interface {
	Record(ctx context.Context, actorID, action, description string)
	List(ctx context.Context, limit, offset int) (*ActivityListResult, error)
}

type activityService struct {
	repo repository.ActivityLogRepository
}

// NewActivityService constructs an ActivityService.
func NewActivityService(repo repository.ActivityLogRepository) ActivityService {
	return &activityService{repo: repo}
}

func (s *activityService) Record(ctx context.Context, actorID, action, description string) {
	entry := &model.ActivityEntry{
		ID:          uuid.New().String(),
		UserID:      actorID,
		Action:      action,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.repo.Record(ctx, entry); err != nil {
		logEvent(map[string]any{
			"level":         "error",
			"component":     "activity",
			"event":         "activity_record_failed",
			"action":        action,
			"error_message": err.Error(),
		})
	}
}

func (s *activityService) List(ctx context.Context, limit, offset int) (*ActivityListResult, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ActivityListResult{Items: res.Items, Total: res.Total}, nil
}
