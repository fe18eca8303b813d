package repository

import (
	"context"

	"qaportal/internal/model"
)

// UserFilter narrows a user listing. Only active accounts are listed; set
// fields combine with AND.
type UserFilter struct {
	// Search matches username, first name, last name or email by
	// case-insensitive substring.
	Search       string
	Role         string
	DepartmentID string
}

// UserRepository defines data access for portal accounts.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindIDsByRole returns the ids of all active users holding the role.
	// Used for reviewer notification fan-out.
	FindIDsByRole(ctx context.Context, role string) ([]string, error)

	// List returns active users enriched with nothing; ordering is newest first.
	List(ctx context.Context, f UserFilter) ([]model.User, error)

	Delete(ctx context.Context, id string) error
}
