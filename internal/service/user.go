package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"qaportal/internal/config"
	"qaportal/internal/model"
	"qaportal/internal/repository"
)

// CreateUserInput carries the fields of an account creation request. The
// plaintext password never reaches the repository.
type CreateUserInput struct {
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
	Role            string
	DepartmentID    *string
	ProgramID       *string
	FirstName       string
	LastName        string
}

// UserService manages portal accounts.
type UserService interface {
	// Create hashes the password and persists the account. Submitter-role
	// accounts keep their department and program; every other role has
	// them cleared.
	Create(ctx context.Context, in CreateUserInput) (*model.User, error)

	Get(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context, f repository.UserFilter) ([]model.User, error)

	// Delete removes an account. An actor cannot delete their own account.
	Delete(ctx context.Context, actor model.Actor, id string) error
}

type userService struct {
	users repository.UserRepository
	roles config.RolesConfig
}

// NewUserService constructs the account management service.
func NewUserService(users repository.UserRepository, roles config.RolesConfig) UserService {
	return &userService{users: users, roles: roles}
}

func (s *userService) Create(ctx context.Context, in CreateUserInput) (*model.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username", ErrNameRequired)
	}
	if in.Password == "" {
		return nil, fmt.Errorf("%w: password", ErrNameRequired)
	}
	if in.Password != in.PasswordConfirm {
		return nil, ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: string(hash),
		Role:         in.Role,
		DepartmentID: in.DepartmentID,
		ProgramID:    in.ProgramID,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	// Department and program assignments only mean something for
	// submitter accounts.
	if u.Role != s.roles.Submitter {
		u.DepartmentID = nil
		u.ProgramID = nil
	}

	return s.users.Create(ctx, u)
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *userService) List(ctx context.Context, f repository.UserFilter) ([]model.User, error) {
	return s.users.List(ctx, f)
}

func (s *userService) Delete(ctx context.Context, actor model.Actor, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if id == actor.ID {
		return ErrSelfDelete
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
