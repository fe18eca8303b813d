package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"qaportal/internal/model"
	"qaportal/internal/repository"
)

// ProgramInput carries the mutable fields of a program.
type ProgramInput struct {
	Name         string
	DepartmentID *string
	Description  string
}

// DepartmentInput carries the mutable fields of a department.
type DepartmentInput struct {
	Name        string
	Description string
}

// ProgramService manages academic programs.
type ProgramService interface {
	Create(ctx context.Context, in ProgramInput) (*model.Program, error)
	Update(ctx context.Context, id string, in ProgramInput) error
	Get(ctx context.Context, id string) (*model.Program, error)
	List(ctx context.Context) ([]repository.ProgramListItem, error)
	// Delete refuses when documents or users still reference the program.
	Delete(ctx context.Context, id string) error
}

// DepartmentService manages departments.
type DepartmentService interface {
	Create(ctx context.Context, in DepartmentInput) (*model.Department, error)
	Update(ctx context.Context, id string, in DepartmentInput) error
	Get(ctx context.Context, id string) (*model.Department, error)
	List(ctx context.Context) ([]model.Department, error)
	// Delete refuses when programs, users or documents still reference
	// the department.
	Delete(ctx context.Context, id string) error
}

type programService struct {
	programs repository.ProgramRepository
}

// NewProgramService constructs the program management service.
func NewProgramService(programs repository.ProgramRepository) ProgramService {
	return &programService{programs: programs}
}

func (s *programService) Create(ctx context.Context, in ProgramInput) (*model.Program, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	p := &model.Program{
		ID:           uuid.New().String(),
		Name:         name,
		DepartmentID: in.DepartmentID,
		Description:  in.Description,
		CreatedAt:    time.Now().UTC(),
	}
	return s.programs.Create(ctx, p)
}

func (s *programService) Update(ctx context.Context, id string, in ProgramInput) error {
	if id == "" {
		return ErrIDRequired
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return ErrNameRequired
	}
	p := &model.Program{
		ID:           id,
		Name:         name,
		DepartmentID: in.DepartmentID,
		Description:  in.Description,
	}
	if err := s.programs.Update(ctx, p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *programService) Get(ctx context.Context, id string) (*model.Program, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	p, err := s.programs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *programService) List(ctx context.Context) ([]repository.ProgramListItem, error) {
	return s.programs.List(ctx)
}

func (s *programService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	refs, err := s.programs.References(ctx, id)
	if err != nil {
		return err
	}
	if refs.Documents > 0 || refs.Users > 0 {
		return fmt.Errorf("%w: program referenced by %d documents and %d users",
			ErrInUse, refs.Documents, refs.Users)
	}
	if err := s.programs.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

type departmentService struct {
	departments repository.DepartmentRepository
}

// NewDepartmentService constructs the department management service.
func NewDepartmentService(departments repository.DepartmentRepository) DepartmentService {
	return &departmentService{departments: departments}
}

func (s *departmentService) Create(ctx context.Context, in DepartmentInput) (*model.Department, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	d := &model.Department{
		ID:          uuid.New().String(),
		Name:        name,
		Description: in.Description,
		CreatedAt:   time.Now().UTC(),
	}
	return s.departments.Create(ctx, d)
}

func (s *departmentService) Update(ctx context.Context, id string, in DepartmentInput) error {
	if id == "" {
		return ErrIDRequired
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return ErrNameRequired
	}
	d := &model.Department{ID: id, Name: name, Description: in.Description}
	if err := s.departments.Update(ctx, d); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *departmentService) Get(ctx context.Context, id string) (*model.Department, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	d, err := s.departments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

func (s *departmentService) List(ctx context.Context) ([]model.Department, error) {
	return s.departments.List(ctx)
}

func (s *departmentService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	refs, err := s.departments.References(ctx, id)
	if err != nil {
		return err
	}
	if refs.Programs > 0 || refs.Users > 0 || refs.Documents > 0 {
		return fmt.Errorf("%w: department referenced by %d programs, %d users and %d documents",
			ErrInUse, refs.Programs, refs.Users, refs.Documents)
	}
	if err := s.departments.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
