package repository

import (
	"context"

	"qaportal/internal/model"
)

// ProgramRefs counts rows still referencing a program. A program with any
// non-zero count must not be deleted.
type ProgramRefs struct {
	Documents int
	Users     int
}

// DepartmentRefs counts rows still referencing a department.
type DepartmentRefs struct {
	Programs  int
	Users     int
	Documents int
}

// ProgramListItem is a program enriched with its department's display name.
type ProgramListItem struct {
	model.Program
	DepartmentName string `json:"department_name"`
}

// ProgramRepository defines data access for academic programs.
type ProgramRepository interface {
	Create(ctx context.Context, p *model.Program) (*model.Program, error)
	Update(ctx context.Context, p *model.Program) error
	FindByID(ctx context.Context, id string) (*model.Program, error)
	// List returns all programs with department names, ordered by name.
	List(ctx context.Context) ([]ProgramListItem, error)
	Delete(ctx context.Context, id string) error
	References(ctx context.Context, id string) (ProgramRefs, error)
}

// DepartmentRepository defines data access for departments.
type DepartmentRepository interface {
	Create(ctx context.Context, d *model.Department) (*model.Department, error)
	Update(ctx context.Context, d *model.Department) error
	FindByID(ctx context.Context, id string) (*model.Department, error)
	List(ctx context.Context) ([]model.Department, error)
	Delete(ctx context.Context, id string) error
	References(ctx context.Context, id string) (DepartmentRefs, error)
}
