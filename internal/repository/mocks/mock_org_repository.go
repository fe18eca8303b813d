package mocks

import (
	"context"

	"qaportal/internal/model"
	"qaportal/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockProgramRepository struct {
	mock.Mock
}

func (m *MockProgramRepository) Create(ctx context.Context, p *model.Program) (*model.Program, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Program), args.Error(1)
}

func (m *MockProgramRepository) Update(ctx context.Context, p *model.Program) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProgramRepository) FindByID(ctx context.Context, id string) (*model.Program, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Program), args.Error(1)
}

func (m *MockProgramRepository) List(ctx context.Context) ([]repository.ProgramListItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.ProgramListItem), args.Error(1)
}

func (m *MockProgramRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProgramRepository) References(ctx context.Context, id string) (repository.ProgramRefs, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(repository.ProgramRefs), args.Error(1)
}

type MockDepartmentRepository struct {
	mock.Mock
}

func (m *MockDepartmentRepository) Create(ctx context.Context, d *model.Department) (*model.Department, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Department), args.Error(1)
}

func (m *MockDepartmentRepository) Update(ctx context.Context, d *model.Department) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDepartmentRepository) FindByID(ctx context.Context, id string) (*model.Department, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Department), args.Error(1)
}

func (m *MockDepartmentRepository) List(ctx context.Context) ([]model.Department, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Department), args.Error(1)
}

func (m *MockDepartmentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDepartmentRepository) References(ctx context.Context, id string) (repository.DepartmentRefs, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(repository.DepartmentRefs), args.Error(1)
}
