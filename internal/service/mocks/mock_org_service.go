package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"qaportal/internal/model"
	"qaportal/internal/repository"
	"qaportal/internal/service"
)

type MockProgramService struct {
	mock.Mock
}

func (m *MockProgramService) Create(ctx context.Context, in service.ProgramInput) (*model.Program, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Program), args.Error(1)
}

func (m *MockProgramService) Update(ctx context.Context, id string, in service.ProgramInput) error {
	args := m.Called(ctx, id, in)
	return args.Error(0)
}

func (m *MockProgramService) Get(ctx context.Context, id string) (*model.Program, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Program), args.Error(1)
}

func (m *MockProgramService) List(ctx context.Context) ([]repository.ProgramListItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.ProgramListItem), args.Error(1)
}

func (m *MockProgramService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockDepartmentService struct {
	mock.Mock
}

func (m *MockDepartmentService) Create(ctx context.Context, in service.DepartmentInput) (*model.Department, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Department), args.Error(1)
}

func (m *MockDepartmentService) Update(ctx context.Context, id string, in service.DepartmentInput) error {
	args := m.Called(ctx, id, in)
	return args.Error(0)
}

func (m *MockDepartmentService) Get(ctx context.Context, id string) (*model.Department, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Department), args.Error(1)
}

func (m *MockDepartmentService) List(ctx context.Context) ([]model.Department, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Department), args.Error(1)
}

func (m *MockDepartmentService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
