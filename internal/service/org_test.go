package service

import (
	"context"
	"database/sql"
	"testing"

	"qaportal/internal/model"
	"qaportal/internal/repository"
	repoMocks "qaportal/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestProgramService_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		setupMocks func(m *repoMocks.MockProgramRepository)
		wantErr    error
		wantErrMsg string
	}{
		{
			name: "unreferenced program is deleted",
			id:   "prog-1",
			setupMocks: func(m *repoMocks.MockProgramRepository) {
				m.On("References", ctx, "prog-1").Return(repository.ProgramRefs{}, nil)
				m.On("Delete", ctx, "prog-1").Return(nil)
			},
		},
		{
			name: "referenced program is refused",
			id:   "prog-1",
			setupMocks: func(m *repoMocks.MockProgramRepository) {
				m.On("References", ctx, "prog-1").
					Return(repository.ProgramRefs{Documents: 3, Users: 1}, nil)
			},
			wantErr:    ErrInUse,
			wantErrMsg: "3 documents and 1 users",
		},
		{
			name:       "validation - empty id",
			id:         "",
			setupMocks: func(m *repoMocks.MockProgramRepository) {},
			wantErr:    ErrIDRequired,
		},
		{
			name: "not found",
			id:   "missing",
			setupMocks: func(m *repoMocks.MockProgramRepository) {
				m.On("References", ctx, "missing").Return(repository.ProgramRefs{}, nil)
				m.On("Delete", ctx, "missing").Return(sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(repoMocks.MockProgramRepository)
			svc := NewProgramService(m)
			tt.setupMocks(m)

			err := svc.Delete(ctx, tt.id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				if tt.wantErrMsg != "" {
					assert.Contains(t, err.Error(), tt.wantErrMsg)
				}
			} else {
				assert.NoError(t, err)
			}
			m.AssertExpectations(t)
		})
	}
}

func TestDepartmentService_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		refs       repository.DepartmentRefs
		wantErr    error
		wantErrMsg string
	}{
		{name: "unreferenced department is deleted", id: "dept-1"},
		{
			name:       "department with programs is refused",
			id:         "dept-1",
			refs:       repository.DepartmentRefs{Programs: 2},
			wantErr:    ErrInUse,
			wantErrMsg: "2 programs",
		},
		{
			name:       "department with users is refused",
			id:         "dept-1",
			refs:       repository.DepartmentRefs{Users: 4},
			wantErr:    ErrInUse,
			wantErrMsg: "4 users",
		},
		{
			name:       "department with documents is refused",
			id:         "dept-1",
			refs:       repository.DepartmentRefs{Documents: 7},
			wantErr:    ErrInUse,
			wantErrMsg: "7 documents",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(repoMocks.MockDepartmentRepository)
			svc := NewDepartmentService(m)

			m.On("References", ctx, tt.id).Return(tt.refs, nil)
			if tt.wantErr == nil {
				m.On("Delete", ctx, tt.id).Return(nil)
			}

			err := svc.Delete(ctx, tt.id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			} else {
				assert.NoError(t, err)
			}
			m.AssertExpectations(t)
		})
	}
}

func TestProgramService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("name required", func(t *testing.T) {
		svc := NewProgramService(new(repoMocks.MockProgramRepository))
		_, err := svc.Create(ctx, ProgramInput{Name: "   "})
		assert.ErrorIs(t, err, ErrNameRequired)
	})

	t.Run("happy path trims the name", func(t *testing.T) {
		m := new(repoMocks.MockProgramRepository)
		svc := NewProgramService(m)

		dept := "dept-1"
		m.On("Create", ctx, mock.MatchedBy(func(p *model.Program) bool {
			return p.Name == "Computer Science" &&
				p.DepartmentID != nil && *p.DepartmentID == "dept-1" &&
				p.ID != ""
		})).Return(&model.Program{ID: "prog-1", Name: "Computer Science"}, nil)

		p, err := svc.Create(ctx, ProgramInput{Name: " Computer Science ", DepartmentID: &dept})
		assert.NoError(t, err)
		assert.Equal(t, "Computer Science", p.Name)
		m.AssertExpectations(t)
	})
}
