package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"

	"qaportal/internal/config"
	"qaportal/internal/model"
	"qaportal/internal/repository"
	repoMocks "qaportal/internal/repository/mocks"
	"qaportal/internal/storage"
	storeMocks "qaportal/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(ctx context.Context, userID, title, message, kind string, relatedDocumentID *string) error {
	args := m.Called(ctx, userID, title, message, kind, relatedDocumentID)
	return args.Error(0)
}

type docServiceMocks struct {
	store    *storeMocks.MockStorage
	docs     *repoMocks.MockDocumentRepository
	logs     *repoMocks.MockStatusLogRepository
	users    *repoMocks.MockUserRepository
	notifier *mockNotifier
	activity *repoMocks.MockActivityLogRepository
}

func newDocService() (DocumentService, *docServiceMocks) {
	m := &docServiceMocks{
		store:    new(storeMocks.MockStorage),
		docs:     new(repoMocks.MockDocumentRepository),
		logs:     new(repoMocks.MockStatusLogRepository),
		users:    new(repoMocks.MockUserRepository),
		notifier: new(mockNotifier),
		activity: new(repoMocks.MockActivityLogRepository),
	}
	gate := NewUploadGate(config.UploadConfig{
		AllowedTypes: []string{"pdf", "doc", "docx"},
		MaxFileSize:  10 * 1024 * 1024,
	})
	roles := config.RolesConfig{Submitter: "faculty", Reviewer: "qaa staff"}
	svc := NewDocumentService(gate, m.store, m.docs, m.logs, m.users,
		m.notifier, NewActivityService(m.activity), roles)
	return svc, m
}

func (m *docServiceMocks) assertExpectations(t *testing.T) {
	m.store.AssertExpectations(t)
	m.docs.AssertExpectations(t)
	m.logs.AssertExpectations(t)
	m.users.AssertExpectations(t)
	m.notifier.AssertExpectations(t)
	m.activity.AssertExpectations(t)
}

func TestDocumentService_Upload(t *testing.T) {
	ctx := context.Background()
	faculty := model.Actor{ID: "user-1", Role: "faculty", FullName: "Jane Doe"}
	staff := model.Actor{ID: "user-2", Role: "qaa staff", FullName: "Rick Grey"}

	tests := []struct {
		name       string
		actor      model.Actor
		in         UploadInput
		setupMocks func(m *docServiceMocks) io.Reader
		wantErr    error
		wantErrMsg string
	}{
		{
			name:  "happy path with reviewer fan-out",
			actor: faculty,
			in: UploadInput{
				Title:       "Course Syllabus",
				Filename:    "syllabus.pdf",
				ContentType: "application/pdf",
				Size:        11,
			},
			setupMocks: func(m *docServiceMocks) io.Reader {
				r := strings.NewReader("hello world")
				m.store.On("Put", ctx, mock.MatchedBy(func(key string) bool {
					return strings.HasPrefix(key, "documents/") && strings.HasSuffix(key, ".pdf")
				}), r, storage.PutObjectOptions{
					Size:        11,
					ContentType: "application/pdf",
					Metadata:    map[string]string{"original-filename": "syllabus.pdf"},
				}).Return(storage.ObjectInfo{}, nil)

				m.docs.On("Create", ctx, mock.MatchedBy(func(doc *model.Document) bool {
					return doc.Title == "Course Syllabus" &&
						doc.Status == model.StatusDraft &&
						doc.UploadedBy == "user-1" &&
						doc.FileType == "pdf"
				})).Return(&model.Document{ID: "doc-1", Title: "Course Syllabus"}, nil)

				m.users.On("FindIDsByRole", ctx, "qaa staff").
					Return([]string{"rev-1", "rev-2"}, nil)
				m.notifier.On("Notify", ctx, "rev-1", "New Document Uploaded",
					"A new document 'Course Syllabus' has been uploaded by Jane Doe",
					"info", mock.Anything).Return(nil)
				m.notifier.On("Notify", ctx, "rev-2", "New Document Uploaded",
					"A new document 'Course Syllabus' has been uploaded by Jane Doe",
					"info", mock.Anything).Return(nil)
				m.activity.On("Record", ctx, mock.Anything).Return(nil)
				return r
			},
		},
		{
			name:  "no fan-out for reviewer uploads",
			actor: staff,
			in: UploadInput{
				Title:    "Audit Checklist",
				Filename: "checklist.docx",
				Size:     5,
			},
			setupMocks: func(m *docServiceMocks) io.Reader {
				r := strings.NewReader("hello")
				m.store.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{}, nil)
				m.docs.On("Create", ctx, mock.Anything).
					Return(&model.Document{ID: "doc-2", Title: "Audit Checklist"}, nil)
				m.activity.On("Record", ctx, mock.Anything).Return(nil)
				return r
			},
		},
		{
			name:  "validation - empty title",
			actor: faculty,
			in:    UploadInput{Title: "  ", Filename: "a.pdf", Size: 1},
			setupMocks: func(m *docServiceMocks) io.Reader {
				return strings.NewReader("x")
			},
			wantErr: ErrTitleRequired,
		},
		{
			name:  "validation - nil reader",
			actor: faculty,
			in:    UploadInput{Title: "T", Filename: "a.pdf", Size: 1},
			setupMocks: func(m *docServiceMocks) io.Reader {
				return nil
			},
			wantErr: ErrReaderNil,
		},
		{
			name:  "gate rejection leaves no side effects",
			actor: faculty,
			in:    UploadInput{Title: "T", Filename: "malware.exe", Size: 1},
			setupMocks: func(m *docServiceMocks) io.Reader {
				return strings.NewReader("x")
			},
			wantErr: ErrInvalidFileType,
		},
		{
			name:  "gate rejection - oversized file",
			actor: faculty,
			in:    UploadInput{Title: "T", Filename: "big.pdf", Size: 11 * 1024 * 1024},
			setupMocks: func(m *docServiceMocks) io.Reader {
				return strings.NewReader("x")
			},
			wantErr: ErrFileTooLarge,
		},
		{
			name:  "validation - unknown initial status",
			actor: faculty,
			in:    UploadInput{Title: "T", Filename: "a.pdf", Size: 1, Status: "pending"},
			setupMocks: func(m *docServiceMocks) io.Reader {
				return strings.NewReader("x")
			},
			wantErr: ErrInvalidStatus,
		},
		{
			name:  "storage error leaves no row",
			actor: faculty,
			in:    UploadInput{Title: "T", Filename: "a.pdf", Size: 5},
			setupMocks: func(m *docServiceMocks) io.Reader {
				r := strings.NewReader("hello")
				m.store.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{}, errors.New("storage fail"))
				return r
			},
			wantErrMsg: "store file: storage fail",
		},
		{
			name:  "repository error with successful rollback",
			actor: faculty,
			in:    UploadInput{Title: "T", Filename: "a.pdf", Size: 5},
			setupMocks: func(m *docServiceMocks) io.Reader {
				r := strings.NewReader("hello")
				m.store.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{}, nil)
				m.docs.On("Create", ctx, mock.Anything).
					Return(nil, errors.New("db fail"))
				m.store.On("Delete", ctx, mock.Anything).Return(nil)
				return r
			},
			wantErrMsg: "db save failed: db fail",
		},
		{
			name:  "repository error with failed rollback",
			actor: faculty,
			in:    UploadInput{Title: "T", Filename: "a.pdf", Size: 5},
			setupMocks: func(m *docServiceMocks) io.Reader {
				r := strings.NewReader("hello")
				m.store.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{}, nil)
				m.docs.On("Create", ctx, mock.Anything).
					Return(nil, errors.New("db fail"))
				m.store.On("Delete", ctx, mock.Anything).Return(errors.New("delete fail"))
				return r
			},
			wantErrMsg: "rollback delete failed: delete fail",
		},
		{
			name:  "reviewer lookup failure does not fail the upload",
			actor: faculty,
			in:    UploadInput{Title: "T", Filename: "a.pdf", Size: 5},
			setupMocks: func(m *docServiceMocks) io.Reader {
				r := strings.NewReader("hello")
				m.store.On("Put", ctx, mock.Anything, r, mock.Anything).
					Return(storage.ObjectInfo{}, nil)
				m.docs.On("Create", ctx, mock.Anything).
					Return(&model.Document{ID: "doc-3", Title: "T"}, nil)
				m.users.On("FindIDsByRole", ctx, "qaa staff").
					Return(nil, errors.New("db fail"))
				m.activity.On("Record", ctx, mock.Anything).Return(nil)
				return r
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newDocService()
			r := tt.setupMocks(m)

			doc, err := svc.Upload(ctx, tt.actor, tt.in, r)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, doc)
			} else if tt.wantErrMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
				assert.Nil(t, doc)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, doc)
			}
			m.assertExpectations(t)
		})
	}
}

func TestDocumentService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	reviewer := model.Actor{ID: "rev-1", Role: "qaa staff", FullName: "Rick Grey"}

	tests := []struct {
		name       string
		id         string
		status     model.DocumentStatus
		notes      string
		setupMocks func(m *docServiceMocks)
		wantErr    error
		wantErrMsg string
	}{
		{
			name:   "happy path without notes skips the log",
			id:     "doc-1",
			status: model.StatusApproved,
			notes:  "   ",
			setupMocks: func(m *docServiceMocks) {
				m.docs.On("UpdateStatus", ctx, "doc-1", model.StatusApproved).
					Return(&repository.StatusChange{
						OldStatus:  model.StatusSubmitted,
						UploadedBy: "user-1",
						Title:      "Course Syllabus",
					}, nil)
				m.notifier.On("Notify", ctx, "user-1", "Document Status Updated",
					"Your document 'Course Syllabus' status is now Approved",
					"info", mock.Anything).Return(nil)
				m.activity.On("Record", ctx, mock.Anything).Return(nil)
			},
		},
		{
			name:   "notes append a status log carrying the overwritten status",
			id:     "doc-1",
			status: model.StatusRejected,
			notes:  "missing signatures",
			setupMocks: func(m *docServiceMocks) {
				m.docs.On("UpdateStatus", ctx, "doc-1", model.StatusRejected).
					Return(&repository.StatusChange{
						OldStatus:  model.StatusSubmitted,
						UploadedBy: "user-1",
						Title:      "Course Syllabus",
					}, nil)
				m.logs.On("Append", ctx, mock.MatchedBy(func(e *model.StatusLog) bool {
					return e.DocumentID == "doc-1" &&
						e.OldStatus == model.StatusSubmitted &&
						e.NewStatus == model.StatusRejected &&
						e.Notes == "missing signatures" &&
						e.ChangedBy == "rev-1"
				})).Return(nil)
				m.notifier.On("Notify", ctx, "user-1", "Document Status Updated",
					"Your document 'Course Syllabus' status is now Rejected",
					"info", mock.Anything).Return(nil)
				m.activity.On("Record", ctx, mock.Anything).Return(nil)
			},
		},
		{
			name:       "validation - empty id",
			id:         "",
			status:     model.StatusApproved,
			setupMocks: func(m *docServiceMocks) {},
			wantErr:    ErrIDRequired,
		},
		{
			name:       "validation - unknown status",
			id:         "doc-1",
			status:     "pending",
			setupMocks: func(m *docServiceMocks) {},
			wantErr:    ErrInvalidStatus,
		},
		{
			name:   "not found",
			id:     "missing",
			status: model.StatusApproved,
			setupMocks: func(m *docServiceMocks) {
				m.docs.On("UpdateStatus", ctx, "missing", model.StatusApproved).
					Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
		{
			name:   "status log failure surfaces but the transition is kept",
			id:     "doc-1",
			status: model.StatusApproved,
			notes:  "looks good",
			setupMocks: func(m *docServiceMocks) {
				m.docs.On("UpdateStatus", ctx, "doc-1", model.StatusApproved).
					Return(&repository.StatusChange{
						OldStatus:  model.StatusSubmitted,
						UploadedBy: "user-1",
						Title:      "T",
					}, nil)
				m.logs.On("Append", ctx, mock.Anything).Return(errors.New("db fail"))
			},
			wantErrMsg: "append status log: db fail",
		},
		{
			name:   "owner notification failure does not fail the transition",
			id:     "doc-1",
			status: model.StatusArchived,
			setupMocks: func(m *docServiceMocks) {
				m.docs.On("UpdateStatus", ctx, "doc-1", model.StatusArchived).
					Return(&repository.StatusChange{
						OldStatus:  model.StatusApproved,
						UploadedBy: "user-1",
						Title:      "T",
					}, nil)
				m.notifier.On("Notify", ctx, "user-1", "Document Status Updated",
					"Your document 'T' status is now Archived",
					"info", mock.Anything).Return(errors.New("insert fail"))
				m.activity.On("Record", ctx, mock.Anything).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newDocService()
			tt.setupMocks(m)

			err := svc.UpdateStatus(ctx, reviewer, tt.id, tt.status, tt.notes)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else if tt.wantErrMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			} else {
				assert.NoError(t, err)
			}
			m.assertExpectations(t)
		})
	}
}

func TestDocumentService_Delete(t *testing.T) {
	ctx := context.Background()
	actor := model.Actor{ID: "admin-1", Role: "admin", FullName: "Root"}

	tests := []struct {
		name       string
		id         string
		setupMocks func(m *docServiceMocks)
		wantErr    error
		wantErrMsg string
	}{
		{
			name: "happy path removes primary and preview artifacts",
			id:   "doc-1",
			setupMocks: func(m *docServiceMocks) {
				m.docs.On("FindByID", ctx, "doc-1").Return(&model.Document{
					ID:       "doc-1",
					Title:    "Course Syllabus",
					FilePath: "documents/abc_1700000000.docx",
				}, nil)
				m.store.On("Delete", ctx, "documents/abc_1700000000.docx").Return(nil)
				m.store.On("Delete", ctx, "converted/abc_1700000000.pdf").Return(nil)
				m.docs.On("Delete", ctx, "doc-1").Return(nil)
				m.activity.On("Record", ctx, mock.Anything).Return(nil)
			},
		},
		{
			name: "missing artifacts are tolerated",
			id:   "doc-1",
			setupMocks: func(m *docServiceMocks) {
				m.docs.On("FindByID", ctx, "doc-1").Return(&model.Document{
					ID:       "doc-1",
					FilePath: "documents/abc.pdf",
				}, nil)
				m.store.On("Delete", ctx, "documents/abc.pdf").
					Return(storage.ErrObjectNotFound)
				m.store.On("Delete", ctx, "converted/abc.pdf").
					Return(storage.ErrObjectNotFound)
				m.docs.On("Delete", ctx, "doc-1").Return(nil)
				m.activity.On("Record", ctx, mock.Anything).Return(nil)
			},
		},
		{
			name:       "validation - empty id",
			id:         "",
			setupMocks: func(m *docServiceMocks) {},
			wantErr:    ErrIDRequired,
		},
		{
			name: "not found",
			id:   "missing",
			setupMocks: func(m *docServiceMocks) {
				m.docs.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
		{
			name: "storage failure aborts before the row delete",
			id:   "doc-1",
			setupMocks: func(m *docServiceMocks) {
				m.docs.On("FindByID", ctx, "doc-1").Return(&model.Document{
					ID:       "doc-1",
					FilePath: "documents/abc.pdf",
				}, nil)
				m.store.On("Delete", ctx, "documents/abc.pdf").
					Return(errors.New("io fail"))
			},
			wantErrMsg: "delete artifact: io fail",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newDocService()
			tt.setupMocks(m)

			err := svc.Delete(ctx, actor, tt.id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else if tt.wantErrMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			} else {
				assert.NoError(t, err)
			}
			m.assertExpectations(t)
		})
	}
}

func TestDocumentService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("filters pass through and defaults apply", func(t *testing.T) {
		svc, m := newDocService()
		f := repository.DocumentFilter{Search: "syllabus", Status: model.StatusApproved}
		m.docs.On("List", ctx, f, repository.PageQuery{Limit: 10, Offset: 0}).
			Return(&repository.PageResult[model.DocumentListItem]{
				Items: []model.DocumentListItem{{Document: model.Document{ID: "1"}}},
				Total: 1,
			}, nil)

		res, err := svc.List(ctx, f, 0, -5)
		assert.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.Len(t, res.Items, 1)
		m.assertExpectations(t)
	})

	t.Run("unknown status filter is rejected", func(t *testing.T) {
		svc, m := newDocService()
		_, err := svc.List(ctx, repository.DocumentFilter{Status: "pending"}, 10, 0)
		assert.ErrorIs(t, err, ErrInvalidStatus)
		m.assertExpectations(t)
	})
}

func TestPreviewKey(t *testing.T) {
	tests := []struct {
		fileKey string
		want    string
	}{
		{"documents/abc_1700000000.docx", "converted/abc_1700000000.pdf"},
		{"documents/report.pdf", "converted/report.pdf"},
		{"plain.xlsx", "converted/plain.pdf"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, previewKey(tt.fileKey))
	}
}
