package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"qaportal/internal/config"
	"qaportal/internal/model"
	"qaportal/internal/repository"
	"qaportal/internal/storage"
)

const (
	documentPrefix = "documents"
	convertedDir   = "converted"
)

// UploadInput carries the caller-validated fields of a document upload.
// Filename is used only to extract the extension; the stored name is a
// generated collision-resistant key.
type UploadInput struct {
	Title        string
	Description  string
	ProgramID    *string
	DepartmentID *string
	// Status is the optional initial status; empty means draft.
	Status      model.DocumentStatus
	Filename    string
	ContentType string
	Size        int64
}

// DocumentListResult is the service-level DTO for filtered documents.
type DocumentListResult struct {
	Items []model.DocumentListItem `json:"data"`
	Total int                      `json:"total"`
}

// DocumentService owns the document lifecycle: upload placement and
// compensation, status transitions with their audit trail, notification
// triggering, and artifact cleanup on delete.
type DocumentService interface {
	// Upload validates the file through the gate, places it in storage,
	// persists the row, and fans out reviewer notifications when a
	// submitter-role actor uploads. Storage is rolled back if the DB save fails.
	Upload(ctx context.Context, actor model.Actor, in UploadInput, r io.Reader) (*model.Document, error)

	// List returns filtered documents with display names and a total count.
	List(ctx context.Context, f repository.DocumentFilter, limit, offset int) (*DocumentListResult, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*model.Document, error)

	// Download streams the primary stored artifact.
	Download(ctx context.Context, id string) (io.ReadCloser, storage.ObjectInfo, error)

	// Preview streams the derived preview artifact if one exists, falling
	// back to the primary artifact.
	Preview(ctx context.Context, id string) (io.ReadCloser, storage.ObjectInfo, error)

	// UpdateStatus transitions a document's status, appending a status log
	// row when notes are supplied and notifying the owner.
	UpdateStatus(ctx context.Context, actor model.Actor, id string, status model.DocumentStatus, notes string) error

	// Delete removes the primary artifact, any derived preview, and the row.
	Delete(ctx context.Context, actor model.Actor, id string) error

	// History returns a document's status log, newest first.
	History(ctx context.Context, id string) ([]model.StatusLog, error)
}

type documentService struct {
	gate     *UploadGate
	store    storage.Storage
	docs     repository.DocumentRepository
	logs     repository.StatusLogRepository
	users    repository.UserRepository
	notifier Notifier
	activity ActivityService
	roles    config.RolesConfig
}

// NewDocumentService constructs the document lifecycle service.
func NewDocumentService(
	gate *UploadGate,
	store storage.Storage,
	docs repository.DocumentRepository,
	logs repository.StatusLogRepository,
	users repository.UserRepository,
	notifier Notifier,
	activity ActivityService,
	roles config.RolesConfig,
) DocumentService {
	return &documentService{
		gate:     gate,
		store:    store,
		docs:     docs,
		logs:     logs,
		users:    users,
		notifier: notifier,
		activity: activity,
		roles:    roles,
	}
}

func (s *documentService) Upload(ctx context.Context, actor model.Actor, in UploadInput, r io.Reader) (*model.Document, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if r == nil {
		return nil, ErrReaderNil
	}

	status := in.Status
	if status == "" {
		status = model.StatusDraft
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	// Gate first: a rejected file leaves no row and no artifact.
	ext, err := s.gate.Validate(in.Filename, in.Size)
	if err != nil {
		return nil, err
	}

	key := storageKey(ext)
	contentType := in.ContentType
	if contentType == "" {
		contentType = mime.TypeByExtension("." + ext)
	}

	if _, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        in.Size,
		ContentType: contentType,
		Metadata:    map[string]string{"original-filename": in.Filename},
	}); err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	now := time.Now().UTC()
	doc := &model.Document{
		ID:           uuid.New().String(),
		Title:        title,
		Description:  in.Description,
		FilePath:     key,
		FileType:     ext,
		FileSize:     in.Size,
		UploadedBy:   actor.ID,
		ProgramID:    in.ProgramID,
		DepartmentID: in.DepartmentID,
		Status:       status,
		UploadedAt:   now,
		UpdatedAt:    now,
	}
	stored, err := s.docs.Create(ctx, doc)
	if err != nil {
		// Compensating action: an orphaned artifact must not survive a
		// failed insert.
		if delErr := s.store.Delete(ctx, key); delErr != nil && !errors.Is(delErr, storage.ErrObjectNotFound) {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	if actor.Role == s.roles.Submitter {
		s.notifyReviewers(ctx, stored, actor)
	}
	s.activity.Record(ctx, actor.ID, "upload_document", "Uploaded document: "+stored.Title)

	return stored, nil
}

// notifyReviewers addresses an upload notification to every reviewer-role
// user. Best-effort: failures are logged and swallowed.
func (s *documentService) notifyReviewers(ctx context.Context, doc *model.Document, actor model.Actor) {
	ids, err := s.users.FindIDsByRole(ctx, s.roles.Reviewer)
	if err != nil {
		logEvent(map[string]any{
			"level":         "error",
			"component":     "documents",
			"event":         "reviewer_lookup_failed",
			"document_id":   doc.ID,
			"error_message": err.Error(),
		})
		return
	}
	msg := fmt.Sprintf("A new document '%s' has been uploaded by %s", doc.Title, actor.FullName)
	for _, id := range ids {
		if err := s.notifier.Notify(ctx, id, "New Document Uploaded", msg, "info", &doc.ID); err != nil {
			logEvent(map[string]any{
				"level":         "error",
				"component":     "documents",
				"event":         "notification_failed",
				"document_id":   doc.ID,
				"recipient":     id,
				"error_message": err.Error(),
			})
		}
	}
}

func (s *documentService) List(ctx context.Context, f repository.DocumentFilter, limit, offset int) (*DocumentListResult, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, f.Status)
	}
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.docs.List(ctx, f, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) Download(ctx context.Context, id string) (io.ReadCloser, storage.ObjectInfo, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, storage.ObjectInfo{}, err
	}
	rc, info, err := s.store.Get(ctx, doc.FilePath)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, storage.ObjectInfo{}, ErrNotFound
		}
		return nil, storage.ObjectInfo{}, err
	}
	return rc, info, nil
}

func (s *documentService) Preview(ctx context.Context, id string) (io.ReadCloser, storage.ObjectInfo, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, storage.ObjectInfo{}, err
	}
	preview := previewKey(doc.FilePath)
	if ok, err := s.store.Exists(ctx, preview); err == nil && ok {
		return s.store.Get(ctx, preview)
	}
	rc, info, err := s.store.Get(ctx, doc.FilePath)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, storage.ObjectInfo{}, ErrNotFound
		}
		return nil, storage.ObjectInfo{}, err
	}
	return rc, info, nil
}

func (s *documentService) UpdateStatus(ctx context.Context, actor model.Actor, id string, status model.DocumentStatus, notes string) error {
	if id == "" {
		return ErrIDRequired
	}
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	// One atomic statement: the overwritten status comes back with the
	// update, so concurrent transitions cannot log a stale old_status.
	change, err := s.docs.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update status: %w", err)
	}

	if notes = strings.TrimSpace(notes); notes != "" {
		entry := &model.StatusLog{
			ID:         uuid.New().String(),
			DocumentID: id,
			OldStatus:  change.OldStatus,
			NewStatus:  status,
			Notes:      notes,
			ChangedBy:  actor.ID,
			ChangedAt:  time.Now().UTC(),
		}
		if err := s.logs.Append(ctx, entry); err != nil {
			// The status change is already committed and is kept; the
			// failed log write still surfaces to the caller.
			return fmt.Errorf("append status log: %w", err)
		}
	}

	msg := fmt.Sprintf("Your document '%s' status is now %s", change.Title, capitalize(string(status)))
	if err := s.notifier.Notify(ctx, change.UploadedBy, "Document Status Updated", msg, "info", &id); err != nil {
		logEvent(map[string]any{
			"level":         "error",
			"component":     "documents",
			"event":         "notification_failed",
			"document_id":   id,
			"recipient":     change.UploadedBy,
			"error_message": err.Error(),
		})
	}
	s.activity.Record(ctx, actor.ID, "update_document_status",
		fmt.Sprintf("Updated document %s status to %s", id, status))

	return nil
}

func (s *documentService) Delete(ctx context.Context, actor model.Actor, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	// Artifacts go first so a failed row delete leaves at worst a dangling
	// row, never an orphaned file. Absent artifacts are tolerated.
	if err := s.store.Delete(ctx, doc.FilePath); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
		return fmt.Errorf("delete artifact: %w", err)
	}
	if err := s.store.Delete(ctx, previewKey(doc.FilePath)); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
		return fmt.Errorf("delete preview artifact: %w", err)
	}

	if err := s.docs.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("delete document row: %w", err)
	}

	s.activity.Record(ctx, actor.ID, "delete_document", "Deleted document: "+doc.Title)
	return nil
}

func (s *documentService) History(ctx context.Context, id string) ([]model.StatusLog, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	return s.logs.ListByDocument(ctx, id)
}

// storageKey generates a collision-resistant key for a primary artifact:
// random token + timestamp + normalized extension.
func storageKey(ext string) string {
	name := fmt.Sprintf("%s_%d.%s", uuid.New().String(), time.Now().Unix(), ext)
	return path.Join(documentPrefix, name)
}

// previewKey maps a primary artifact key to its derived preview: the
// converted/ directory keyed by the primary's base name with a pdf extension.
func previewKey(fileKey string) string {
	base := strings.TrimSuffix(path.Base(fileKey), path.Ext(fileKey))
	return path.Join(convertedDir, base+".pdf")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
