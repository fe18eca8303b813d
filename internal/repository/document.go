package repository

import (
	"context"

	"qaportal/internal/model"
)

// DocumentFilter narrows a document listing. Zero-valued fields are omitted
// from the predicate entirely; set fields combine with AND.
type DocumentFilter struct {
	// Search matches the title by case-insensitive substring.
	Search       string
	Status       model.DocumentStatus
	ProgramID    string
	DepartmentID string
}

// StatusChange is what a status update reports back: the status that was
// overwritten plus the owner and title needed for logging and notification.
// All three come from the same atomic statement as the update itself.
type StatusChange struct {
	OldStatus  model.DocumentStatus
	UploadedBy string
	Title      string
}

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here — strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document record and returns the stored row
	// (may include values set by the DB).
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// List returns filtered documents enriched with uploader/program/department
	// names, newest uploads first, plus the total row count for the filter.
	List(ctx context.Context, f DocumentFilter, pq PageQuery) (*PageResult[model.DocumentListItem], error)

	// UpdateStatus sets the document's status and refreshes updated_at in a
	// single atomic statement, returning the previous status alongside the
	// owner and title. Returns sql.ErrNoRows-wrapped error if the id is absent.
	UpdateStatus(ctx context.Context, id string, status model.DocumentStatus) (*StatusChange, error)

	// Delete removes a document row by ID.
	Delete(ctx context.Context, id string) error
}

// StatusLogRepository persists the append-only status change audit trail.
type StatusLogRepository interface {
	// Append inserts one status log row. Rows are never updated or deleted.
	Append(ctx context.Context, entry *model.StatusLog) error

	// ListByDocument returns a document's status history, newest first.
	ListByDocument(ctx context.Context, documentID string) ([]model.StatusLog, error)
}
