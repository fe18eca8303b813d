package service

import "errors"

// Sentinel errors shared by the services. Handlers translate these into
// HTTP status codes and machine-readable error codes.
var (
	// Validation failures: reported before any side effect happens.
	ErrIDRequired       = errors.New("id is required")
	ErrTitleRequired    = errors.New("title is required")
	ErrNameRequired     = errors.New("name is required")
	ErrReaderNil        = errors.New("reader is nil")
	ErrPasswordMismatch = errors.New("passwords do not match")

	// Upload gate rejections: pure validation, no side effects.
	ErrInvalidFileType = errors.New("invalid file type")
	ErrFileTooLarge    = errors.New("file size too large")

	// ErrInvalidStatus rejects a status outside the five-value set before
	// anything is written.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrNotFound reports an absent entity.
	ErrNotFound = errors.New("not found")

	// ErrInUse refuses deleting an entity other rows still reference.
	ErrInUse = errors.New("resource is in use")

	// ErrSelfDelete refuses deleting the acting user's own account.
	ErrSelfDelete = errors.New("cannot delete your own account")
)
