package model

import "time"

// DocumentStatus is the review state of a document.
type DocumentStatus string

const (
	StatusDraft     DocumentStatus = "draft"
	StatusSubmitted DocumentStatus = "submitted"
	StatusApproved  DocumentStatus = "approved"
	StatusRejected  DocumentStatus = "rejected"
	StatusArchived  DocumentStatus = "archived"
)

// Valid reports whether s is one of the five known statuses.
// The transition graph is total: any valid status may follow any other.
// If business rules ever restrict transitions, this is the single place
// to add a transition table.
func (s DocumentStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusApproved, StatusRejected, StatusArchived:
		return true
	}
	return false
}

// Document represents an uploaded quality-assurance document.
// This is a pure domain model with no database-specific dependencies or tags.
type Document struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	FilePath     string         `json:"file_path"`
	FileType     string         `json:"file_type"`
	FileSize     int64          `json:"file_size"`
	UploadedBy   string         `json:"uploaded_by"`
	ProgramID    *string        `json:"program_id"`
	DepartmentID *string        `json:"department_id"`
	Status       DocumentStatus `json:"status"`
	UploadedAt   time.Time      `json:"uploaded_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// DocumentListItem is a document row enriched with display names for the
// uploader and the optional program/department references. Missing
// references carry the "N/A" sentinel instead of an empty string.
type DocumentListItem struct {
	Document
	UploaderName   string `json:"uploader_name"`
	ProgramName    string `json:"program_name"`
	DepartmentName string `json:"department_name"`
}

// StatusLog is an append-only audit record of a status change.
// A row exists only for transitions where the operator supplied notes.
type StatusLog struct {
	ID         string         `json:"id"`
	DocumentID string         `json:"document_id"`
	OldStatus  DocumentStatus `json:"old_status"`
	NewStatus  DocumentStatus `json:"new_status"`
	Notes      string         `json:"notes"`
	ChangedBy  string         `json:"changed_by"`
	ChangedAt  time.Time      `json:"changed_at"`
}
