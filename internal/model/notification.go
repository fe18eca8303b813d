package model

import "time"

// Notification is an in-app message addressed to a single user.
// Only the read flag mutates after creation, and only by the recipient.
type Notification struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	Title             string    `json:"title"`
	Message           string    `json:"message"`
	Kind              string    `json:"kind"`
	RelatedDocumentID *string   `json:"related_document_id"`
	IsRead            bool      `json:"is_read"`
	CreatedAt         time.Time `json:"created_at"`
}

// ActivityEntry is a fire-and-forget audit record of an administrative action.
type ActivityEntry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
