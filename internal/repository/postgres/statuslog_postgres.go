package postgres

import (
	"context"
	"database/sql"

	"qaportal/internal/model"
	"qaportal/internal/repository"
)

// StatusLogPostgres persists document status change logs. Rows are
// append-only: there is no update or delete path.
type StatusLogPostgres struct {
	db *sql.DB
}

func NewStatusLogPostgres(db *sql.DB) *StatusLogPostgres {
	return &StatusLogPostgres{db: db}
}

var _ repository.StatusLogRepository = (*StatusLogPostgres)(nil)

func (r *StatusLogPostgres) Append(ctx context.Context, entry *model.StatusLog) error {
	const q = `
		INSERT INTO document_status_logs (id, document_id, old_status, new_status, notes, changed_by, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, q,
		entry.ID,
		entry.DocumentID,
		entry.OldStatus,
		entry.NewStatus,
		entry.Notes,
		entry.ChangedBy,
		entry.ChangedAt,
	)
	return err
}

func (r *StatusLogPostgres) ListByDocument(ctx context.Context, documentID string) ([]model.StatusLog, error) {
	const q = `
		SELECT id, document_id, old_status, new_status, notes, changed_by, changed_at
		FROM document_status_logs
		WHERE document_id = $1
		ORDER BY changed_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]model.StatusLog, 0)
	for rows.Next() {
		var l model.StatusLog
		if err := rows.Scan(
			&l.ID,
			&l.DocumentID,
			&l.OldStatus,
			&l.NewStatus,
			&l.Notes,
			&l.ChangedBy,
			&l.ChangedAt,
		); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
