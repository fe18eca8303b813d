package postgres

import (
	"context"
	"database/sql"

	"qaportal/internal/model"
	"qaportal/internal/repository"
)

// ActivityLogPostgres is the PostgreSQL audit sink.
type ActivityLogPostgres struct {
	db *sql.DB
}

func NewActivityLogPostgres(db *sql.DB) *ActivityLogPostgres {
	return &ActivityLogPostgres{db: db}
}

var _ repository.ActivityLogRepository = (*ActivityLogPostgres)(nil)

func (r *ActivityLogPostgres) Record(ctx context.Context, entry *model.ActivityEntry) error {
	const q = `
		INSERT INTO activity_logs (id, user_id, action, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, q, entry.ID, entry.UserID, entry.Action, entry.Description, entry.CreatedAt)
	return err
}

func (r *ActivityLogPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.ActivityEntry], error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM activity_logs`).Scan(&total); err != nil {
		return nil, err
	}

	const q = `
		SELECT id, user_id, action, description, created_at
		FROM activity_logs
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, q, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ActivityEntry, 0)
	for rows.Next() {
		var e model.ActivityEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.Description, &e.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.ActivityEntry]{Items: items, Total: total}, nil
}
