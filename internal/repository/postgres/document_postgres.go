package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"qaportal/internal/model"
	"qaportal/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `id, title, description, file_path, file_type, file_size,
		uploaded_by, program_id, department_id, status, uploaded_at, updated_at`

func scanDocument(row interface{ Scan(...any) error }, d *model.Document) error {
	return row.Scan(
		&d.ID,
		&d.Title,
		&d.Description,
		&d.FilePath,
		&d.FileType,
		&d.FileSize,
		&d.UploadedBy,
		&d.ProgramID,
		&d.DepartmentID,
		&d.Status,
		&d.UploadedAt,
		&d.UpdatedAt,
	)
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (id, title, description, file_path, file_type, file_size,
			uploaded_by, program_id, department_id, status, uploaded_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.Title,
		doc.Description,
		doc.FilePath,
		doc.FileType,
		doc.FileSize,
		doc.UploadedBy,
		doc.ProgramID,
		doc.DepartmentID,
		doc.Status,
		doc.UploadedAt,
		doc.UpdatedAt,
	)
	var out model.Document
	if err := scanDocument(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	var d model.Document
	if err := scanDocument(r.db.QueryRowContext(ctx, q, id), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// buildFilter renders the WHERE clause for a DocumentFilter. Empty fields are
// omitted entirely, not treated as match-empty-string.
func buildFilter(f repository.DocumentFilter) (string, []any) {
	var (
		preds []string
		args  []any
	)
	add := func(pred string, arg any) {
		args = append(args, arg)
		preds = append(preds, fmt.Sprintf(pred, len(args)))
	}

	if f.Search != "" {
		add("d.title ILIKE $%d", "%"+f.Search+"%")
	}
	if f.Status != "" {
		add("d.status = $%d", f.Status)
	}
	if f.ProgramID != "" {
		add("d.program_id = $%d", f.ProgramID)
	}
	if f.DepartmentID != "" {
		add("d.department_id = $%d", f.DepartmentID)
	}

	if len(preds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(preds, " AND "), args
}

// List returns filtered documents enriched via left joins, newest uploads
// first, along with the total count for the filter.
func (r *DocumentPostgres) List(ctx context.Context, f repository.DocumentFilter, pq repository.PageQuery) (*repository.PageResult[model.DocumentListItem], error) {
	where, args := buildFilter(f)

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents d"+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	q := `
		SELECT d.id, d.title, d.description, d.file_path, d.file_type, d.file_size,
			d.uploaded_by, d.program_id, d.department_id, d.status, d.uploaded_at, d.updated_at,
			COALESCE(NULLIF(TRIM(u.first_name || ' ' || u.last_name), ''), 'N/A') AS uploader_name,
			COALESCE(p.name, 'N/A') AS program_name,
			COALESCE(dept.name, 'N/A') AS department_name
		FROM documents d
		LEFT JOIN users u ON d.uploaded_by = u.id
		LEFT JOIN programs p ON d.program_id = p.id
		LEFT JOIN departments dept ON d.department_id = dept.id` + where + `
		ORDER BY d.uploaded_at DESC, d.id DESC
		LIMIT $` + fmt.Sprint(len(args)+1) + ` OFFSET $` + fmt.Sprint(len(args)+2)

	rows, err := r.db.QueryContext(ctx, q, append(args, pq.Limit, pq.Offset)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.DocumentListItem, 0)
	for rows.Next() {
		var it model.DocumentListItem
		if err := rows.Scan(
			&it.ID,
			&it.Title,
			&it.Description,
			&it.FilePath,
			&it.FileType,
			&it.FileSize,
			&it.UploadedBy,
			&it.ProgramID,
			&it.DepartmentID,
			&it.Status,
			&it.UploadedAt,
			&it.UpdatedAt,
			&it.UploaderName,
			&it.ProgramName,
			&it.DepartmentName,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.DocumentListItem]{
		Items: items,
		Total: total,
	}, nil
}

// UpdateStatus sets the status and refreshes updated_at, returning the
// overwritten status plus owner and title from the same statement. The
// row-locked subquery makes read-old-then-write atomic under concurrent
// transitions.
func (r *DocumentPostgres) UpdateStatus(ctx context.Context, id string, status model.DocumentStatus) (*repository.StatusChange, error) {
	const q = `
		UPDATE documents d
		SET status = $1, updated_at = now()
		FROM (SELECT id, status AS old_status FROM documents WHERE id = $2 FOR UPDATE) prev
		WHERE d.id = prev.id
		RETURNING prev.old_status, d.uploaded_by, d.title
	`
	var sc repository.StatusChange
	if err := r.db.QueryRowContext(ctx, q, status, id).Scan(&sc.OldStatus, &sc.UploadedBy, &sc.Title); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Delete removes a document row by ID. A missing row surfaces as
// sql.ErrNoRows so callers can distinguish repeat deletes.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM documents WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
