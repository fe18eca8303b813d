package postgres

import (
	"context"
	"database/sql"

	"qaportal/internal/model"
	"qaportal/internal/repository"
)

// ProgramPostgres is a PostgreSQL implementation of repository.ProgramRepository.
type ProgramPostgres struct {
	db *sql.DB
}

func NewProgramPostgres(db *sql.DB) *ProgramPostgres {
	return &ProgramPostgres{db: db}
}

var _ repository.ProgramRepository = (*ProgramPostgres)(nil)

func (r *ProgramPostgres) Create(ctx context.Context, p *model.Program) (*model.Program, error) {
	const q = `
		INSERT INTO programs (id, name, department_id, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, department_id, description, created_at
	`
	var out model.Program
	err := r.db.QueryRowContext(ctx, q, p.ID, p.Name, p.DepartmentID, p.Description, p.CreatedAt).
		Scan(&out.ID, &out.Name, &out.DepartmentID, &out.Description, &out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ProgramPostgres) Update(ctx context.Context, p *model.Program) error {
	const q = `UPDATE programs SET name = $1, department_id = $2, description = $3 WHERE id = $4`
	res, err := r.db.ExecContext(ctx, q, p.Name, p.DepartmentID, p.Description, p.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *ProgramPostgres) FindByID(ctx context.Context, id string) (*model.Program, error) {
	const q = `SELECT id, name, department_id, description, created_at FROM programs WHERE id = $1`
	var p model.Program
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&p.ID, &p.Name, &p.DepartmentID, &p.Description, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProgramPostgres) List(ctx context.Context) ([]repository.ProgramListItem, error) {
	const q = `
		SELECT p.id, p.name, p.department_id, p.description, p.created_at,
			COALESCE(d.name, 'N/A') AS department_name
		FROM programs p
		LEFT JOIN departments d ON p.department_id = d.id
		ORDER BY p.name
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]repository.ProgramListItem, 0)
	for rows.Next() {
		var it repository.ProgramListItem
		if err := rows.Scan(&it.ID, &it.Name, &it.DepartmentID, &it.Description, &it.CreatedAt, &it.DepartmentName); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *ProgramPostgres) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM programs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *ProgramPostgres) References(ctx context.Context, id string) (repository.ProgramRefs, error) {
	const q = `
		SELECT
			(SELECT COUNT(*) FROM documents WHERE program_id = $1),
			(SELECT COUNT(*) FROM users WHERE program_id = $1)
	`
	var refs repository.ProgramRefs
	err := r.db.QueryRowContext(ctx, q, id).Scan(&refs.Documents, &refs.Users)
	return refs, err
}

// DepartmentPostgres is a PostgreSQL implementation of repository.DepartmentRepository.
type DepartmentPostgres struct {
	db *sql.DB
}

func NewDepartmentPostgres(db *sql.DB) *DepartmentPostgres {
	return &DepartmentPostgres{db: db}
}

var _ repository.DepartmentRepository = (*DepartmentPostgres)(nil)

func (r *DepartmentPostgres) Create(ctx context.Context, d *model.Department) (*model.Department, error) {
	const q = `
		INSERT INTO departments (id, name, description, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, description, created_at
	`
	var out model.Department
	err := r.db.QueryRowContext(ctx, q, d.ID, d.Name, d.Description, d.CreatedAt).
		Scan(&out.ID, &out.Name, &out.Description, &out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *DepartmentPostgres) Update(ctx context.Context, d *model.Department) error {
	const q = `UPDATE departments SET name = $1, description = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, q, d.Name, d.Description, d.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *DepartmentPostgres) FindByID(ctx context.Context, id string) (*model.Department, error) {
	const q = `SELECT id, name, description, created_at FROM departments WHERE id = $1`
	var d model.Department
	err := r.db.QueryRowContext(ctx, q, id).Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DepartmentPostgres) List(ctx context.Context) ([]model.Department, error) {
	const q = `SELECT id, name, description, created_at FROM departments ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deps := make([]model.Department, 0)
	for rows.Next() {
		var d model.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt); err != nil {
			return nil, err
		}
		deps = append(deps, d)
	}
	return deps, rows.Err()
}

func (r *DepartmentPostgres) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *DepartmentPostgres) References(ctx context.Context, id string) (repository.DepartmentRefs, error) {
	const q = `
		SELECT
			(SELECT COUNT(*) FROM programs WHERE department_id = $1),
			(SELECT COUNT(*) FROM users WHERE department_id = $1),
			(SELECT COUNT(*) FROM documents WHERE department_id = $1)
	`
	var refs repository.DepartmentRefs
	err := r.db.QueryRowContext(ctx, q, id).Scan(&refs.Programs, &refs.Users, &refs.Documents)
	return refs, err
}

// requireRow maps a zero-rows-affected result to sql.ErrNoRows.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
