package employee

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taskdesk/internal/platform/db"
)

type PGStore struct {
	DB *pgxpool.Pool
}

func NewPGStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{DB: pool}
}

func (s *PGStore) CreateEmployee(ctx context.Context, emp Employee) (Employee, error) {
	err := db.PG(ctx, s.DB).QueryRow(ctx, `
    INSERT INTO employees (name, role, email)
    VALUES ($1,$2,$3)
    RETURNING id
  `, emp.Name, emp.Role, emp.Email).Scan(&emp.ID)
	if err != nil {
		return Employee{}, err
	}
	return emp, nil
}

func (s *PGStore) ListEmployees(ctx context.Context, limit, offset int) ([]Employee, error) {
	rows, err := db.PG(ctx, s.DB).Query(ctx, `
    SELECT id, name, role, email
    FROM employees
    ORDER BY id
    LIMIT $1 OFFSET $2
  `, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Employee, 0, limit)
	for rows.Next() {
		var emp Employee
		if err := rows.Scan(&emp.ID, &emp.Name, &emp.Role, &emp.Email); err != nil {
			return nil, err
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (s *PGStore) CountEmployees(ctx context.Context) (int, error) {
	var total int
	if err := db.PG(ctx, s.DB).QueryRow(ctx, "SELECT COUNT(1) FROM employees").Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *PGStore) GetEmployee(ctx context.Context, id int64) (Employee, error) {
	var emp Employee
	err := db.PG(ctx, s.DB).QueryRow(ctx, `
    SELECT id, name, role, email
    FROM employees
    WHERE id = $1
  `, id).Scan(&emp.ID, &emp.Name, &emp.Role, &emp.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	if err != nil {
		return Employee{}, err
	}
	return emp, nil
}

func (s *PGStore) UpdateEmployee(ctx context.Context, emp Employee) error {
	cmd, err := db.PG(ctx, s.DB).Exec(ctx, `
    UPDATE employees
    SET name = $1,
        role = $2,
        email = $3
    WHERE id = $4
  `, emp.Name, emp.Role, emp.Email, emp.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PGStore) DeleteEmployee(ctx context.Context, id int64) error {
	cmd, err := db.PG(ctx, s.DB).Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PGStore) CountAssignedTasks(ctx context.Context, id int64) (int, error) {
	var count int
	err := db.PG(ctx, s.DB).QueryRow(ctx, "SELECT COUNT(1) FROM tasks WHERE assigned_to_id = $1", id).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *PGStore) DeleteEmployeeWithTasks(ctx context.Context, id int64) (int64, error) {
	tx, err := db.PG(ctx, s.DB).Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	tasks, err := tx.Exec(ctx, "DELETE FROM tasks WHERE assigned_to_id = $1", id)
	if err != nil {
		return 0, err
	}
	cmd, err := tx.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return 0, err
	}
	if cmd.RowsAffected() == 0 {
		return 0, ErrNotFound
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return tasks.RowsAffected(), nil
}
