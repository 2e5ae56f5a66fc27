package employee

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"taskdesk/internal/platform/db"
)

type SQLiteStore struct {
	DB *sql.DB
}

func NewSQLiteStore(sqlDB *sql.DB) *SQLiteStore {
	return &SQLiteStore{DB: sqlDB}
}

func (s *SQLiteStore) CreateEmployee(ctx context.Context, emp Employee) (Employee, error) {
	res, err := db.SQL(ctx, s.DB).ExecContext(ctx, `
    INSERT INTO employees (name, role, email)
    VALUES (?,?,?)
  `, emp.Name, emp.Role, emp.Email)
	if err != nil {
		return Employee{}, fmt.Errorf("insert employee: %w", err)
	}
	emp.ID, err = res.LastInsertId()
	if err != nil {
		return Employee{}, fmt.Errorf("insert employee: %w", err)
	}
	return emp, nil
}

func (s *SQLiteStore) ListEmployees(ctx context.Context, limit, offset int) ([]Employee, error) {
	rows, err := db.SQL(ctx, s.DB).QueryContext(ctx, `
    SELECT id, name, role, email
    FROM employees
    ORDER BY id
    LIMIT ? OFFSET ?
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

func (s *SQLiteStore) CountEmployees(ctx context.Context) (int, error) {
	var total int
	if err := db.SQL(ctx, s.DB).QueryRowContext(ctx, "SELECT COUNT(1) FROM employees").Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *SQLiteStore) GetEmployee(ctx context.Context, id int64) (Employee, error) {
	var emp Employee
	err := db.SQL(ctx, s.DB).QueryRowContext(ctx, `
    SELECT id, name, role, email
    FROM employees
    WHERE id = ?
  `, id).Scan(&emp.ID, &emp.Name, &emp.Role, &emp.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return Employee{}, ErrNotFound
	}
	if err != nil {
		return Employee{}, err
	}
	return emp, nil
}

func (s *SQLiteStore) UpdateEmployee(ctx context.Context, emp Employee) error {
	res, err := db.SQL(ctx, s.DB).ExecContext(ctx, `
    UPDATE employees
    SET name = ?, role = ?, email = ?
    WHERE id = ?
  `, emp.Name, emp.Role, emp.Email, emp.ID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *SQLiteStore) DeleteEmployee(ctx context.Context, id int64) error {
	res, err := db.SQL(ctx, s.DB).ExecContext(ctx, "DELETE FROM employees WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *SQLiteStore) CountAssignedTasks(ctx context.Context, id int64) (int, error) {
	var count int
	err := db.SQL(ctx, s.DB).QueryRowContext(ctx, "SELECT COUNT(1) FROM tasks WHERE assigned_to_id = ?", id).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *SQLiteStore) DeleteEmployeeWithTasks(ctx context.Context, id int64) (int64, error) {
	tx, err := db.SQL(ctx, s.DB).BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	tasks, err := tx.ExecContext(ctx, "DELETE FROM tasks WHERE assigned_to_id = ?", id)
	if err != nil {
		return 0, err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM employees WHERE id = ?", id)
	if err != nil {
		return 0, err
	}
	if err := requireAffected(res); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return tasks.RowsAffected()
}

func requireAffected(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
