package task

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

func (s *SQLiteStore) CreateTask(ctx context.Context, t Task) (Task, error) {
	res, err := db.SQL(ctx, s.DB).ExecContext(ctx, `
    INSERT INTO tasks (title, description, assigned_to_id, status, due_date)
    VALUES (?,?,?,?,?)
  `, t.Title, t.Description, t.AssignedToID, t.Status, t.DueDate)
	if err != nil {
		return Task{}, fmt.Errorf("insert task: %w", err)
	}
	t.ID, err = res.LastInsertId()
	if err != nil {
		return Task{}, fmt.Errorf("insert task: %w", err)
	}
	return t, nil
}

func (s *SQLiteStore) ListTasks(ctx context.Context, limit, offset int) ([]Task, error) {
	rows, err := db.SQL(ctx, s.DB).QueryContext(ctx, `
    SELECT id, title, description, assigned_to_id, status, due_date
    FROM tasks
    ORDER BY id
    LIMIT ? OFFSET ?
  `, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Task, 0, limit)
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.AssignedToID, &t.Status, &t.DueDate); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) CountTasks(ctx context.Context) (int, error) {
	var total int
	if err := db.SQL(ctx, s.DB).QueryRowContext(ctx, "SELECT COUNT(1) FROM tasks").Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *SQLiteStore) GetTask(ctx context.Context, id int64) (Task, error) {
	var t Task
	err := db.SQL(ctx, s.DB).QueryRowContext(ctx, `
    SELECT id, title, description, assigned_to_id, status, due_date
    FROM tasks
    WHERE id = ?
  `, id).Scan(&t.ID, &t.Title, &t.Description, &t.AssignedToID, &t.Status, &t.DueDate)
	if errors.Is(err, sql.ErrNoRows) {
		return Task{}, ErrNotFound
	}
	if err != nil {
		return Task{}, err
	}
	return t, nil
}

func (s *SQLiteStore) UpdateTask(ctx context.Context, t Task) error {
	res, err := db.SQL(ctx, s.DB).ExecContext(ctx, `
    UPDATE tasks
    SET title = ?, description = ?, assigned_to_id = ?, status = ?, due_date = ?
    WHERE id = ?
  `, t.Title, t.Description, t.AssignedToID, t.Status, t.DueDate, t.ID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (s *SQLiteStore) DeleteTask(ctx context.Context, id int64) error {
	res, err := db.SQL(ctx, s.DB).ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireAffected(res)
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
