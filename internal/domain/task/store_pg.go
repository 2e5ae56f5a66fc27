package task

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

func (s *PGStore) CreateTask(ctx context.Context, t Task) (Task, error) {
	err := db.PG(ctx, s.DB).QueryRow(ctx, `
    INSERT INTO tasks (title, description, assigned_to_id, status, due_date)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id
  `, t.Title, t.Description, t.AssignedToID, t.Status, t.DueDate).Scan(&t.ID)
	if err != nil {
		return Task{}, err
	}
	return t, nil
}

func (s *PGStore) ListTasks(ctx context.Context, limit, offset int) ([]Task, error) {
	rows, err := db.PG(ctx, s.DB).Query(ctx, `
    SELECT id, title, description, assigned_to_id, status, due_date
    FROM tasks
    ORDER BY id
    LIMIT $1 OFFSET $2
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

func (s *PGStore) CountTasks(ctx context.Context) (int, error) {
	var total int
	if err := db.PG(ctx, s.DB).QueryRow(ctx, "SELECT COUNT(1) FROM tasks").Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *PGStore) GetTask(ctx context.Context, id int64) (Task, error) {
	var t Task
	err := db.PG(ctx, s.DB).QueryRow(ctx, `
    SELECT id, title, description, assigned_to_id, status, due_date
    FROM tasks
    WHERE id = $1
  `, id).Scan(&t.ID, &t.Title, &t.Description, &t.AssignedToID, &t.Status, &t.DueDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return Task{}, ErrNotFound
	}
	if err != nil {
		return Task{}, err
	}
	return t, nil
}

func (s *PGStore) UpdateTask(ctx context.Context, t Task) error {
	cmd, err := db.PG(ctx, s.DB).Exec(ctx, `
    UPDATE tasks
    SET title = $1,
        description = $2,
        assigned_to_id = $3,
        status = $4,
        due_date = $5
    WHERE id = $6
  `, t.Title, t.Description, t.AssignedToID, t.Status, t.DueDate, t.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PGStore) DeleteTask(ctx context.Context, id int64) error {
	cmd, err := db.PG(ctx, s.DB).Exec(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
