package task

import "context"

type StoreAPI interface {
	CreateTask(ctx context.Context, t Task) (Task, error)
	ListTasks(ctx context.Context, limit, offset int) ([]Task, error)
	CountTasks(ctx context.Context) (int, error)
	GetTask(ctx context.Context, id int64) (Task, error)
	UpdateTask(ctx context.Context, t Task) error
	DeleteTask(ctx context.Context, id int64) error
}

// EmployeeResolver answers whether an employee id currently exists.
type EmployeeResolver interface {
	Exists(ctx context.Context, id int64) (bool, error)
}
