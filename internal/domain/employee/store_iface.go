package employee

import "context"

type StoreAPI interface {
	CreateEmployee(ctx context.Context, emp Employee) (Employee, error)
	ListEmployees(ctx context.Context, limit, offset int) ([]Employee, error)
	CountEmployees(ctx context.Context) (int, error)
	GetEmployee(ctx context.Context, id int64) (Employee, error)
	UpdateEmployee(ctx context.Context, emp Employee) error
	DeleteEmployee(ctx context.Context, id int64) error
	CountAssignedTasks(ctx context.Context, id int64) (int, error)
	DeleteEmployeeWithTasks(ctx context.Context, id int64) (int64, error)
}
