package db

import (
	"context"
	"log/slog"
)

type seedEmployee struct {
	name, role, email string
	tasks             []seedTask
}

type seedTask struct {
	title, description, status, dueDate string
}

var demoEmployees = []seedEmployee{
	{
		name: "Ann", role: "Eng", email: "ann@example.com",
		tasks: []seedTask{
			{title: "Fix login bug", description: "Session cookie is dropped on refresh", status: "in_progress", dueDate: "2024-01-15"},
			{title: "Review onboarding doc", description: "", status: "pending", dueDate: "2024-01-20"},
		},
	},
	{
		name: "Bo", role: "Ops", email: "bo@example.com",
		tasks: []seedTask{
			{title: "Rotate TLS certificates", description: "Edge proxies", status: "completed", dueDate: "2024-01-05"},
		},
	},
}

// Seed inserts demo employees and tasks into an empty database. It is a no-op
// once any employee exists.
func (d *Database) Seed(ctx context.Context) error {
	empty, err := d.employeesEmpty(ctx)
	if err != nil || !empty {
		return err
	}

	for _, emp := range demoEmployees {
		id, err := d.insertSeedEmployee(ctx, emp)
		if err != nil {
			return err
		}
		for _, task := range emp.tasks {
			if err := d.insertSeedTask(ctx, id, task); err != nil {
				return err
			}
		}
	}
	slog.Info("demo data seeded", "employees", len(demoEmployees))
	return nil
}

func (d *Database) employeesEmpty(ctx context.Context) (bool, error) {
	var count int
	var err error
	if d.Driver == DriverPostgres {
		err = d.Pool.QueryRow(ctx, "SELECT COUNT(1) FROM employees").Scan(&count)
	} else {
		err = d.SQL.QueryRowContext(ctx, "SELECT COUNT(1) FROM employees").Scan(&count)
	}
	return count == 0, err
}

func (d *Database) insertSeedEmployee(ctx context.Context, emp seedEmployee) (int64, error) {
	var id int64
	if d.Driver == DriverPostgres {
		err := d.Pool.QueryRow(ctx, "INSERT INTO employees (name, role, email) VALUES ($1,$2,$3) RETURNING id",
			emp.name, emp.role, emp.email).Scan(&id)
		return id, err
	}
	res, err := d.SQL.ExecContext(ctx, "INSERT INTO employees (name, role, email) VALUES (?,?,?)", emp.name, emp.role, emp.email)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (d *Database) insertSeedTask(ctx context.Context, employeeID int64, task seedTask) error {
	var err error
	if d.Driver == DriverPostgres {
		_, err = d.Pool.Exec(ctx, `
    INSERT INTO tasks (title, description, assigned_to_id, status, due_date)
    VALUES ($1,$2,$3,$4,$5)
  `, task.title, task.description, employeeID, task.status, task.dueDate)
		return err
	}
	_, err = d.SQL.ExecContext(ctx, `
    INSERT INTO tasks (title, description, assigned_to_id, status, due_date)
    VALUES (?,?,?,?,?)
  `, task.title, task.description, employeeID, task.status, task.dueDate)
	return err
}
