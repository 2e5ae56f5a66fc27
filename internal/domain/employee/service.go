package employee

import (
	"context"
	"errors"
	"log/slog"

	"taskdesk/internal/platform/validation"
)

// DeletePolicy decides what happens to tasks still assigned to an employee
// that is being deleted.
type DeletePolicy string

const (
	DeleteOrphan   DeletePolicy = "orphan"
	DeleteRestrict DeletePolicy = "restrict"
	DeleteCascade  DeletePolicy = "cascade"
)

type Service struct {
	store  StoreAPI
	policy DeletePolicy
}

func NewService(store StoreAPI, policy DeletePolicy) *Service {
	if policy == "" {
		policy = DeleteOrphan
	}
	return &Service{store: store, policy: policy}
}

func (s *Service) Policy() DeletePolicy {
	return s.policy
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Employee, error) {
	if err := in.Validate(); err != nil {
		return Employee{}, err
	}
	emp, err := s.store.CreateEmployee(ctx, Employee{Name: in.Name, Role: in.Role, Email: in.Email})
	if err != nil {
		return Employee{}, err
	}
	slog.Info("employee created", "id", emp.ID, "name", emp.Name)
	return emp, nil
}

func (s *Service) List(ctx context.Context, offset, limit int) ([]Employee, error) {
	v := validation.New()
	v.Min("offset", offset, 0)
	v.Range("limit", limit, 0, MaxPageSize)
	if err := v.Err(); err != nil {
		return nil, err
	}
	if limit == 0 {
		return []Employee{}, nil
	}
	return s.store.ListEmployees(ctx, limit, offset)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.store.CountEmployees(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Employee, error) {
	return s.store.GetEmployee(ctx, id)
}

// Exists resolves a task's assigned_to_id.
func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := s.store.GetEmployee(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (Employee, error) {
	if err := in.Validate(); err != nil {
		return Employee{}, err
	}
	emp, err := s.store.GetEmployee(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			slog.Warn("employee update failed: not found", "id", id)
		}
		return Employee{}, err
	}

	fields := in.Apply(&emp)
	if err := s.store.UpdateEmployee(ctx, emp); err != nil {
		return Employee{}, err
	}
	slog.Info("employee updated", "id", id, "fields", fields)
	return emp, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.store.GetEmployee(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			slog.Warn("attempt to delete missing employee", "id", id)
		}
		return err
	}

	switch s.policy {
	case DeleteRestrict:
		assigned, err := s.store.CountAssignedTasks(ctx, id)
		if err != nil {
			return err
		}
		if assigned > 0 {
			slog.Warn("employee delete refused: tasks assigned", "id", id, "tasks", assigned)
			return ErrHasTasks
		}
	case DeleteCascade:
		removed, err := s.store.DeleteEmployeeWithTasks(ctx, id)
		if err != nil {
			return err
		}
		slog.Info("employee deleted", "id", id, "tasksDeleted", removed)
		return nil
	}

	if err := s.store.DeleteEmployee(ctx, id); err != nil {
		return err
	}
	slog.Info("employee deleted", "id", id)
	return nil
}
