package task

import (
	"context"
	"errors"
	"log/slog"

	"taskdesk/internal/platform/validation"
)

type Service struct {
	store     StoreAPI
	employees EmployeeResolver
}

func NewService(store StoreAPI, employees EmployeeResolver) *Service {
	return &Service{store: store, employees: employees}
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Task, error) {
	if err := in.Validate(); err != nil {
		return Task{}, err
	}
	t := in.Task()
	if err := s.resolveAssignee(ctx, t.AssignedToID); err != nil {
		if errors.Is(err, ErrAssigneeNotFound) {
			slog.Warn("attempt to create task assigned to missing employee", "employeeId", t.AssignedToID)
		}
		return Task{}, err
	}

	created, err := s.store.CreateTask(ctx, t)
	if err != nil {
		return Task{}, err
	}
	slog.Info("task created", "id", created.ID, "title", created.Title, "assignedTo", created.AssignedToID)
	return created, nil
}

func (s *Service) List(ctx context.Context, offset, limit int) ([]Task, error) {
	v := validation.New()
	v.Min("offset", offset, 0)
	v.Range("limit", limit, 0, MaxPageSize)
	if err := v.Err(); err != nil {
		return nil, err
	}
	if limit == 0 {
		return []Task{}, nil
	}
	return s.store.ListTasks(ctx, limit, offset)
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.store.CountTasks(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Task, error) {
	return s.store.GetTask(ctx, id)
}

// Update validates the patch and every reference it carries before merging
// anything into the stored task.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (Task, error) {
	if err := in.Validate(); err != nil {
		return Task{}, err
	}
	t, err := s.store.GetTask(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			slog.Warn("task update failed: not found", "id", id)
		}
		return Task{}, err
	}
	if assignee, ok := in.AssignedToID.Get(); ok {
		if err := s.resolveAssignee(ctx, assignee); err != nil {
			if errors.Is(err, ErrAssigneeNotFound) {
				slog.Warn("task update failed: assigned employee not found", "id", id, "employeeId", assignee)
			}
			return Task{}, err
		}
	}

	fields := in.Apply(&t)
	if err := s.store.UpdateTask(ctx, t); err != nil {
		return Task{}, err
	}
	slog.Info("task updated", "id", id, "fields", fields)
	return t, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteTask(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			slog.Warn("attempt to delete missing task", "id", id)
		}
		return err
	}
	slog.Info("task deleted", "id", id)
	return nil
}

func (s *Service) resolveAssignee(ctx context.Context, employeeID int64) error {
	ok, err := s.employees.Exists(ctx, employeeID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAssigneeNotFound
	}
	return nil
}
