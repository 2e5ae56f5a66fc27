package task

import (
	"context"
	"errors"
	"testing"

	"taskdesk/internal/domain/patch"
	"taskdesk/internal/platform/validation"
)

type memStore struct {
	nextID int64
	tasks  map[int64]Task
	order  []int64
	writes int
}

func newMemStore() *memStore {
	return &memStore{tasks: map[int64]Task{}}
}

func (m *memStore) CreateTask(_ context.Context, t Task) (Task, error) {
	m.nextID++
	t.ID = m.nextID
	m.tasks[t.ID] = t
	m.order = append(m.order, t.ID)
	m.writes++
	return t, nil
}

func (m *memStore) ListTasks(_ context.Context, limit, offset int) ([]Task, error) {
	out := []Task{}
	skipped := 0
	for _, id := range m.order {
		t, ok := m.tasks[id]
		if !ok {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, t)
	}
	return out, nil
}

func (m *memStore) CountTasks(context.Context) (int, error) {
	return len(m.tasks), nil
}

func (m *memStore) GetTask(_ context.Context, id int64) (Task, error) {
	t, ok := m.tasks[id]
	if !ok {
		return Task{}, ErrNotFound
	}
	return t, nil
}

func (m *memStore) UpdateTask(_ context.Context, t Task) error {
	if _, ok := m.tasks[t.ID]; !ok {
		return ErrNotFound
	}
	m.tasks[t.ID] = t
	m.writes++
	return nil
}

func (m *memStore) DeleteTask(_ context.Context, id int64) error {
	if _, ok := m.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(m.tasks, id)
	m.writes++
	return nil
}

type employeeSet map[int64]bool

func (s employeeSet) Exists(_ context.Context, id int64) (bool, error) {
	return s[id], nil
}

func ptr[T any](v T) *T { return &v }

func reportInput() CreateInput {
	return CreateInput{
		Title:        "Report",
		Description:  ptr("Q3"),
		AssignedToID: ptr[int64](1),
		Status:       ptr(StatusPending),
		DueDate:      ptr("2024-10-01"),
	}
}

func TestCreateTaskForKnownEmployee(t *testing.T) {
	svc := NewService(newMemStore(), employeeSet{1: true})

	created, err := svc.Create(context.Background(), reportInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	want := Task{ID: 1, Title: "Report", Description: "Q3", AssignedToID: 1, Status: "pending", DueDate: "2024-10-01"}
	if created != want {
		t.Fatalf("expected %+v, got %+v", want, created)
	}
}

func TestCreateTaskWithMissingAssigneePersistsNothing(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, employeeSet{1: true})

	in := reportInput()
	in.AssignedToID = ptr[int64](999)
	if _, err := svc.Create(context.Background(), in); !errors.Is(err, ErrAssigneeNotFound) {
		t.Fatalf("expected ErrAssigneeNotFound, got %v", err)
	}
	if store.writes != 0 || len(store.tasks) != 0 {
		t.Fatalf("expected nothing persisted, got %d writes", store.writes)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, employeeSet{1: true})

	_, err := svc.Create(context.Background(), CreateInput{Title: "Report"})
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	got := map[string]string{}
	for _, issue := range verr.Issues {
		got[issue.Field] = issue.Reason
	}
	for _, field := range []string{"description", "assigned_to_id", "status", "due_date"} {
		if got[field] != "is required" {
			t.Fatalf("expected %s to be required, got %v", field, got)
		}
	}
	if store.writes != 0 {
		t.Fatal("expected no writes")
	}
}

func TestCreateTaskAcceptsEmptyFreeText(t *testing.T) {
	svc := NewService(newMemStore(), employeeSet{1: true})

	in := reportInput()
	in.Description = ptr("")
	in.Status = ptr("")
	in.DueDate = ptr("")
	created, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("expected empty free-text fields to be accepted, got %v", err)
	}
	if created.Description != "" || created.Status != "" || created.DueDate != "" {
		t.Fatalf("unexpected task: %+v", created)
	}
}

func TestUpdateTaskAcceptsEmptyStatus(t *testing.T) {
	svc := NewService(newMemStore(), employeeSet{1: true})
	ctx := context.Background()
	created, _ := svc.Create(ctx, reportInput())

	updated, err := svc.Update(ctx, created.ID, UpdateInput{Status: patch.Set(""), DueDate: patch.Set("")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != "" || updated.DueDate != "" || updated.Title != "Report" {
		t.Fatalf("unexpected merge: %+v", updated)
	}

	if _, err := svc.Update(ctx, created.ID, UpdateInput{Title: patch.Set("  ")}); err == nil {
		t.Fatal("expected blank title to be rejected")
	}
}

func TestUpdateTaskOrdering(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, employeeSet{1: true, 2: true})
	ctx := context.Background()
	created, _ := svc.Create(ctx, reportInput())

	// validation comes before the existence check
	_, err := svc.Update(ctx, 77, UpdateInput{Title: patch.Null[string]()})
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}

	if _, err := svc.Update(ctx, 77, UpdateInput{Status: patch.Set(StatusCompleted)}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	writes := store.writes
	_, err = svc.Update(ctx, created.ID, UpdateInput{Status: patch.Set(StatusCompleted), AssignedToID: patch.Set(int64(999))})
	if !errors.Is(err, ErrAssigneeNotFound) {
		t.Fatalf("expected ErrAssigneeNotFound, got %v", err)
	}
	if store.writes != writes {
		t.Fatal("rejected update must not write")
	}
	if stored, _ := svc.Get(ctx, created.ID); stored.Status != StatusPending {
		t.Fatalf("status changed by rejected update: %+v", stored)
	}
}

func TestUpdateTaskMergesAndIsIdempotent(t *testing.T) {
	svc := NewService(newMemStore(), employeeSet{1: true, 2: true})
	ctx := context.Background()
	created, _ := svc.Create(ctx, reportInput())

	in := UpdateInput{Status: patch.Set(StatusCompleted), AssignedToID: patch.Set(int64(2))}
	first, err := svc.Update(ctx, created.ID, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	second, err := svc.Update(ctx, created.ID, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if first != second {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
	if first.Title != "Report" || first.Description != "Q3" || first.AssignedToID != 2 || first.Status != StatusCompleted {
		t.Fatalf("unexpected merge: %+v", first)
	}
}

func TestUpdateTaskKeepsOrphanedAssignee(t *testing.T) {
	employees := employeeSet{1: true}
	svc := NewService(newMemStore(), employees)
	ctx := context.Background()
	created, _ := svc.Create(ctx, reportInput())
	delete(employees, 1)

	updated, err := svc.Update(ctx, created.ID, UpdateInput{Status: patch.Set(StatusInProgress)})
	if err != nil {
		t.Fatalf("expected update without assignee change to succeed, got %v", err)
	}
	if updated.AssignedToID != 1 {
		t.Fatalf("expected dangling reference to be kept, got %d", updated.AssignedToID)
	}
}

func TestListAndDeleteTasks(t *testing.T) {
	svc := NewService(newMemStore(), employeeSet{1: true})
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := svc.Create(ctx, reportInput()); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	if err := svc.Delete(ctx, 2); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, 2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	page, err := svc.List(ctx, 0, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page) != 2 || page[0].ID != 1 || page[1].ID != 3 {
		t.Fatalf("unexpected page: %+v", page)
	}
	total, _ := svc.Count(ctx)
	if total != 2 {
		t.Fatalf("expected 2 tasks, got %d", total)
	}
	if _, err := svc.List(ctx, 0, MaxPageSize+1); err == nil {
		t.Fatal("expected oversized limit to fail")
	}
}
