package task

import (
	"taskdesk/internal/domain/patch"
	"taskdesk/internal/platform/validation"
)

const MaxPageSize = 10

// Conventional status values. Status is free text and is not checked against
// this list.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

type Task struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	AssignedToID int64  `json:"assigned_to_id"`
	Status       string `json:"status"`
	DueDate      string `json:"due_date"`
}

// CreateInput uses pointers so a missing key can be told apart from "".
// Only title must be non-empty; the other text fields accept any string.
type CreateInput struct {
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	AssignedToID *int64  `json:"assigned_to_id"`
	Status       *string `json:"status"`
	DueDate      *string `json:"due_date"`
}

func (in CreateInput) Validate() error {
	v := validation.New()
	v.Required("title", in.Title)
	if in.Description == nil {
		v.Add("description", "is required")
	}
	if in.AssignedToID == nil {
		v.Add("assigned_to_id", "is required")
	}
	if in.Status == nil {
		v.Add("status", "is required")
	}
	if in.DueDate == nil {
		v.Add("due_date", "is required")
	}
	return v.Err()
}

func (in CreateInput) Task() Task {
	t := Task{Title: in.Title}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.AssignedToID != nil {
		t.AssignedToID = *in.AssignedToID
	}
	if in.Status != nil {
		t.Status = *in.Status
	}
	if in.DueDate != nil {
		t.DueDate = *in.DueDate
	}
	return t
}

type UpdateInput struct {
	Title        patch.Field[string] `json:"title"`
	Description  patch.Field[string] `json:"description"`
	AssignedToID patch.Field[int64]  `json:"assigned_to_id"`
	Status       patch.Field[string] `json:"status"`
	DueDate      patch.Field[string] `json:"due_date"`
}

func (in UpdateInput) Validate() error {
	v := validation.New()
	v.NotNull("title", in.Title.IsNull())
	v.NotNull("description", in.Description.IsNull())
	v.NotNull("assigned_to_id", in.AssignedToID.IsNull())
	v.NotNull("status", in.Status.IsNull())
	v.NotNull("due_date", in.DueDate.IsNull())
	if title, ok := in.Title.Get(); ok {
		v.Required("title", title)
	}
	return v.Err()
}

// Apply merges the supplied fields into t and returns their names.
func (in UpdateInput) Apply(t *Task) []string {
	fields := make([]string, 0, 5)
	if in.Title.Apply(&t.Title) {
		fields = append(fields, "title")
	}
	if in.Description.Apply(&t.Description) {
		fields = append(fields, "description")
	}
	if in.AssignedToID.Apply(&t.AssignedToID) {
		fields = append(fields, "assigned_to_id")
	}
	if in.Status.Apply(&t.Status) {
		fields = append(fields, "status")
	}
	if in.DueDate.Apply(&t.DueDate) {
		fields = append(fields, "due_date")
	}
	return fields
}
