package task

import "errors"

var (
	ErrNotFound = errors.New("task not found")
	// ErrAssigneeNotFound means assigned_to_id does not match any employee.
	ErrAssigneeNotFound = errors.New("assigned employee not found")
)
