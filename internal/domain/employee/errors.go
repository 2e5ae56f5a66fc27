package employee

import "errors"

var (
	ErrNotFound = errors.New("employee not found")
	ErrHasTasks = errors.New("employee still has assigned tasks")
)
