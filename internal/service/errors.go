package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/task-manager-api/internal/store"
)

var (
	// ErrTaskNotFound indicates that the requested task does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrTaskNotFound = store.ErrTaskNotFound

	// ErrTaskOperationFailed is matched by every TaskOperationError.
	// API layer should map this to HTTP 500 Internal Server Error.
	ErrTaskOperationFailed = errors.New("task operation failed")
)

// TaskOperationError wraps a store failure with the name of the service
// operation that hit it.
type TaskOperationError struct {
	// Operation is the operation that failed (e.g., "add_task", "get_top_n_tasks")
	Operation string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TaskOperationError.
func (e *TaskOperationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("task service %s failed", e.Operation)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskOperationError) Unwrap() error {
	return e.Err
}

// Is makes every TaskOperationError match ErrTaskOperationFailed.
func (e *TaskOperationError) Is(target error) bool {
	return target == ErrTaskOperationFailed
}

// NewTaskOperationError creates a new TaskOperationError.
// It returns ErrTaskNotFound directly without wrapping.
func NewTaskOperationError(operation string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, store.ErrTaskNotFound) {
		return ErrTaskNotFound
	}

	return &TaskOperationError{
		Operation: operation,
		Err:       err,
	}
}
