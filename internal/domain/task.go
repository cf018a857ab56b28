package domain

import (
	"strings"
	"time"
)

// Task is the sole entity of the task manager. A task is created with a title
// and lives until it is marked done, which removes it permanently.
type Task struct {
	// ID is assigned by the store on creation and is opaque to callers.
	ID string `json:"id"`

	// Title is set at creation and cannot be changed afterwards.
	Title string `json:"title"`

	// CreatedAt is assigned by the store and only used for ordering.
	// It is never serialized to clients.
	CreatedAt time.Time `json:"-"`
}

// ValidateTitle checks that a title is usable for a new task.
// Blank titles are rejected.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return NewValidationError("title", "is required", ErrEmptyTitle)
	}
	return nil
}

// ValidateTaskID checks that an identifier is non-empty.
func ValidateTaskID(id string) error {
	if strings.TrimSpace(id) == "" {
		return NewValidationError("id", "is required", ErrEmptyTaskID)
	}
	return nil
}
