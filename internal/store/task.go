package store

import (
	"context"
	"strings"

	"github.com/phrazzld/task-manager-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
// Every method is a synchronous call against the backing store. Backend
// failures are returned as *StoreError values matching ErrStorage.
type TaskStore interface {
	// Create stores a new task with the given title. The store assigns the
	// identifier and the creation timestamp.
	Create(ctx context.Context, title string) (*domain.Task, error)

	// GetAll returns every stored task in the order the backend returns them.
	// The order is unspecified.
	GetAll(ctx context.Context) ([]domain.Task, error)

	// FindByID retrieves a task by identifier.
	// Returns ErrTaskNotFound if no task has that identifier.
	FindByID(ctx context.Context, id string) (*domain.Task, error)

	// DeleteByID removes the task with the given identifier.
	// Returns false without error if the task does not exist.
	DeleteByID(ctx context.Context, id string) (bool, error)

	// SearchByTitle returns tasks whose title contains term, ignoring case.
	// An empty term matches every task that has a title.
	SearchByTitle(ctx context.Context, term string) ([]domain.Task, error)

	// TopN returns at most n tasks ordered by creation time, newest first.
	// n <= 0 yields an empty slice.
	TopN(ctx context.Context, n int) ([]domain.Task, error)

	// DeleteAll removes every task one by one. It is not atomic: a failure
	// part way through leaves the already deleted tasks deleted.
	DeleteAll(ctx context.Context) error
}

// TitleMatches reports whether title contains term, ignoring case.
// A nil title never matches, while an empty term matches any non-nil title.
func TitleMatches(title *string, term string) bool {
	if title == nil {
		return false
	}
	return strings.Contains(strings.ToLower(*title), strings.ToLower(term))
}
