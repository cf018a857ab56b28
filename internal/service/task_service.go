package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/platform/logger"
	"github.com/phrazzld/task-manager-api/internal/store"
)

// TaskService provides task-related operations
type TaskService interface {
	// AddTask stores a new task with the given title.
	AddTask(ctx context.Context, title string) (*domain.Task, error)

	// GetAllTasks returns every task.
	GetAllTasks(ctx context.Context) ([]domain.Task, error)

	// GetTopNTasks returns at most n tasks, newest first.
	GetTopNTasks(ctx context.Context, n int) ([]domain.Task, error)

	// MarkDone completes a task by deleting it.
	// Returns false without error if the task does not exist.
	MarkDone(ctx context.Context, id string) (bool, error)

	// SearchTasksByTitle returns tasks whose title contains term, ignoring case.
	SearchTasksByTitle(ctx context.Context, term string) ([]domain.Task, error)

	// ResetTasks deletes every task.
	ResetTasks(ctx context.Context) error

	// GetTaskByID retrieves a single task.
	// Returns ErrTaskNotFound if the task does not exist.
	GetTaskByID(ctx context.Context, id string) (*domain.Task, error)
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	store  store.TaskStore
	logger *slog.Logger
}

// NewTaskService creates a new TaskService
// It returns an error if the store is nil.
func NewTaskService(taskStore store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if taskStore == nil {
		return nil, &TaskOperationError{
			Operation: "create_service",
			Err:       errors.New("taskStore cannot be nil"),
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		store:  taskStore,
		logger: logger.With(slog.String("component", "task_service")),
	}, nil
}

// AddTask implements TaskService.AddTask
func (s *taskServiceImpl) AddTask(ctx context.Context, title string) (*domain.Task, error) {
	task, err := s.store.Create(ctx, title)
	if err != nil {
		return nil, s.fail(ctx, "add_task", err)
	}
	return task, nil
}

// GetAllTasks implements TaskService.GetAllTasks
func (s *taskServiceImpl) GetAllTasks(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, s.fail(ctx, "get_all_tasks", err)
	}
	return tasks, nil
}

// GetTopNTasks implements TaskService.GetTopNTasks
func (s *taskServiceImpl) GetTopNTasks(ctx context.Context, n int) ([]domain.Task, error) {
	tasks, err := s.store.TopN(ctx, n)
	if err != nil {
		return nil, s.fail(ctx, "get_top_n_tasks", err, slog.Int("n", n))
	}
	return tasks, nil
}

// MarkDone implements TaskService.MarkDone
func (s *taskServiceImpl) MarkDone(ctx context.Context, id string) (bool, error) {
	removed, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		return false, s.fail(ctx, "mark_done", err, slog.String("task_id", id))
	}
	return removed, nil
}

// SearchTasksByTitle implements TaskService.SearchTasksByTitle
func (s *taskServiceImpl) SearchTasksByTitle(ctx context.Context, term string) ([]domain.Task, error) {
	tasks, err := s.store.SearchByTitle(ctx, term)
	if err != nil {
		return nil, s.fail(ctx, "search_tasks_by_title", err)
	}
	return tasks, nil
}

// ResetTasks implements TaskService.ResetTasks
func (s *taskServiceImpl) ResetTasks(ctx context.Context) error {
	if err := s.store.DeleteAll(ctx); err != nil {
		return s.fail(ctx, "reset_tasks", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("all tasks reset")
	return nil
}

// GetTaskByID implements TaskService.GetTaskByID
func (s *taskServiceImpl) GetTaskByID(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "get_task_by_id", err, slog.String("task_id", id))
	}
	return task, nil
}

// fail logs err and converts it to the service error for operation.
// Not-found errors are logged at debug level since they are expected.
func (s *taskServiceImpl) fail(ctx context.Context, operation string, err error, attrs ...any) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	args := append([]any{slog.String("operation", operation), slog.String("error", err.Error())}, attrs...)

	if store.IsNotFoundError(err) {
		log.Debug("task not found", args...)
	} else {
		log.Error("task operation failed", args...)
	}
	return NewTaskOperationError(operation, err)
}
