package mocks

import (
	"context"

	"github.com/phrazzld/task-manager-api/internal/domain"
)

// MockTaskService implements service.TaskService for testing
type MockTaskService struct {
	// Custom behavior functions
	AddTaskFn            func(ctx context.Context, title string) (*domain.Task, error)
	GetAllTasksFn        func(ctx context.Context) ([]domain.Task, error)
	GetTopNTasksFn       func(ctx context.Context, n int) ([]domain.Task, error)
	MarkDoneFn           func(ctx context.Context, id string) (bool, error)
	SearchTasksByTitleFn func(ctx context.Context, term string) ([]domain.Task, error)
	ResetTasksFn         func(ctx context.Context) error
	GetTaskByIDFn        func(ctx context.Context, id string) (*domain.Task, error)

	// Default return values
	Task         *domain.Task
	Tasks        []domain.Task
	DefaultError error
}

// AddTask implements the TaskService.AddTask method
func (m *MockTaskService) AddTask(ctx context.Context, title string) (*domain.Task, error) {
	if m.AddTaskFn != nil {
		return m.AddTaskFn(ctx, title)
	}
	return m.Task, m.DefaultError
}

// GetAllTasks implements the TaskService.GetAllTasks method
func (m *MockTaskService) GetAllTasks(ctx context.Context) ([]domain.Task, error) {
	if m.GetAllTasksFn != nil {
		return m.GetAllTasksFn(ctx)
	}
	return m.Tasks, m.DefaultError
}

// GetTopNTasks implements the TaskService.GetTopNTasks method
func (m *MockTaskService) GetTopNTasks(ctx context.Context, n int) ([]domain.Task, error) {
	if m.GetTopNTasksFn != nil {
		return m.GetTopNTasksFn(ctx, n)
	}
	return m.Tasks, m.DefaultError
}

// MarkDone implements the TaskService.MarkDone method
func (m *MockTaskService) MarkDone(ctx context.Context, id string) (bool, error) {
	if m.MarkDoneFn != nil {
		return m.MarkDoneFn(ctx, id)
	}
	return m.DefaultError == nil, m.DefaultError
}

// SearchTasksByTitle implements the TaskService.SearchTasksByTitle method
func (m *MockTaskService) SearchTasksByTitle(ctx context.Context, term string) ([]domain.Task, error) {
	if m.SearchTasksByTitleFn != nil {
		return m.SearchTasksByTitleFn(ctx, term)
	}
	return m.Tasks, m.DefaultError
}

// ResetTasks implements the TaskService.ResetTasks method
func (m *MockTaskService) ResetTasks(ctx context.Context) error {
	if m.ResetTasksFn != nil {
		return m.ResetTasksFn(ctx)
	}
	return m.DefaultError
}

// GetTaskByID implements the TaskService.GetTaskByID method
func (m *MockTaskService) GetTaskByID(ctx context.Context, id string) (*domain.Task, error) {
	if m.GetTaskByIDFn != nil {
		return m.GetTaskByIDFn(ctx, id)
	}
	return m.Task, m.DefaultError
}
