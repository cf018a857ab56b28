package mocks

import (
	"context"

	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockTaskStore is a mock of store.TaskStore interface for use with testify/mock
type TestifyMockTaskStore struct {
	mock.Mock
}

var _ store.TaskStore = (*TestifyMockTaskStore)(nil)

// Create is a mock implementation of store.TaskStore.Create
func (m *TestifyMockTaskStore) Create(ctx context.Context, title string) (*domain.Task, error) {
	args := m.Called(ctx, title)
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetAll is a mock implementation of store.TaskStore.GetAll
func (m *TestifyMockTaskStore) GetAll(ctx context.Context) ([]domain.Task, error) {
	args := m.Called(ctx)
	tasks, _ := args.Get(0).([]domain.Task)
	return tasks, args.Error(1)
}

// FindByID is a mock implementation of store.TaskStore.FindByID
func (m *TestifyMockTaskStore) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

// DeleteByID is a mock implementation of store.TaskStore.DeleteByID
func (m *TestifyMockTaskStore) DeleteByID(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// SearchByTitle is a mock implementation of store.TaskStore.SearchByTitle
func (m *TestifyMockTaskStore) SearchByTitle(ctx context.Context, term string) ([]domain.Task, error) {
	args := m.Called(ctx, term)
	tasks, _ := args.Get(0).([]domain.Task)
	return tasks, args.Error(1)
}

// TopN is a mock implementation of store.TaskStore.TopN
func (m *TestifyMockTaskStore) TopN(ctx context.Context, n int) ([]domain.Task, error) {
	args := m.Called(ctx, n)
	tasks, _ := args.Get(0).([]domain.Task)
	return tasks, args.Error(1)
}

// DeleteAll is a mock implementation of store.TaskStore.DeleteAll
func (m *TestifyMockTaskStore) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
