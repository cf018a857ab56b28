package api

import (
	"github.com/phrazzld/task-manager-api/internal/domain"
)

// DefaultTopN is the number of tasks returned by GET /api/tasks/top without n.
const DefaultTopN = 5

// CreateTaskRequest defines the payload for the create task endpoint.
// Fields other than title are ignored.
type CreateTaskRequest struct {
	Title string `json:"title" validate:"required,notblank"`
}

// TaskResponse is the client view of a task.
type TaskResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// taskToResponse converts a domain.Task to a TaskResponse
func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:    task.ID,
		Title: task.Title,
	}
}

// tasksToResponse converts tasks to responses. The result is never nil so
// that an empty list serializes as [].
func tasksToResponse(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, taskToResponse(&tasks[i]))
	}
	return out
}
