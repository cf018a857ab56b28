package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-manager-api/internal/api/shared"
	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/platform/logger"
	"github.com/phrazzld/task-manager-api/internal/service"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if taskService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("taskService cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// GetAllTasks handles GET /api/tasks requests
func (h *TaskHandler) GetAllTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.GetAllTasks(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// GetTopNTasks handles GET /api/tasks/top requests
func (h *TaskHandler) GetTopNTasks(w http.ResponseWriter, r *http.Request) {
	n, err := parseTopN(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tasks, err := h.taskService.GetTopNTasks(r.Context(), n)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get latest tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// CreateTask handles POST /api/tasks requests
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	if err := domain.ValidateTitle(req.Title); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.taskService.AddTask(r.Context(), req.Title)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	log.Debug("task created", slog.String("task_id", task.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// GetTask handles GET /api/tasks/{id} requests
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.taskService.GetTaskByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// DeleteTask handles DELETE /api/tasks/{id} requests.
// Deleting a task marks it as done.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	removed, err := h.taskService.MarkDone(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to complete task")
		return
	}

	if !removed {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return
	}

	shared.RespondNoContent(w)
}

// SearchTasks handles GET /api/tasks/search requests
func (h *TaskHandler) SearchTasks(w http.ResponseWriter, r *http.Request) {
	term, err := getSearchTerm(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tasks, err := h.taskService.SearchTasksByTitle(r.Context(), term)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to search tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// ResetTasks handles DELETE /api/tasks requests
func (h *TaskHandler) ResetTasks(w http.ResponseWriter, r *http.Request) {
	if err := h.taskService.ResetTasks(r.Context()); err != nil {
		HandleAPIError(w, r, err, "Failed to reset tasks")
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Warn("all tasks deleted by reset request")
	shared.RespondNoContent(w)
}

// RegisterRoutes mounts the task endpoints on r. The reset endpoint is only
// registered when allowReset is true.
func (h *TaskHandler) RegisterRoutes(r chi.Router, allowReset bool) {
	r.Get("/", h.GetAllTasks)
	r.Post("/", h.CreateTask)
	r.Get("/top", h.GetTopNTasks)
	r.Get("/search", h.SearchTasks)
	r.Get("/{id}", h.GetTask)
	r.Delete("/{id}", h.DeleteTask)

	if allowReset {
		r.Delete("/", h.ResetTasks)
	}
}
