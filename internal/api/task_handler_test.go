package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-manager-api/internal/api/shared"
	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/mocks"
	"github.com/phrazzld/task-manager-api/internal/service"
	"github.com/phrazzld/task-manager-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errServiceDown = service.NewTaskOperationError(
	"get_all_tasks",
	store.NewStoreError("task", "get_all", "failed to list documents", errors.New("connection refused")),
)

// newTestRouter mounts a TaskHandler for svc under /api/tasks.
func newTestRouter(svc service.TaskService, allowReset bool) http.Handler {
	r := chi.NewRouter()
	r.Route("/api/tasks", func(r chi.Router) {
		NewTaskHandler(svc, nil).RegisterRoutes(r, allowReset)
	})
	return r
}

func doRequest(t *testing.T, h http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()

	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func TestNewTaskHandler_PanicsOnNilService(t *testing.T) {
	assert.Panics(t, func() { NewTaskHandler(nil, nil) })
}

func TestTaskHandler_GetAllTasks(t *testing.T) {
	tests := []struct {
		name           string
		tasks          []domain.Task
		err            error
		expectedStatus int
		expectedBody   string
		expectedErrMsg string
	}{
		{
			name:           "tasks",
			tasks:          []domain.Task{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}},
			expectedStatus: http.StatusOK,
			expectedBody:   `[{"id":"a","title":"A"},{"id":"b","title":"B"}]`,
		},
		{
			name:           "empty list is an array",
			tasks:          nil,
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name:           "service failure",
			err:            errServiceDown,
			expectedStatus: http.StatusInternalServerError,
			expectedErrMsg: "Failed to list tasks",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mocks.MockTaskService{Tasks: tc.tasks, DefaultError: tc.err}
			w := doRequest(t, newTestRouter(svc, false), http.MethodGet, "/api/tasks", nil)

			assert.Equal(t, tc.expectedStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			if tc.expectedErrMsg != "" {
				assert.Equal(t, tc.expectedErrMsg, decodeError(t, w))
				assert.NotContains(t, w.Body.String(), "connection refused")
				return
			}
			assert.JSONEq(t, tc.expectedBody, w.Body.String())
		})
	}
}

func TestTaskHandler_GetTopNTasks(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		expectCall     bool
		expectedN      int
		expectedStatus int
		expectedErrMsg string
	}{
		{name: "default n", query: "", expectCall: true, expectedN: DefaultTopN, expectedStatus: http.StatusOK},
		{name: "explicit n", query: "?n=2", expectCall: true, expectedN: 2, expectedStatus: http.StatusOK},
		{name: "zero", query: "?n=0", expectCall: true, expectedN: 0, expectedStatus: http.StatusOK},
		{name: "negative", query: "?n=-3", expectCall: true, expectedN: -3, expectedStatus: http.StatusOK},
		{
			name:           "non-numeric",
			query:          "?n=abc",
			expectedStatus: http.StatusBadRequest,
			expectedErrMsg: "Invalid n: must be an integer",
		},
		{
			name:           "fractional",
			query:          "?n=1.5",
			expectedStatus: http.StatusBadRequest,
			expectedErrMsg: "Invalid n: must be an integer",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			gotN := 0
			svc := &mocks.MockTaskService{
				GetTopNTasksFn: func(ctx context.Context, n int) ([]domain.Task, error) {
					called = true
					gotN = n
					return []domain.Task{}, nil
				},
			}

			w := doRequest(t, newTestRouter(svc, false), http.MethodGet, "/api/tasks/top"+tc.query, nil)

			assert.Equal(t, tc.expectedStatus, w.Code)
			assert.Equal(t, tc.expectCall, called)
			if tc.expectCall {
				assert.Equal(t, tc.expectedN, gotN)
				assert.JSONEq(t, `[]`, w.Body.String())
			}
			if tc.expectedErrMsg != "" {
				assert.Equal(t, tc.expectedErrMsg, decodeError(t, w))
			}
		})
	}
}

func TestTaskHandler_CreateTask(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		serviceErr     error
		expectCall     bool
		expectedStatus int
		expectedBody   string
		expectedErrMsg string
	}{
		{
			name:           "created",
			body:           `{"title":"Buy milk"}`,
			expectCall:     true,
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"id":"t1","title":"Buy milk"}`,
		},
		{
			name:           "extra fields ignored",
			body:           `{"title":"Buy milk","id":"mine","createdAt":"2020-01-01"}`,
			expectCall:     true,
			expectedStatus: http.StatusCreated,
			expectedBody:   `{"id":"t1","title":"Buy milk"}`,
		},
		{
			name:           "malformed json",
			body:           `{"title":`,
			expectedStatus: http.StatusBadRequest,
			expectedErrMsg: "Invalid request format",
		},
		{
			name:           "missing title",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
			expectedErrMsg: "Invalid title: required field",
		},
		{
			name:           "blank title",
			body:           `{"title":"   "}`,
			expectedStatus: http.StatusBadRequest,
			expectedErrMsg: "Invalid title: must not be blank",
		},
		{
			name:           "service failure",
			body:           `{"title":"Buy milk"}`,
			serviceErr:     service.NewTaskOperationError("add_task", errors.New("deadline exceeded")),
			expectCall:     true,
			expectedStatus: http.StatusInternalServerError,
			expectedErrMsg: "Failed to create task",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			svc := &mocks.MockTaskService{
				AddTaskFn: func(ctx context.Context, title string) (*domain.Task, error) {
					called = true
					if tc.serviceErr != nil {
						return nil, tc.serviceErr
					}
					return &domain.Task{ID: "t1", Title: title}, nil
				},
			}

			w := doRequest(t, newTestRouter(svc, false), http.MethodPost, "/api/tasks", []byte(tc.body))

			assert.Equal(t, tc.expectedStatus, w.Code)
			assert.Equal(t, tc.expectCall, called)
			if tc.expectedErrMsg != "" {
				assert.Equal(t, tc.expectedErrMsg, decodeError(t, w))
				return
			}
			assert.JSONEq(t, tc.expectedBody, w.Body.String())
		})
	}
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	tests := []struct {
		name           string
		removed        bool
		err            error
		expectedStatus int
		expectedErrMsg string
	}{
		{name: "removed", removed: true, expectedStatus: http.StatusNoContent},
		{name: "unknown id", removed: false, expectedStatus: http.StatusNotFound, expectedErrMsg: "Task not found"},
		{
			name:           "service failure",
			err:            service.NewTaskOperationError("mark_done", errors.New("unavailable")),
			expectedStatus: http.StatusInternalServerError,
			expectedErrMsg: "Failed to complete task",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotID string
			svc := &mocks.MockTaskService{
				MarkDoneFn: func(ctx context.Context, id string) (bool, error) {
					gotID = id
					return tc.removed, tc.err
				},
			}

			w := doRequest(t, newTestRouter(svc, false), http.MethodDelete, "/api/tasks/abc123", nil)

			assert.Equal(t, tc.expectedStatus, w.Code)
			assert.Equal(t, "abc123", gotID)
			if tc.expectedErrMsg != "" {
				assert.Equal(t, tc.expectedErrMsg, decodeError(t, w))
			} else {
				assert.Empty(t, w.Body.String())
			}
		})
	}
}

func TestTaskHandler_SearchTasks(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		expectCall     bool
		expectedTerm   string
		expectedStatus int
		expectedErrMsg string
	}{
		{name: "term", query: "?term=Milk", expectCall: true, expectedTerm: "Milk", expectedStatus: http.StatusOK},
		{name: "empty term", query: "?term=", expectCall: true, expectedTerm: "", expectedStatus: http.StatusOK},
		{
			name:           "missing term",
			query:          "",
			expectedStatus: http.StatusBadRequest,
			expectedErrMsg: "Invalid term: is required",
		},
		{
			name:           "other parameter only",
			query:          "?q=milk",
			expectedStatus: http.StatusBadRequest,
			expectedErrMsg: "Invalid term: is required",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			var gotTerm string
			svc := &mocks.MockTaskService{
				SearchTasksByTitleFn: func(ctx context.Context, term string) ([]domain.Task, error) {
					called = true
					gotTerm = term
					return []domain.Task{{ID: "a", Title: "Buy milk"}}, nil
				},
			}

			w := doRequest(t, newTestRouter(svc, false), http.MethodGet, "/api/tasks/search"+tc.query, nil)

			assert.Equal(t, tc.expectedStatus, w.Code)
			assert.Equal(t, tc.expectCall, called)
			if tc.expectCall {
				assert.Equal(t, tc.expectedTerm, gotTerm)
				assert.JSONEq(t, `[{"id":"a","title":"Buy milk"}]`, w.Body.String())
			}
			if tc.expectedErrMsg != "" {
				assert.Equal(t, tc.expectedErrMsg, decodeError(t, w))
			}
		})
	}
}

func TestTaskHandler_GetTask(t *testing.T) {
	svc := &mocks.MockTaskService{
		GetTaskByIDFn: func(ctx context.Context, id string) (*domain.Task, error) {
			if id == "t1" {
				return &domain.Task{ID: "t1", Title: "One"}, nil
			}
			return nil, service.ErrTaskNotFound
		},
	}
	router := newTestRouter(svc, false)

	w := doRequest(t, router, http.MethodGet, "/api/tasks/t1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"t1","title":"One"}`, w.Body.String())

	w = doRequest(t, router, http.MethodGet, "/api/tasks/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Task not found", decodeError(t, w))
}

func TestTaskHandler_ResetTasks(t *testing.T) {
	t.Run("not registered by default", func(t *testing.T) {
		called := false
		svc := &mocks.MockTaskService{
			ResetTasksFn: func(ctx context.Context) error {
				called = true
				return nil
			},
		}

		w := doRequest(t, newTestRouter(svc, false), http.MethodDelete, "/api/tasks", nil)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.False(t, called)
	})

	t.Run("enabled", func(t *testing.T) {
		called := false
		svc := &mocks.MockTaskService{
			ResetTasksFn: func(ctx context.Context) error {
				called = true
				return nil
			},
		}

		w := doRequest(t, newTestRouter(svc, true), http.MethodDelete, "/api/tasks", nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.True(t, called)
	})

	t.Run("failure", func(t *testing.T) {
		svc := &mocks.MockTaskService{
			ResetTasksFn: func(ctx context.Context) error {
				return service.NewTaskOperationError("reset_tasks", errors.New("partial delete"))
			},
		}

		w := doRequest(t, newTestRouter(svc, true), http.MethodDelete, "/api/tasks", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Failed to reset tasks", decodeError(t, w))
	})
}
