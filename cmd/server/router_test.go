package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/task-manager-api/internal/api"
	"github.com/phrazzld/task-manager-api/internal/api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sendRequest(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeTasks(t *testing.T, w *httptest.ResponseRecorder) []api.TaskResponse {
	t.Helper()

	var tasks []api.TaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
	return tasks
}

func TestRouter_TaskLifecycle(t *testing.T) {
	app, _ := newTestApplication(t, testConfig())
	router := app.setupRouter()

	// Create
	w := sendRequest(t, router, http.MethodPost, "/api/tasks", `{"title":"Buy milk"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created api.TaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "Buy milk", created.Title)
	assert.NotContains(t, w.Body.String(), "createdAt")

	// List
	w = sendRequest(t, router, http.MethodGet, "/api/tasks", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, decodeTasks(t, w), created)

	// Fetch one
	w = sendRequest(t, router, http.MethodGet, "/api/tasks/"+created.ID, "")
	require.Equal(t, http.StatusOK, w.Code)

	// Complete
	w = sendRequest(t, router, http.MethodDelete, "/api/tasks/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Completing again is a 404 carrying the request's trace ID
	w = sendRequest(t, router, http.MethodDelete, "/api/tasks/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	var errResp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
	assert.Equal(t, "Task not found", errResp.Error)
	assert.NotEmpty(t, errResp.TraceID)

	// Search no longer finds it
	w = sendRequest(t, router, http.MethodGet, "/api/tasks/search?term=milk", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestRouter_TopAndSearch(t *testing.T) {
	app, _ := newTestApplication(t, testConfig())
	router := app.setupRouter()

	for _, title := range []string{"Write report", "buy MILK", "Call mom"} {
		w := sendRequest(t, router, http.MethodPost, "/api/tasks", `{"title":"`+title+`"}`)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := sendRequest(t, router, http.MethodGet, "/api/tasks/top?n=2", "")
	require.Equal(t, http.StatusOK, w.Code)
	top := decodeTasks(t, w)
	require.Len(t, top, 2)
	assert.Equal(t, "Call mom", top[0].Title)
	assert.Equal(t, "buy MILK", top[1].Title)

	w = sendRequest(t, router, http.MethodGet, "/api/tasks/top", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeTasks(t, w), 3)

	w = sendRequest(t, router, http.MethodGet, "/api/tasks/top?n=abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = sendRequest(t, router, http.MethodGet, "/api/tasks/search?term=Milk", "")
	require.Equal(t, http.StatusOK, w.Code)
	upper := decodeTasks(t, w)
	w = sendRequest(t, router, http.MethodGet, "/api/tasks/search?term=milk", "")
	assert.Equal(t, upper, decodeTasks(t, w))
	require.Len(t, upper, 1)

	w = sendRequest(t, router, http.MethodGet, "/api/tasks/search?term=", "")
	assert.Len(t, decodeTasks(t, w), 3)

	w = sendRequest(t, router, http.MethodGet, "/api/tasks/search", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_StoreFailure(t *testing.T) {
	app, memStore := newTestApplication(t, testConfig())
	router := app.setupRouter()
	memStore.FailWith = errors.New("dial tcp firestore.googleapis.com:443: connection refused")

	w := sendRequest(t, router, http.MethodGet, "/api/tasks", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "googleapis")

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Failed to list tasks", body["error"])
	assert.Len(t, body["trace_id"], 32)
}

func TestRouter_Reset(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		app, memStore := newTestApplication(t, testConfig())
		router := app.setupRouter()
		sendRequest(t, router, http.MethodPost, "/api/tasks", `{"title":"keep me"}`)

		w := sendRequest(t, router, http.MethodDelete, "/api/tasks", "")
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

		all, err := memStore.GetAll(context.Background())
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("enabled", func(t *testing.T) {
		cfg := testConfig()
		cfg.API.AllowReset = true
		app, memStore := newTestApplication(t, cfg)
		router := app.setupRouter()
		sendRequest(t, router, http.MethodPost, "/api/tasks", `{"title":"drop me"}`)

		w := sendRequest(t, router, http.MethodDelete, "/api/tasks", "")
		assert.Equal(t, http.StatusNoContent, w.Code)

		all, err := memStore.GetAll(context.Background())
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestRouter_CORS(t *testing.T) {
	app, _ := newTestApplication(t, testConfig())
	router := app.setupRouter()

	t.Run("preflight from allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/tasks", nil)
		req.Header.Set("Origin", testOrigin)
		req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, testOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)
	})

	t.Run("simple request from other origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		req.Header.Set("Origin", "http://evil.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRouter_Health(t *testing.T) {
	app, _ := newTestApplication(t, testConfig())

	w := sendRequest(t, app.setupRouter(), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}
