package main

import (
	"testing"

	"github.com/phrazzld/task-manager-api/internal/config"
	"github.com/phrazzld/task-manager-api/internal/mocks"
	"github.com/phrazzld/task-manager-api/internal/platform/logger"
	"github.com/stretchr/testify/require"
)

const testOrigin = "http://localhost:9002"

// testConfig returns a valid configuration that needs no external services.
func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                   8080,
			LogLevel:               "debug",
			AllowedOrigin:          testOrigin,
			ShutdownTimeoutSeconds: 5,
		},
		Store: config.StoreConfig{Backend: config.BackendFirestore},
	}
}

// newTestApplication builds an application backed by an in-memory store.
func newTestApplication(t *testing.T, cfg *config.Config) (*application, *mocks.MemoryTaskStore) {
	t.Helper()

	l, _ := logger.GetTestLogger(t)
	memStore := mocks.NewMemoryTaskStore()

	app, err := newApplication(cfg, l, memStore, nil)
	require.NoError(t, err)
	return app, memStore
}
