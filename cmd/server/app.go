package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-manager-api/internal/config"
	"github.com/phrazzld/task-manager-api/internal/platform/firestore"
	"github.com/phrazzld/task-manager-api/internal/platform/postgres"
	"github.com/phrazzld/task-manager-api/internal/service"
	"github.com/phrazzld/task-manager-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	taskStore   store.TaskStore
	taskService service.TaskService

	// closeStore releases the store's client or connection pool.
	closeStore func() error
}

// newApplication creates a new application instance around an opened store.
// closeStore may be nil when the store holds no resources.
func newApplication(
	cfg *config.Config,
	logger *slog.Logger,
	taskStore store.TaskStore,
	closeStore func() error,
) (*application, error) {
	if closeStore == nil {
		closeStore = func() error { return nil }
	}

	taskService, err := service.NewTaskService(taskStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return &application{
		config:      cfg,
		logger:      logger,
		taskStore:   taskStore,
		taskService: taskService,
		closeStore:  closeStore,
	}, nil
}

// openTaskStore connects the backend selected by cfg.Store.Backend.
// The returned function closes the underlying client.
func openTaskStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.TaskStore, func() error, error) {
	switch cfg.Store.Backend {
	case config.BackendFirestore:
		client, err := firestore.NewClient(ctx, cfg.Firestore, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := firestore.Ping(ctx, client); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		logger.Info("Firestore connection verified",
			slog.String("project_id", cfg.Firestore.ProjectID))
		return firestore.NewFirestoreTaskStore(client, logger), client.Close, nil

	case config.BackendPostgres:
		db, err := postgres.Open(ctx, cfg.Database.URL, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.Migrate(ctx, db, logger); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return postgres.NewPostgresTaskStore(db, logger), db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unsupported store backend %q", cfg.Store.Backend)
	}
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if err := app.closeStore(); err != nil {
		app.logger.Error("Error closing task store", "error", err)
	}

	app.logger.Info("Application shutdown completed")
}
