package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/task-manager-api/internal/domain"
	"github.com/phrazzld/task-manager-api/internal/platform/logger"
	"github.com/phrazzld/task-manager-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Create implements store.TaskStore.Create.
// The identifier is a random UUID and the creation time is set by the database.
func (s *PostgresTaskStore) Create(ctx context.Context, title string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task := &domain.Task{
		ID:    uuid.New().String(),
		Title: title,
	}

	query := `
		INSERT INTO tasks (id, title)
		VALUES ($1, $2)
		RETURNING created_at
	`

	if err := s.db.QueryRowContext(ctx, query, task.ID, title).Scan(&task.CreatedAt); err != nil {
		log.Error("failed to insert task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID))
		return nil, MapError("create", "failed to insert task", err)
	}

	log.Info("task created successfully", slog.String("task_id", task.ID))
	return task, nil
}

// GetAll implements store.TaskStore.GetAll.
func (s *PostgresTaskStore) GetAll(ctx context.Context) ([]domain.Task, error) {
	query := `
		SELECT id, title, created_at
		FROM tasks
	`

	tasks, err := s.queryTasks(ctx, query)
	if err != nil {
		return nil, s.fail(ctx, "get_all", "failed to list tasks", err)
	}
	return tasks, nil
}

// FindByID implements store.TaskStore.FindByID.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, created_at
		FROM tasks
		WHERE id = $1
	`

	var (
		task  domain.Task
		title sql.NullString
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(&task.ID, &title, &task.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.String("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task",
			slog.String("error", err.Error()),
			slog.String("task_id", id))
		return nil, MapError("find_by_id", "failed to get task", err)
	}

	task.Title = title.String
	return &task, nil
}

// DeleteByID implements store.TaskStore.DeleteByID.
func (s *PostgresTaskStore) DeleteByID(ctx context.Context, id string) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id))
		return false, MapError("delete_by_id", "failed to delete task", err)
	}

	if err := CheckRowsAffected(result); err != nil {
		if IsNotFoundError(err) {
			log.Debug("task to delete not found", slog.String("task_id", id))
			return false, nil
		}
		return false, MapError("delete_by_id", "failed to delete task", err)
	}

	log.Info("task deleted successfully", slog.String("task_id", id))
	return true, nil
}

// SearchByTitle implements store.TaskStore.SearchByTitle.
// Every row is read and filtered with store.TitleMatches so matching does not
// depend on the database collation. Rows without a title never match.
func (s *PostgresTaskStore) SearchByTitle(ctx context.Context, term string) ([]domain.Task, error) {
	query := `
		SELECT id, title, created_at
		FROM tasks
	`

	tasks, err := s.scanTasks(ctx, func(title *string) bool {
		return store.TitleMatches(title, term)
	}, query)
	if err != nil {
		return nil, s.fail(ctx, "search_by_title", "failed to search tasks", err)
	}
	return tasks, nil
}

// TopN implements store.TaskStore.TopN.
func (s *PostgresTaskStore) TopN(ctx context.Context, n int) ([]domain.Task, error) {
	if n <= 0 {
		return []domain.Task{}, nil
	}

	query := `
		SELECT id, title, created_at
		FROM tasks
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`

	tasks, err := s.queryTasks(ctx, query, n)
	if err != nil {
		return nil, s.fail(ctx, "top_n", "failed to query latest tasks", err)
	}
	return tasks, nil
}

// DeleteAll implements store.TaskStore.DeleteAll.
func (s *PostgresTaskStore) DeleteAll(ctx context.Context) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM tasks")
	if err != nil {
		return s.fail(ctx, "delete_all", "failed to delete tasks", err)
	}

	count, _ := result.RowsAffected()
	logger.FromContextOrDefault(ctx, s.logger).Info("all tasks deleted", slog.Int64("count", count))
	return nil
}

// queryTasks runs a query selecting id, title and created_at and scans every row.
func (s *PostgresTaskStore) queryTasks(ctx context.Context, query string, args ...interface{}) ([]domain.Task, error) {
	return s.scanTasks(ctx, nil, query, args...)
}

// scanTasks is queryTasks with a filter on the raw title, which is nil for
// NULL titles. A nil keep accepts every row.
func (s *PostgresTaskStore) scanTasks(
	ctx context.Context,
	keep func(title *string) bool,
	query string,
	args ...interface{},
) ([]domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		var (
			task      domain.Task
			title     sql.NullString
			createdAt time.Time
		)
		if err := rows.Scan(&task.ID, &title, &createdAt); err != nil {
			return nil, err
		}
		if keep != nil {
			var raw *string
			if title.Valid {
				raw = &title.String
			}
			if !keep(raw) {
				continue
			}
		}
		task.Title = title.String
		task.CreatedAt = createdAt
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *PostgresTaskStore) fail(ctx context.Context, operation, message string, err error) error {
	logger.FromContextOrDefault(ctx, s.logger).Error(message,
		slog.String("error", err.Error()),
		slog.String("operation", operation))
	return MapError(operation, message, err)
}
