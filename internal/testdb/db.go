package testdb

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/phrazzld/task-manager-api/internal/platform/postgres"
	"github.com/phrazzld/task-manager-api/internal/redact"
	"github.com/stretchr/testify/require"
)

// GetTestDBWithT opens the configured test database and applies all
// migrations. The connection is closed when the test finishes.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()

	url := GetTestDatabaseURL()
	if url == "" {
		t.Skip("DATABASE_URL not set - skipping PostgreSQL integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.Open(ctx, url, nil)
	require.NoError(t, err, "failed to open test database %s", redact.String(url))
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, postgres.Migrate(ctx, db, nil), "failed to migrate test database")
	return db
}
