// Package postgres provides the PostgreSQL implementation of store.TaskStore.
// It owns the connection setup, the embedded schema migrations, and the
// mapping between task rows and domain.Task values.
package postgres
