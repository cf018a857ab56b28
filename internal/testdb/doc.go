// Package testdb provides helpers for tests that need a real PostgreSQL
// database. Tests are skipped when no database URL is configured, and each
// test can run inside a transaction that is rolled back on cleanup.
package testdb
