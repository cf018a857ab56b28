// Package store defines the persistence contract for tasks.
// The TaskStore interface abstracts the underlying storage mechanism from the
// rest of the application, so the service layer never depends on a particular
// document store or database client.
package store
