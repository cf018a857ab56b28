// Package domain contains the core business entities and domain errors of
// the task manager. It is independent of any storage backend or delivery
// mechanism.
package domain
