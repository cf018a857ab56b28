// Package service contains the application use cases for tasks. It sits
// between the HTTP handlers in internal/api and the persistence interfaces
// in internal/store.
//
// Error handling principles:
//  1. The not-found sentinel from the store is passed through as ErrTaskNotFound
//  2. Every other store failure is wrapped in a *TaskOperationError
//  3. Callers use errors.Is/errors.As to check for specific error conditions
//  4. The API layer maps service errors to HTTP status codes
//
// The service layer depends on store interfaces, never on a specific backend.
package service
