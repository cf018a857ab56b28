// Package api handles incoming HTTP requests for the task resource: routing
// parameters, request validation and response formatting. It translates HTTP
// concerns to service.TaskService operations and maps service errors back to
// status codes with sanitized messages.
package api
