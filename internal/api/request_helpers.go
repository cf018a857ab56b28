package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/task-manager-api/internal/domain"
)

// getPathID extracts a task identifier from the URL path parameters.
// Identifiers are opaque, so only emptiness is checked.
func getPathID(r *http.Request, paramName string) (string, error) {
	id := chi.URLParam(r, paramName)
	if err := domain.ValidateTaskID(id); err != nil {
		return "", err
	}
	return id, nil
}

// parseTopN reads the n query parameter, defaulting to DefaultTopN when it is
// absent. Negative values are passed through unchanged.
func parseTopN(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("n")
	if raw == "" {
		return DefaultTopN, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError("n", "must be an integer", domain.ErrInvalidFormat)
	}
	return n, nil
}

// getSearchTerm reads the required term query parameter. A present but empty
// term is valid and matches every titled task.
func getSearchTerm(r *http.Request) (string, error) {
	values, ok := r.URL.Query()["term"]
	if !ok || len(values) == 0 {
		return "", domain.NewValidationError("term", "is required", domain.ErrValidation)
	}
	return values[0], nil
}
