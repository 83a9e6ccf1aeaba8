// Package handlers contains the HTTP handlers for the public API.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/edugenhq/edugen-server/internal/observability"
)

// writeJSON writes v as a JSON response with the given status code.
// The status is already committed by the time encoding runs, so an encode
// failure can only be logged, not turned into a different response.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		observability.Logger().Error("failed to encode response", "error", err)
	}
}

// writeError writes a JSON error response of the form {"error": message}.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}
