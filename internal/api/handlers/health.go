package handlers

import (
	"net/http"
	"time"

	"github.com/edugenhq/edugen-server/internal/version"
)

// FeatureReporter reports which optional features are currently available.
type FeatureReporter interface {
	Enabled() bool
}

// HealthHandler handles GET /api/health.
type HealthHandler struct {
	documents FeatureReporter
	now       func() time.Time
}

// NewHealthHandler creates a HealthHandler. documents reports whether full
// document processing (including PDF extraction) is available.
func NewHealthHandler(documents FeatureReporter) *HealthHandler {
	return &HealthHandler{documents: documents, now: time.Now}
}

// HealthResponse is the health-check response body.
type HealthResponse struct {
	Status    string   `json:"status"`
	Version   string   `json:"version"`
	Timestamp string   `json:"timestamp"`
	Features  Features `json:"features"`
}

// Features lists optional capabilities the deployment currently offers.
type Features struct {
	DocumentProcessing bool `json:"document_processing"`
}

// Health handles GET /api/health.
func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Version:   version.Version,
		Timestamp: h.now().Format(time.RFC3339),
		Features: Features{
			DocumentProcessing: h.documents.Enabled(),
		},
	})
}
