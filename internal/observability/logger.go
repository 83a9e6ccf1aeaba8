// Package observability holds the process-wide structured logger.
// JSON to stdout; request-scoped loggers carry the chi request id.
package observability

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5/middleware"
)

var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// Logger returns the process-wide logger.
func Logger() *slog.Logger {
	return logger
}

// WithFields returns a logger with additional fields attached.
func WithFields(kv ...any) *slog.Logger {
	return logger.With(kv...)
}

// FromContext returns the logger with the request id attached, if one is
// present in ctx (injected by chi's RequestID middleware).
func FromContext(ctx context.Context) *slog.Logger {
	reqID := middleware.GetReqID(ctx)
	if reqID == "" {
		return logger
	}
	return logger.With("request_id", reqID)
}
